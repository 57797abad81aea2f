package engine

import (
	"fmt"
	"time"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	}
	return "", fmt.Errorf("invalid side %q", s)
}

// Market identifies one tradable asset pair. The engine supports exactly
// these two; anything else is rejected by the domain operations.
type Market string

const (
	MarketBTCUSD Market = "BTC-USD"
	MarketETHUSD Market = "ETH-USD"
)

func SupportedMarkets() []Market {
	return []Market{MarketBTCUSD, MarketETHUSD}
}

// Order is the book-internal representation of a resting or incoming order.
type Order struct {
	ID        string
	UserID    string
	Market    Market
	Side      Side
	Price     int64 // integer price (ticks)
	Quantity  int64 // original quantity
	Remaining int64 // unfilled
	IsMarket  bool
	CreatedAt time.Time
}

// PlaceOrder is the transport-neutral place request. It is also what gets
// serialized into the event log, so it must stay JSON-encodable.
type PlaceOrder struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Market   Market `json:"market"`
	Side     Side   `json:"side"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	IsMarket bool   `json:"is_market"`
}

func (p *PlaceOrder) toOrder() *Order {
	return &Order{
		ID:        p.ID,
		UserID:    p.UserID,
		Market:    p.Market,
		Side:      p.Side,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Remaining: p.Quantity,
		IsMarket:  p.IsMarket,
		CreatedAt: time.Now(),
	}
}

// CancelOrder is the transport-neutral cancel request.
type CancelOrder struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Market Market `json:"market"`
}
