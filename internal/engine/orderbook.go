package engine

import (
	"container/list"
	"sort"
)

// priceLevel holds FIFO orders for one price.
type priceLevel struct {
	price  int64
	orders *list.List // of *Order, oldest first
}

// orderRef lets cancel find a resting order without scanning levels.
type orderRef struct {
	side  Side
	price int64
	elem  *list.Element
}

type OrderBook struct {
	// key = price, value = *priceLevel
	bids map[int64]*priceLevel
	asks map[int64]*priceLevel

	// to keep prices sorted; for two fixed markets this is fine
	bidPrices []int64 // sorted desc
	askPrices []int64 // sorted asc

	ordersByID map[string]*orderRef
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:       make(map[int64]*priceLevel),
		asks:       make(map[int64]*priceLevel),
		bidPrices:  make([]int64, 0),
		askPrices:  make([]int64, 0),
		ordersByID: make(map[string]*orderRef),
	}
}

// AddOrder rests o at its price level, creating the level if needed.
func (b *OrderBook) AddOrder(o *Order) {
	levels, prices := b.bids, &b.bidPrices
	if o.Side == SideSell {
		levels, prices = b.asks, &b.askPrices
	}

	lvl, ok := levels[o.Price]
	if !ok {
		lvl = &priceLevel{price: o.Price, orders: list.New()}
		levels[o.Price] = lvl
		*prices = append(*prices, o.Price)
		if o.Side == SideBuy {
			sort.Slice(*prices, func(i, j int) bool { return (*prices)[i] > (*prices)[j] })
		} else {
			sort.Slice(*prices, func(i, j int) bool { return (*prices)[i] < (*prices)[j] })
		}
	}

	elem := lvl.orders.PushBack(o)
	b.ordersByID[o.ID] = &orderRef{side: o.Side, price: o.Price, elem: elem}
}

// CancelOrder removes a resting order by id. Returns false if the id is not
// resting on this book.
func (b *OrderBook) CancelOrder(id string) bool {
	ref, ok := b.ordersByID[id]
	if !ok {
		return false
	}

	if ref.side == SideBuy {
		lvl := b.bids[ref.price]
		lvl.orders.Remove(ref.elem)
		if lvl.orders.Len() == 0 {
			b.removeBidLevel(ref.price)
		}
	} else {
		lvl := b.asks[ref.price]
		lvl.orders.Remove(ref.elem)
		if lvl.orders.Len() == 0 {
			b.removeAskLevel(ref.price)
		}
	}

	delete(b.ordersByID, id)
	return true
}

// OpenOrder reports whether an order with the given id is resting.
func (b *OrderBook) OpenOrder(id string) bool {
	_, ok := b.ordersByID[id]
	return ok
}

// OpenOrderCount returns the number of resting orders.
func (b *OrderBook) OpenOrderCount() int {
	return len(b.ordersByID)
}

func (b *OrderBook) bestBid() *priceLevel {
	if len(b.bidPrices) == 0 {
		return nil
	}
	return b.bids[b.bidPrices[0]]
}

func (b *OrderBook) bestAsk() *priceLevel {
	if len(b.askPrices) == 0 {
		return nil
	}
	return b.asks[b.askPrices[0]]
}

// removeMaker pops a filled maker off its level and out of the lookup.
func (b *OrderBook) removeMaker(lvl *priceLevel, elem *list.Element, side Side) {
	o := elem.Value.(*Order)
	lvl.orders.Remove(elem)
	delete(b.ordersByID, o.ID)

	if lvl.orders.Len() == 0 {
		if side == SideBuy {
			b.removeBidLevel(lvl.price)
		} else {
			b.removeAskLevel(lvl.price)
		}
	}
}

func (b *OrderBook) removeBidLevel(price int64) {
	delete(b.bids, price)
	for i, p := range b.bidPrices {
		if p == price {
			b.bidPrices = append(b.bidPrices[:i], b.bidPrices[i+1:]...)
			break
		}
	}
}

func (b *OrderBook) removeAskLevel(price int64) {
	delete(b.asks, price)
	for i, p := range b.askPrices {
		if p == price {
			b.askPrices = append(b.askPrices[:i], b.askPrices[i+1:]...)
			break
		}
	}
}
