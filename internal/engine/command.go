// internal/engine/command.go
package engine

type CommandType int

const (
	CmdTrade CommandType = iota
	CmdBootstrap
	CmdShutdown
)

type TradeKind string

const (
	PlaceOrderKind  TradeKind = "place_order"
	CancelOrderKind TradeKind = "cancel_order"
)

// Command is the unit the supervisor consumes from its queue. Only trade
// commands carry a response path; bootstrap and shutdown are fire-and-forget.
type Command struct {
	Type    CommandType
	Trade   *TradeRequest // used when Type == CmdTrade
	Payload *Payload      // used when Type == CmdBootstrap
}

// TradeRequest is a live place/cancel request plus its response channel.
// Resp must be buffered with capacity 1; the supervisor sends exactly one
// result and never blocks on a caller that walked away.
type TradeRequest struct {
	Kind   TradeKind
	Place  *PlaceOrder  // Kind == PlaceOrderKind
	Cancel *CancelOrder // Kind == CancelOrderKind
	Resp   chan TradeResult
}

// Payload is the persistable form of a trade request: same fields, no
// response channel. It is what the event log stores and what bootstrap
// replays.
type Payload struct {
	Kind   TradeKind    `json:"kind"`
	Place  *PlaceOrder  `json:"place,omitempty"`
	Cancel *CancelOrder `json:"cancel,omitempty"`
}

func (r *TradeRequest) payload() Payload {
	return Payload{Kind: r.Kind, Place: r.Place, Cancel: r.Cancel}
}

// TradeResult is the single reply delivered per trade command. Match is set
// for successful place orders; Err carries the engine or domain error.
type TradeResult struct {
	Match *MatchResult
	Err   error
}
