// Package eventlog is the append-only record store behind the trading
// engine. Records are immutable once written; the store-assigned id is
// monotonically increasing and defines the canonical replay order.
package eventlog

import "context"

// Record is one committed log entry.
type Record struct {
	ID      int64
	Payload []byte
}

// Store is the append-only collection the engine persists to and replays
// from. Append is called sequentially by exactly one goroutine; Replay
// yields records forward-only in ascending id order.
type Store interface {
	Append(ctx context.Context, payload []byte) (int64, error)
	Replay(ctx context.Context, fn func(Record) error) error
}
