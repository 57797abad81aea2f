package engine

import (
	"errors"
	"fmt"
)

// Errors originating in the supervisor itself. Domain errors below pass
// through the response channel unchanged.
var (
	// ErrUnserializableInput means the request could not be encoded for
	// persistence. Nothing is written and nothing is applied.
	ErrUnserializableInput = errors.New("engine: request is not serializable")

	// ErrEngineStopped is returned for commands submitted after the
	// supervisor terminated, and to callers whose queued command was never
	// processed because shutdown got there first. The outcome of such a
	// command is unknown to the caller; the event log is authoritative.
	ErrEngineStopped = errors.New("engine: supervisor stopped")
)

// Domain errors.
var (
	ErrDuplicateOrderID  = errors.New("engine: order id already seen")
	ErrOrderNotFound     = errors.New("engine: order not found")
	ErrUnsupportedMarket = errors.New("engine: unsupported market")
)

// StoreError wraps an event log append failure. When the append fails the
// store error overrides whatever the domain operation returned, even though
// the in-memory book already reflects the mutation.
type StoreError struct {
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("engine: event log append failed: %v", e.Cause)
}

func (e *StoreError) Unwrap() error { return e.Cause }
