// internal/engine/supervisor.go
package engine

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/hakimelghazi/trading-core/internal/eventlog"
)

// Supervisor is the single goroutine that owns EngineState. Commands reach
// it only through its bounded queue, so state needs no locks: application
// order is exactly arrival order, and persistence order equals application
// order.
type Supervisor struct {
	state *EngineState
	store eventlog.Store
	cmds  chan Command
	done  chan struct{}
	log   *zap.Logger
}

func newSupervisor(buffer int, store eventlog.Store, logger *zap.Logger) *Supervisor {
	if buffer <= 0 {
		buffer = 1
	}
	return &Supervisor{
		state: NewEngineState(),
		store: store,
		cmds:  make(chan Command, buffer),
		done:  make(chan struct{}),
		log:   logger,
	}
}

func (s *Supervisor) run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case cmd := <-s.cmds:
			switch cmd.Type {
			case CmdShutdown:
				s.log.Warn("trading engine supervisor finished")
				return
			case CmdTrade:
				s.handleTrade(ctx, cmd.Trade)
			case CmdBootstrap:
				s.replayPayload(cmd.Payload)
			}
		case <-ctx.Done():
			s.log.Warn("trading engine supervisor canceled", zap.Error(ctx.Err()))
			return
		}
	}
}

func (s *Supervisor) handleTrade(ctx context.Context, req *TradeRequest) {
	var res TradeResult
	switch req.Kind {
	case PlaceOrderKind:
		var match *MatchResult
		err := s.commitValue(ctx, req.payload(), func() error {
			var applyErr error
			match, applyErr = applyPlaceOrder(s.state, req.Place)
			return applyErr
		})
		res = TradeResult{Match: match, Err: err}
	case CancelOrderKind:
		err := s.commitValue(ctx, req.payload(), func() error {
			return applyCancelOrder(s.state, req.Cancel)
		})
		res = TradeResult{Err: err}
	}

	// single-use buffered channel; if the caller discarded its end the
	// result is dropped and the log stays authoritative
	select {
	case req.Resp <- res:
	default:
	}
}

// commitValue runs the live-command sequence: serialize, apply the domain
// operation, append the record, reconcile. The record is written even when
// the domain operation failed, so the log doubles as an audit trail of
// rejected attempts. A failed append overrides the domain result with a
// StoreError; the in-memory mutation is NOT rolled back, so book state and
// log can diverge until the next restart replays the log.
func (s *Supervisor) commitValue(ctx context.Context, input any, apply func() error) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return ErrUnserializableInput
	}

	applyErr := apply()

	if _, err := s.store.Append(ctx, raw); err != nil {
		s.log.Error("event log append failed", zap.Error(err))
		return &StoreError{Cause: err}
	}
	return applyErr
}

// replayPayload applies one historical record. Replay is best effort: a
// record that fails domain-side (e.g. it was a rejected attempt when live)
// is skipped, never re-persisted, never answered.
func (s *Supervisor) replayPayload(p *Payload) {
	switch p.Kind {
	case PlaceOrderKind:
		if _, err := applyPlaceOrder(s.state, p.Place); err != nil {
			s.log.Debug("bootstrap place skipped", zap.String("order_id", p.Place.ID), zap.Error(err))
		}
	case CancelOrderKind:
		if err := applyCancelOrder(s.state, p.Cancel); err != nil {
			s.log.Debug("bootstrap cancel skipped", zap.String("order_id", p.Cancel.ID), zap.Error(err))
		}
	}
}
