// internal/engine/spawn.go
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hakimelghazi/trading-core/internal/eventlog"
)

// Engine is the live handle callers submit trades through. Spawn only
// constructs it after the event log is fully drained, so no external caller
// can interleave live traffic with bootstrap replay.
type Engine struct {
	sup *Supervisor
}

// Spawn starts the supervisor goroutine, replays the event log into it, and
// returns the live handle. buffer is the command queue capacity and the only
// backpressure mechanism. A store failure or malformed record during replay
// shuts the supervisor down and fails startup; there is no partial-bootstrap
// retry.
func Spawn(ctx context.Context, buffer int, store eventlog.Store, logger *zap.Logger) (*Engine, error) {
	logger.Info("preparing trading engine", zap.Int("queue_capacity", buffer))

	sup := newSupervisor(buffer, store, logger)
	go sup.run(ctx)

	if err := replayLog(ctx, store, sup.cmds); err != nil {
		// queued bootstrap commands drain first, then the supervisor stops;
		// if it already stopped (context cancelled mid-replay) there is
		// nobody left to tell
		select {
		case sup.cmds <- Command{Type: CmdShutdown}:
		case <-sup.done:
		}
		return nil, fmt.Errorf("bootstrap trading engine: %w", err)
	}

	logger.Info("trading engine live")
	return &Engine{sup: sup}, nil
}

// Place submits a place-order request and waits for its result. The enqueue
// honors ctx; once accepted, the caller waits without timeout — the
// supervisor replies exactly once per trade command.
func (e *Engine) Place(ctx context.Context, req *PlaceOrder) (*MatchResult, error) {
	res, err := e.trade(ctx, &TradeRequest{Kind: PlaceOrderKind, Place: req})
	if err != nil {
		return nil, err
	}
	return res.Match, res.Err
}

// Cancel submits a cancel-order request and waits for its result.
func (e *Engine) Cancel(ctx context.Context, req *CancelOrder) error {
	res, err := e.trade(ctx, &TradeRequest{Kind: CancelOrderKind, Cancel: req})
	if err != nil {
		return err
	}
	return res.Err
}

func (e *Engine) trade(ctx context.Context, req *TradeRequest) (TradeResult, error) {
	req.Resp = make(chan TradeResult, 1)

	select {
	case e.sup.cmds <- Command{Type: CmdTrade, Trade: req}:
	case <-e.sup.done:
		return TradeResult{}, ErrEngineStopped
	case <-ctx.Done():
		return TradeResult{}, ctx.Err()
	}

	return e.await(req)
}

func (e *Engine) await(req *TradeRequest) (TradeResult, error) {
	select {
	case res := <-req.Resp:
		return res, nil
	case <-e.sup.done:
		// a reply buffered just before shutdown still counts; only when
		// none exists did shutdown overtake the queued command
		select {
		case res := <-req.Resp:
			return res, nil
		default:
			return TradeResult{}, ErrEngineStopped
		}
	}
}

// Shutdown asks the supervisor to stop after the commands already queued.
// It does not wait for termination; use Done for that.
func (e *Engine) Shutdown(ctx context.Context) error {
	select {
	case e.sup.cmds <- Command{Type: CmdShutdown}:
		return nil
	case <-e.sup.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done closes once the supervisor goroutine has terminated.
func (e *Engine) Done() <-chan struct{} {
	return e.sup.done
}
