// internal/engine/bootstrap.go
package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hakimelghazi/trading-core/internal/eventlog"
)

// replayLog drains the event log in ascending id order and feeds each record
// into the supervisor's queue as a bootstrap command. The send blocks until
// the queue has room, so replay is back-pressured by the same bounded queue
// live traffic will use.
//
// A record that fails to decode aborts replay: a log the engine cannot read
// is a log it cannot trust, so startup fails fast instead of skipping.
func replayLog(ctx context.Context, store eventlog.Store, cmds chan<- Command) error {
	return store.Replay(ctx, func(rec eventlog.Record) error {
		var p Payload
		if err := json.Unmarshal(rec.Payload, &p); err != nil {
			return fmt.Errorf("decode log record %d: %w", rec.ID, err)
		}

		select {
		case cmds <- Command{Type: CmdBootstrap, Payload: &p}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
