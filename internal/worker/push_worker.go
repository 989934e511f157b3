// Package worker forwards queued ledger mutations to the remote endpoint.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"snackledger/internal/amqp"
	"snackledger/internal/core"
	"snackledger/internal/remote"
)

// PushWorker consumes sync messages and mirrors them to the remote. The local
// ledger is already persisted by the time a message exists, so a failed push
// only means the remote lags until the next full resync.
type PushWorker struct {
	pusher remote.Pusher
}

func NewPushWorker(pusher remote.Pusher) *PushWorker {
	return &PushWorker{pusher: pusher}
}

// HandleMessage processes a single sync message from AMQP.
func (w *PushWorker) HandleMessage(ctx context.Context, msg *amqp.SyncMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid sync message: %w", err)
	}

	switch msg.Action {
	case amqp.ActionUpsert:
		slog.InfoContext(ctx, "Pushing record to remote",
			"id", msg.Record.ID,
			"date", msg.Record.Date.String(),
			"amount_cents", msg.Record.Amount.Cents)
		if err := w.pusher.Push(ctx, *msg.Record); err != nil {
			return fmt.Errorf("push record %d: %w", msg.Record.ID, err)
		}
		return nil
	case amqp.ActionDelete:
		date, err := core.ParseCivilDate(msg.Date)
		if err != nil {
			return fmt.Errorf("delete message %d has bad date %q: %w", msg.ID, msg.Date, err)
		}
		slog.InfoContext(ctx, "Pushing delete to remote", "id", msg.ID, "date", msg.Date)
		if err := w.pusher.PushDelete(ctx, msg.ID, date); err != nil {
			return fmt.Errorf("push delete %d: %w", msg.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}
