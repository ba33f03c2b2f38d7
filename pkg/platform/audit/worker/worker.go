package worker

import (
	"context"
	"log/slog"

	audit "unitconv/pkg/platform/audit"
)

// Worker drains an inbox of events into a store. A failed append is logged
// and the event dropped so one bad write cannot stall the queue.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until the inbox is closed and drained, returning nil,
// or until ctx is cancelled, returning ctx.Err().
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to append audit event",
					"action", event.Action,
					"request_id", event.RequestID,
					"error", err,
				)
			}
		}
	}
}
