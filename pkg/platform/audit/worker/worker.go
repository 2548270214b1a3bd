// Package worker forwards persisted audit entries from the publisher's mirror
// channel to a streaming sink. It keeps background processing testable without
// wiring a real broker.
package worker

import (
	"context"
	"log/slog"

	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/platform/audit/stream"
)

// Worker consumes audit entries from a channel and publishes them to the sink.
// Publish failures are logged and skipped; the primary store already holds the
// entry, so the stream may lag but the trail is never lost.
type Worker struct {
	sink   stream.Sink
	inbox  <-chan audit.Entry
	logger *slog.Logger
}

func New(sink stream.Sink, inbox <-chan audit.Entry, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry := <-w.inbox:
			if err := w.sink.Publish(ctx, entry); err != nil {
				if w.logger != nil {
					w.logger.WarnContext(ctx, "audit stream publish failed",
						"entry_id", entry.ID,
						"decision_id", entry.DecisionID,
						"error", err,
					)
				}
			}
		}
	}
}
