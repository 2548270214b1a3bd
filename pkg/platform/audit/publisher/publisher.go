// Package publisher provides the single write path to the audit trail.
//
// Persistence to the primary store is synchronous: callers learn whether the
// entry was durably recorded and decide the failure semantics themselves
// (the engine returns unaudited results, workflow actions fail closed).
// The optional mirror channel feeds the streaming worker and is strictly
// best-effort; a full channel drops the mirror copy, never the primary write.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	dErrors "arbiter/pkg/domain-errors"
	audit "arbiter/pkg/platform/audit"
)

// Publisher captures structured audit entries. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	mirror  chan<- audit.Entry
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// WithMirror forwards every persisted entry to the given channel, typically
// consumed by the streaming worker.
func WithMirror(mirror chan<- audit.Entry) Option {
	return func(p *Publisher) { p.mirror = mirror }
}

// New creates a publisher over the given append-only store.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stamps and persists an audit entry, returning the stored entry with its
// assigned sequence number. An error means the entry was NOT durably recorded.
func (p *Publisher) Emit(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	start := time.Now()

	if entry.ID == "" {
		entry.ID = "AUD-" + uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := entry.Validate(); err != nil {
		return audit.Entry{}, err
	}

	stored, err := p.store.Append(ctx, entry)
	if err != nil {
		if p.metrics != nil {
			p.metrics.IncPersistFailures()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit persistence failed",
				"decision_id", entry.DecisionID,
				"action", entry.Action,
				"error", err,
			)
		}
		return audit.Entry{}, dErrors.Wrap(dErrors.CodeUnavailable, "audit sink unavailable", err)
	}

	if p.metrics != nil {
		p.metrics.ObservePersistDuration(time.Since(start).Seconds())
		p.metrics.IncEntriesEmitted(string(entry.Action))
	}

	if p.mirror != nil {
		select {
		case p.mirror <- stored:
		default:
			if p.metrics != nil {
				p.metrics.IncMirrorDropped()
			}
		}
	}

	return stored, nil
}
