package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit write path.
type Metrics struct {
	EntriesEmitted  *prometheus.CounterVec
	PersistFailures prometheus.Counter
	MirrorDropped   prometheus.Counter
	PersistDuration prometheus.Histogram
}

// NewMetrics creates and registers all audit publisher metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		EntriesEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "arbiter_audit_entries_total",
			Help: "Total audit entries persisted, by action",
		}, []string{"action"}),

		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_audit_persist_failures_total",
			Help: "Total audit entries that could not be persisted",
		}),

		MirrorDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_audit_mirror_dropped_total",
			Help: "Total audit entries dropped from the best-effort stream mirror",
		}),

		PersistDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbiter_audit_persist_duration_seconds",
			Help:    "Duration of audit store appends",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncEntriesEmitted records a persisted entry.
func (m *Metrics) IncEntriesEmitted(action string) {
	if m != nil {
		m.EntriesEmitted.WithLabelValues(action).Inc()
	}
}

// IncPersistFailures records a failed append.
func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

// IncMirrorDropped records a dropped mirror copy.
func (m *Metrics) IncMirrorDropped() {
	if m != nil {
		m.MirrorDropped.Inc()
	}
}

// ObservePersistDuration records how long an append took.
func (m *Metrics) ObservePersistDuration(seconds float64) {
	if m != nil {
		m.PersistDuration.Observe(seconds)
	}
}
