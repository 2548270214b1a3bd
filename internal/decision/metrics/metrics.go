// Package metrics provides Prometheus instrumentation for the decision engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for decision evaluation and workflow actions.
type Metrics struct {
	Outcomes        *prometheus.CounterVec
	CheckDuration   *prometheus.HistogramVec
	EvaluateLatency prometheus.Histogram
	WorkflowActions *prometheus.CounterVec
	Unaudited       prometheus.Counter
}

// NewMetrics creates and registers all decision engine metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "arbiter_decision_outcomes_total",
			Help: "Total decisions produced, by outcome and module",
		}, []string{"outcome", "module"}),

		CheckDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arbiter_decision_check_duration_seconds",
			Help:    "Duration of individual check evaluators",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		}, []string{"check"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbiter_decision_evaluate_duration_seconds",
			Help:    "End-to-end duration of decision evaluation",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		WorkflowActions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "arbiter_workflow_actions_total",
			Help: "Total workflow actions applied, by action",
		}, []string{"action"}),

		Unaudited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_decision_unaudited_total",
			Help: "Total decisions returned without a persisted audit entry",
		}),
	}
}

// IncOutcome records a produced decision.
func (m *Metrics) IncOutcome(outcome, module string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome, module).Inc()
	}
}

// ObserveCheck records how long a single check evaluator took.
func (m *Metrics) ObserveCheck(check string, seconds float64) {
	if m != nil {
		m.CheckDuration.WithLabelValues(check).Observe(seconds)
	}
}

// ObserveEvaluate records the end-to-end evaluation latency.
func (m *Metrics) ObserveEvaluate(seconds float64) {
	if m != nil {
		m.EvaluateLatency.Observe(seconds)
	}
}

// IncWorkflowAction records an applied workflow action.
func (m *Metrics) IncWorkflowAction(action string) {
	if m != nil {
		m.WorkflowActions.WithLabelValues(action).Inc()
	}
}

// IncUnaudited records a decision served despite an audit sink failure.
func (m *Metrics) IncUnaudited() {
	if m != nil {
		m.Unaudited.Inc()
	}
}
