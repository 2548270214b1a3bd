// Package decision implements the governance decision engine: five
// independent check evaluators, the outcome aggregator, and the evaluation
// service that ties them to persistence and the audit trail.
package decision

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"arbiter/internal/decision/metrics"
	dErrors "arbiter/pkg/domain-errors"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/platform/audit/publisher"
	"arbiter/pkg/requestcontext"
)

// Result is the full output of one evaluation: the decision, the per-check
// breakdown behind it, and the audit entry recording it. Unaudited is set
// when the audit sink was unavailable; the decision is still served.
type Result struct {
	Decision   Decision
	Checks     CheckSet
	AuditEntry audit.Entry
	Unaudited  bool
}

// Service evaluates governance requests and records the outcome.
type Service struct {
	store     Store
	publisher *publisher.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// NewService wires the engine. Metrics may be nil in tests.
func NewService(store Store, pub *publisher.Publisher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:     store,
		publisher: pub,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("arbiter/decision"),
	}
}

// Evaluate runs all five checks against the request, aggregates them into a
// decision, persists it for workflow follow-up, and appends an audit entry.
//
// The checks run concurrently; each is pure and side-effect free, so the
// result is identical to sequential evaluation. A persistence failure aborts
// the evaluation, but an audit failure does not: evaluation is read-advice,
// so the result is returned flagged unaudited rather than withheld.
func (s *Service) Evaluate(ctx context.Context, req DecisionRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "decision.Evaluate",
		trace.WithAttributes(
			attribute.String("decision.module", req.Module),
			attribute.String("decision.operation", req.Operation),
		))
	defer span.End()

	start := time.Now()
	checks, err := s.runChecks(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome, approver := Aggregate(checks)
	decision := Decision{
		ID:               NewDecisionID(),
		Timestamp:        requestcontext.Now(ctx).UTC(),
		Module:           req.Module,
		Operation:        req.Operation,
		Actor:            req.Actor,
		OverallScore:     OverallScore(checks),
		Outcome:          outcome,
		RequiredApprover: approver,
		Conditions:       BuildConditions(checks),
		Requirements:     BuildRequirements(req, checks),
	}

	if err := s.store.Save(ctx, Record{Decision: decision, Resolution: ResolutionPending}); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "decision store unavailable", err)
	}

	result := &Result{Decision: decision, Checks: checks}

	entry, auditErr := s.publisher.Emit(ctx, audit.Entry{
		DecisionID: decision.ID,
		Module:     decision.Module,
		Action:     audit.ActionEvaluate,
		Actor:      decision.Actor,
		Outcome:    string(decision.Outcome),
		Score:      decision.OverallScore,
		RequestID:  requestcontext.RequestID(ctx),
		Metadata: map[string]string{
			"operation":  decision.Operation,
			"risk_level": string(checks.Risk.Level),
			"risk_score": strconv.Itoa(checks.Risk.Score),
		},
	})
	if auditErr != nil {
		result.Unaudited = true
		s.metrics.IncUnaudited()
		s.logger.WarnContext(ctx, "decision served without audit entry",
			"decision_id", decision.ID,
			"error", auditErr)
	} else {
		result.AuditEntry = entry
	}

	span.SetAttributes(
		attribute.String("decision.outcome", string(outcome)),
		attribute.Int("decision.overall_score", decision.OverallScore),
	)
	s.metrics.IncOutcome(string(outcome), decision.Module)
	s.metrics.ObserveEvaluate(time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "decision evaluated",
		"decision_id", decision.ID,
		"module", decision.Module,
		"operation", decision.Operation,
		"outcome", string(outcome),
		"overall_score", decision.OverallScore,
		"risk_level", string(checks.Risk.Level),
		"request_id", requestcontext.RequestID(ctx),
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// runChecks evaluates the five checks concurrently. A panicking evaluator is
// converted to an internal error so one bad rule cannot take the server down.
func (s *Service) runChecks(ctx context.Context, req DecisionRequest) (CheckSet, error) {
	var checks CheckSet
	g, _ := errgroup.WithContext(ctx)

	run := func(name string, fn func()) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = dErrors.Wrap(dErrors.CodeInternal, "evaluation failed",
						fmt.Errorf("%s check panicked: %v", name, r))
				}
			}()
			start := time.Now()
			fn()
			s.metrics.ObserveCheck(name, time.Since(start).Seconds())
			return nil
		})
	}

	run("ethics", func() { checks.Ethics = EvaluateEthics(req) })
	run("boundaries", func() { checks.Boundaries = EvaluateBoundaries(req) })
	run("risk", func() { checks.Risk = AssessRisk(req) })
	run("policy", func() { checks.Policy = EvaluatePolicy(req) })
	run("compliance", func() { checks.Compliance = EvaluateCompliance(req) })

	if err := g.Wait(); err != nil {
		return CheckSet{}, err
	}
	return checks, nil
}
