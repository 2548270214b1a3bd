package workflow

import (
	"context"
	"log/slog"
	"strconv"

	"arbiter/internal/decision"
	"arbiter/internal/decision/metrics"
	dErrors "arbiter/pkg/domain-errors"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/platform/audit/publisher"
	"arbiter/pkg/requestcontext"
)

// Service applies workflow actions to stored decisions.
//
// Every action is fail-closed on the audit trail: the entry is durably
// appended before the state transition is applied, so an acknowledged action
// always has a matching record. An entry for an action that then lost a
// finalize race records the attempt; the store remains the authority on the
// decision's resolution.
type Service struct {
	store     decision.Store
	publisher *publisher.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService wires the workflow layer. Metrics may be nil in tests.
func NewService(store decision.Store, pub *publisher.Publisher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, publisher: pub, logger: logger, metrics: m}
}

// Approve finalizes a pending decision as approved.
func (s *Service) Approve(ctx context.Context, decisionID string, req ApproveRequest) (*ApproveResult, error) {
	rec, err := s.pending(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	meta := map[string]string{}
	if req.Notes != "" {
		meta["notes"] = req.Notes
	}
	if len(req.Conditions) > 0 {
		meta["conditions"] = strconv.Itoa(len(req.Conditions))
	}
	if err := s.record(ctx, rec, audit.ActionApprove, req.Approver, "approved", meta); err != nil {
		return nil, err
	}

	if _, err := s.store.Finalize(ctx, decisionID, decision.ResolutionApproved); err != nil {
		return nil, err
	}

	s.metrics.IncWorkflowAction(string(audit.ActionApprove))
	s.logger.InfoContext(ctx, "decision approved",
		"decision_id", decisionID,
		"approver", req.Approver,
		"request_id", requestcontext.RequestID(ctx))

	nextSteps := []string{"Proceed with the approved operation"}
	if len(rec.Decision.Conditions) > 0 || len(req.Conditions) > 0 {
		nextSteps = append(nextSteps, "Confirm all attached conditions are met before execution")
	}
	nextSteps = append(nextSteps, "Retain the decision record for the compliance file")

	return &ApproveResult{
		DecisionID: decisionID,
		Status:     "approved",
		Approver:   req.Approver,
		ApprovedAt: requestcontext.Now(ctx).UTC(),
		NextSteps:  nextSteps,
	}, nil
}

// Reject finalizes a pending decision as rejected.
func (s *Service) Reject(ctx context.Context, decisionID string, req RejectRequest) (*RejectResult, error) {
	rec, err := s.pending(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	appeal := req.AppealProcess
	if appeal == "" {
		appeal = DefaultAppealProcess
	}

	meta := map[string]string{"reason": req.Reason}
	if err := s.record(ctx, rec, audit.ActionReject, req.Rejector, "rejected", meta); err != nil {
		return nil, err
	}

	if _, err := s.store.Finalize(ctx, decisionID, decision.ResolutionRejected); err != nil {
		return nil, err
	}

	s.metrics.IncWorkflowAction(string(audit.ActionReject))
	s.logger.InfoContext(ctx, "decision rejected",
		"decision_id", decisionID,
		"rejector", req.Rejector,
		"request_id", requestcontext.RequestID(ctx))

	return &RejectResult{
		DecisionID:    decisionID,
		Status:        "rejected",
		Rejector:      req.Rejector,
		RejectedAt:    requestcontext.Now(ctx).UTC(),
		Reason:        req.Reason,
		AppealProcess: appeal,
		Recommendations: []string{
			"Address the stated reason before resubmitting",
			"Reference the original decision ID in any appeal",
		},
	}, nil
}

// Escalate raises a pending decision to a higher approver. The decision stays
// pending; only the required approver moves up the chain.
func (s *Service) Escalate(ctx context.Context, decisionID string, req EscalateRequest) (*EscalateResult, error) {
	rec, err := s.pending(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	escalateTo := req.EscalateTo
	if escalateTo == "" {
		escalateTo = nextInChain(rec.Decision.RequiredApprover)
	}

	meta := map[string]string{
		"reason":       req.Reason,
		"escalated_to": escalateTo,
	}
	if req.Urgency != "" {
		meta["urgency"] = req.Urgency
	}
	if err := s.record(ctx, rec, audit.ActionEscalate, req.EscalatedBy, "escalated", meta); err != nil {
		return nil, err
	}

	if _, err := s.store.Escalate(ctx, decisionID, escalateTo); err != nil {
		return nil, err
	}

	s.metrics.IncWorkflowAction(string(audit.ActionEscalate))
	s.logger.InfoContext(ctx, "decision escalated",
		"decision_id", decisionID,
		"escalated_by", req.EscalatedBy,
		"escalated_to", escalateTo,
		"request_id", requestcontext.RequestID(ctx))

	return &EscalateResult{
		DecisionID:       decisionID,
		Status:           "escalated",
		EscalatedBy:      req.EscalatedBy,
		EscalateTo:       escalateTo,
		EscalatedAt:      requestcontext.Now(ctx).UTC(),
		Reason:           req.Reason,
		Urgency:          req.Urgency,
		ExpectedResponse: expectedResponse(req.Urgency),
		EscalationChain:  EscalationChain,
	}, nil
}

// pending loads the record and rejects actions on unknown or finalized
// decisions before anything is written.
func (s *Service) pending(ctx context.Context, decisionID string) (decision.Record, error) {
	rec, err := s.store.Get(ctx, decisionID)
	if err != nil {
		return decision.Record{}, err
	}
	if rec.Resolution != decision.ResolutionPending {
		return decision.Record{}, dErrors.New(dErrors.CodeConflict, "decision already finalized")
	}
	return rec, nil
}

// record appends the audit entry for an action. An append failure aborts the
// action before any state changes.
func (s *Service) record(ctx context.Context, rec decision.Record, action audit.Action, actor, outcome string, meta map[string]string) error {
	_, err := s.publisher.Emit(ctx, audit.Entry{
		Timestamp:  requestcontext.Now(ctx).UTC(),
		DecisionID: rec.Decision.ID,
		Module:     rec.Decision.Module,
		Action:     action,
		Actor:      actor,
		Outcome:    outcome,
		Score:      rec.Decision.OverallScore,
		RequestID:  requestcontext.RequestID(ctx),
		Metadata:   meta,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "workflow action refused, audit unavailable",
			"decision_id", rec.Decision.ID,
			"action", string(action),
			"error", err.Error())
	}
	return err
}
