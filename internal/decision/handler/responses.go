package handler

import (
	"time"

	"arbiter/internal/decision"
	audit "arbiter/pkg/platform/audit"
)

// EvaluateResponse is the wire envelope for an evaluation result: the
// decision header, the per-check breakdown, the obligations, and the audit
// entry recording it.
type EvaluateResponse struct {
	DecisionID   string                `json:"decisionId"`
	Timestamp    time.Time             `json:"timestamp"`
	Module       string                `json:"module"`
	Operation    string                `json:"operation"`
	Actor        string                `json:"actor,omitempty"`
	Evaluation   Evaluation            `json:"evaluation"`
	Conditions   []string              `json:"conditions"`
	Requirements decision.Requirements `json:"requirements"`
	AuditEntry   *audit.Entry          `json:"auditEntry,omitempty"`
	Unaudited    bool                  `json:"unaudited,omitempty"`
}

// Evaluation groups the aggregate verdict with the check-level detail.
type Evaluation struct {
	OverallScore     int               `json:"overallScore"`
	Decision         decision.Outcome  `json:"decision"`
	RequiredApprover string            `json:"requiredApprover,omitempty"`
	Checks           decision.CheckSet `json:"checks"`
}

func newEvaluateResponse(res *decision.Result) EvaluateResponse {
	resp := EvaluateResponse{
		DecisionID: res.Decision.ID,
		Timestamp:  res.Decision.Timestamp,
		Module:     res.Decision.Module,
		Operation:  res.Decision.Operation,
		Actor:      res.Decision.Actor,
		Evaluation: Evaluation{
			OverallScore:     res.Decision.OverallScore,
			Decision:         res.Decision.Outcome,
			RequiredApprover: res.Decision.RequiredApprover,
			Checks:           res.Checks,
		},
		Conditions:   res.Decision.Conditions,
		Requirements: res.Decision.Requirements,
		Unaudited:    res.Unaudited,
	}
	if !res.Unaudited {
		entry := res.AuditEntry
		resp.AuditEntry = &entry
	}
	return resp
}
