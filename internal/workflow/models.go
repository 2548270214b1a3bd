// Package workflow implements the post-evaluation lifecycle: approve,
// reject, and escalate actions keyed by decision ID. Handlers never re-run
// the evaluators; they apply operator-supplied metadata to a stored decision
// and append the matching audit entry.
package workflow

import (
	"time"

	"arbiter/internal/decision"
	dErrors "arbiter/pkg/domain-errors"
)

// EscalationChain is the fixed ordered approver ladder.
var EscalationChain = []string{
	decision.ApproverDepartmentHead,
	decision.ApproverSeniorManagement,
	decision.ApproverExecutiveCommittee,
	decision.ApproverBoard,
}

// DefaultAppealProcess applies when a rejection carries no appeal terms.
const DefaultAppealProcess = "Appeal in writing within 5 business days"

// ApproveRequest carries the operator input for an approval.
type ApproveRequest struct {
	Approver   string   `json:"approver"`
	Conditions []string `json:"conditions,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func (r *ApproveRequest) Validate() error {
	if r.Approver == "" {
		return dErrors.New(dErrors.CodeBadRequest, "approver is required")
	}
	return nil
}

// ApproveResult confirms an applied approval.
type ApproveResult struct {
	DecisionID string    `json:"decisionId"`
	Status     string    `json:"status"`
	Approver   string    `json:"approver"`
	ApprovedAt time.Time `json:"approvedAt"`
	NextSteps  []string  `json:"nextSteps"`
}

// RejectRequest carries the operator input for a rejection.
type RejectRequest struct {
	Rejector      string `json:"rejector"`
	Reason        string `json:"reason"`
	AppealProcess string `json:"appealProcess,omitempty"`
}

func (r *RejectRequest) Validate() error {
	if r.Rejector == "" {
		return dErrors.New(dErrors.CodeBadRequest, "rejector is required")
	}
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeBadRequest, "reason is required")
	}
	return nil
}

// RejectResult confirms an applied rejection.
type RejectResult struct {
	DecisionID      string    `json:"decisionId"`
	Status          string    `json:"status"`
	Rejector        string    `json:"rejector"`
	RejectedAt      time.Time `json:"rejectedAt"`
	Reason          string    `json:"reason"`
	AppealProcess   string    `json:"appealProcess"`
	Recommendations []string  `json:"recommendations"`
}

// EscalateRequest carries the operator input for an escalation. Urgency here
// is the operator's severity tag for the escalation itself, distinct from the
// evaluation urgency enum.
type EscalateRequest struct {
	EscalatedBy string `json:"escalatedBy"`
	EscalateTo  string `json:"escalateTo"`
	Reason      string `json:"reason"`
	Urgency     string `json:"urgency,omitempty"`
}

func (r *EscalateRequest) Validate() error {
	if r.EscalatedBy == "" {
		return dErrors.New(dErrors.CodeBadRequest, "escalatedBy is required")
	}
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeBadRequest, "reason is required")
	}
	if r.EscalateTo != "" && !chainMember(r.EscalateTo) {
		return dErrors.New(dErrors.CodeValidation, "escalateTo must be a member of the escalation chain")
	}
	return nil
}

// EscalateResult confirms an applied escalation.
type EscalateResult struct {
	DecisionID       string    `json:"decisionId"`
	Status           string    `json:"status"`
	EscalatedBy      string    `json:"escalatedBy"`
	EscalateTo       string    `json:"escalateTo"`
	EscalatedAt      time.Time `json:"escalatedAt"`
	Reason           string    `json:"reason"`
	Urgency          string    `json:"urgency"`
	ExpectedResponse string    `json:"expectedResponse"`
	EscalationChain  []string  `json:"escalationChain"`
}

func chainMember(approver string) bool {
	for _, a := range EscalationChain {
		if a == approver {
			return true
		}
	}
	return false
}

// nextInChain returns the approver one rung above current, defaulting to the
// bottom of the ladder when current is unknown and capping at the top.
func nextInChain(current string) string {
	for i, a := range EscalationChain {
		if a == current {
			if i+1 < len(EscalationChain) {
				return EscalationChain[i+1]
			}
			return a
		}
	}
	return EscalationChain[0]
}

// expectedResponse maps escalation urgency to a response-time commitment.
func expectedResponse(urgency string) string {
	if urgency == "critical" {
		return "24 hours"
	}
	return "3 business days"
}
