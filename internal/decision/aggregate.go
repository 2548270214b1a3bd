package decision

// Approver roles referenced by the aggregator and the escalation chain.
const (
	ApproverDepartmentHead     = "Department Head"
	ApproverSeniorManagement   = "Senior Management"
	ApproverExecutiveCommittee = "Executive Committee"
	ApproverBoard              = "Board"
)

// Aggregate maps the five check results to a terminal outcome. Rules apply in
// priority order; the first match wins:
//
//  1. critical risk rejects outright, no approver
//  2. any failed non-risk check escalates to the Board
//  3. high risk requires senior management review
//  4. medium risk requires department head review
//  5. everything else auto-approves
//
// The returned approver is non-empty exactly when the outcome is
// manual-review or escalate.
func Aggregate(checks CheckSet) (Outcome, string) {
	if checks.Risk.Level == RiskCritical {
		return OutcomeAutoReject, ""
	}
	if !checks.Ethics.Passed || !checks.Boundaries.Passed || !checks.Policy.Passed || !checks.Compliance.Passed {
		return OutcomeEscalate, ApproverBoard
	}
	if checks.Risk.Level == RiskHigh {
		return OutcomeManualReview, ApproverSeniorManagement
	}
	if checks.Risk.Level == RiskMedium {
		return OutcomeManualReview, ApproverDepartmentHead
	}
	return OutcomeAutoApprove, ""
}

// OverallScore is the rounded mean of the five check scores. It is advisory
// reporting only; the outcome is driven by risk level and pass/fail flags,
// never by this average.
func OverallScore(checks CheckSet) int {
	total := 0
	for _, s := range checks.Scores() {
		total += s
	}
	return roundDiv(total, 5)
}

// BuildConditions derives the informational conditions list from the check
// outputs. Conditions never gate the outcome.
func BuildConditions(checks CheckSet) []string {
	conditions := []string{}
	if checks.Ethics.Score < 90 {
		conditions = append(conditions, "Ethics review required before proceeding")
	}
	if len(checks.Boundaries.Violations) > 0 {
		conditions = append(conditions, "Address all triggered boundary conditions")
	}
	switch checks.Risk.Level {
	case RiskHigh:
		conditions = append(conditions, "Senior management sign-off required")
	case RiskCritical:
		conditions = append(conditions, "Executive sign-off and risk re-assessment required")
	}
	return conditions
}

// BuildRequirements assembles the obligations bundle. Documentation and the
// approval chain grow with risk level; critical risk shortens the timeline to
// 2 business days and adds Board notification.
func BuildRequirements(req DecisionRequest, checks CheckSet) Requirements {
	r := Requirements{
		Documentation: []string{"Decision record with evaluation breakdown"},
		Approvals:     []string{},
		Timeline:      "5 business days",
		FollowUp:      []string{},
	}

	if req.Data.Amount > 100_000 {
		r.Documentation = append(r.Documentation, "Financial justification and funding source")
	}
	if isTrue(req.Data.ConflictZone) {
		r.Documentation = append(r.Documentation, "Security assessment for the operating area")
	}

	switch checks.Risk.Level {
	case RiskMedium:
		r.Approvals = append(r.Approvals, ApproverDepartmentHead)
	case RiskHigh:
		r.Approvals = append(r.Approvals, ApproverDepartmentHead, ApproverSeniorManagement)
	case RiskCritical:
		r.Approvals = append(r.Approvals, ApproverDepartmentHead, ApproverSeniorManagement, ApproverExecutiveCommittee)
		r.FollowUp = append(r.FollowUp, "Notify the Board of the rejected high-risk request")
		r.Timeline = "2 business days"
	}

	if checks.Risk.Level == RiskHigh || checks.Risk.Level == RiskCritical {
		r.FollowUp = append(r.FollowUp, "Post-implementation review within 30 days")
	}

	return r
}
