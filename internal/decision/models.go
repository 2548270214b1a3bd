// Package decision implements the governance decision engine: five
// independent check evaluators, an aggregator that maps their results to a
// terminal outcome, and the service that orchestrates evaluation and audit.
package decision

import (
	"time"

	"github.com/google/uuid"

	dErrors "arbiter/pkg/domain-errors"
)

// Outcome is the terminal classification of a single evaluation.
type Outcome string

const (
	OutcomeAutoApprove  Outcome = "auto-approve"
	OutcomeManualReview Outcome = "manual-review"
	OutcomeEscalate     Outcome = "escalate"
	OutcomeAutoReject   Outcome = "auto-reject"
)

// Urgency classifies how quickly the proposed operation must move.
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// ParseUrgency maps the wire value to an Urgency. Absent defaults to normal,
// mirroring the permissive handling of all optional request data.
func ParseUrgency(v string) (Urgency, error) {
	switch Urgency(v) {
	case "":
		return UrgencyNormal, nil
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return Urgency(v), nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "urgency must be normal, urgent, or emergency")
}

// RiskLevel buckets the computed risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RequestData is the bag of decision-relevant attributes supplied by the
// caller. Every flag is optional; pointers distinguish "explicitly set" from
// "absent". Absent flags are permissive: a predicate only triggers on an
// explicit value, preserving the upstream convention that an unset field
// passes every check.
type RequestData struct {
	Amount        float64 `json:"amount,omitempty"`
	Beneficiaries int     `json:"beneficiaries,omitempty"`
	Urgency       Urgency `json:"urgency,omitempty"`

	ConflictZone *bool `json:"conflictZone,omitempty"`
	SafetyPlan   *bool `json:"safetyPlan,omitempty"`
	NewPartner   *bool `json:"newPartner,omitempty"`
	SanctionRisk *bool `json:"sanctionRisk,omitempty"`

	BeneficiaryConsent    *bool `json:"beneficiaryConsent,omitempty"`
	BeneficiariesVerified *bool `json:"beneficiariesVerified,omitempty"`
	Documented            *bool `json:"documented,omitempty"`
	DualAuth              *bool `json:"dualAuth,omitempty"`
	BudgetApproved        *bool `json:"budgetApproved,omitempty"`
	CompetitiveBid        *bool `json:"competitiveBid,omitempty"`
	DueDiligence          *bool `json:"dueDiligence,omitempty"`
	DataProtection        *bool `json:"dataProtection,omitempty"`

	ConflictOfInterest      *bool `json:"conflictOfInterest,omitempty"`
	COIDisclosed            *bool `json:"coiDisclosed,omitempty"`
	EnvironmentalAssessment *bool `json:"environmentalAssessment,omitempty"`
	SafeguardingTraining    *bool `json:"safeguardingTraining,omitempty"`
	EmergencyApproval       *bool `json:"emergencyApproval,omitempty"`

	AMLScreening       *bool `json:"amlScreening,omitempty"`
	SanctionsChecked   *bool `json:"sanctionsChecked,omitempty"`
	TaxCompliant       *bool `json:"taxCompliant,omitempty"`
	Authorized         *bool `json:"authorized,omitempty"`
	RegulatoryRequired *bool `json:"regulatoryRequired,omitempty"`
	RegulatoryFiled    *bool `json:"regulatoryFiled,omitempty"`
	RegulatoryChange   *bool `json:"regulatoryChange,omitempty"`
}

// isTrue reports an explicitly set true flag.
func isTrue(p *bool) bool { return p != nil && *p }

// isFalse reports an explicitly set false flag. Absent is NOT false.
func isFalse(p *bool) bool { return p != nil && !*p }

// DecisionRequest is the bundle submitted for evaluation.
type DecisionRequest struct {
	Module    string      `json:"module"`
	Operation string      `json:"operation"`
	Actor     string      `json:"actor"`
	Data      RequestData `json:"data"`
}

// Validate rejects requests before any evaluator runs. Optional data fields
// are never validated here; missing flags get permissive defaults per check.
func (r DecisionRequest) Validate() error {
	if r.Module == "" {
		return dErrors.New(dErrors.CodeBadRequest, "module is required")
	}
	if r.Operation == "" {
		return dErrors.New(dErrors.CodeBadRequest, "operation is required")
	}
	return nil
}

// CheckResult is the output of one check evaluator. Immutable once produced.
type CheckResult struct {
	Name            string   `json:"name"`
	Passed          bool     `json:"passed"`
	Score           int      `json:"score"`
	Violations      []string `json:"violations"`
	Recommendations []string `json:"recommendations"`
}

// RiskFactor itemizes one contribution to the risk score for explainability.
type RiskFactor struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Value        string `json:"value"`
	Contribution int    `json:"contribution"`
}

// RiskAssessment is the risk evaluator's output: a CheckResult plus the level
// bucket, the itemized factors, and suggested mitigations.
type RiskAssessment struct {
	CheckResult
	Level       RiskLevel    `json:"level"`
	Factors     []RiskFactor `json:"factors"`
	Mitigations []string     `json:"mitigations"`
}

// CheckSet bundles the five evaluator outputs for one request.
type CheckSet struct {
	Ethics     CheckResult    `json:"ethics"`
	Boundaries CheckResult    `json:"boundaries"`
	Risk       RiskAssessment `json:"risk"`
	Policy     CheckResult    `json:"policy"`
	Compliance CheckResult    `json:"compliance"`
}

// Scores returns the five check scores in a fixed order.
func (c CheckSet) Scores() [5]int {
	return [5]int{c.Ethics.Score, c.Boundaries.Score, c.Risk.Score, c.Policy.Score, c.Compliance.Score}
}

// Requirements is the obligations bundle attached to a decision.
type Requirements struct {
	Documentation []string `json:"documentation"`
	Approvals     []string `json:"approvals"`
	Timeline      string   `json:"timeline"`
	FollowUp      []string `json:"followUp"`
}

// Decision is the immutable record produced by one evaluation. Lifecycle
// transitions (approve/reject/escalate) never mutate it; they append new
// audit entries referencing its ID.
type Decision struct {
	ID               string       `json:"id"`
	Timestamp        time.Time    `json:"timestamp"`
	Module           string       `json:"module"`
	Operation        string       `json:"operation"`
	Actor            string       `json:"actor"`
	OverallScore     int          `json:"overallScore"`
	Outcome          Outcome      `json:"outcome"`
	RequiredApprover string       `json:"requiredApprover,omitempty"`
	Conditions       []string     `json:"conditions"`
	Requirements     Requirements `json:"requirements"`
}

// NewDecisionID returns a collision-resistant decision identifier.
func NewDecisionID() string {
	return "DEC-" + uuid.NewString()
}
