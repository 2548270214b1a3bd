package decision

// Severity grades a boundary rule violation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// boundaryRule is one hard organizational constraint. Trigger predicates
// follow the permissive convention: they fire only on explicit signals, never
// on absent flags.
type boundaryRule struct {
	id             string
	name           string
	severity       Severity
	triggered      func(RequestData) bool
	recommendation string
}

// Monetary thresholds for the boundary catalog.
const (
	dualAuthThreshold      = 100_000
	transparencyThreshold  = 50_000
	antiFraudThreshold     = 250_000
	beneficiaryVerifyCount = 5_000
)

var boundaryCatalog = []boundaryRule{
	{
		id:       "B-1",
		name:     "sanctions screening",
		severity: SeverityCritical,
		triggered: func(d RequestData) bool {
			return isTrue(d.SanctionRisk)
		},
		recommendation: "Resolve sanctions exposure before any engagement",
	},
	{
		id:       "B-2",
		name:     "conflict of interest disclosure",
		severity: SeverityHigh,
		triggered: func(d RequestData) bool {
			return isTrue(d.ConflictOfInterest) && isFalse(d.COIDisclosed)
		},
		recommendation: "File a conflict of interest disclosure with the ethics office",
	},
	{
		id:       "B-3",
		name:     "dual authorization",
		severity: SeverityHigh,
		triggered: func(d RequestData) bool {
			return d.Amount > dualAuthThreshold && isFalse(d.DualAuth)
		},
		recommendation: "Obtain a second authorized signature for high-value operations",
	},
	{
		id:       "B-4",
		name:     "beneficiary count verification",
		severity: SeverityMedium,
		triggered: func(d RequestData) bool {
			return d.Beneficiaries > beneficiaryVerifyCount && isFalse(d.BeneficiariesVerified)
		},
		recommendation: "Verify the beneficiary registry for large-scale distributions",
	},
	{
		id:       "B-5",
		name:     "environmental impact assessment",
		severity: SeverityMedium,
		triggered: func(d RequestData) bool {
			return isFalse(d.EnvironmentalAssessment)
		},
		recommendation: "Complete an environmental impact assessment",
	},
	{
		id:       "B-6",
		name:     "community consent",
		severity: SeverityHigh,
		triggered: func(d RequestData) bool {
			return isFalse(d.BeneficiaryConsent)
		},
		recommendation: "Secure community consent before intervention",
	},
	{
		id:       "B-7",
		name:     "financial transparency",
		severity: SeverityMedium,
		triggered: func(d RequestData) bool {
			return d.Amount > transparencyThreshold && isFalse(d.BudgetApproved)
		},
		recommendation: "Obtain budget approval for operations above the transparency threshold",
	},
	{
		id:       "B-8",
		name:     "partner due diligence",
		severity: SeverityHigh,
		triggered: func(d RequestData) bool {
			return isTrue(d.NewPartner) && isFalse(d.DueDiligence)
		},
		recommendation: "Complete due diligence screening for the new partner",
	},
	{
		id:       "B-9",
		name:     "data protection",
		severity: SeverityHigh,
		triggered: func(d RequestData) bool {
			return isFalse(d.DataProtection)
		},
		recommendation: "Apply the data protection controls required for beneficiary data",
	},
	{
		id:       "B-10",
		name:     "anti-fraud controls",
		severity: SeverityMedium,
		triggered: func(d RequestData) bool {
			return d.Amount > antiFraudThreshold && isFalse(d.CompetitiveBid)
		},
		recommendation: "Run a competitive bid or document the sole-source justification",
	},
}

// EvaluateBoundaries checks the request against the fixed catalog of ten
// boundary rules. Score drops 40 per critical, 20 per high, and 10 per medium
// trigger, floored at zero. Medium triggers depress the score but do not fail
// the check on their own.
func EvaluateBoundaries(req DecisionRequest) CheckResult {
	result := CheckResult{
		Name:            "boundaries",
		Passed:          true,
		Violations:      []string{},
		Recommendations: []string{},
	}

	penalty := 0
	for _, rule := range boundaryCatalog {
		if !rule.triggered(req.Data) {
			continue
		}
		result.Violations = append(result.Violations, rule.id+": "+rule.name+" ("+string(rule.severity)+")")
		result.Recommendations = append(result.Recommendations, rule.recommendation)
		switch rule.severity {
		case SeverityCritical:
			penalty += 40
			result.Passed = false
		case SeverityHigh:
			penalty += 20
			result.Passed = false
		default:
			penalty += 10
		}
	}

	result.Score = max(0, 100-penalty)
	return result
}
