package decision

// regulatoryRequirement is one item in the regulatory compliance catalog.
// required gates whether the item counts for this request; completed follows
// the permissive convention except where the requirement itself says
// otherwise (an explicit sanction risk always leaves clearance pending).
type regulatoryRequirement struct {
	id             string
	name           string
	required       func(RequestData) bool
	completed      func(RequestData) bool
	recommendation string
}

var complianceCatalog = []regulatoryRequirement{
	{
		id:   "C-1",
		name: "AML screening",
		required: func(d RequestData) bool {
			return d.Amount > 10_000
		},
		completed: func(d RequestData) bool {
			return !isFalse(d.AMLScreening)
		},
		recommendation: "Complete anti-money-laundering screening",
	},
	{
		id:   "C-2",
		name: "sanctions clearance",
		required: func(d RequestData) bool {
			return d.Amount > 25_000 || isTrue(d.SanctionRisk)
		},
		completed: func(d RequestData) bool {
			return !isTrue(d.SanctionRisk) && !isFalse(d.SanctionsChecked)
		},
		recommendation: "Clear all parties against the consolidated sanctions lists",
	},
	{
		id:   "C-3",
		name: "tax compliance",
		required: func(d RequestData) bool {
			return d.Amount > 50_000
		},
		completed: func(d RequestData) bool {
			return !isFalse(d.TaxCompliant)
		},
		recommendation: "Confirm tax compliance certificates are current",
	},
	{
		id:   "C-4",
		name: "regulatory filing",
		required: func(d RequestData) bool {
			return isTrue(d.RegulatoryRequired)
		},
		completed: func(d RequestData) bool {
			return !isFalse(d.RegulatoryFiled)
		},
		recommendation: "Submit the required regulatory filing",
	},
	{
		id:   "C-5",
		name: "audit trail documentation",
		required: func(d RequestData) bool {
			return d.Amount > 10_000
		},
		completed: func(d RequestData) bool {
			return !isFalse(d.Documented)
		},
		recommendation: "Attach supporting documentation to the audit trail",
	},
	{
		id:   "C-6",
		name: "authorization chain",
		required: func(d RequestData) bool {
			return true
		},
		completed: func(d RequestData) bool {
			return !isFalse(d.Authorized)
		},
		recommendation: "Complete the authorization chain before execution",
	},
}

// EvaluateCompliance checks the request against the six regulatory
// requirements. Score is the share of required items completed; 100 when
// nothing is required.
func EvaluateCompliance(req DecisionRequest) CheckResult {
	result := CheckResult{
		Name:            "compliance",
		Passed:          true,
		Violations:      []string{},
		Recommendations: []string{},
	}

	required, completed := 0, 0
	for _, item := range complianceCatalog {
		if !item.required(req.Data) {
			continue
		}
		required++
		if item.completed(req.Data) {
			completed++
			continue
		}
		result.Passed = false
		result.Violations = append(result.Violations, item.id+": "+item.name+" pending")
		result.Recommendations = append(result.Recommendations, item.recommendation)
	}

	if required == 0 {
		result.Score = 100
	} else {
		result.Score = roundDiv(completed*100, required)
	}
	return result
}
