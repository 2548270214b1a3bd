package decision

// policyRule is one organizational policy. A rule only counts when its
// applicable predicate holds; compliant predicates follow the permissive
// convention and fail only on explicit signals.
type policyRule struct {
	id             string
	name           string
	applicable     func(DecisionRequest) bool
	compliant      func(RequestData) bool
	recommendation string
}

var policyCatalog = []policyRule{
	{
		id:   "P-1",
		name: "procurement competition",
		applicable: func(r DecisionRequest) bool {
			return r.Module == "procurement"
		},
		compliant: func(d RequestData) bool {
			return !(d.Amount > 50_000 && isFalse(d.CompetitiveBid))
		},
		recommendation: "Run a competitive procurement process above the bid threshold",
	},
	{
		id:   "P-2",
		name: "financial authority",
		applicable: func(r DecisionRequest) bool {
			return r.Data.Amount > 0
		},
		compliant: func(d RequestData) bool {
			return !(d.Amount > 25_000 && isFalse(d.BudgetApproved))
		},
		recommendation: "Secure budget approval from the authorized budget holder",
	},
	{
		id:   "P-3",
		name: "partner vetting",
		applicable: func(r DecisionRequest) bool {
			return isTrue(r.Data.NewPartner)
		},
		compliant: func(d RequestData) bool {
			return !isFalse(d.DueDiligence)
		},
		recommendation: "Vet the new partner through the due diligence process",
	},
	{
		id:   "P-4",
		name: "data protection",
		applicable: func(r DecisionRequest) bool {
			return r.Data.Beneficiaries > 0
		},
		compliant: func(d RequestData) bool {
			return !isFalse(d.DataProtection)
		},
		recommendation: "Apply beneficiary data protection safeguards",
	},
	{
		id:   "P-5",
		name: "safeguarding",
		applicable: func(r DecisionRequest) bool {
			return r.Data.Beneficiaries > 0
		},
		compliant: func(d RequestData) bool {
			return !isFalse(d.SafeguardingTraining)
		},
		recommendation: "Confirm safeguarding training for all implementing staff",
	},
	{
		id:   "P-6",
		name: "conflict zone operations",
		applicable: func(r DecisionRequest) bool {
			return isTrue(r.Data.ConflictZone)
		},
		compliant: func(d RequestData) bool {
			return isTrue(d.SafetyPlan)
		},
		recommendation: "Approve a safety plan before conflict zone operations",
	},
	{
		id:   "P-7",
		name: "emergency procedures",
		applicable: func(r DecisionRequest) bool {
			return r.Data.Urgency == UrgencyEmergency
		},
		compliant: func(d RequestData) bool {
			return !isFalse(d.EmergencyApproval)
		},
		recommendation: "Invoke the emergency approval procedure",
	},
	{
		id:   "P-8",
		name: "authorization chain",
		applicable: func(r DecisionRequest) bool {
			return true
		},
		compliant: func(d RequestData) bool {
			return !isFalse(d.Authorized)
		},
		recommendation: "Route the request through the standard authorization chain",
	},
}

// EvaluatePolicy checks the request against the fixed catalog of eight
// policies. Score is the share of applicable policies that are compliant;
// 100 when nothing applies.
func EvaluatePolicy(req DecisionRequest) CheckResult {
	result := CheckResult{
		Name:            "policy",
		Passed:          true,
		Violations:      []string{},
		Recommendations: []string{},
	}

	applicable, compliant := 0, 0
	for _, rule := range policyCatalog {
		if !rule.applicable(req) {
			continue
		}
		applicable++
		if rule.compliant(req.Data) {
			compliant++
			continue
		}
		result.Passed = false
		result.Violations = append(result.Violations, rule.id+": "+rule.name)
		result.Recommendations = append(result.Recommendations, rule.recommendation)
	}

	if applicable == 0 {
		result.Score = 100
	} else {
		result.Score = roundDiv(compliant*100, applicable)
	}
	return result
}
