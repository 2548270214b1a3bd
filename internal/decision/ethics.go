package decision

// Ethics sub-criteria names, also used as violation labels.
const (
	ethicsHumanDignity          = "Human Dignity"
	ethicsDoNoHarm              = "Do No Harm"
	ethicsBeneficiaryProtection = "Beneficiary Protection"
	ethicsTransparency          = "Transparency"
	ethicsAccountability        = "Accountability"
)

type ethicsCriterion struct {
	name           string
	score          int
	passed         bool
	recommendation string
}

// EvaluateEthics scores the request against the five ethics criteria.
// Human Dignity and Accountability are fixed baseline passes; the other three
// fail only on explicit negative signals, so an empty data bag passes.
// This is pure domain logic - no I/O, no side effects.
func EvaluateEthics(req DecisionRequest) CheckResult {
	d := req.Data

	criteria := []ethicsCriterion{
		{name: ethicsHumanDignity, score: 95, passed: true},
		assessDoNoHarm(d),
		assessBeneficiaryProtection(d),
		assessTransparency(d),
		{name: ethicsAccountability, score: 90, passed: true},
	}

	result := CheckResult{
		Name:            "ethics",
		Passed:          true,
		Violations:      []string{},
		Recommendations: []string{},
	}

	total := 0
	for _, c := range criteria {
		total += c.score
		if !c.passed {
			result.Passed = false
			result.Violations = append(result.Violations, c.name)
		}
		if c.score < 80 && c.recommendation != "" {
			result.Recommendations = append(result.Recommendations, c.recommendation)
		}
	}

	result.Score = roundDiv(total, len(criteria))
	if result.Score < 70 {
		result.Passed = false
	}
	return result
}

func assessDoNoHarm(d RequestData) ethicsCriterion {
	if isTrue(d.ConflictZone) && !isTrue(d.SafetyPlan) {
		return ethicsCriterion{
			name:           ethicsDoNoHarm,
			score:          40,
			passed:         false,
			recommendation: "Prepare a safety plan before operating in a conflict zone",
		}
	}
	return ethicsCriterion{name: ethicsDoNoHarm, score: 90, passed: true}
}

func assessBeneficiaryProtection(d RequestData) ethicsCriterion {
	if isFalse(d.BeneficiaryConsent) {
		return ethicsCriterion{
			name:           ethicsBeneficiaryProtection,
			score:          30,
			passed:         false,
			recommendation: "Obtain beneficiary consent before proceeding",
		}
	}
	return ethicsCriterion{name: ethicsBeneficiaryProtection, score: 92, passed: true}
}

func assessTransparency(d RequestData) ethicsCriterion {
	if isFalse(d.Documented) {
		return ethicsCriterion{
			name:           ethicsTransparency,
			score:          50,
			passed:         false,
			recommendation: "Document the decision rationale and supporting evidence",
		}
	}
	return ethicsCriterion{name: ethicsTransparency, score: 88, passed: true}
}

// roundDiv divides total by n rounding half away from zero. Inputs are
// non-negative throughout the evaluators.
func roundDiv(total, n int) int {
	return (total + n/2) / n
}
