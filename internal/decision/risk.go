package decision

import "fmt"

// Risk factor categories for the explainability breakdown.
const (
	riskCatFinancial   = "financial"
	riskCatOperational = "operational"
	riskCatGeographic  = "geographic"
	riskCatCompliance  = "compliance"
)

const riskBaseScore = 20

// amountContribution maps the transaction amount to its risk contribution.
// Tiers are mutually exclusive, highest first.
func amountContribution(amount float64) int {
	switch {
	case amount > 1_000_000:
		return 35
	case amount > 500_000:
		return 25
	case amount > 100_000:
		return 15
	case amount > 50_000:
		return 10
	default:
		return 0
	}
}

func urgencyContribution(u Urgency) int {
	switch u {
	case UrgencyEmergency:
		return 20
	case UrgencyUrgent:
		return 10
	default:
		return 0
	}
}

func beneficiaryContribution(count int) int {
	switch {
	case count > 10_000:
		return 15
	case count > 1_000:
		return 10
	default:
		return 0
	}
}

// AssessRisk computes the risk score, level, factor breakdown, and
// mitigations for a request. Pure function of the request data.
func AssessRisk(req DecisionRequest) RiskAssessment {
	d := req.Data

	score := riskBaseScore
	factors := []RiskFactor{
		{Name: "baseline", Category: riskCatOperational, Value: "all operations", Contribution: riskBaseScore},
	}

	addFactor := func(name, category, value string, contribution int) {
		if contribution == 0 {
			return
		}
		score += contribution
		factors = append(factors, RiskFactor{Name: name, Category: category, Value: value, Contribution: contribution})
	}

	addFactor("transaction amount", riskCatFinancial, fmt.Sprintf("$%.0f", d.Amount), amountContribution(d.Amount))
	addFactor("urgency", riskCatOperational, string(d.Urgency), urgencyContribution(d.Urgency))
	if isTrue(d.ConflictZone) {
		addFactor("conflict zone", riskCatGeographic, "true", 25)
	}
	if isTrue(d.NewPartner) {
		addFactor("new partner", riskCatOperational, "true", 15)
	}
	addFactor("beneficiary count", riskCatOperational, fmt.Sprintf("%d", d.Beneficiaries), beneficiaryContribution(d.Beneficiaries))
	if isTrue(d.SanctionRisk) {
		addFactor("sanction exposure", riskCatCompliance, "true", 40)
	}
	if isTrue(d.RegulatoryChange) {
		addFactor("regulatory change", riskCatCompliance, "true", 10)
	}

	if score > 100 {
		score = 100
	}

	level := riskLevelFor(score)

	assessment := RiskAssessment{
		CheckResult: CheckResult{
			Name:            "risk",
			Passed:          level == RiskLow || level == RiskMedium,
			Score:           score,
			Violations:      []string{},
			Recommendations: []string{},
		},
		Level:       level,
		Factors:     factors,
		Mitigations: buildMitigations(d, level),
	}
	if !assessment.Passed {
		assessment.Violations = append(assessment.Violations, "risk level "+string(level))
		assessment.Recommendations = append(assessment.Recommendations, "Apply the listed mitigations before resubmission")
	}
	return assessment
}

func riskLevelFor(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

func buildMitigations(d RequestData, level RiskLevel) []string {
	mitigations := []string{}
	if level == RiskHigh || level == RiskCritical {
		mitigations = append(mitigations,
			"Enhanced monitoring throughout implementation",
			"Senior management sign-off before funds move",
		)
	}
	if isTrue(d.ConflictZone) {
		mitigations = append(mitigations, "Activate the field security protocol")
	}
	if isTrue(d.NewPartner) {
		mitigations = append(mitigations, "Stage disbursements against delivery milestones")
	}
	if d.Amount > 100_000 {
		mitigations = append(mitigations, "Independent financial review of the transaction")
	}
	return mitigations
}
