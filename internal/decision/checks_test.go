package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bp(b bool) *bool { return &b }

func req(data RequestData) DecisionRequest {
	return DecisionRequest{Module: "grants", Operation: "disburse", Actor: "test", Data: data}
}

func TestEvaluateEthics(t *testing.T) {
	t.Run("empty data passes all criteria", func(t *testing.T) {
		result := EvaluateEthics(req(RequestData{}))

		assert.True(t, result.Passed)
		assert.Equal(t, 91, result.Score)
		assert.Empty(t, result.Violations)
		assert.Empty(t, result.Recommendations)
	})

	t.Run("conflict zone without safety plan fails do no harm", func(t *testing.T) {
		result := EvaluateEthics(req(RequestData{ConflictZone: bp(true)}))

		assert.False(t, result.Passed)
		assert.Contains(t, result.Violations, "Do No Harm")
		assert.Len(t, result.Recommendations, 1)
		assert.Equal(t, 81, result.Score)
	})

	t.Run("conflict zone with safety plan passes", func(t *testing.T) {
		result := EvaluateEthics(req(RequestData{ConflictZone: bp(true), SafetyPlan: bp(true)}))
		assert.True(t, result.Passed)
	})

	t.Run("explicit consent refusal fails beneficiary protection", func(t *testing.T) {
		result := EvaluateEthics(req(RequestData{BeneficiaryConsent: bp(false)}))

		assert.False(t, result.Passed)
		assert.Contains(t, result.Violations, "Beneficiary Protection")
		assert.Equal(t, 79, result.Score)
	})

	t.Run("undocumented fails transparency", func(t *testing.T) {
		result := EvaluateEthics(req(RequestData{Documented: bp(false)}))

		assert.False(t, result.Passed)
		assert.Contains(t, result.Violations, "Transparency")
	})
}

func TestEvaluateBoundaries(t *testing.T) {
	t.Run("empty data triggers nothing", func(t *testing.T) {
		result := EvaluateBoundaries(req(RequestData{}))

		assert.True(t, result.Passed)
		assert.Equal(t, 100, result.Score)
		assert.Empty(t, result.Violations)
	})

	t.Run("sanction exposure is a critical trigger", func(t *testing.T) {
		result := EvaluateBoundaries(req(RequestData{SanctionRisk: bp(true)}))

		assert.False(t, result.Passed)
		assert.Equal(t, 60, result.Score)
		assert.Contains(t, result.Violations, "B-1: sanctions screening (critical)")
	})

	t.Run("high value without dual authorization", func(t *testing.T) {
		result := EvaluateBoundaries(req(RequestData{Amount: 150_000, DualAuth: bp(false)}))

		assert.False(t, result.Passed)
		assert.Equal(t, 80, result.Score)
		assert.Contains(t, result.Violations, "B-3: dual authorization (high)")
	})

	t.Run("medium triggers depress score but do not fail", func(t *testing.T) {
		result := EvaluateBoundaries(req(RequestData{EnvironmentalAssessment: bp(false)}))

		assert.True(t, result.Passed)
		assert.Equal(t, 90, result.Score)
		assert.Len(t, result.Violations, 1)
	})

	t.Run("score never goes negative", func(t *testing.T) {
		data := RequestData{
			Amount:                  300_000,
			Beneficiaries:           6_000,
			SanctionRisk:            bp(true),
			ConflictOfInterest:      bp(true),
			COIDisclosed:            bp(false),
			DualAuth:                bp(false),
			BeneficiariesVerified:   bp(false),
			EnvironmentalAssessment: bp(false),
			BeneficiaryConsent:      bp(false),
			BudgetApproved:          bp(false),
			NewPartner:              bp(true),
			DueDiligence:            bp(false),
			DataProtection:          bp(false),
			CompetitiveBid:          bp(false),
		}
		result := EvaluateBoundaries(req(data))

		assert.Equal(t, 0, result.Score)
		assert.Len(t, result.Violations, 10)
	})

	t.Run("score is monotonically non-increasing as triggers accumulate", func(t *testing.T) {
		steps := []RequestData{
			{},
			{EnvironmentalAssessment: bp(false)},
			{EnvironmentalAssessment: bp(false), DataProtection: bp(false)},
			{EnvironmentalAssessment: bp(false), DataProtection: bp(false), SanctionRisk: bp(true)},
		}
		prev := 101
		for _, data := range steps {
			score := EvaluateBoundaries(req(data)).Score
			require.LessOrEqual(t, score, prev)
			require.GreaterOrEqual(t, score, 0)
			prev = score
		}
	})
}

func TestAssessRisk(t *testing.T) {
	t.Run("empty data is baseline low", func(t *testing.T) {
		result := AssessRisk(req(RequestData{}))

		assert.Equal(t, 20, result.Score)
		assert.Equal(t, RiskLow, result.Level)
		assert.True(t, result.Passed)
		assert.Len(t, result.Factors, 1)
		assert.Empty(t, result.Mitigations)
	})

	t.Run("large amount with sanction exposure is critical", func(t *testing.T) {
		result := AssessRisk(req(RequestData{Amount: 1_200_000, SanctionRisk: bp(true)}))

		assert.Equal(t, 95, result.Score)
		assert.Equal(t, RiskCritical, result.Level)
		assert.False(t, result.Passed)
		assert.NotEmpty(t, result.Mitigations)
	})

	t.Run("emergency mass distribution is critical", func(t *testing.T) {
		result := AssessRisk(req(RequestData{
			Amount:        600_000,
			Urgency:       UrgencyEmergency,
			Beneficiaries: 15_000,
		}))

		assert.Equal(t, 80, result.Score)
		assert.Equal(t, RiskCritical, result.Level)
	})

	t.Run("score clamps at 100", func(t *testing.T) {
		result := AssessRisk(req(RequestData{
			Amount:           1_200_000,
			Urgency:          UrgencyEmergency,
			Beneficiaries:    15_000,
			ConflictZone:     bp(true),
			NewPartner:       bp(true),
			SanctionRisk:     bp(true),
			RegulatoryChange: bp(true),
		}))

		assert.Equal(t, 100, result.Score)
		assert.Equal(t, RiskCritical, result.Level)
	})

	t.Run("amount tiers are mutually exclusive highest first", func(t *testing.T) {
		cases := []struct {
			amount float64
			want   int
		}{
			{30_000, 20},
			{60_000, 30},
			{200_000, 35},
			{600_000, 45},
			{2_000_000, 55},
		}
		for _, tc := range cases {
			result := AssessRisk(req(RequestData{Amount: tc.amount}))
			assert.Equal(t, tc.want, result.Score, "amount %.0f", tc.amount)
		}
	})

	t.Run("conditional mitigations", func(t *testing.T) {
		result := AssessRisk(req(RequestData{
			Amount:       700_000,
			ConflictZone: bp(true),
			NewPartner:   bp(true),
		}))

		require.Equal(t, RiskCritical, result.Level)
		assert.GreaterOrEqual(t, len(result.Mitigations), 5)
	})
}

func TestEvaluatePolicy(t *testing.T) {
	t.Run("empty data is fully compliant", func(t *testing.T) {
		result := EvaluatePolicy(req(RequestData{}))

		assert.True(t, result.Passed)
		assert.Equal(t, 100, result.Score)
	})

	t.Run("procurement without competitive bid", func(t *testing.T) {
		r := DecisionRequest{
			Module:    "procurement",
			Operation: "purchase",
			Data:      RequestData{Amount: 60_000, CompetitiveBid: bp(false)},
		}
		result := EvaluatePolicy(r)

		assert.False(t, result.Passed)
		assert.Contains(t, result.Violations, "P-1: procurement competition")
		// P-1 non-compliant out of P-1, P-2, P-8 applicable.
		assert.Equal(t, 67, result.Score)
	})

	t.Run("procurement rule only applies to the procurement module", func(t *testing.T) {
		result := EvaluatePolicy(req(RequestData{Amount: 60_000, CompetitiveBid: bp(false)}))
		assert.NotContains(t, result.Violations, "P-1: procurement competition")
	})

	t.Run("conflict zone requires an explicit safety plan", func(t *testing.T) {
		result := EvaluatePolicy(req(RequestData{ConflictZone: bp(true)}))

		assert.False(t, result.Passed)
		assert.Contains(t, result.Violations, "P-6: conflict zone operations")
	})

	t.Run("explicit refusal of authorization fails the chain policy", func(t *testing.T) {
		result := EvaluatePolicy(req(RequestData{Authorized: bp(false)}))

		assert.False(t, result.Passed)
		assert.Equal(t, 0, result.Score)
	})
}

func TestEvaluateCompliance(t *testing.T) {
	t.Run("small request requires only the authorization chain", func(t *testing.T) {
		result := EvaluateCompliance(req(RequestData{}))

		assert.True(t, result.Passed)
		assert.Equal(t, 100, result.Score)
	})

	t.Run("sanction exposure leaves clearance pending", func(t *testing.T) {
		result := EvaluateCompliance(req(RequestData{SanctionRisk: bp(true)}))

		assert.False(t, result.Passed)
		assert.Equal(t, 50, result.Score)
		assert.Contains(t, result.Violations, "C-2: sanctions clearance pending")
	})

	t.Run("large amount pulls in the monetary requirements", func(t *testing.T) {
		result := EvaluateCompliance(req(RequestData{Amount: 80_000, AMLScreening: bp(false)}))

		// C-1 pending; C-2, C-3, C-5, C-6 completed.
		assert.False(t, result.Passed)
		assert.Equal(t, 80, result.Score)
		assert.Contains(t, result.Violations, "C-1: AML screening pending")
	})

	t.Run("regulatory filing required only on explicit flag", func(t *testing.T) {
		result := EvaluateCompliance(req(RequestData{
			RegulatoryRequired: bp(true),
			RegulatoryFiled:    bp(false),
		}))

		assert.False(t, result.Passed)
		assert.Contains(t, result.Violations, "C-4: regulatory filing pending")
	})
}
