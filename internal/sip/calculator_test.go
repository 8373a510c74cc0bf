package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePlanShares(t *testing.T) {
	plans, err := CalculatePlans(22771, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(4554), plans.ShortTerm.MonthlySIP)
	assert.Equal(t, int64(6831), plans.MediumTerm.MonthlySIP)
	assert.Equal(t, int64(11386), plans.LongTerm.MonthlySIP)

	assert.Equal(t, 8.0, plans.ShortTerm.ExpectedReturnRate)
	assert.Equal(t, 10.0, plans.MediumTerm.ExpectedReturnRate)
	assert.Equal(t, 12.0, plans.LongTerm.ExpectedReturnRate)

	assert.Equal(t, 24, plans.ShortTerm.DurationMonths)
	assert.Equal(t, 60, plans.MediumTerm.DurationMonths)
	assert.Equal(t, 120, plans.LongTerm.DurationMonths)
}

func TestCalculateResultInvariants(t *testing.T) {
	result, err := Calculate(Params{MonthlySurplus: 30000, PlanType: PlanLongTerm})
	require.NoError(t, err)

	assert.Equal(t, result.MonthlySIP*int64(result.DurationMonths), result.TotalInvestment)
	assert.Equal(t, result.ExpectedFutureValue-result.TotalInvestment, result.TotalGains)
	// A positive rate always grows the investment.
	assert.Greater(t, result.ExpectedFutureValue, result.TotalInvestment)
}

func TestCalculateFutureValueMonotonicInSurplus(t *testing.T) {
	prev := int64(-1)
	for surplus := 1000.0; surplus <= 100000; surplus += 1000 {
		result, err := Calculate(Params{MonthlySurplus: surplus, PlanType: PlanMediumTerm})
		require.NoError(t, err)
		assert.Greater(t, result.ExpectedFutureValue, prev,
			"future value did not grow at surplus %.0f", surplus)
		prev = result.ExpectedFutureValue
	}
}

func TestCalculateCustomRate(t *testing.T) {
	rate := 15.0
	plans, err := CalculatePlans(10000, &rate)
	require.NoError(t, err)

	assert.Equal(t, 15.0, plans.ShortTerm.ExpectedReturnRate)
	assert.Equal(t, 15.0, plans.MediumTerm.ExpectedReturnRate)
	assert.Equal(t, 15.0, plans.LongTerm.ExpectedReturnRate)
}

func TestCalculateExplicitZeroRate(t *testing.T) {
	// A zero rate is an explicit override, not a request for the default.
	zero := 0.0
	result, err := Calculate(Params{MonthlySurplus: 10000, PlanType: PlanShortTerm, ExpectedReturnRate: &zero})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.ExpectedReturnRate)
	assert.Equal(t, result.TotalInvestment, result.ExpectedFutureValue)
	assert.Equal(t, int64(0), result.TotalGains)
}

func TestCalculateUnknownPlanType(t *testing.T) {
	_, err := Calculate(Params{MonthlySurplus: 10000, PlanType: PlanType("forever")})
	assert.Error(t, err)
}

func TestFutureValue(t *testing.T) {
	// 1000/month for a year at 1% monthly, annuity due.
	fv := FutureValue(1000, 0.01, 12)
	assert.InDelta(t, 12809.33, fv, 0.01)

	// Zero rate degenerates to the contribution sum.
	assert.Equal(t, 12000.0, FutureValue(1000, 0, 12))
}

func TestCalculateForGoalInvertsFutureValue(t *testing.T) {
	goal := FutureValue(1000, 0.01, 12)
	result := CalculateForGoal(goal, 1, 12)

	assert.Equal(t, int64(1000), result.MonthlySIP)
	assert.Equal(t, 12, result.DurationMonths)
	assert.InDelta(t, float64(result.ExpectedFutureValue), goal, 0.5)
}

func TestCalculateForGoalZeroRate(t *testing.T) {
	result := CalculateForGoal(12000, 1, 0)

	assert.Equal(t, int64(1000), result.MonthlySIP)
	assert.Equal(t, int64(12000), result.TotalInvestment)
	assert.Equal(t, int64(0), result.TotalGains)
}
