package sip

import (
	"fmt"
	"math"
)

// Calculate computes the projection for one plan horizon.
// The monthly contribution is the plan's share of the surplus; the future
// value uses the annuity-due formula
//
//	FV = SIP × [((1+r)^n − 1) / r] × (1+r)
//
// with r the monthly rate and n the duration in months.
func Calculate(p Params) (Result, error) {
	cfg, ok := planConfigs[p.PlanType]
	if !ok {
		return Result{}, fmt.Errorf("sip.Calculate: unknown plan type %q", p.PlanType)
	}

	annualRate := cfg.DefaultAnnualRate
	if p.ExpectedReturnRate != nil {
		annualRate = *p.ExpectedReturnRate
	}
	monthlyRate := annualRate / 100 / 12

	monthlySIP := round(p.MonthlySurplus * cfg.SurplusShare)
	durationMonths := cfg.DurationYears * 12

	fv := FutureValue(float64(monthlySIP), monthlyRate, durationMonths)
	totalInvestment := monthlySIP * int64(durationMonths)

	return Result{
		MonthlySIP:          monthlySIP,
		ExpectedReturnRate:  annualRate,
		DurationYears:       cfg.DurationYears,
		DurationMonths:      durationMonths,
		ExpectedFutureValue: round(fv),
		TotalInvestment:     totalInvestment,
		TotalGains:          round(fv - float64(totalInvestment)),
	}, nil
}

// Plans groups the three fixed-horizon projections for one surplus.
type Plans struct {
	ShortTerm  Result `json:"short_term"`
	MediumTerm Result `json:"medium_term"`
	LongTerm   Result `json:"long_term"`
}

// CalculatePlans runs Calculate for all three horizons. customRate, when
// non-nil, overrides every horizon's default annual rate.
func CalculatePlans(monthlySurplus float64, customRate *float64) (Plans, error) {
	var plans Plans
	for _, horizon := range []struct {
		planType PlanType
		dst      *Result
	}{
		{PlanShortTerm, &plans.ShortTerm},
		{PlanMediumTerm, &plans.MediumTerm},
		{PlanLongTerm, &plans.LongTerm},
	} {
		result, err := Calculate(Params{
			MonthlySurplus:     monthlySurplus,
			PlanType:           horizon.planType,
			ExpectedReturnRate: customRate,
		})
		if err != nil {
			return Plans{}, err
		}
		*horizon.dst = result
	}
	return plans, nil
}

// FutureValue is the closed-form annuity-due future value of a fixed monthly
// contribution. A zero monthly rate degenerates to the plain contribution
// sum, avoiding the division by zero.
func FutureValue(monthlySIP, monthlyRate float64, durationMonths int) float64 {
	if monthlyRate == 0 {
		return monthlySIP * float64(durationMonths)
	}
	compound := math.Pow(1+monthlyRate, float64(durationMonths))
	sipFactor := (compound - 1) / monthlyRate
	return monthlySIP * sipFactor * (1 + monthlyRate)
}

// CalculateForGoal solves the annuity-due formula for the monthly
// contribution needed to reach goalAmount after durationYears at the given
// annual rate.
func CalculateForGoal(goalAmount float64, durationYears int, annualRate float64) Result {
	monthlyRate := annualRate / 100 / 12
	durationMonths := durationYears * 12

	var monthlySIP float64
	if monthlyRate == 0 {
		monthlySIP = goalAmount / float64(durationMonths)
	} else {
		compound := math.Pow(1+monthlyRate, float64(durationMonths))
		sipFactor := (compound - 1) / monthlyRate
		monthlySIP = goalAmount / (sipFactor * (1 + monthlyRate))
	}

	totalInvestment := monthlySIP * float64(durationMonths)

	return Result{
		MonthlySIP:          round(monthlySIP),
		ExpectedReturnRate:  annualRate,
		DurationYears:       durationYears,
		DurationMonths:      durationMonths,
		ExpectedFutureValue: round(goalAmount),
		TotalInvestment:     round(totalInvestment),
		TotalGains:          round(goalAmount - totalInvestment),
	}
}
