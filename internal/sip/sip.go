// Package sip computes systematic-investment-plan projections from a monthly
// surplus using compound-interest annuity formulas. All functions are pure
// and total over valid numeric input; currency fields are rounded to whole
// units with standard rounding.
package sip

import "math"

// PlanType names one of the three fixed investment horizons.
type PlanType string

const (
	PlanShortTerm  PlanType = "short_term"
	PlanMediumTerm PlanType = "medium_term"
	PlanLongTerm   PlanType = "long_term"
)

// PlanConfig is the fixed configuration of one plan horizon.
type PlanConfig struct {
	DurationYears     int
	SurplusShare      float64 // fraction of the monthly surplus invested
	DefaultAnnualRate float64 // percent per year
}

var planConfigs = map[PlanType]PlanConfig{
	PlanShortTerm:  {DurationYears: 2, SurplusShare: 0.20, DefaultAnnualRate: 8},
	PlanMediumTerm: {DurationYears: 5, SurplusShare: 0.30, DefaultAnnualRate: 10},
	PlanLongTerm:   {DurationYears: 10, SurplusShare: 0.50, DefaultAnnualRate: 12},
}

// Params are the inputs to Calculate. ExpectedReturnRate overrides the plan's
// default annual rate when non-nil; a pointer keeps an explicit 0% rate
// distinguishable from "use the default".
type Params struct {
	MonthlySurplus     float64  `json:"monthly_surplus"`
	PlanType           PlanType `json:"plan_type"`
	ExpectedReturnRate *float64 `json:"expected_return_rate,omitempty"`
}

// Result is one projection for one plan horizon.
type Result struct {
	MonthlySIP          int64   `json:"monthly_sip"`
	ExpectedReturnRate  float64 `json:"expected_return_rate"`
	DurationYears       int     `json:"duration_years"`
	DurationMonths      int     `json:"duration_months"`
	ExpectedFutureValue int64   `json:"expected_future_value"`
	TotalInvestment     int64   `json:"total_investment"`
	TotalGains          int64   `json:"total_gains"`
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
