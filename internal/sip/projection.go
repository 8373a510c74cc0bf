package sip

// ProjectionEntry is one month of the growth projection.
type ProjectionEntry struct {
	Month                int   `json:"month"`
	Investment           int64 `json:"investment"`
	CumulativeInvestment int64 `json:"cumulative_investment"`
	Returns              int64 `json:"returns"`
	CumulativeReturns    int64 `json:"cumulative_returns"`
	TotalValue           int64 `json:"total_value"`
}

// Projection produces a month-by-month growth breakdown. Each month the
// accumulated returns balance and the fresh contribution both earn one month
// of interest.
//
// This simple per-step compounding is deliberately independent of the
// closed-form annuity value in FutureValue; the two do not reconcile to the
// same terminal figure and neither is corrected toward the other.
func Projection(monthlySIP float64, durationMonths int, monthlyRate float64) []ProjectionEntry {
	projection := make([]ProjectionEntry, 0, durationMonths)

	var cumulativeInvestment, cumulativeReturns float64
	for month := 1; month <= durationMonths; month++ {
		cumulativeInvestment += monthlySIP

		monthReturns := cumulativeReturns * monthlyRate
		cumulativeReturns += monthReturns + monthlySIP*monthlyRate

		projection = append(projection, ProjectionEntry{
			Month:                month,
			Investment:           round(monthlySIP),
			CumulativeInvestment: round(cumulativeInvestment),
			Returns:              round(monthReturns),
			CumulativeReturns:    round(cumulativeReturns),
			TotalValue:           round(cumulativeInvestment + cumulativeReturns),
		})
	}
	return projection
}
