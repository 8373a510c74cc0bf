// Package analysis aggregates parsed statement transactions into
// income/expense totals, category breakdowns, monthly trends and qualitative
// insights. All entry points are pure functions over in-memory data; empty
// input yields zeroed aggregates rather than errors.
package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/adityamisra/sip-planner/internal/statement"
)

const dateLayout = "2006-01-02"

// Analysis is the aggregate computed over a transaction collection and an
// explicit period window. Currency totals are rounded to the nearest whole
// unit; MonthlySurplus always equals TotalIncome - TotalExpenses exactly.
type Analysis struct {
	TotalIncome     int64               `json:"total_income"`
	TotalExpenses   int64               `json:"total_expenses"`
	MonthlySurplus  int64               `json:"monthly_surplus"`
	AverageIncome   int64               `json:"average_income"`
	AverageExpenses int64               `json:"average_expenses"`
	Breakdown       []CategoryBreakdown `json:"category_breakdown"`
	PeriodStart     string              `json:"period_start"`
	PeriodEnd       string              `json:"period_end"`
}

// CategoryBreakdown is one entry of the per-category split, sorted by amount
// descending in Analysis.Breakdown.
type CategoryBreakdown struct {
	Category         statement.Category `json:"category"`
	Amount           int64              `json:"amount"`
	Percentage       float64            `json:"percentage"` // of the grand total, 2 decimals
	TransactionCount int                `json:"transaction_count"`
}

// Analyze aggregates the transactions dated within [periodStart, periodEnd]
// inclusive. Transactions whose date did not normalize to YYYY-MM-DD are
// excluded from the window, matching the parser's tolerance for unparseable
// dates.
func Analyze(txs []statement.Transaction, periodStart, periodEnd time.Time) Analysis {
	filtered := filterByPeriod(txs, periodStart, periodEnd)

	var income, expenses float64
	for _, tx := range filtered {
		if tx.Credit > 0 {
			income += tx.Credit
		}
		if tx.Debit > 0 {
			expenses += tx.Debit
		}
	}
	months := monthsInPeriod(periodStart, periodEnd)

	return Analysis{
		TotalIncome:     round(income),
		TotalExpenses:   round(expenses),
		MonthlySurplus:  round(income) - round(expenses),
		AverageIncome:   round(income / float64(months)),
		AverageExpenses: round(expenses / float64(months)),
		Breakdown:       categoryBreakdown(filtered),
		PeriodStart:     periodStart.Format(dateLayout),
		PeriodEnd:       periodEnd.Format(dateLayout),
	}
}

func filterByPeriod(txs []statement.Transaction, start, end time.Time) []statement.Transaction {
	var out []statement.Transaction
	for _, tx := range txs {
		date, err := time.Parse(dateLayout, tx.Date)
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// monthsInPeriod counts the whole calendar months spanned by the window,
// never less than one.
func monthsInPeriod(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

func categoryBreakdown(txs []statement.Transaction) []CategoryBreakdown {
	totals := make(map[statement.Category]float64)
	counts := make(map[statement.Category]int)
	var grand float64
	for _, tx := range txs {
		amount := tx.Amount()
		totals[tx.Category] += amount
		counts[tx.Category]++
		grand += amount
	}

	breakdown := make([]CategoryBreakdown, 0, len(totals))
	for category, amount := range totals {
		var pct float64
		if grand > 0 {
			pct = math.Round(amount/grand*100*100) / 100
		}
		breakdown = append(breakdown, CategoryBreakdown{
			Category:         category,
			Amount:           round(amount),
			Percentage:       pct,
			TransactionCount: counts[category],
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
