package analysis

import (
	"sort"
	"time"

	"github.com/adityamisra/sip-planner/internal/statement"
)

// MonthTrend is the income/expense aggregate for one calendar month.
type MonthTrend struct {
	Month    string `json:"month"` // YYYY-MM
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
	Surplus  int64  `json:"surplus"`
}

// MonthlyTrend groups transactions by calendar month and sums income and
// expenses per month, sorted chronologically. Transactions with dates that
// did not normalize are skipped.
func MonthlyTrend(txs []statement.Transaction) []MonthTrend {
	type bucket struct {
		income   float64
		expenses float64
	}
	months := make(map[string]*bucket)

	for _, tx := range txs {
		date, err := time.Parse(dateLayout, tx.Date)
		if err != nil {
			continue
		}
		key := date.Format("2006-01")
		b, ok := months[key]
		if !ok {
			b = &bucket{}
			months[key] = b
		}
		if tx.Credit > 0 {
			b.income += tx.Credit
		}
		if tx.Debit > 0 {
			b.expenses += tx.Debit
		}
	}

	trend := make([]MonthTrend, 0, len(months))
	for month, b := range months {
		trend = append(trend, MonthTrend{
			Month:    month,
			Income:   round(b.income),
			Expenses: round(b.expenses),
			Surplus:  round(b.income) - round(b.expenses),
		})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })
	return trend
}
