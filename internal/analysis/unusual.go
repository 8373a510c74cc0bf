package analysis

import (
	"fmt"

	"github.com/adityamisra/sip-planner/internal/statement"
)

const (
	// unusualMultiplier flags transactions this many times above their
	// category mean.
	unusualMultiplier = 3.0
	// unusualFloor is the minimum amount an unusual transaction must exceed,
	// so small categories do not produce noise.
	unusualFloor = 1000.0

	// impulseAmountCeiling and impulseCountThreshold drive the
	// impulse-spending pattern: many small discretionary transactions.
	impulseAmountCeiling  = 500.0
	impulseCountThreshold = 20
)

// discretionaryCategories participate in the impulse-spending heuristic.
var discretionaryCategories = map[statement.Category]bool{
	statement.CategoryShopping:      true,
	statement.CategoryFood:          true,
	statement.CategoryEntertainment: true,
}

// UnusualSpending lists outlier transactions and detected spending patterns.
type UnusualSpending struct {
	UnusualTransactions []statement.Transaction `json:"unusual_transactions"`
	Patterns            []string                `json:"patterns"`
}

// DetectUnusualSpending flags transactions whose amount exceeds three times
// their category mean and the absolute floor, plus an impulse-spending
// pattern when small discretionary transactions pile up.
func DetectUnusualSpending(txs []statement.Transaction) UnusualSpending {
	totals := make(map[statement.Category]float64)
	counts := make(map[statement.Category]int)
	for _, tx := range txs {
		totals[tx.Category] += tx.Amount()
		counts[tx.Category]++
	}

	means := make(map[statement.Category]float64, len(totals))
	for category, total := range totals {
		means[category] = total / float64(counts[category])
	}

	var result UnusualSpending
	for _, tx := range txs {
		amount := tx.Amount()
		if amount > means[tx.Category]*unusualMultiplier && amount > unusualFloor {
			result.UnusualTransactions = append(result.UnusualTransactions, tx)
		}
	}

	if n := len(result.UnusualTransactions); n > 0 {
		result.Patterns = append(result.Patterns,
			fmt.Sprintf("Found %d unusually large transactions", n))
	}

	small := 0
	for _, tx := range txs {
		if tx.Amount() < impulseAmountCeiling && discretionaryCategories[tx.Category] {
			small++
		}
	}
	if small > impulseCountThreshold {
		result.Patterns = append(result.Patterns,
			"High frequency of small transactions detected - consider budgeting for discretionary spending")
	}

	return result
}
