package analysis

import (
	"fmt"

	"github.com/adityamisra/sip-planner/internal/statement"
)

// Thresholds for the rule-based recommendations. Percentages are of the
// category breakdown grand total.
const (
	emiShareThreshold      = 30.0
	foodShareThreshold     = 20.0
	shoppingShareThreshold = 15.0
)

// Insights holds the natural-language observations and recommendations
// derived from an Analysis.
type Insights struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// SpendingInsights generates rule-based observations from an analysis.
func SpendingInsights(a Analysis) Insights {
	var out Insights

	if a.AverageIncome > 0 {
		out.Insights = append(out.Insights,
			fmt.Sprintf("Your average monthly income is ₹%s", formatAmount(a.AverageIncome)))
	}
	if a.AverageExpenses > 0 {
		out.Insights = append(out.Insights,
			fmt.Sprintf("Your average monthly expenses are ₹%s", formatAmount(a.AverageExpenses)))
	}

	switch {
	case a.MonthlySurplus > 0:
		out.Insights = append(out.Insights,
			fmt.Sprintf("You have a monthly surplus of ₹%s", formatAmount(a.MonthlySurplus)))
		out.Recommendations = append(out.Recommendations,
			"Consider investing your surplus in SIPs for long-term wealth creation")
	case a.MonthlySurplus < 0:
		out.Insights = append(out.Insights,
			fmt.Sprintf("You have a monthly deficit of ₹%s", formatAmount(-a.MonthlySurplus)))
		out.Recommendations = append(out.Recommendations,
			"Review your expenses and consider reducing non-essential spending")
	}

	if top, ok := topExpenseCategory(a.Breakdown); ok {
		out.Insights = append(out.Insights,
			fmt.Sprintf("Your highest expense category is %s (%.2f%%)", top.Category.DisplayName(), top.Percentage))
	}

	if share, ok := categoryShare(a.Breakdown, statement.CategoryEMILoans); ok && share > emiShareThreshold {
		out.Recommendations = append(out.Recommendations,
			"Your EMI/Loan payments are high. Consider refinancing or prepayment options")
	}
	if share, ok := categoryShare(a.Breakdown, statement.CategoryFood); ok && share > foodShareThreshold {
		out.Recommendations = append(out.Recommendations,
			"Consider reducing food expenses by cooking at home more often")
	}
	if share, ok := categoryShare(a.Breakdown, statement.CategoryShopping); ok && share > shoppingShareThreshold {
		out.Recommendations = append(out.Recommendations,
			"Review your shopping expenses and prioritize needs over wants")
	}

	return out
}

// topExpenseCategory returns the largest non-salary breakdown entry.
func topExpenseCategory(breakdown []CategoryBreakdown) (CategoryBreakdown, bool) {
	for _, entry := range breakdown {
		if entry.Category != statement.CategorySalary {
			return entry, true
		}
	}
	return CategoryBreakdown{}, false
}

func categoryShare(breakdown []CategoryBreakdown, category statement.Category) (float64, bool) {
	for _, entry := range breakdown {
		if entry.Category == category {
			return entry.Percentage, true
		}
	}
	return 0, false
}

// formatAmount renders a whole currency amount with thousands separators.
func formatAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
