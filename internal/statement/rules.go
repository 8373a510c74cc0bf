package statement

import "strings"

// Category is the fixed spending category assigned to every transaction.
type Category string

const (
	CategorySalary        Category = "salary"
	CategoryEMILoans      Category = "emi_loans"
	CategoryFood          Category = "food"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryTransport     Category = "transport"
	CategoryInvestment    Category = "investment"
	CategoryOthers        Category = "others"
)

// CategoryRule maps a spending category to the description keywords that
// select it. Rules are evaluated in slice order and the first keyword hit
// wins, so the ordering of categoryRules is part of the contract: a
// description matching both a food and a shopping keyword resolves to
// whichever rule appears first.
type CategoryRule struct {
	Category Category
	Keywords []string
}

var categoryRules = []CategoryRule{
	{CategorySalary, []string{"salary", "credit", "deposit", "refund"}},
	{CategoryEMILoans, []string{"emi", "loan", "installment", "repayment"}},
	{CategoryFood, []string{"restaurant", "food", "swiggy", "zomato", "cafe", "dining"}},
	{CategoryShopping, []string{"amazon", "flipkart", "myntra", "shopping", "mall", "store"}},
	{CategoryUtilities, []string{"electricity", "water", "gas", "internet", "mobile", "broadband"}},
	{CategoryEntertainment, []string{"movie", "netflix", "spotify", "entertainment", "game", "subscription"}},
	{CategoryHealthcare, []string{"hospital", "medical", "pharmacy", "doctor", "health", "clinic"}},
	{CategoryTransport, []string{"uber", "ola", "metro", "bus", "fuel", "petrol", "diesel", "taxi"}},
	{CategoryInvestment, []string{"investment", "mutual", "sip", "equity", "fund", "portfolio"}},
}

// Categorize assigns a spending category to a transaction description.
func Categorize(description string) Category {
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return CategoryOthers
}

// Categories returns the closed category set in rule priority order, with
// the fallback category last.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, rule.Category)
	}
	return append(out, CategoryOthers)
}

var categoryNames = map[Category]string{
	CategorySalary:        "Salary/Income",
	CategoryEMILoans:      "EMI/Loans",
	CategoryFood:          "Food & Dining",
	CategoryShopping:      "Shopping",
	CategoryUtilities:     "Utilities",
	CategoryEntertainment: "Entertainment",
	CategoryHealthcare:    "Healthcare",
	CategoryTransport:     "Transport",
	CategoryInvestment:    "Investment",
	CategoryOthers:        "Others",
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}
