package statement

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		desc string
		want Category
	}{
		{"SALARY CREDIT", CategorySalary},
		{"REFUND FROM MERCHANT", CategorySalary},
		{"EMI - HOME LOAN", CategoryEMILoans},
		{"SWIGGY ORDER", CategoryFood},
		{"AMAZON PURCHASE", CategoryShopping},
		{"ELECTRICITY BILL", CategoryUtilities},
		{"NETFLIX SUBSCRIPTION", CategoryEntertainment},
		{"APOLLO PHARMACY", CategoryHealthcare},
		{"UBER RIDE", CategoryTransport},
		{"SIP - MUTUAL FUND", CategoryInvestment},
		{"MISC CHARGE", CategoryOthers},
		{"", CategoryOthers},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Categorize(tt.desc); got != tt.want {
				t.Errorf("Categorize(%q) = %s, want %s", tt.desc, got, tt.want)
			}
		})
	}
}

func TestCategorizeRuleOrder(t *testing.T) {
	// The salary rule is evaluated first, so a refunded food order is
	// classified as income, not food.
	if got := Categorize("SWIGGY REFUND"); got != CategorySalary {
		t.Errorf("Expected salary (refund keyword wins), got %s", got)
	}
	// Food precedes shopping, so a food-court purchase at a mall resolves
	// to food.
	if got := Categorize("AMAZON FOOD COURT"); got != CategoryFood {
		t.Errorf("Expected food (food rule precedes shopping), got %s", got)
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 10 {
		t.Fatalf("Expected 10 categories, got %d", len(cats))
	}
	if cats[len(cats)-1] != CategoryOthers {
		t.Errorf("Expected fallback category last, got %s", cats[len(cats)-1])
	}
}

func TestDisplayName(t *testing.T) {
	if got := CategoryEMILoans.DisplayName(); got != "EMI/Loans" {
		t.Errorf("Expected EMI/Loans, got %s", got)
	}
	if got := Category("custom").DisplayName(); got != "custom" {
		t.Errorf("Expected raw value for unknown category, got %s", got)
	}
}
