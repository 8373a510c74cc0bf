package statement

import (
	"testing"
)

func TestParseSampleStatement(t *testing.T) {
	txs := Parse(SampleStatement)

	if len(txs) != 10 {
		t.Fatalf("Expected 10 transactions, got %d", len(txs))
	}

	first := txs[0]
	if first.Date != "2024-01-01" {
		t.Errorf("Expected date 2024-01-01, got %s", first.Date)
	}
	if first.Credit != 50000 {
		t.Errorf("Expected credit 50000, got %v", first.Credit)
	}
	if first.Debit != 0 {
		t.Errorf("Expected debit 0, got %v", first.Debit)
	}
	if first.Category != CategorySalary {
		t.Errorf("Expected salary category, got %s", first.Category)
	}

	wantCategories := []Category{
		CategorySalary,
		CategoryOthers,        // ATM WITHDRAWAL
		CategoryFood,          // UPI PAYMENT - SWIGGY
		CategoryEMILoans,      // EMI - HOME LOAN
		CategoryUtilities,     // ELECTRICITY BILL
		CategoryShopping,      // AMAZON PURCHASE
		CategoryTransport,     // UBER RIDE
		CategoryEntertainment, // NETFLIX SUBSCRIPTION
		CategoryHealthcare,    // MEDICAL BILL
		CategoryInvestment,    // SIP - MUTUAL FUND
	}
	for i, want := range wantCategories {
		if txs[i].Category != want {
			t.Errorf("Transaction %d: expected category %s, got %s (%s)", i, want, txs[i].Category, txs[i].Description)
		}
	}

	var income, expenses float64
	for _, tx := range txs {
		income += tx.Credit
		expenses += tx.Debit
	}
	if income != 50000 {
		t.Errorf("Expected total income 50000, got %v", income)
	}
	if expenses != 27229 {
		t.Errorf("Expected total expenses 27229, got %v", expenses)
	}
}

func TestParseExactlyOneSide(t *testing.T) {
	for _, tx := range Parse(SampleStatement) {
		debitSet := tx.Debit > 0
		creditSet := tx.Credit > 0
		if debitSet == creditSet {
			t.Errorf("Transaction %q: expected exactly one of debit/credit non-zero, got debit=%v credit=%v",
				tx.Description, tx.Debit, tx.Credit)
		}
	}
}

func TestParseDropsNonTransactionLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"header row", "Date        Description                    Debit      Credit     Balance"},
		{"blank", "   "},
		{"free text", "Statement for account ending 1234"},
		{"dated summary", "31/01/2024  CLOSING BALANCE               0.00      22771.00"},
		{"dated total", "31/01/2024  GRAND TOTAL                    27229.00  50000.00"},
		{"single amount", "05/01/2024  MISC                           100.00"},
		{"no description", "05/01/2024  2000.00  0.00  48000.00"},
		{"zero amounts", "05/01/2024  MISC CHARGE                    0.00      0.00       48000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if txs := Parse(tt.line); len(txs) != 0 {
				t.Errorf("Expected line to be dropped, got %+v", txs)
			}
		})
	}
}

func TestParseDebitCreditColumns(t *testing.T) {
	txs := Parse("05/01/2024  RENT PAID       12000.00  0.00      36000.00\n" +
		"06/01/2024  INTEREST EARNED 0.00      150.00    36150.00")
	if len(txs) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(txs))
	}

	if txs[0].Debit != 12000 || txs[0].Credit != 0 {
		t.Errorf("Expected debit 12000, got debit=%v credit=%v", txs[0].Debit, txs[0].Credit)
	}
	if txs[0].Balance != 36000 {
		t.Errorf("Expected balance 36000, got %v", txs[0].Balance)
	}
	if txs[1].Debit != 0 || txs[1].Credit != 150 {
		t.Errorf("Expected credit 150, got debit=%v credit=%v", txs[1].Debit, txs[1].Credit)
	}
}

func TestParseSingleAmountColumn(t *testing.T) {
	// One amount plus the balance: the description keywords decide the side.
	txs := Parse("05/01/2024  ATM WITHDRAWAL   2000.00   46000.00\n" +
		"06/01/2024  INTEREST EARNED  150.00    46150.00")
	if len(txs) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(txs))
	}

	if !txs[0].IsDebit() || txs[0].Debit != 2000 {
		t.Errorf("Expected ATM withdrawal as debit 2000, got %+v", txs[0])
	}
	if txs[1].IsDebit() || txs[1].Credit != 150 {
		t.Errorf("Expected interest as credit 150, got %+v", txs[1])
	}
}

func TestParseThousandsSeparators(t *testing.T) {
	txs := Parse("05/01/2024  SALARY CREDIT  0.00  150,000.00  150,000.00")
	if len(txs) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Credit != 150000 {
		t.Errorf("Expected credit 150000, got %v", txs[0].Credit)
	}
	if txs[0].Balance != 150000 {
		t.Errorf("Expected balance 150000, got %v", txs[0].Balance)
	}
}

func TestHeaderLineDetection(t *testing.T) {
	if !isHeaderLine("Date  Description  Debit  Credit  Balance") {
		t.Error("Expected column header row to be detected")
	}
	if isHeaderLine("SWIGGY ORDER 1234") {
		t.Error("Expected ordinary description not to look like a header")
	}
}

func TestTransactionAmount(t *testing.T) {
	debit := Transaction{Debit: 100}
	if debit.Amount() != 100 || !debit.IsDebit() {
		t.Errorf("Expected debit amount 100, got %v", debit.Amount())
	}
	credit := Transaction{Credit: 250}
	if credit.Amount() != 250 || credit.IsDebit() {
		t.Errorf("Expected credit amount 250, got %v", credit.Amount())
	}
}
