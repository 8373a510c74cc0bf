// Package statement turns the raw text layer of a bank statement PDF into
// structured transaction records. Parsing is best effort: lines that do not
// look like transactions are dropped rather than failing the whole document,
// because statement layouts vary too much between banks to guarantee full
// line recognition.
package statement

// Transaction is one extracted statement line.
// Exactly one of Debit/Credit is non-zero; the parser never emits contra
// entries. Balance is the running balance as printed on the line and is
// informational only.
type Transaction struct {
	Date        string   `json:"date"` // normalized to YYYY-MM-DD where possible
	Description string   `json:"description"`
	Debit       float64  `json:"debit"`
	Credit      float64  `json:"credit"`
	Balance     float64  `json:"balance"`
	Category    Category `json:"category"`
}

// Amount returns the non-zero side of the transaction.
func (t Transaction) Amount() float64 {
	if t.Debit > 0 {
		return t.Debit
	}
	return t.Credit
}

// IsDebit reports whether the transaction is a withdrawal.
func (t Transaction) IsDebit() bool {
	return t.Debit > 0
}
