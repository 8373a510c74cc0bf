package statement

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// datePattern matches DD/MM/YYYY, DD-MM-YYYY and YYYY/MM/DD shaped tokens
	// with 2- or 4-digit years.
	datePattern = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{2,4}[-/]\d{1,2}[-/]\d{1,2}`)

	// amountPattern matches thousands-grouped decimal amounts such as
	// 12,345.67 as well as plain integers. The decimal part is optional
	// because some banks print whole amounts without it.
	amountPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d{2})?`)
)

// headerKeywords mark column-header rows ("Date  Description  Debit ...").
// Header rows never carry a date token, so this vocabulary is only consulted
// for undated lines.
var headerKeywords = []string{
	"date", "description", "debit", "credit", "balance", "particulars",
	"narration", "ref no", "transaction", "amount", "dr", "cr",
}

// summaryKeywords mark opening/closing balance and totals rows, which may
// carry a date and must still be excluded.
var summaryKeywords = []string{
	"total", "balance", "opening", "closing", "summary", "grand total",
}

// debitKeywords classify two-column statement lines where only the wording
// of the description tells withdrawals and deposits apart.
var debitKeywords = []string{
	"debit", "dr", "withdrawal", "payment", "transfer", "purchase",
	"atm", "pos", "online", "upi", "neft", "imps", "rtgs",
}

// Parse extracts transactions from the raw text layer of a bank statement.
// Lines that cannot be confidently parsed are silently dropped; an empty
// slice is a valid result for a document with no recognizable lines.
func Parse(rawText string) []Transaction {
	var txs []Transaction
	for _, raw := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if tx, ok := parseLine(line); ok {
			txs = append(txs, tx)
		}
	}
	return txs
}

// parseLine attempts to read a single statement line as a transaction.
func parseLine(line string) (Transaction, bool) {
	dateTok := datePattern.FindString(line)
	if dateTok == "" {
		// Header and free-text rows carry no date and are never transactions.
		return Transaction{}, false
	}
	if isSummaryLine(line) {
		return Transaction{}, false
	}

	rest := strings.Replace(line, dateTok, " ", 1)

	tokens := amountPattern.FindAllString(rest, -1)
	if len(tokens) < 2 {
		// A valid transaction line needs at least one amount and a balance.
		return Transaction{}, false
	}

	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
		if err != nil {
			return Transaction{}, false
		}
		values[i] = v
	}

	desc := rest
	for _, tok := range tokens {
		desc = strings.Replace(desc, tok, " ", 1)
	}
	desc = strings.Join(strings.Fields(desc), " ")
	if desc == "" {
		return Transaction{}, false
	}

	balance := values[len(values)-1]
	debit, credit, ok := splitAmount(values[:len(values)-1], desc)
	if !ok {
		return Transaction{}, false
	}

	return Transaction{
		Date:        NormalizeDate(dateTok),
		Description: desc,
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
		Category:    Categorize(desc),
	}, true
}

// splitAmount decides which side of the ledger a line belongs to.
//
// Statements with separate debit/credit columns yield at least two amount
// tokens before the balance; the zero-valued column is a placeholder, so the
// first non-zero token wins and its position picks the side. Lines with a
// single amount column fall back to the keyword heuristic on the description.
func splitAmount(values []float64, desc string) (debit, credit float64, ok bool) {
	if len(values) >= 2 {
		switch {
		case values[0] > 0:
			return values[0], 0, true
		case values[1] > 0:
			return 0, values[1], true
		default:
			return 0, 0, false
		}
	}
	if values[0] == 0 {
		return 0, 0, false
	}
	if isDebitLine(desc) {
		return values[0], 0, true
	}
	return 0, values[0], true
}

// isHeaderLine reports whether the line looks like a column-header row.
// Header rows carry no date, so the date gate in parseLine already drops
// them; this predicate documents the header vocabulary for callers that
// classify lines outside the parse loop.
func isHeaderLine(line string) bool {
	return containsAny(line, headerKeywords)
}

// isSummaryLine reports whether the line looks like a totals/summary row.
func isSummaryLine(line string) bool {
	return containsAny(line, summaryKeywords)
}

func isDebitLine(desc string) bool {
	return containsAny(desc, debitKeywords)
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
