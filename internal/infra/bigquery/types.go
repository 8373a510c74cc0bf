// Package bigquery persists statements, parsing runs, transactions and
// computed analyses in BigQuery. Row structs map one-to-one onto the
// sipplanner dataset tables.
package bigquery

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/adityamisra/sip-planner/internal/statement"
)

// Repository is the persistence surface the pipeline and API depend on.
type Repository interface {
	// InsertStatement records an uploaded statement document.
	InsertStatement(ctx context.Context, row *StatementRow) error

	// ListStatements returns all statement documents, newest first.
	ListStatements(ctx context.Context) ([]*StatementRow, error)

	// MarkStatementProcessed sets the parsing status and processed timestamp.
	MarkStatementProcessed(ctx context.Context, statementID, status string) error

	// StartParsingRun inserts a run with status RUNNING and returns its ID.
	StartParsingRun(ctx context.Context, statementID string) (string, error)

	// MarkParsingRunFailed sets status FAILED with the error message.
	MarkParsingRunFailed(ctx context.Context, parsingRunID string, runErr error)

	// MarkParsingRunSucceeded sets status SUCCESS and the transaction count.
	MarkParsingRunSucceeded(ctx context.Context, parsingRunID string, txCount int) error

	// InsertTransactions inserts a batch of transaction rows.
	InsertTransactions(ctx context.Context, rows []*TransactionRow) error

	// QueryTransactionsByDateRange returns transactions dated within the
	// inclusive range, oldest first.
	QueryTransactionsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*TransactionRow, error)

	// InsertAnalysis stores a computed statement analysis.
	InsertAnalysis(ctx context.Context, row *AnalysisRow) error
}

// StatementRow is one uploaded statement document.
type StatementRow struct {
	StatementID      string                 `bigquery:"statement_id" json:"statement_id"`
	GCSURI           string                 `bigquery:"gcs_uri" json:"gcs_uri"`
	OriginalFilename string                 `bigquery:"original_filename" json:"original_filename"`
	FileMimeType     string                 `bigquery:"file_mime_type" json:"file_mime_type"`
	UploadTS         time.Time              `bigquery:"upload_ts" json:"upload_ts"`
	ProcessedTS      bigquery.NullTimestamp `bigquery:"processed_ts" json:"processed_ts,omitempty"`
	ParsingStatus    string                 `bigquery:"parsing_status" json:"parsing_status"`
	PeriodStart      bigquery.NullDate      `bigquery:"period_start" json:"period_start,omitempty"`
	PeriodEnd        bigquery.NullDate      `bigquery:"period_end" json:"period_end,omitempty"`
}

// ParsingRunRow is one attempt at parsing a statement.
type ParsingRunRow struct {
	ParsingRunID  string                 `bigquery:"parsing_run_id" json:"parsing_run_id"`
	StatementID   string                 `bigquery:"statement_id" json:"statement_id"`
	StartedTS     time.Time              `bigquery:"started_ts" json:"started_ts"`
	FinishedTS    bigquery.NullTimestamp `bigquery:"finished_ts" json:"finished_ts,omitempty"`
	ExtractorType string                 `bigquery:"extractor_type" json:"extractor_type"`
	Status        string                 `bigquery:"status" json:"status"`
	ErrorMessage  string                 `bigquery:"error_message" json:"error_message,omitempty"`
	TxCount       bigquery.NullInt64     `bigquery:"tx_count" json:"tx_count,omitempty"`
}

// TransactionRow is one parsed statement line. TxnDate is NULL when the
// parser could not normalize the source date; RawDate always preserves the
// original token.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id" json:"transaction_id"`
	StatementID   string `bigquery:"statement_id" json:"statement_id"`
	ParsingRunID  string `bigquery:"parsing_run_id" json:"parsing_run_id"`

	TxnDate civil.Date `bigquery:"txn_date" json:"txn_date"`
	RawDate string     `bigquery:"raw_date" json:"raw_date"`

	Description string `bigquery:"description" json:"description"`

	Debit   *big.Rat `bigquery:"debit" json:"debit"`
	Credit  *big.Rat `bigquery:"credit" json:"credit"`
	Balance *big.Rat `bigquery:"balance" json:"balance"`

	Category string `bigquery:"category" json:"category"`

	LineNo    bigquery.NullInt64 `bigquery:"line_no" json:"line_no,omitempty"`
	CreatedTS time.Time          `bigquery:"created_ts" json:"created_ts"`
}

// MarshalJSON renders the big.Rat amounts as fixed-point strings.
func (t TransactionRow) MarshalJSON() ([]byte, error) {
	type Alias TransactionRow
	return json.Marshal(&struct {
		Debit   string `json:"debit"`
		Credit  string `json:"credit"`
		Balance string `json:"balance"`
		*Alias
	}{
		Debit:   ratString(t.Debit),
		Credit:  ratString(t.Credit),
		Balance: ratString(t.Balance),
		Alias:   (*Alias)(&t),
	})
}

func ratString(r *big.Rat) string {
	if r == nil {
		return "0.00"
	}
	return r.FloatString(2)
}

// ToTransaction converts a stored row back to the in-memory transaction form
// the analyzers operate on. The ISO date is preferred over the raw one.
func (t *TransactionRow) ToTransaction() statement.Transaction {
	date := t.RawDate
	if t.TxnDate.IsValid() {
		date = t.TxnDate.String()
	}
	return statement.Transaction{
		Date:        date,
		Description: t.Description,
		Debit:       RatFloat(t.Debit),
		Credit:      RatFloat(t.Credit),
		Balance:     RatFloat(t.Balance),
		Category:    statement.Category(t.Category),
	}
}

// AnalysisRow is one stored statement analysis. Breakdown holds the
// serialized category breakdown.
type AnalysisRow struct {
	AnalysisID  string     `bigquery:"analysis_id" json:"analysis_id"`
	StatementID string     `bigquery:"statement_id" json:"statement_id"`
	PeriodStart civil.Date `bigquery:"period_start" json:"period_start"`
	PeriodEnd   civil.Date `bigquery:"period_end" json:"period_end"`

	TotalIncome     int64 `bigquery:"total_income" json:"total_income"`
	TotalExpenses   int64 `bigquery:"total_expenses" json:"total_expenses"`
	MonthlySurplus  int64 `bigquery:"monthly_surplus" json:"monthly_surplus"`
	AverageIncome   int64 `bigquery:"average_income" json:"average_income"`
	AverageExpenses int64 `bigquery:"average_expenses" json:"average_expenses"`

	Breakdown bigquery.NullJSON `bigquery:"breakdown" json:"breakdown,omitempty"`

	CreatedTS time.Time `bigquery:"created_ts" json:"created_ts"`
}

// Rat converts a float amount to the big.Rat representation used in rows.
func Rat(v float64) *big.Rat {
	r := new(big.Rat)
	r.SetFloat64(v)
	return r
}

// RatFloat converts a row amount back to float64, treating nil as zero.
func RatFloat(r *big.Rat) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float64()
	return f
}

// NullJSONOf wraps an arbitrary value as a BigQuery JSON column value.
func NullJSONOf(v interface{}) bigquery.NullJSON {
	b, err := json.Marshal(v)
	if err != nil {
		return bigquery.NullJSON{}
	}
	return bigquery.NullJSON{JSONVal: string(b), Valid: true}
}
