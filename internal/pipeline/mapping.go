package pipeline

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/adityamisra/sip-planner/internal/analysis"
	infra "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/statement"
)

// transactionRows maps parsed transactions to BigQuery rows. Dates that do
// not normalize to ISO form keep a zero txn_date and rely on raw_date.
func transactionRows(statementID, parsingRunID string, txs []statement.Transaction) []*infra.TransactionRow {
	now := time.Now()
	rows := make([]*infra.TransactionRow, 0, len(txs))
	for i, tx := range txs {
		row := &infra.TransactionRow{
			TransactionID: uuid.NewString(),
			StatementID:   statementID,
			ParsingRunID:  parsingRunID,
			RawDate:       tx.Date,
			Description:   tx.Description,
			Debit:         infra.Rat(tx.Debit),
			Credit:        infra.Rat(tx.Credit),
			Balance:       infra.Rat(tx.Balance),
			Category:      string(tx.Category),
			LineNo:        bqInt64(int64(i + 1)),
			CreatedTS:     now,
		}
		if d, err := civil.ParseDate(statement.NormalizeDate(tx.Date)); err == nil {
			row.TxnDate = d
		}
		rows = append(rows, row)
	}
	return rows
}

func bqInt64(v int64) bigquery.NullInt64 {
	return bigquery.NullInt64{Int64: v, Valid: true}
}

func analysisRow(statementID string, a analysis.Analysis) *infra.AnalysisRow {
	row := &infra.AnalysisRow{
		AnalysisID:      uuid.NewString(),
		StatementID:     statementID,
		TotalIncome:     a.TotalIncome,
		TotalExpenses:   a.TotalExpenses,
		MonthlySurplus:  a.MonthlySurplus,
		AverageIncome:   a.AverageIncome,
		AverageExpenses: a.AverageExpenses,
		Breakdown:       infra.NullJSONOf(a.Breakdown),
		CreatedTS:       time.Now(),
	}
	if d, err := civil.ParseDate(a.PeriodStart); err == nil {
		row.PeriodStart = d
	}
	if d, err := civil.ParseDate(a.PeriodEnd); err == nil {
		row.PeriodEnd = d
	}
	return row
}

// periodBounds returns the earliest and latest transaction dates. When no
// date normalizes, the current month is used.
func periodBounds(txs []statement.Transaction) (time.Time, time.Time) {
	var start, end time.Time
	for _, tx := range txs {
		t, err := time.Parse("2006-01-02", statement.NormalizeDate(tx.Date))
		if err != nil {
			continue
		}
		if start.IsZero() || t.Before(start) {
			start = t
		}
		if end.IsZero() || t.After(end) {
			end = t
		}
	}
	if start.IsZero() {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	}
	return start, end
}
