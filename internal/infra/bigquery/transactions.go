package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"
)

const transactionsTable = "transactions"

// InsertTransactions inserts a batch of transaction rows. An empty batch is
// a no-op, not an error.
func (c *Client) InsertTransactions(ctx context.Context, rows []*TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}
	if err := c.table(transactionsTable).Inserter().Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertTransactions: inserting %d rows: %w", len(rows), err)
	}
	return nil
}

// QueryTransactionsByDateRange returns transactions dated within the
// inclusive range, oldest first. Rows whose source date never normalized
// carry a NULL txn_date and fall outside every range.
func (c *Client) QueryTransactionsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*TransactionRow, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT *
		FROM %s
		WHERE txn_date BETWEEN @start_date AND @end_date
		ORDER BY txn_date, line_no`, c.qualified(transactionsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_date", Value: civil.DateOf(startDate)},
		{Name: "end_date", Value: civil.DateOf(endDate)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryTransactionsByDateRange: running query: %w", err)
	}

	var rows []*TransactionRow
	for {
		var row TransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryTransactionsByDateRange: reading row: %w", err)
		}
		rows = append(rows, &row)
	}
	return rows, nil
}
