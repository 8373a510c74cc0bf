package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

const (
	statementsTable  = "statements"
	parsingRunsTable = "parsing_runs"
)

// Client is the BigQuery-backed Repository implementation. Construct it once
// per process and close it on shutdown.
type Client struct {
	bq        *bigquery.Client
	projectID string
	datasetID string
}

// NewClient creates a repository for the given project and dataset using
// application default credentials.
func NewClient(ctx context.Context, projectID, datasetID string) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	return &Client{bq: bq, projectID: projectID, datasetID: datasetID}, nil
}

// Close releases the underlying BigQuery client.
func (c *Client) Close() error {
	return c.bq.Close()
}

func (c *Client) table(name string) *bigquery.Table {
	return c.bq.DatasetInProject(c.projectID, c.datasetID).Table(name)
}

func (c *Client) qualified(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", c.projectID, c.datasetID, name)
}

// InsertStatement records an uploaded statement document.
func (c *Client) InsertStatement(ctx context.Context, row *StatementRow) error {
	if row.StatementID == "" {
		row.StatementID = uuid.NewString()
	}
	if row.UploadTS.IsZero() {
		row.UploadTS = time.Now()
	}
	if err := c.table(statementsTable).Inserter().Put(ctx, row); err != nil {
		return fmt.Errorf("InsertStatement: inserting row: %w", err)
	}
	return nil
}

// ListStatements returns all statement documents, newest first.
func (c *Client) ListStatements(ctx context.Context) ([]*StatementRow, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT *
		FROM %s
		ORDER BY upload_ts DESC`, c.qualified(statementsTable)))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListStatements: running query: %w", err)
	}

	var rows []*StatementRow
	for {
		var row StatementRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListStatements: reading row: %w", err)
		}
		rows = append(rows, &row)
	}
	return rows, nil
}

// MarkStatementProcessed sets the parsing status and processed timestamp.
func (c *Client) MarkStatementProcessed(ctx context.Context, statementID, status string) error {
	q := c.bq.Query(fmt.Sprintf(`
		UPDATE %s
		SET parsing_status = @status, processed_ts = CURRENT_TIMESTAMP()
		WHERE statement_id = @statement_id`, c.qualified(statementsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: status},
		{Name: "statement_id", Value: statementID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("MarkStatementProcessed: running update: %w", err)
	}
	status_, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("MarkStatementProcessed: waiting for update: %w", err)
	}
	if err := status_.Err(); err != nil {
		return fmt.Errorf("MarkStatementProcessed: update failed: %w", err)
	}
	return nil
}

// StartParsingRun inserts a run with status RUNNING and returns its ID.
func (c *Client) StartParsingRun(ctx context.Context, statementID string) (string, error) {
	row := &ParsingRunRow{
		ParsingRunID:  uuid.NewString(),
		StatementID:   statementID,
		StartedTS:     time.Now(),
		ExtractorType: "GEMINI_TEXT",
		Status:        "RUNNING",
	}
	if err := c.table(parsingRunsTable).Inserter().Put(ctx, row); err != nil {
		return "", fmt.Errorf("StartParsingRun: inserting row: %w", err)
	}
	return row.ParsingRunID, nil
}

// MarkParsingRunFailed sets status FAILED with the error message. Failures
// to record the failure are logged by callers, not returned; the original
// pipeline error matters more.
func (c *Client) MarkParsingRunFailed(ctx context.Context, parsingRunID string, runErr error) {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	q := c.bq.Query(fmt.Sprintf(`
		UPDATE %s
		SET status = 'FAILED', finished_ts = CURRENT_TIMESTAMP(), error_message = @msg
		WHERE parsing_run_id = @parsing_run_id`, c.qualified(parsingRunsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "msg", Value: msg},
		{Name: "parsing_run_id", Value: parsingRunID},
	}
	if job, err := q.Run(ctx); err == nil {
		_, _ = job.Wait(ctx)
	}
}

// MarkParsingRunSucceeded sets status SUCCESS and the transaction count.
func (c *Client) MarkParsingRunSucceeded(ctx context.Context, parsingRunID string, txCount int) error {
	q := c.bq.Query(fmt.Sprintf(`
		UPDATE %s
		SET status = 'SUCCESS', finished_ts = CURRENT_TIMESTAMP(), tx_count = @tx_count
		WHERE parsing_run_id = @parsing_run_id`, c.qualified(parsingRunsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "tx_count", Value: int64(txCount)},
		{Name: "parsing_run_id", Value: parsingRunID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("MarkParsingRunSucceeded: running update: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("MarkParsingRunSucceeded: waiting for update: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("MarkParsingRunSucceeded: update failed: %w", err)
	}
	return nil
}

var _ Repository = (*Client)(nil)
