package bigquery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const analysesTable = "statement_analyses"

// InsertAnalysis stores a computed statement analysis.
func (c *Client) InsertAnalysis(ctx context.Context, row *AnalysisRow) error {
	if row.AnalysisID == "" {
		row.AnalysisID = uuid.NewString()
	}
	if row.CreatedTS.IsZero() {
		row.CreatedTS = time.Now()
	}
	if err := c.table(analysesTable).Inserter().Put(ctx, row); err != nil {
		return fmt.Errorf("InsertAnalysis: inserting row: %w", err)
	}
	return nil
}
