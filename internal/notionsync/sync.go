package notionsync

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/adityamisra/sip-planner/internal/analysis"
	infra "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/logger"
	"github.com/adityamisra/sip-planner/internal/statement"
)

// SyncMonthlyTrend recomputes the monthly income/expense trend over the
// stored transactions in [startDate, endDate] and mirrors it to a Notion
// database, one page per month keyed by the Month title. Existing months are
// updated in place; dryRun logs the intended writes without performing them.
func SyncMonthlyTrend(ctx context.Context, repo infra.Repository, notion NotionService, notionDBID string, startDate, endDate time.Time, dryRun bool) error {
	log := logger.FromContext(ctx)

	log.Info().
		Time("start_date", startDate).
		Time("end_date", endDate).
		Bool("dry_run", dryRun).
		Msg("Starting monthly trend sync to Notion")

	rows, err := repo.QueryTransactionsByDateRange(ctx, startDate, endDate)
	if err != nil {
		return fmt.Errorf("SyncMonthlyTrend: query transactions: %w", err)
	}

	txs := make([]statement.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, row.ToTransaction())
	}
	trend := analysis.MonthlyTrend(txs)

	log.Info().
		Int("transaction_count", len(txs)).
		Int("month_count", len(trend)).
		Msg("Computed monthly trend")

	existing, err := monthPageIDs(ctx, notion, notionDBID)
	if err != nil {
		return fmt.Errorf("SyncMonthlyTrend: %w", err)
	}

	var created, updated int
	for _, entry := range trend {
		props := MonthTrendToNotionProperties(entry)
		pageID, exists := existing[entry.Month]

		if dryRun {
			if exists {
				log.Info().Str("month", entry.Month).Str("page_id", pageID).Msg("[DRY RUN] Would update Notion page")
				updated++
			} else {
				log.Info().Str("month", entry.Month).Msg("[DRY RUN] Would create Notion page")
				created++
			}
			continue
		}

		if exists {
			if _, err := notion.UpdatePage(ctx, pageID, props); err != nil {
				log.Warn().Err(err).Str("month", entry.Month).Str("page_id", pageID).Msg("Failed to update Notion page")
				continue
			}
			updated++
		} else {
			page, err := notion.CreatePage(ctx, notionDBID, props)
			if err != nil {
				log.Warn().Err(err).Str("month", entry.Month).Msg("Failed to create Notion page")
				continue
			}
			log.Info().Str("month", entry.Month).Str("page_id", string(page.ID)).Msg("Created Notion page")
			created++
		}
	}

	log.Info().
		Int("created", created).
		Int("updated", updated).
		Int("total", len(trend)).
		Msg("Monthly trend sync completed")

	return nil
}

// monthPageIDs queries every page of the database and indexes page IDs by
// their Month title. Pagination is followed to the end.
func monthPageIDs(ctx context.Context, notion NotionService, databaseID string) (map[string]string, error) {
	pages := make(map[string]string)
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notion.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("monthPageIDs: %w", err)
		}

		for _, page := range resp.Results {
			if month := extractMonth(page); month != "" {
				pages[month] = string(page.ID)
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return pages, nil
}
