// Package pipeline orchestrates statement ingestion: fetch the PDF from
// GCS, extract its text layer, parse transactions, persist them to
// BigQuery and store the derived spending analysis.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adityamisra/sip-planner/internal/analysis"
	"github.com/adityamisra/sip-planner/internal/extract"
	"github.com/adityamisra/sip-planner/internal/gcsstore"
	infra "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/statement"
)

// Service runs the ingestion pipeline against injected dependencies so
// tests can swap in fakes.
type Service struct {
	repo      infra.Repository
	storage   StorageService
	extractor extract.TextExtractor
	log       zerolog.Logger
}

func NewService(repo infra.Repository, storage StorageService, extractor extract.TextExtractor, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		log:       log,
	}
}

// IngestStatementFromGCS registers a statement record for a PDF already in
// GCS and processes it synchronously. It returns the new statement ID.
func (s *Service) IngestStatementFromGCS(ctx context.Context, gcsURI string) (string, error) {
	statementID, err := s.CreateStatement(ctx, gcsURI, gcsstore.Filename(gcsURI), "application/pdf")
	if err != nil {
		return "", err
	}
	if _, err := s.ProcessStatement(ctx, statementID, gcsURI); err != nil {
		return statementID, err
	}
	return statementID, nil
}

// CreateStatement inserts a statements row with parsing status PENDING.
func (s *Service) CreateStatement(ctx context.Context, gcsURI, filename, mimeType string) (string, error) {
	statementID := uuid.NewString()
	row := &infra.StatementRow{
		StatementID:      statementID,
		GCSURI:           gcsURI,
		OriginalFilename: filename,
		FileMimeType:     mimeType,
		UploadTS:         time.Now(),
		ParsingStatus:    "PENDING",
	}
	if err := s.repo.InsertStatement(ctx, row); err != nil {
		return "", fmt.Errorf("CreateStatement: %w", err)
	}
	return statementID, nil
}

// ProcessStatement runs the parse-and-store flow for an existing statement.
// It returns the parsing run ID when one was started, even on failure, so
// callers can surface it.
func (s *Service) ProcessStatement(ctx context.Context, statementID, gcsURI string) (string, error) {
	log := s.log.With().Str("statement_id", statementID).Logger()

	parsingRunID, err := s.repo.StartParsingRun(ctx, statementID)
	if err != nil {
		return "", fmt.Errorf("ProcessStatement: start parsing run: %w", err)
	}
	log = log.With().Str("parsing_run_id", parsingRunID).Logger()

	txs, err := s.parse(ctx, gcsURI)
	if err != nil {
		s.fail(ctx, log, statementID, parsingRunID, err)
		return parsingRunID, err
	}

	if err := s.store(ctx, statementID, parsingRunID, txs); err != nil {
		s.fail(ctx, log, statementID, parsingRunID, err)
		return parsingRunID, err
	}

	if err := s.repo.MarkParsingRunSucceeded(ctx, parsingRunID, len(txs)); err != nil {
		return parsingRunID, fmt.Errorf("ProcessStatement: mark run succeeded: %w", err)
	}
	if err := s.repo.MarkStatementProcessed(ctx, statementID, "PARSED"); err != nil {
		return parsingRunID, fmt.Errorf("ProcessStatement: mark statement processed: %w", err)
	}

	log.Info().Int("tx_count", len(txs)).Msg("statement parsed")
	return parsingRunID, nil
}

// parse fetches the PDF, extracts the text layer and parses transactions.
func (s *Service) parse(ctx context.Context, gcsURI string) ([]statement.Transaction, error) {
	pdfBytes, err := s.storage.Fetch(ctx, gcsURI)
	if err != nil {
		return nil, fmt.Errorf("fetch pdf: %w", err)
	}

	rawText, err := s.extractor.ExtractText(ctx, pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	txs := statement.Parse(rawText)
	if len(txs) == 0 {
		return nil, fmt.Errorf("no transactions found in statement text")
	}
	return txs, nil
}

// store writes the transactions and the derived analysis to BigQuery.
func (s *Service) store(ctx context.Context, statementID, parsingRunID string, txs []statement.Transaction) error {
	rows := transactionRows(statementID, parsingRunID, txs)
	if err := s.repo.InsertTransactions(ctx, rows); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}

	start, end := periodBounds(txs)
	a := analysis.Analyze(txs, start, end)
	if err := s.repo.InsertAnalysis(ctx, analysisRow(statementID, a)); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (s *Service) fail(ctx context.Context, log zerolog.Logger, statementID, parsingRunID string, cause error) {
	log.Error().Err(cause).Msg("statement parsing failed")
	s.repo.MarkParsingRunFailed(ctx, parsingRunID, cause)
	if err := s.repo.MarkStatementProcessed(ctx, statementID, "FAILED"); err != nil {
		log.Error().Err(err).Msg("could not mark statement failed")
	}
}
