package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	infra "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/statement"
)

// mockRepo implements infra.Repository with overridable funcs, recording
// the calls the pipeline makes.
type mockRepo struct {
	insertStatementFunc func(ctx context.Context, row *infra.StatementRow) error

	statements    []*infra.StatementRow
	transactions  []*infra.TransactionRow
	analyses      []*infra.AnalysisRow
	runStarted    bool
	runFailed     bool
	runFailedErr  error
	runSucceeded  bool
	runTxCount    int
	finalStatuses map[string]string
}

func newMockRepo() *mockRepo {
	return &mockRepo{finalStatuses: make(map[string]string)}
}

var (
	_ infra.Repository = (*mockRepo)(nil)
	_ StorageService   = (*mockStorage)(nil)
)

func (m *mockRepo) InsertStatement(ctx context.Context, row *infra.StatementRow) error {
	if m.insertStatementFunc != nil {
		return m.insertStatementFunc(ctx, row)
	}
	m.statements = append(m.statements, row)
	return nil
}

func (m *mockRepo) ListStatements(ctx context.Context) ([]*infra.StatementRow, error) {
	return m.statements, nil
}

func (m *mockRepo) MarkStatementProcessed(ctx context.Context, statementID, status string) error {
	m.finalStatuses[statementID] = status
	return nil
}

func (m *mockRepo) StartParsingRun(ctx context.Context, statementID string) (string, error) {
	m.runStarted = true
	return "run-1", nil
}

func (m *mockRepo) MarkParsingRunFailed(ctx context.Context, parsingRunID string, runErr error) {
	m.runFailed = true
	m.runFailedErr = runErr
}

func (m *mockRepo) MarkParsingRunSucceeded(ctx context.Context, parsingRunID string, txCount int) error {
	m.runSucceeded = true
	m.runTxCount = txCount
	return nil
}

func (m *mockRepo) InsertTransactions(ctx context.Context, rows []*infra.TransactionRow) error {
	m.transactions = append(m.transactions, rows...)
	return nil
}

func (m *mockRepo) QueryTransactionsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*infra.TransactionRow, error) {
	return m.transactions, nil
}

func (m *mockRepo) InsertAnalysis(ctx context.Context, row *infra.AnalysisRow) error {
	m.analyses = append(m.analyses, row)
	return nil
}

type mockStorage struct {
	fetchFunc func(ctx context.Context, gcsURI string) ([]byte, error)
}

func (m *mockStorage) Upload(ctx context.Context, bucket, object, contentType string, r io.Reader) (string, error) {
	return "gs://" + bucket + "/" + object, nil
}

func (m *mockStorage) Fetch(ctx context.Context, gcsURI string) ([]byte, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, gcsURI)
	}
	return []byte("%PDF-1.4"), nil
}

type mockExtractor struct {
	extractFunc func(ctx context.Context, pdfBytes []byte) (string, error)
}

func (m *mockExtractor) ExtractText(ctx context.Context, pdfBytes []byte) (string, error) {
	if m.extractFunc != nil {
		return m.extractFunc(ctx, pdfBytes)
	}
	return statement.SampleStatement, nil
}

func newTestService(repo *mockRepo, storage *mockStorage, extractor *mockExtractor) *Service {
	return NewService(repo, storage, extractor, zerolog.New(io.Discard))
}

func TestProcessStatementSuccess(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo, &mockStorage{}, &mockExtractor{})

	runID, err := svc.ProcessStatement(ctx, "stmt-1", "gs://bucket/statements/a.pdf")
	if err != nil {
		t.Fatalf("ProcessStatement returned error: %v", err)
	}
	if runID != "run-1" {
		t.Errorf("parsing run ID = %q, want run-1", runID)
	}

	wantTxs := len(statement.Parse(statement.SampleStatement))
	if len(repo.transactions) != wantTxs {
		t.Errorf("inserted %d transactions, want %d", len(repo.transactions), wantTxs)
	}
	if len(repo.analyses) != 1 {
		t.Fatalf("inserted %d analyses, want 1", len(repo.analyses))
	}
	if repo.analyses[0].StatementID != "stmt-1" {
		t.Errorf("analysis statement ID = %q", repo.analyses[0].StatementID)
	}
	if !repo.runSucceeded || repo.runTxCount != wantTxs {
		t.Errorf("run succeeded = %v with tx count %d, want true with %d", repo.runSucceeded, repo.runTxCount, wantTxs)
	}
	if repo.finalStatuses["stmt-1"] != "PARSED" {
		t.Errorf("statement status = %q, want PARSED", repo.finalStatuses["stmt-1"])
	}
}

func TestProcessStatementRowMapping(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo, &mockStorage{}, &mockExtractor{})

	if _, err := svc.ProcessStatement(ctx, "stmt-1", "gs://bucket/a.pdf"); err != nil {
		t.Fatalf("ProcessStatement returned error: %v", err)
	}

	first := repo.transactions[0]
	if first.StatementID != "stmt-1" || first.ParsingRunID != "run-1" {
		t.Errorf("row identity = %q/%q", first.StatementID, first.ParsingRunID)
	}
	if first.TransactionID == "" {
		t.Error("row missing transaction ID")
	}
	if !first.TxnDate.IsValid() {
		t.Errorf("sample statement date did not normalize: raw %q", first.RawDate)
	}
	if !first.LineNo.Valid || first.LineNo.Int64 != 1 {
		t.Errorf("first row line number = %+v, want 1", first.LineNo)
	}
}

func TestProcessStatementExtractionFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, pdfBytes []byte) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	svc := newTestService(repo, &mockStorage{}, extractor)

	runID, err := svc.ProcessStatement(ctx, "stmt-1", "gs://bucket/a.pdf")
	if err == nil {
		t.Fatal("ProcessStatement returned nil error")
	}
	if runID != "run-1" {
		t.Errorf("parsing run ID = %q, want run-1 even on failure", runID)
	}
	if !repo.runFailed {
		t.Error("parsing run was not marked failed")
	}
	if repo.finalStatuses["stmt-1"] != "FAILED" {
		t.Errorf("statement status = %q, want FAILED", repo.finalStatuses["stmt-1"])
	}
	if len(repo.transactions) != 0 {
		t.Errorf("inserted %d transactions after failed extraction", len(repo.transactions))
	}
}

func TestProcessStatementEmptyText(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, pdfBytes []byte) (string, error) {
			return "Account Statement\nNo transactions this period\n", nil
		},
	}
	svc := newTestService(repo, &mockStorage{}, extractor)

	_, err := svc.ProcessStatement(ctx, "stmt-1", "gs://bucket/a.pdf")
	if err == nil || !strings.Contains(err.Error(), "no transactions") {
		t.Fatalf("ProcessStatement error = %v, want no-transactions error", err)
	}
	if repo.finalStatuses["stmt-1"] != "FAILED" {
		t.Errorf("statement status = %q, want FAILED", repo.finalStatuses["stmt-1"])
	}
}

func TestProcessStatementFetchFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	storage := &mockStorage{
		fetchFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			return nil, errors.New("object not found")
		},
	}
	svc := newTestService(repo, storage, &mockExtractor{})

	if _, err := svc.ProcessStatement(ctx, "stmt-1", "gs://bucket/missing.pdf"); err == nil {
		t.Fatal("ProcessStatement returned nil error for missing object")
	}
	if !repo.runFailed {
		t.Error("parsing run was not marked failed")
	}
}

func TestCreateStatement(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo, &mockStorage{}, &mockExtractor{})

	id, err := svc.CreateStatement(ctx, "gs://bucket/a.pdf", "a.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("CreateStatement returned error: %v", err)
	}
	if id == "" {
		t.Fatal("CreateStatement returned empty ID")
	}
	if len(repo.statements) != 1 {
		t.Fatalf("inserted %d statements, want 1", len(repo.statements))
	}
	row := repo.statements[0]
	if row.ParsingStatus != "PENDING" {
		t.Errorf("parsing status = %q, want PENDING", row.ParsingStatus)
	}
	if row.OriginalFilename != "a.pdf" {
		t.Errorf("filename = %q", row.OriginalFilename)
	}
}

func TestIngestStatementFromGCS(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo, &mockStorage{}, &mockExtractor{})

	id, err := svc.IngestStatementFromGCS(ctx, "gs://bucket/statements/2024/jan.pdf")
	if err != nil {
		t.Fatalf("IngestStatementFromGCS returned error: %v", err)
	}
	if repo.finalStatuses[id] != "PARSED" {
		t.Errorf("statement status = %q, want PARSED", repo.finalStatuses[id])
	}
	if repo.statements[0].OriginalFilename != "jan.pdf" {
		t.Errorf("filename = %q, want jan.pdf", repo.statements[0].OriginalFilename)
	}
}
