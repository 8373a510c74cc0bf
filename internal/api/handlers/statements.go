// Package handlers implements the HTTP endpoints of the API server.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adityamisra/sip-planner/internal/api/middleware"
	infra "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/jobs"
	"github.com/adityamisra/sip-planner/internal/pipeline"
)

// StatementsHandler handles statement upload and listing endpoints.
type StatementsHandler struct {
	repo      infra.Repository
	storage   pipeline.StorageService
	publisher jobs.Publisher
	bucket    string
	log       zerolog.Logger
}

func NewStatementsHandler(repo infra.Repository, storage pipeline.StorageService, publisher jobs.Publisher, bucket string, log zerolog.Logger) *StatementsHandler {
	return &StatementsHandler{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		bucket:    bucket,
		log:       log,
	}
}

// ListStatements handles GET /api/statements
func (h *StatementsHandler) ListStatements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statements, err := h.repo.ListStatements(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list statements")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list statements")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"statements": statements,
		"count":      len(statements),
	})
}

// UploadStatement handles POST /api/statements/upload?filename=...
// The request body is the raw PDF. The file is stored in GCS, a statements
// row is created and a parse job is enqueued.
func (h *StatementsHandler) UploadStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename := sanitizeFilename(r.URL.Query().Get("filename"))

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	statementID := uuid.NewString()
	objectName := fmt.Sprintf("statements/%s/%s-%s", time.Now().Format("2006/01/02"), statementID, filename)

	gcsURI, err := h.storage.Upload(ctx, h.bucket, objectName, contentType, r.Body)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to upload statement to GCS")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	row := &infra.StatementRow{
		StatementID:      statementID,
		GCSURI:           gcsURI,
		OriginalFilename: filename,
		FileMimeType:     contentType,
		UploadTS:         time.Now(),
		ParsingStatus:    "PENDING",
	}
	if err := h.repo.InsertStatement(ctx, row); err != nil {
		h.log.Error().Err(err).Msg("Failed to insert statement metadata")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save statement metadata")
		return
	}

	job := &jobs.ParseStatementJob{
		StatementID: statementID,
		GCSURI:      gcsURI,
	}
	if err := h.publisher.Publish(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue parse job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue parse job")
		return
	}

	h.log.Info().
		Str("statement_id", statementID).
		Str("gcs_uri", gcsURI).
		Str("job_id", job.JobID).
		Msg("Statement uploaded")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"statement_id": statementID,
		"gcs_uri":      gcsURI,
		"job_id":       job.JobID,
		"status":       string(job.Status),
	})
}

// EnqueueParsing handles POST /api/statements/parse for files already in GCS.
func (h *StatementsHandler) EnqueueParsing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StatementID string `json:"statement_id"`
		GCSURI      string `json:"gcs_uri"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.StatementID == "" || req.GCSURI == "" {
		middleware.WriteError(w, http.StatusBadRequest, "statement_id and gcs_uri are required")
		return
	}

	job := &jobs.ParseStatementJob{
		StatementID: req.StatementID,
		GCSURI:      req.GCSURI,
	}
	if err := h.publisher.Publish(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue parse job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue parse job")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("statement_id", req.StatementID).Msg("Parse job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id":       job.JobID,
		"statement_id": req.StatementID,
		"status":       string(job.Status),
	})
}

func sanitizeFilename(name string) string {
	if name == "" {
		return "statement.pdf"
	}
	if idx := strings.Index(name, "?"); idx > 0 {
		name = name[:idx]
	}
	return filepath.Base(name)
}
