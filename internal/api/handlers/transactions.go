package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/adityamisra/sip-planner/internal/api/middleware"
	infra "github.com/adityamisra/sip-planner/internal/infra/bigquery"
)

// TransactionsHandler handles transaction listing endpoints.
type TransactionsHandler struct {
	repo infra.Repository
	log  zerolog.Logger
}

func NewTransactionsHandler(repo infra.Repository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, log: log}
}

// ListTransactions handles GET /api/transactions?start_date=...&end_date=...
// Dates default to the trailing year.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startDate, endDate, err := dateRange(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.repo.QueryTransactionsByDateRange(ctx, startDate, endDate)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to query transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to query transactions")
		return
	}

	if transactions == nil {
		transactions = []*infra.TransactionRow{}
	}
	middleware.WriteJSON(w, http.StatusOK, transactions)
}

// dateRange parses start_date and end_date query parameters, defaulting to
// the trailing year ending today.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	startDate := time.Now().AddDate(-1, 0, 0)
	endDate := time.Now()

	if s := query.Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("start_date")
		}
		startDate = t
	}
	if s := query.Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("end_date")
		}
		endDate = t
	}
	return startDate, endDate, nil
}

type errInvalidDate string

func (e errInvalidDate) Error() string {
	return "Invalid " + string(e) + " format, expected YYYY-MM-DD"
}
