package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/adityamisra/sip-planner/internal/analysis"
	"github.com/adityamisra/sip-planner/internal/api/middleware"
	infra "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/statement"
)

// AnalysisHandler computes spending analyses over stored transactions.
type AnalysisHandler struct {
	repo infra.Repository
	log  zerolog.Logger
}

func NewAnalysisHandler(repo infra.Repository, log zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{repo: repo, log: log}
}

// GetAnalysis handles GET /api/analysis?start_date=...&end_date=...
// It aggregates the stored transactions in the window and attaches spending
// insights, unusual-spending flags and the monthly trend.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startDate, endDate, err := dateRange(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.repo.QueryTransactionsByDateRange(ctx, startDate, endDate)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to query transactions for analysis")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to query transactions")
		return
	}

	txs := rowsToTransactions(rows)
	a := analysis.Analyze(txs, startDate, endDate)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"analysis":         a,
		"insights":         analysis.SpendingInsights(a),
		"unusual_spending": analysis.DetectUnusualSpending(txs),
		"monthly_trend":    analysis.MonthlyTrend(txs),
	})
}

func rowsToTransactions(rows []*infra.TransactionRow) []statement.Transaction {
	txs := make([]statement.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, row.ToTransaction())
	}
	return txs
}
