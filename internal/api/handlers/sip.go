package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/adityamisra/sip-planner/internal/api/middleware"
	"github.com/adityamisra/sip-planner/internal/cache"
	"github.com/adityamisra/sip-planner/internal/sip"
)

const planCacheTTL = 1 * time.Hour

// maxProjectionMonths bounds the projection length, and with it the size of
// the response payload. 100 years.
const maxProjectionMonths = 1200

// SIPHandler exposes the investment-plan calculator.
type SIPHandler struct {
	cache cache.Cache
	log   zerolog.Logger
}

func NewSIPHandler(c cache.Cache, log zerolog.Logger) *SIPHandler {
	return &SIPHandler{cache: c, log: log}
}

type plansRequest struct {
	MonthlySurplus     float64  `json:"monthly_surplus"`
	ExpectedReturnRate *float64 `json:"expected_return_rate"`
}

type plansResponse struct {
	Plans    sip.Plans `json:"plans"`
	Warnings []string  `json:"warnings,omitempty"`
}

// CalculatePlans handles POST /api/sip/plans
// Invalid parameters are rejected with the validation errors; warnings are
// attached to an otherwise successful response. Results are cached because
// the calculation is pure in its inputs.
func (h *SIPHandler) CalculatePlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req plansRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	validation := sip.ValidateParams(sip.Params{
		MonthlySurplus:     req.MonthlySurplus,
		ExpectedReturnRate: req.ExpectedReturnRate,
	})
	if !validation.Valid {
		middleware.WriteJSON(w, http.StatusUnprocessableEntity, validation)
		return
	}

	key := planCacheKey(req.MonthlySurplus, req.ExpectedReturnRate)
	if cached, ok := h.cache.Get(ctx, key); ok {
		var resp plansResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			middleware.WriteJSON(w, http.StatusOK, resp)
			return
		}
	}

	plans, err := sip.CalculatePlans(req.MonthlySurplus, req.ExpectedReturnRate)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to calculate plans")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to calculate plans")
		return
	}

	resp := plansResponse{Plans: plans, Warnings: validation.Warnings}
	if encoded, err := json.Marshal(resp); err == nil {
		if err := h.cache.Set(ctx, key, string(encoded), planCacheTTL); err != nil {
			h.log.Warn().Err(err).Msg("Failed to cache plan result")
		}
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

type goalRequest struct {
	GoalAmount    float64 `json:"goal_amount"`
	DurationYears int     `json:"duration_years"`
	AnnualRate    float64 `json:"annual_rate"`
}

// CalculateGoal handles POST /api/sip/goal
// It solves for the monthly contribution needed to reach a target amount.
func (h *SIPHandler) CalculateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.GoalAmount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "goal_amount must be greater than 0")
		return
	}
	if req.DurationYears <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "duration_years must be greater than 0")
		return
	}
	if req.AnnualRate < 0 || req.AnnualRate > 30 {
		middleware.WriteError(w, http.StatusBadRequest, "annual_rate should be between 0% and 30%")
		return
	}

	result := sip.CalculateForGoal(req.GoalAmount, req.DurationYears, req.AnnualRate)
	middleware.WriteJSON(w, http.StatusOK, result)
}

// GetProjection handles GET /api/sip/projection?monthly_sip=...&duration_months=...&annual_rate=...
func (h *SIPHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	monthlySIP, err := strconv.ParseFloat(query.Get("monthly_sip"), 64)
	if err != nil || monthlySIP <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "monthly_sip must be a positive number")
		return
	}

	durationMonths, err := strconv.Atoi(query.Get("duration_months"))
	if err != nil || durationMonths <= 0 || durationMonths > maxProjectionMonths {
		middleware.WriteError(w, http.StatusBadRequest, "duration_months must be between 1 and 1200")
		return
	}

	annualRate, err := strconv.ParseFloat(query.Get("annual_rate"), 64)
	if err != nil || annualRate < 0 || annualRate > 30 {
		middleware.WriteError(w, http.StatusBadRequest, "annual_rate should be between 0% and 30%")
		return
	}

	projection := sip.Projection(monthlySIP, durationMonths, annualRate/100/12)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"projection": projection,
		"months":     len(projection),
	})
}

func planCacheKey(surplus float64, rate *float64) string {
	if rate == nil {
		return fmt.Sprintf("sip:plans:%.2f:default", surplus)
	}
	return fmt.Sprintf("sip:plans:%.2f:%.2f", surplus, *rate)
}
