package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adityamisra/sip-planner/internal/cache"
	"github.com/adityamisra/sip-planner/internal/sip"
)

func newTestSIPHandler() *SIPHandler {
	return NewSIPHandler(cache.NewMemory(), zerolog.New(io.Discard))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCalculatePlansOK(t *testing.T) {
	h := newTestSIPHandler()
	rec := postJSON(t, h.CalculatePlans, "/api/sip/plans", `{"monthly_surplus": 22771}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp plansResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Plans.ShortTerm.MonthlySIP != 4554 {
		t.Errorf("short-term SIP = %d, want 4554", resp.Plans.ShortTerm.MonthlySIP)
	}
	if resp.Plans.LongTerm.ExpectedReturnRate != 12 {
		t.Errorf("long-term rate = %v, want 12", resp.Plans.LongTerm.ExpectedReturnRate)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", resp.Warnings)
	}
}

func TestCalculatePlansInvalidSurplus(t *testing.T) {
	h := newTestSIPHandler()
	rec := postJSON(t, h.CalculatePlans, "/api/sip/plans", `{"monthly_surplus": -5}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var v sip.Validation
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if v.Valid || len(v.Errors) == 0 {
		t.Errorf("validation = %+v, want errors", v)
	}
}

func TestCalculatePlansWarningPassedThrough(t *testing.T) {
	h := newTestSIPHandler()
	rec := postJSON(t, h.CalculatePlans, "/api/sip/plans", `{"monthly_surplus": 2000000}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp plansResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", resp.Warnings)
	}
}

func TestCalculatePlansBadBody(t *testing.T) {
	h := newTestSIPHandler()
	rec := postJSON(t, h.CalculatePlans, "/api/sip/plans", `{"monthly_surplus": `)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCalculateGoalOK(t *testing.T) {
	h := newTestSIPHandler()
	rec := postJSON(t, h.CalculateGoal, "/api/sip/goal", `{"goal_amount": 12000, "duration_years": 1, "annual_rate": 0}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result sip.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if result.MonthlySIP != 1000 {
		t.Errorf("monthly SIP = %d, want 1000", result.MonthlySIP)
	}
}

func TestCalculateGoalValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero goal", `{"goal_amount": 0, "duration_years": 5, "annual_rate": 10}`},
		{"zero duration", `{"goal_amount": 100000, "duration_years": 0, "annual_rate": 10}`},
		{"rate too high", `{"goal_amount": 100000, "duration_years": 5, "annual_rate": 45}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestSIPHandler()
			rec := postJSON(t, h.CalculateGoal, "/api/sip/goal", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGetProjectionOK(t *testing.T) {
	h := newTestSIPHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/sip/projection?monthly_sip=1000&duration_months=12&annual_rate=12", nil)
	rec := httptest.NewRecorder()
	h.GetProjection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Projection []sip.ProjectionEntry `json:"projection"`
		Months     int                   `json:"months"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Months != 12 || len(resp.Projection) != 12 {
		t.Fatalf("months = %d with %d entries, want 12", resp.Months, len(resp.Projection))
	}
	if resp.Projection[0].TotalValue != 1010 {
		t.Errorf("first month total = %d, want 1010", resp.Projection[0].TotalValue)
	}
}

func TestGetProjectionValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing sip", "duration_months=12&annual_rate=12"},
		{"negative sip", "monthly_sip=-10&duration_months=12&annual_rate=12"},
		{"bad duration", "monthly_sip=1000&duration_months=abc&annual_rate=12"},
		{"duration over the cap", "monthly_sip=1000&duration_months=1201&annual_rate=12"},
		{"rate too high", "monthly_sip=1000&duration_months=12&annual_rate=99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestSIPHandler()
			req := httptest.NewRequest(http.MethodGet, "/api/sip/projection?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.GetProjection(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCalculatePlansServesFromCache(t *testing.T) {
	c := cache.NewMemory()
	h := NewSIPHandler(c, zerolog.New(io.Discard))

	first := postJSON(t, h.CalculatePlans, "/api/sip/plans", `{"monthly_surplus": 30000}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first call status = %d", first.Code)
	}
	if _, ok := c.Get(context.Background(), "sip:plans:30000.00:default"); !ok {
		t.Fatal("result was not cached")
	}

	second := postJSON(t, h.CalculatePlans, "/api/sip/plans", `{"monthly_surplus": 30000}`)
	if second.Code != http.StatusOK {
		t.Fatalf("second call status = %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs from the computed one")
	}
}
