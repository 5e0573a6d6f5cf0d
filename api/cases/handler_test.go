package cases

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/prediction"
	"github.com/courtflow/courtflow/core/store"
)

func seedCase(t *testing.T) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	if err := st.CreateCase(context.Background(), model.Case{
		ID: "c1", CaseNumber: "CIV-100", Title: "Arden v. Blake", CourtID: "court-1",
		Jurisdiction: model.JurisdictionCivil, Status: model.CaseAdmitted,
		UrgencyLevel: model.UrgencyRegular, ComplexityScore: 6, PublicInterestScore: 3,
		EstimatedDurationHours: 1, FilingDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create case: %v", err)
	}
	return st
}

func TestEstimateHandler(t *testing.T) {
	st := seedCase(t)
	eng := prediction.MockEngine{
		Durations:   map[string]float64{"c1": 3.5},
		Settlements: map[string]float64{"c1": 0.4},
		Outcomes: map[string]prediction.OutcomeEstimate{
			"c1": {Probabilities: map[string]float64{"plaintiff": 0.7}, Confidence: 0.8},
		},
	}
	h := NewEstimateHandler(st, eng)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/cases/estimate", strings.NewReader(`{"case_id":"c1"}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}

	var out struct {
		CaseID                 string  `json:"case_id"`
		EstimatedDurationHours float64 `json:"estimated_duration_hours"`
		SettlementProbability  float64 `json:"settlement_probability"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CaseID != "c1" || out.EstimatedDurationHours != 3.5 || out.SettlementProbability != 0.4 {
		t.Fatalf("unexpected response %+v", out)
	}

	c, err := st.GetCase(context.Background(), "c1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if c.EstimatedDurationHours != 3.5 {
		t.Fatalf("duration not persisted, got %v", c.EstimatedDurationHours)
	}
}

func TestEstimateHandler_UnknownCase(t *testing.T) {
	st := seedCase(t)
	h := NewEstimateHandler(st, prediction.MockEngine{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/cases/estimate", strings.NewReader(`{"case_id":"nope"}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestEstimateHandler_MissingCaseID(t *testing.T) {
	st := seedCase(t)
	h := NewEstimateHandler(st, prediction.MockEngine{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/cases/estimate", strings.NewReader(`{}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
