// Package cases exposes the on-demand predictor refresh for a case.
package cases

import (
	"encoding/json"
	"net/http"

	"github.com/courtflow/courtflow/api"
	"github.com/courtflow/courtflow/core/prediction"
	"github.com/courtflow/courtflow/core/store"
)

type estimateRequest struct {
	CaseID string `json:"case_id"`
}

type estimateResponse struct {
	CaseID                 string                     `json:"case_id"`
	EstimatedDurationHours float64                    `json:"estimated_duration_hours"`
	SettlementProbability  float64                    `json:"settlement_probability"`
	Outcome                prediction.OutcomeEstimate `json:"outcome"`
}

// NewEstimateHandler serves POST /api/cases/estimate. It scores the case with
// the prediction engine, persists the refreshed duration estimate and returns
// all three estimates.
func NewEstimateHandler(st store.CaseStore, eng prediction.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req estimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.CaseID == "" {
			http.Error(w, "case_id is required", http.StatusBadRequest)
			return
		}
		c, err := st.GetCase(r.Context(), req.CaseID)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		feats := prediction.CaseFeatures{
			CaseID:       c.ID,
			Jurisdiction: c.Jurisdiction,
			CaseType:     c.CaseType,
			Complexity:   c.ComplexityScore,
			Urgency:      c.UrgencyLevel,
			FiledAt:      c.FilingDate,
		}
		duration, err := eng.EstimateDuration(r.Context(), feats)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		settlement, err := eng.EstimateSettlement(r.Context(), feats)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		outcome, err := eng.EstimateOutcome(r.Context(), feats)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		if duration > 0 && duration != c.EstimatedDurationHours {
			c.EstimatedDurationHours = duration
			if err := st.UpdateCase(r.Context(), c); err != nil {
				api.WriteError(w, err)
				return
			}
		}
		api.WriteJSON(w, http.StatusOK, estimateResponse{
			CaseID:                 c.ID,
			EstimatedDurationHours: c.EstimatedDurationHours,
			SettlementProbability:  settlement,
			Outcome:                outcome,
		})
	})
}
