package prediction

import (
	"context"
	"time"

	"github.com/courtflow/courtflow/core/model"
)

// CaseFeatures carries the inputs the model service scores a case on.
type CaseFeatures struct {
	CaseID       string             `json:"case_id"`
	Jurisdiction model.Jurisdiction `json:"jurisdiction"`
	CaseType     string             `json:"case_type,omitempty"`
	Complexity   int                `json:"complexity_score"`
	Urgency      model.UrgencyLevel `json:"urgency_level"`
	FiledAt      time.Time          `json:"filing_date"`
}

// OutcomeEstimate holds per-outcome probabilities and model confidence.
type OutcomeEstimate struct {
	Probabilities map[string]float64 `json:"probabilities"`
	Confidence    float64            `json:"confidence"`
}

// Engine estimates case-level quantities using an external predictive model.
// The scheduling core consumes the duration estimate as an opaque value and
// never recomputes it.
type Engine interface {
	// EstimateDuration returns the expected hearing duration in hours.
	EstimateDuration(ctx context.Context, f CaseFeatures) (float64, error)

	// EstimateOutcome returns outcome probabilities for the case.
	EstimateOutcome(ctx context.Context, f CaseFeatures) (OutcomeEstimate, error)

	// EstimateSettlement returns the probability [0,1] that the case settles
	// before judgment.
	EstimateSettlement(ctx context.Context, f CaseFeatures) (float64, error)
}
