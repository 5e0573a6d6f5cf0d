package prediction

import "context"

// MockEngine returns deterministic estimates keyed by case id. Unconfigured
// cases fall back to neutral defaults.
type MockEngine struct {
	Durations   map[string]float64
	Outcomes    map[string]OutcomeEstimate
	Settlements map[string]float64
}

// EstimateDuration returns the configured duration for the case or 1 hour.
func (m MockEngine) EstimateDuration(_ context.Context, f CaseFeatures) (float64, error) {
	if m.Durations != nil {
		if d, ok := m.Durations[f.CaseID]; ok {
			return d, nil
		}
	}
	return 1, nil
}

// EstimateOutcome returns the configured outcome estimate or an empty one.
func (m MockEngine) EstimateOutcome(_ context.Context, f CaseFeatures) (OutcomeEstimate, error) {
	if m.Outcomes != nil {
		if o, ok := m.Outcomes[f.CaseID]; ok {
			probs := make(map[string]float64, len(o.Probabilities))
			for k, v := range o.Probabilities {
				probs[k] = v
			}
			return OutcomeEstimate{Probabilities: probs, Confidence: o.Confidence}, nil
		}
	}
	return OutcomeEstimate{}, nil
}

// EstimateSettlement returns the configured settlement probability or 0.
func (m MockEngine) EstimateSettlement(_ context.Context, f CaseFeatures) (float64, error) {
	if m.Settlements != nil {
		if p, ok := m.Settlements[f.CaseID]; ok {
			return p, nil
		}
	}
	return 0, nil
}
