package ml

import (
	"fmt"
	"math"
)

// Predict applies the linear model to a feature vector and passes the result
// through the model's link function.
func (m LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("linear model: got %d features, want %d", len(features), len(m.Coefficients))
	}
	score := m.Intercept
	for i, c := range m.Coefficients {
		score += c * features[i]
	}
	if m.Link == "logistic" {
		score = 1 / (1 + math.Exp(-score))
	}
	return score, nil
}

// Ensemble stacks three base estimators under a meta estimator. The order of
// the base estimators is fixed by the artifact: the meta estimator consumes
// their outputs by position, matching training order.
type Ensemble struct {
	base []LinearModel
	meta LinearModel
}

func NewEnsemble(base []LinearModel, meta LinearModel) *Ensemble {
	return &Ensemble{base: base, meta: meta}
}

// Predict returns the combined risk probability in [0,1].
func (e *Ensemble) Predict(features []float64) (float64, error) {
	stacked := make([]float64, len(e.base))
	for i, m := range e.base {
		pred, err := m.Predict(features)
		if err != nil {
			return 0, fmt.Errorf("base model %d: %w", i, err)
		}
		stacked[i] = pred
	}

	prob, err := e.meta.Predict(stacked)
	if err != nil {
		return 0, fmt.Errorf("meta model: %w", err)
	}
	return math.Max(0, math.Min(1, prob)), nil
}
