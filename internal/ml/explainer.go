package ml

import "fmt"

// LinearExplainer produces per-feature attribution values for one
// preprocessed input: weight times the feature's deviation from the
// explainer's background value. Weights and background come fitted from the
// artifact.
type LinearExplainer struct {
	weights    []float64
	background []float64
}

func NewLinearExplainer(spec ExplainerSpec) *LinearExplainer {
	return &LinearExplainer{weights: spec.Weights, background: spec.Background}
}

// Attributions returns one signed value per feature, aligned with the
// preprocessor's feature names.
func (e *LinearExplainer) Attributions(features []float64) ([]float64, error) {
	if len(features) != len(e.weights) {
		return nil, fmt.Errorf("explainer: got %d features, want %d", len(features), len(e.weights))
	}
	values := make([]float64, len(features))
	for i, x := range features {
		values[i] = e.weights[i] * (x - e.background[i])
	}
	return values, nil
}
