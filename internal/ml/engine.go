package ml

import (
	"fmt"
	"math"
	"sort"

	"diarisk/internal/models"
)

// maxAttributions caps how many feature attributions are reported and
// persisted per prediction.
const maxAttributions = 10

// Predictor is the seam the request handlers depend on.
type Predictor interface {
	Predict(input *models.PredictionInput) (*Result, error)
}

// Result is one completed inference: the percentage risk score and the top
// attributions sorted by descending absolute value, both rounded to two
// decimals.
type Result struct {
	RiskScore    float64
	Attributions models.AttributionList
}

// Engine runs the full inference pipeline in-process: preprocessing, the
// stacked ensemble and the explainer, all built from one loaded artifact.
// An Engine is read-only after construction and safe for concurrent use.
type Engine struct {
	preprocessor *Preprocessor
	ensemble     *Ensemble
	explainer    *LinearExplainer
}

func NewEngine(artifact *Artifact) (*Engine, error) {
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		preprocessor: NewPreprocessor(artifact.Preprocessor),
		ensemble:     NewEnsemble(artifact.BaseModels, artifact.MetaModel),
		explainer:    NewLinearExplainer(artifact.Explainer),
	}, nil
}

// Predict transforms the input, runs the ensemble and ranks the explainer's
// attributions. Deterministic for a fixed artifact.
func (e *Engine) Predict(input *models.PredictionInput) (*Result, error) {
	features, err := e.preprocessor.Transform(input)
	if err != nil {
		return nil, err
	}

	prob, err := e.ensemble.Predict(features)
	if err != nil {
		return nil, err
	}

	values, err := e.explainer.Attributions(features)
	if err != nil {
		return nil, err
	}

	names := e.preprocessor.FeatureNames()
	attributions := make(models.AttributionList, len(values))
	for i, v := range values {
		attributions[i] = models.Attribution{Feature: names[i], Value: v}
	}
	sort.SliceStable(attributions, func(i, j int) bool {
		return math.Abs(attributions[i].Value) > math.Abs(attributions[j].Value)
	})
	if len(attributions) > maxAttributions {
		attributions = attributions[:maxAttributions]
	}
	for i := range attributions {
		attributions[i].Value = round2(attributions[i].Value)
	}

	return &Result{
		RiskScore:    round2(prob * 100),
		Attributions: attributions,
	}, nil
}

// FeatureNames exposes the preprocessor's output feature names.
func (e *Engine) FeatureNames() []string {
	return e.preprocessor.FeatureNames()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ Predictor = (*Engine)(nil)

// String implements a short description used in startup logging.
func (e *Engine) String() string {
	return fmt.Sprintf("stacked ensemble (3 base + meta) over %d features", len(e.preprocessor.FeatureNames()))
}
