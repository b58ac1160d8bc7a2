package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// Transformer is one block of the fitted preprocessing pipeline, in the
// declaration order used at training time. A "scaler" block standardizes a
// run of numeric columns; a "onehot" block expands one categorical column
// into indicator features, one per declared category.
type Transformer struct {
	Type       string    `json:"type"`
	Features   []string  `json:"features,omitempty"`
	Means      []float64 `json:"means,omitempty"`
	Scales     []float64 `json:"scales,omitempty"`
	Feature    string    `json:"feature,omitempty"`
	Categories []string  `json:"categories,omitempty"`
}

// LinearModel is a fitted estimator exported as coefficients over the
// preprocessed feature space plus an intercept and a link function.
type LinearModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Link         string    `json:"link"`
}

// ExplainerSpec carries the attribution weights and the background vector
// (both in preprocessed feature space) exported from the fitted explainer.
type ExplainerSpec struct {
	Weights    []float64 `json:"weights"`
	Background []float64 `json:"background"`
}

// Artifact is the serialized pre-trained model bundle. It is loaded once at
// startup and treated as read-only for the lifetime of the process.
type Artifact struct {
	Preprocessor []Transformer `json:"preprocessor"`
	BaseModels   []LinearModel `json:"base_models"`
	MetaModel    LinearModel   `json:"meta_model"`
	Explainer    ExplainerSpec `json:"explainer"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	return &artifact, nil
}

// Validate checks internal consistency: transformer blocks are well formed,
// every estimator matches the preprocessed feature width, and the meta
// estimator takes exactly one input per base estimator.
func (a *Artifact) Validate() error {
	if len(a.Preprocessor) == 0 {
		return fmt.Errorf("preprocessor has no transformer blocks")
	}

	width := 0
	for i, tr := range a.Preprocessor {
		switch tr.Type {
		case "scaler":
			if len(tr.Features) == 0 {
				return fmt.Errorf("transformer %d: scaler has no features", i)
			}
			if len(tr.Means) != len(tr.Features) || len(tr.Scales) != len(tr.Features) {
				return fmt.Errorf("transformer %d: scaler means/scales do not match feature count", i)
			}
			for j, s := range tr.Scales {
				if s == 0 {
					return fmt.Errorf("transformer %d: zero scale for %s", i, tr.Features[j])
				}
			}
			width += len(tr.Features)
		case "onehot":
			if tr.Feature == "" || len(tr.Categories) == 0 {
				return fmt.Errorf("transformer %d: onehot missing feature or categories", i)
			}
			width += len(tr.Categories)
		default:
			return fmt.Errorf("transformer %d: unknown type %q", i, tr.Type)
		}
	}

	if len(a.BaseModels) != 3 {
		return fmt.Errorf("expected 3 base models, got %d", len(a.BaseModels))
	}
	for i, m := range a.BaseModels {
		if len(m.Coefficients) != width {
			return fmt.Errorf("base model %d: %d coefficients for %d features", i, len(m.Coefficients), width)
		}
		if err := validateLink(m.Link); err != nil {
			return fmt.Errorf("base model %d: %w", i, err)
		}
	}

	if len(a.MetaModel.Coefficients) != len(a.BaseModels) {
		return fmt.Errorf("meta model: %d coefficients for %d base models", len(a.MetaModel.Coefficients), len(a.BaseModels))
	}
	if err := validateLink(a.MetaModel.Link); err != nil {
		return fmt.Errorf("meta model: %w", err)
	}

	if len(a.Explainer.Weights) != width || len(a.Explainer.Background) != width {
		return fmt.Errorf("explainer: weights/background do not match feature width %d", width)
	}

	return nil
}

func validateLink(link string) error {
	switch link {
	case "identity", "logistic":
		return nil
	default:
		return fmt.Errorf("unknown link %q", link)
	}
}
