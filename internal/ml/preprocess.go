package ml

import (
	"fmt"

	"diarisk/internal/models"
)

// Preprocessor maps a validated PredictionInput onto the numeric feature
// vector the estimators were trained on. Transformation is a pure function
// of the input; the fitted statistics come from the artifact.
type Preprocessor struct {
	transformers []Transformer
	featureNames []string
}

func NewPreprocessor(transformers []Transformer) *Preprocessor {
	names := make([]string, 0)
	for _, tr := range transformers {
		switch tr.Type {
		case "scaler":
			names = append(names, tr.Features...)
		case "onehot":
			for _, cat := range tr.Categories {
				names = append(names, fmt.Sprintf("%s_%s", tr.Feature, cat))
			}
		}
	}
	return &Preprocessor{transformers: transformers, featureNames: names}
}

// FeatureNames returns the output feature names in transformer declaration
// order. One-hot features are named <column>_<category>.
func (p *Preprocessor) FeatureNames() []string {
	return p.featureNames
}

// Transform produces the preprocessed feature vector for one input.
func (p *Preprocessor) Transform(input *models.PredictionInput) ([]float64, error) {
	features := make([]float64, 0, len(p.featureNames))
	for _, tr := range p.transformers {
		switch tr.Type {
		case "scaler":
			for i, name := range tr.Features {
				raw, err := numericColumn(input, name)
				if err != nil {
					return nil, err
				}
				features = append(features, (raw-tr.Means[i])/tr.Scales[i])
			}
		case "onehot":
			value, err := categoricalColumn(input, tr.Feature)
			if err != nil {
				return nil, err
			}
			matched := false
			for _, cat := range tr.Categories {
				if value == cat {
					features = append(features, 1)
					matched = true
				} else {
					features = append(features, 0)
				}
			}
			if !matched {
				return nil, fmt.Errorf("preprocess: unknown %s category %q", tr.Feature, value)
			}
		}
	}
	return features, nil
}

func numericColumn(input *models.PredictionInput, name string) (float64, error) {
	switch name {
	case "age":
		return float64(*input.Age), nil
	case "hypertension":
		return float64(*input.Hypertension), nil
	case "heart_disease":
		return float64(*input.HeartDisease), nil
	case "bmi":
		return *input.BMI, nil
	case "HbA1c_level":
		return *input.HbA1cLevel, nil
	case "blood_glucose_level":
		return *input.BloodGlucoseLevel, nil
	default:
		return 0, fmt.Errorf("preprocess: unknown numeric column %q", name)
	}
}

func categoricalColumn(input *models.PredictionInput, name string) (string, error) {
	switch name {
	case "gender":
		return input.Gender, nil
	case "smoking_history":
		return input.SmokingHistory, nil
	default:
		return "", fmt.Errorf("preprocess: unknown categorical column %q", name)
	}
}
