package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// PredictionLog is one persisted prediction. Rows are written once and never
// updated or deleted by the service.
type PredictionLog struct {
	PredictionID   string         `gorm:"type:uuid;primaryKey" json:"prediction_id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	UserID         uint           `gorm:"index" json:"user_id" example:"1"`
	User           User           `gorm:"foreignKey:UserID" json:"-"`
	PredictionTime time.Time      `gorm:"index" json:"prediction_time" example:"2023-01-01T00:00:00Z"`
	RiskScore      float64        `gorm:"not null" json:"risk_score" example:"37.42"`
	FeatureInput   datatypes.JSON `gorm:"not null" json:"feature_input" swaggertype:"object"`
	ShapValues     datatypes.JSON `gorm:"not null" json:"shap_values" swaggertype:"object"`
	Recommendation string         `gorm:"type:text" json:"recommendation"`
}

func (PredictionLog) TableName() string {
	return "prediction_logs"
}

// PredictionInput carries the eight clinical fields required for one
// prediction. Numeric fields are pointers so that legitimate zero values
// still satisfy the required binding.
type PredictionInput struct {
	Gender            string   `json:"gender" binding:"required,oneof=Male Female" example:"Female"`
	Age               *int     `json:"age" binding:"required,gte=0,lte=120" example:"45"`
	Hypertension      *int     `json:"hypertension" binding:"required,gte=0,lte=1" example:"0"`
	HeartDisease      *int     `json:"heart_disease" binding:"required,gte=0,lte=1" example:"0"`
	SmokingHistory    string   `json:"smoking_history" binding:"required,oneof=non-smoker current_smoker past_smoker" example:"non-smoker"`
	BMI               *float64 `json:"bmi" binding:"required,gt=0,lt=100" example:"27.5"`
	HbA1cLevel        *float64 `json:"HbA1c_level" binding:"required,gte=0,lte=20" example:"5.8"`
	BloodGlucoseLevel *float64 `json:"blood_glucose_level" binding:"required,gte=0,lte=350" example:"110"`
}

// Snapshot returns the input as it is persisted alongside the prediction.
func (in *PredictionInput) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"gender":              in.Gender,
		"age":                 *in.Age,
		"hypertension":        *in.Hypertension,
		"heart_disease":       *in.HeartDisease,
		"smoking_history":     in.SmokingHistory,
		"bmi":                 *in.BMI,
		"HbA1c_level":         *in.HbA1cLevel,
		"blood_glucose_level": *in.BloodGlucoseLevel,
	}
}

// Attribution is one feature's signed contribution to a prediction.
type Attribution struct {
	Feature string
	Value   float64
}

// AttributionList keeps attributions sorted by descending absolute value.
// It marshals to a JSON object whose keys appear in list order, matching the
// shape clients receive in shap_values.
type AttributionList []Attribution

func (a AttributionList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Feature)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *AttributionList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attribution list: expected JSON object, got %v", tok)
	}

	out := AttributionList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attribution list: non-string key %v", keyTok)
		}
		var val float64
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("attribution list: value for %q: %w", key, err)
		}
		out = append(out, Attribution{Feature: key, Value: val})
	}
	*a = out
	return nil
}

// PredictionOutput is the response payload for a single prediction.
type PredictionOutput struct {
	PredictionID   string          `json:"prediction_id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	RiskScore      float64         `json:"risk_score" example:"37.42"`
	ShapValues     AttributionList `json:"shap_values" swaggertype:"object"`
	PredictionTime time.Time       `json:"prediction_time" example:"2023-01-01T00:00:00Z"`
	FeatureInput   json.RawMessage `json:"feature_input" swaggertype:"object"`
	Recommendation string          `json:"recommendation"`
}

// Output converts a stored log row into its response payload.
func (p *PredictionLog) Output() (PredictionOutput, error) {
	var shap AttributionList
	if err := json.Unmarshal(p.ShapValues, &shap); err != nil {
		return PredictionOutput{}, fmt.Errorf("decode shap_values for %s: %w", p.PredictionID, err)
	}
	return PredictionOutput{
		PredictionID:   p.PredictionID,
		RiskScore:      p.RiskScore,
		ShapValues:     shap,
		PredictionTime: p.PredictionTime,
		FeatureInput:   json.RawMessage(p.FeatureInput),
		Recommendation: p.Recommendation,
	}, nil
}

type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
