package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"diarisk/internal/genai"
	"diarisk/internal/ml"
	"diarisk/internal/models"
	"diarisk/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// fallbackRecommendation replaces the generated text whenever the
// generative service fails. Generation failures never fail the request.
const fallbackRecommendation = "Recommendation API quota exceeded or Gemini API error. Please try again later."

const generationTimeout = 30 * time.Second

type PredictionController struct {
	repo      repository.PredictionRepository
	predictor ml.Predictor
	generator genai.Generator
}

func NewPredictionController(
	repo repository.PredictionRepository,
	predictor ml.Predictor,
	generator genai.Generator,
) *PredictionController {
	return &PredictionController{
		repo:      repo,
		predictor: predictor,
		generator: generator,
	}
}

// MakePrediction godoc
// @Summary Make a diabetes risk prediction
// @Description Run the stacked ensemble on the submitted clinical features, explain the score, generate a recommendation and persist the result
// @Tags prediction
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body models.PredictionInput true "Clinical features"
// @Success 200 {object} models.PredictionOutput "Prediction result"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Prediction failed"
// @Router /predict [post]
func (pc *PredictionController) MakePrediction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	var input models.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	// Preprocessing, ensemble inference and attribution ranking. Any
	// failure here aborts the request before anything is persisted.
	result, err := pc.predictor.Predict(&input)
	if err != nil {
		log.Printf("Prediction error for user %d: %v", userID.(uint), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Prediction failed",
			"error":   err.Error(),
		})
		return
	}

	recommendation := pc.recommendationFor(c.Request.Context(), result)

	featureInput, err := json.Marshal(input.Snapshot())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Prediction failed",
			"error":   err.Error(),
		})
		return
	}
	shapValues, err := json.Marshal(result.Attributions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Prediction failed",
			"error":   err.Error(),
		})
		return
	}

	entry := &models.PredictionLog{
		PredictionID:   uuid.NewString(),
		UserID:         userID.(uint),
		PredictionTime: time.Now().UTC(),
		RiskScore:      result.RiskScore,
		FeatureInput:   datatypes.JSON(featureInput),
		ShapValues:     datatypes.JSON(shapValues),
		Recommendation: recommendation,
	}
	if err := pc.repo.SavePrediction(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save prediction",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PredictionOutput{
		PredictionID:   entry.PredictionID,
		RiskScore:      entry.RiskScore,
		ShapValues:     result.Attributions,
		PredictionTime: entry.PredictionTime,
		FeatureInput:   json.RawMessage(entry.FeatureInput),
		Recommendation: entry.Recommendation,
	})
}

// recommendationFor collapses a failed generation to the fixed fallback
// string at this boundary; the generative call itself reports errors.
func (pc *PredictionController) recommendationFor(ctx context.Context, result *ml.Result) string {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	recommendation, err := pc.generator.GenerateRecommendation(ctx, result.RiskScore, result.Attributions)
	if err != nil {
		log.Printf("Recommendation generation failed: %v", err)
		return fallbackRecommendation
	}
	return recommendation
}

// ListPredictions godoc
// @Summary List the current user's predictions
// @Description Return every prediction owned by the authenticated user, newest first
// @Tags prediction
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.PredictionOutput "Predictions"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to list predictions"
// @Router /predictions [get]
func (pc *PredictionController) ListPredictions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	logs, err := pc.repo.GetPredictionsByUserID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to list predictions",
			"error":   err.Error(),
		})
		return
	}

	outputs := make([]models.PredictionOutput, 0, len(logs))
	for i := range logs {
		out, err := logs[i].Output()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to list predictions",
				"error":   err.Error(),
			})
			return
		}
		outputs = append(outputs, out)
	}

	c.JSON(http.StatusOK, outputs)
}

// GetPrediction godoc
// @Summary Get one prediction
// @Description Return a prediction by identifier if it belongs to the authenticated user
// @Tags prediction
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prediction ID"
// @Success 200 {object} models.PredictionOutput "Prediction"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Prediction not found"
// @Router /predictions/{id} [get]
func (pc *PredictionController) GetPrediction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	entry, err := pc.repo.GetPredictionByIDAndUserID(c.Param("id"), userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Prediction not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch prediction",
			"error":   err.Error(),
		})
		return
	}

	out, err := entry.Output()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch prediction",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, out)
}
