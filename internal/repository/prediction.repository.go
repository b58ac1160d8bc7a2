package repository

import (
	"errors"

	"diarisk/internal/models"

	"gorm.io/gorm"
)

type PredictionRepository interface {
	SavePrediction(log *models.PredictionLog) error
	GetPredictionsByUserID(userID uint) ([]models.PredictionLog, error)
	GetPredictionByIDAndUserID(predictionID string, userID uint) (*models.PredictionLog, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) SavePrediction(log *models.PredictionLog) error {
	return r.db.Create(log).Error
}

func (r *predictionRepository) GetPredictionsByUserID(userID uint) ([]models.PredictionLog, error) {
	var logs []models.PredictionLog
	err := r.db.Where("user_id = ?", userID).Order("prediction_time DESC").Find(&logs).Error
	return logs, err
}

// GetPredictionByIDAndUserID is owner-scoped on purpose: a record owned by a
// different user is indistinguishable from a missing one.
func (r *predictionRepository) GetPredictionByIDAndUserID(predictionID string, userID uint) (*models.PredictionLog, error) {
	var log models.PredictionLog
	err := r.db.Where("prediction_id = ? AND user_id = ?", predictionID, userID).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}
