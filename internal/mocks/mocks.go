package mocks

import (
	"context"

	"diarisk/internal/ml"
	"diarisk/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

// Shared MockPredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) SavePrediction(log *models.PredictionLog) error {
	args := m.Called(log)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetPredictionsByUserID(userID uint) ([]models.PredictionLog, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PredictionLog), args.Error(1)
}

func (m *MockPredictionRepository) GetPredictionByIDAndUserID(predictionID string, userID uint) (*models.PredictionLog, error) {
	args := m.Called(predictionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PredictionLog), args.Error(1)
}

// Shared MockPredictor
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(input *models.PredictionInput) (*ml.Result, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ml.Result), args.Error(1)
}

// Shared MockGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateRecommendation(ctx context.Context, riskScore float64, attributions models.AttributionList) (string, error) {
	args := m.Called(ctx, riskScore, attributions)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Answer(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}
