package controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"diarisk/internal/controllers"
	"diarisk/internal/mocks"
	"diarisk/internal/models"
	"diarisk/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupAuthControllerWithMocks() (*controllers.AuthController, *mocks.MockUserRepository) {
	mockUserRepo := new(mocks.MockUserRepository)
	controller := controllers.NewAuthController(mockUserRepo)
	return controller, mockUserRepo
}

func addAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful registration",
			requestBody: map[string]interface{}{
				"username": "johndoe",
				"email":    "john@example.com",
				"password": "secret123",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("UsernameExists", "johndoe").Return(false, nil)
				userRepo.On("EmailExists", "john@example.com").Return(false, nil)
				userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User created successfully",
		},
		{
			name: "duplicate username",
			requestBody: map[string]interface{}{
				"username": "johndoe",
				"email":    "new@example.com",
				"password": "secret123",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("UsernameExists", "johndoe").Return(true, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Username already registered",
		},
		{
			name: "duplicate email with new username",
			requestBody: map[string]interface{}{
				"username": "newname",
				"email":    "john@example.com",
				"password": "secret123",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("UsernameExists", "newname").Return(false, nil)
				userRepo.On("EmailExists", "john@example.com").Return(true, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Email already registered",
		},
		{
			// When both conflict, the username check runs first and wins;
			// the email check is never reached.
			name: "both username and email conflict",
			requestBody: map[string]interface{}{
				"username": "johndoe",
				"email":    "john@example.com",
				"password": "secret123",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("UsernameExists", "johndoe").Return(true, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Username already registered",
		},
		{
			name: "invalid email",
			requestBody: map[string]interface{}{
				"username": "johndoe",
				"email":    "not-an-email",
				"password": "secret123",
			},
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "persistence failure",
			requestBody: map[string]interface{}{
				"username": "johndoe",
				"email":    "john@example.com",
				"password": "secret123",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("UsernameExists", "johndoe").Return(false, nil)
				userRepo.On("EmailExists", "john@example.com").Return(false, nil)
				userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Error creating user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockUserRepo := setupAuthControllerWithMocks()
			tt.setupMocks(mockUserRepo)

			router := setupAuthTestRouter()
			router.POST("/register", controller.Register)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMsg, response["message"])

			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	controller, mockUserRepo := setupAuthControllerWithMocks()
	mockUserRepo.On("UsernameExists", "johndoe").Return(false, nil)
	mockUserRepo.On("EmailExists", "john@example.com").Return(false, nil)

	var created *models.User
	mockUserRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil)

	router := setupAuthTestRouter()
	router.POST("/register", controller.Register)

	body, _ := json.Marshal(map[string]interface{}{
		"username": "johndoe",
		"email":    "john@example.com",
		"password": "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, created)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "secret123", created.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.HashedPassword), []byte("secret123")))
}

func TestToken(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET_KEY")

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &models.User{
		ID:             1,
		Username:       "johndoe",
		Email:          "john@example.com",
		HashedPassword: string(hash),
		IsActive:       true,
	}

	tests := []struct {
		name           string
		form           url.Values
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		checkToken     bool
	}{
		{
			name: "successful login",
			form: url.Values{"username": {"johndoe"}, "password": {"secret123"}},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByUsername", "johndoe").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			checkToken:     true,
		},
		{
			name: "unknown username",
			form: url.Values{"username": {"ghost"}, "password": {"secret123"}},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByUsername", "ghost").Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "incorrect password",
			form: url.Values{"username": {"johndoe"}, "password": {"wrong"}},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByUsername", "johndoe").Return(user, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			form:           url.Values{"username": {"johndoe"}},
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockUserRepo := setupAuthControllerWithMocks()
			tt.setupMocks(mockUserRepo)

			router := setupAuthTestRouter()
			router.POST("/token", controller.Token)

			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.checkToken {
				var response models.TokenResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.NotEmpty(t, response.AccessToken)
				assert.Equal(t, "bearer", response.TokenType)
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestMe(t *testing.T) {
	tests := []struct {
		name           string
		userID         uint
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
	}{
		{
			name:   "current user returned",
			userID: 1,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByID", uint(1)).Return(&models.User{
					ID:       1,
					Username: "johndoe",
					Email:    "john@example.com",
					IsActive: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "inactive user",
			userID: 2,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByID", uint(2)).Return(&models.User{
					ID:       2,
					Username: "ghost",
					IsActive: false,
				}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "user not found",
			userID: 3,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByID", uint(3)).Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockUserRepo := setupAuthControllerWithMocks()
			tt.setupMocks(mockUserRepo)

			router := setupAuthTestRouter()
			router.GET("/me", addAuthMiddleware(tt.userID), controller.Me)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, "johndoe", response["username"])
				assert.Equal(t, true, response["is_active"])
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}
