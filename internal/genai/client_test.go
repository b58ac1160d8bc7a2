package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"diarisk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		apiKey:     "test-key",
		model:      "gemini-1.5-pro-latest",
		baseURL:    serverURL,
		httpClient: http.DefaultClient,
	}
}

func TestGenerateRecommendation(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.NotEmpty(t, req.Contents[0].Parts)
		gotPrompt = req.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "  Walk 30 minutes a day.  "}}}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	attributions := models.AttributionList{
		{Feature: "HbA1c_level", Value: 0.31},
		{Feature: "blood_glucose_level", Value: -0.12},
	}

	text, err := client.GenerateRecommendation(context.Background(), 37.42, attributions)
	require.NoError(t, err)
	assert.Equal(t, "Walk 30 minutes a day.", text)

	assert.Contains(t, gotPrompt, "diabetes risk score of 37.42%")
	assert.Contains(t, gotPrompt, "HbA1c_level (+0.31)")
	assert.Contains(t, gotPrompt, "blood_glucose_level (-0.12)")
}

func TestAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "HbA1c measures average blood sugar."}}}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Answer(context.Background(), "What is HbA1c?")
	require.NoError(t, err)
	assert.Equal(t, "HbA1c measures average blood sugar.", text)
}

func TestGenerateContentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Resource has been exhausted"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Answer(context.Background(), "What is HbA1c?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resource has been exhausted")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Answer(context.Background(), "What is HbA1c?")
	assert.Error(t, err)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := NewClient()
	assert.Error(t, err)
}
