package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"diarisk/internal/models"
)

const defaultModel = "gemini-1.5-pro-latest"

// Generator produces free-text content for predictions and chat. Callers
// decide how to recover from a failed generation; the client itself never
// substitutes fallback text.
type Generator interface {
	GenerateRecommendation(ctx context.Context, riskScore float64, attributions models.AttributionList) (string, error)
	Answer(ctx context.Context, question string) (string, error)
}

// Client talks to the Gemini generateContent REST API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient() (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://generativelanguage.googleapis.com",
		httpClient: &http.Client{},
	}, nil
}

// GenerateRecommendation asks for practical advice given one prediction's
// score and its most influential factors.
func (c *Client) GenerateRecommendation(ctx context.Context, riskScore float64, attributions models.AttributionList) (string, error) {
	factors := make([]string, len(attributions))
	for i, attr := range attributions {
		factors[i] = fmt.Sprintf("%s (%+.2f)", attr.Feature, attr.Value)
	}

	prompt := fmt.Sprintf(
		"A patient has a diabetes risk score of %.2f%%. "+
			"The most influential factors (with SHAP values) are: %s. "+
			"Based on this, provide personalized, practical recommendations for the patient to reduce their diabetes risk.",
		riskScore, strings.Join(factors, ", "))

	return c.generateContent(ctx, prompt)
}

// Answer handles a free-form question from an authenticated user.
func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a helpful diabetes assistant. "+
			"Answer the following user question in a clear and friendly way:\nQuestion: %s",
		question)

	return c.generateContent(ctx, prompt)
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var errorResponse struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(response.Body).Decode(&errorResponse); err != nil {
			return "", fmt.Errorf("Gemini API returned non-200 status code: %d", response.StatusCode)
		}
		return "", fmt.Errorf("Gemini API error: %s", errorResponse.Error.Message)
	}

	var result generateContentResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no generation candidates returned")
	}

	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	return strings.TrimSpace(text.String()), nil
}

var _ Generator = (*Client)(nil)
