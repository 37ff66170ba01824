package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/sirupsen/logrus"
)

const (
	ProviderName   = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
)

// GeminiRequest represents the request body for Gemini's generate content API
type GeminiRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiContent represents a content item in the Gemini request format
type GeminiContent struct {
	Role  string       `json:"role,omitempty"` // "user" or "model"
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of the content in the Gemini request format
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiGenerationConfig carries sampling parameters
type GeminiGenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

// GeminiResponse represents the full response from Gemini API
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
	Error      *GeminiError      `json:"error,omitempty"`
}

// GeminiCandidate represents a candidate response
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

// GeminiError is the error object returned on non-2xx responses
type GeminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Config defines the configuration interface for Gemini provider
type Config interface {
	GetModel() string
	GetTemperature() float64
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the chatbot.Backend interface for Gemini
type Provider struct {
	config Config
	client *http.Client
	logger logrus.FieldLogger
}

// NewProvider creates a new Gemini provider instance
func NewProvider(config Config, logger logrus.FieldLogger) *Provider {
	return &Provider{
		config: config,
		client: &http.Client{},
		logger: logger.WithField("provider", ProviderName),
	}
}

// Complete sends the merged prompt as a single user content and returns
// the text of the first candidate.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := p.config.GetTemperature()
	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{
				Role:  "user",
				Parts: []GeminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: &GeminiGenerationConfig{Temperature: &temperature},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "error marshaling request: %v", err)
	}

	_, modelName, err := chatbot.ParseModelString(p.config.GetModel())
	if err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "invalid model format: %v", err)
	}

	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return "", &chatbot.BackendError{Provider: ProviderName, Kind: chatbot.KindAuth, Err: err}
	}

	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		baseURL = DefaultBaseURL
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", baseURL, modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindNetwork, "error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.WithField("status", resp.StatusCode).Debugf("Raw API error: %s", string(body))
		var result GeminiResponse
		if json.Unmarshal(body, &result) == nil && result.Error != nil {
			return "", chatbot.NewBackendError(ProviderName, chatbot.KindForStatus(resp.StatusCode), "API error (HTTP %d): %s", resp.StatusCode, result.Error.Message)
		}
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindForStatus(resp.StatusCode), "API error (HTTP %d): %s", resp.StatusCode, string(body))
	}

	p.logger.Debugf("Raw API response: %s", string(body))

	var result GeminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "error parsing response: %v", err)
	}

	if len(result.Candidates) == 0 {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "no response from API (empty candidates)")
	}

	var responseText string
	for _, part := range result.Candidates[0].Content.Parts {
		responseText += part.Text
	}
	if responseText == "" {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "no response from API (empty parts, finish reason %q)", result.Candidates[0].FinishReason)
	}

	return responseText, nil
}
