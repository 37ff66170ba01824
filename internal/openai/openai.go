package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/sirupsen/logrus"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4.1"
)

// ResponsesAPIRequest represents the request body for OpenAI's Responses API
type ResponsesAPIRequest struct {
	Model       string   `json:"model"`
	Input       string   `json:"input"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// ResponsesAPIResponse represents the response from OpenAI's Responses API
type ResponsesAPIResponse struct {
	Output []ResponsesAPIOutput `json:"output"`
	Error  *ResponsesAPIError   `json:"error,omitempty"`
}

// ResponsesAPIOutput represents an output element
type ResponsesAPIOutput struct {
	Type    string                `json:"type"`
	Content []ResponsesAPIContent `json:"content"`
}

// ResponsesAPIContent represents a content block of an output message
type ResponsesAPIContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ResponsesAPIError is the error object of a failed request
type ResponsesAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Config defines the configuration interface for OpenAI provider
type Config interface {
	GetModel() string
	GetTemperature() float64
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the chatbot.Backend interface for OpenAI
type Provider struct {
	config Config
	client *http.Client
	logger logrus.FieldLogger
}

// NewProvider creates a new OpenAI provider instance
func NewProvider(config Config, logger logrus.FieldLogger) *Provider {
	return &Provider{
		config: config,
		client: &http.Client{},
		logger: logger.WithField("provider", ProviderName),
	}
}

// Complete sends the merged prompt to the Responses API and returns the output text
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	_, model, err := chatbot.ParseModelString(p.config.GetModel())
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

	temperature := p.config.GetTemperature()
	jsonData, err := json.Marshal(ResponsesAPIRequest{
		Model:       model,
		Input:       prompt,
		Temperature: &temperature,
	})
	if err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(baseURL, "/")+"/responses", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindNetwork, "error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("error reading response: %w", err))
	}

	var result ResponsesAPIResponse
	if resp.StatusCode != http.StatusOK {
		p.logger.WithField("status", resp.StatusCode).Debugf("Raw API error: %s", string(body))
		if json.Unmarshal(body, &result) == nil && result.Error != nil {
			return "", chatbot.NewBackendError(ProviderName, chatbot.KindForStatus(resp.StatusCode), "API error (HTTP %d): %s", resp.StatusCode, result.Error.Message)
		}
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindForStatus(resp.StatusCode), "API error (HTTP %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "error parsing response: %v", err)
	}

	var text strings.Builder
	for _, output := range result.Output {
		if output.Type != "" && output.Type != "message" {
			continue
		}
		for _, content := range output.Content {
			if content.Type == "" || content.Type == "output_text" {
				text.WriteString(content.Text)
			}
		}
	}

	if text.Len() == 0 {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "no content in response")
	}
	return text.String(), nil
}
