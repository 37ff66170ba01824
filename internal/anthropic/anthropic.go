package anthropic

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
	ProviderName     = "anthropic"
	DefaultBaseURL   = "https://api.anthropic.com/v1"
	DefaultModel     = "claude-3-5-sonnet-20241022"
	AnthropicVersion = "2023-06-01"
	DefaultMaxTokens = 4096
)

// MessagesAPIRequest represents the request body for Anthropic's Messages API
type MessagesAPIRequest struct {
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature *float64       `json:"temperature,omitempty"`
	Messages    []MessageInput `json:"messages"`
}

// MessageInput represents a message in the conversation
type MessageInput struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content represents a text content block
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// MessagesAPIResponse represents the response from Anthropic's Messages API
type MessagesAPIResponse struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Content    []Content `json:"content"`
	StopReason string    `json:"stop_reason"`
	Usage      Usage     `json:"usage"`
	Error      *APIError `json:"error,omitempty"`
}

// Usage represents token usage information
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// APIError represents an error in the API response
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Config defines the configuration interface for Anthropic provider
type Config interface {
	GetModel() string
	GetTemperature() float64
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the chatbot.Backend interface for Anthropic
type Provider struct {
	config Config
	client *http.Client
	logger logrus.FieldLogger
}

// NewProvider creates a new Anthropic provider instance
func NewProvider(config Config, logger logrus.FieldLogger) *Provider {
	return &Provider{
		config: config,
		client: &http.Client{},
		logger: logger.WithField("provider", ProviderName),
	}
}

// Complete sends the merged prompt as one user message
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
	jsonData, err := json.Marshal(MessagesAPIRequest{
		Model:       model,
		MaxTokens:   DefaultMaxTokens,
		Temperature: &temperature,
		Messages: []MessageInput{
			{Role: "user", Content: []Content{{Type: "text", Text: prompt}}},
		},
	})
	if err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(baseURL, "/")+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindNetwork, "error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", token)
	req.Header.Set("anthropic-version", AnthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("error reading response: %w", err))
	}

	var result MessagesAPIResponse
	if resp.StatusCode != http.StatusOK {
		p.logger.WithField("status", resp.StatusCode).Debugf("Raw API error: %s", string(body))
		kind := chatbot.KindForStatus(resp.StatusCode)
		// 529 overloaded
		if resp.StatusCode == 529 {
			kind = chatbot.KindQuota
		}
		if json.Unmarshal(body, &result) == nil && result.Error != nil {
			return "", chatbot.NewBackendError(ProviderName, kind, "API error (HTTP %d): %s", resp.StatusCode, result.Error.Message)
		}
		return "", chatbot.NewBackendError(ProviderName, kind, "API error (HTTP %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "error parsing response: %v", err)
	}

	var text strings.Builder
	for _, content := range result.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}
	if text.Len() == 0 {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "no text content in response (stop reason %q)", result.StopReason)
	}

	p.logger.WithFields(logrus.Fields{
		"input_tokens":  result.Usage.InputTokens,
		"output_tokens": result.Usage.OutputTokens,
	}).Debug("usage")

	return text.String(), nil
}
