// Package ark runs completions through an Eino chat model, by default the
// Volcengine Ark model from eino-ext.
package ark

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/sirupsen/logrus"
)

const (
	ProviderName   = "ark"
	DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	DefaultRegion  = "cn-beijing"
)

// Config defines the configuration interface for the Ark provider
type Config interface {
	GetModel() string
	GetTemperature() float64
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
	GetRegion() string
}

// Provider implements the chatbot.Backend interface on top of an Eino
// chat model.
type Provider struct {
	chatModel model.BaseChatModel
	logger    logrus.FieldLogger
}

// NewProvider builds the Ark chat model from config.
func NewProvider(ctx context.Context, config Config, logger logrus.FieldLogger) (*Provider, error) {
	_, modelName, err := chatbot.ParseModelString(config.GetModel())
	if err != nil {
		return nil, fmt.Errorf("invalid model format: %w", err)
	}

	token, err := config.GetToken(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	baseURL, err := config.GetBaseURL(ProviderName)
	if err != nil {
		baseURL = DefaultBaseURL
	}

	region := config.GetRegion()
	if region == "" {
		region = DefaultRegion
	}

	temperature := float32(config.GetTemperature())
	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     baseURL,
		Region:      region,
		APIKey:      token,
		Model:       modelName,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return NewWithModel(chatModel, logger), nil
}

// NewWithModel wraps any Eino chat model.
func NewWithModel(chatModel model.BaseChatModel, logger logrus.FieldLogger) *Provider {
	return &Provider{
		chatModel: chatModel,
		logger:    logger.WithField("provider", ProviderName),
	}
}

// Complete sends the merged prompt as a single user message.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("failed to run chat model: %w", err))
	}
	if resp == nil || resp.Content == "" {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "empty response from chat model")
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		p.logger.WithFields(logrus.Fields{
			"prompt_tokens":     resp.ResponseMeta.Usage.PromptTokens,
			"completion_tokens": resp.ResponseMeta.Usage.CompletionTokens,
		}).Debug("usage")
	}
	return resp.Content, nil
}
