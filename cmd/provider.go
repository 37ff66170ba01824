package cmd

import (
	"context"
	"fmt"

	"github.com/longkey1/chatbot/internal/anthropic"
	"github.com/longkey1/chatbot/internal/ark"
	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/longkey1/chatbot/internal/chatbot/config"
	"github.com/longkey1/chatbot/internal/gemini"
	"github.com/longkey1/chatbot/internal/ollama"
	"github.com/longkey1/chatbot/internal/openai"
	"github.com/sirupsen/logrus"
)

// newBackend creates the completion backend selected by the model string
// and bounds each call by the configured timeout.
func newBackend(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (chatbot.Backend, string, error) {
	provider, err := cfg.GetProvider()
	if err != nil {
		return nil, "", err
	}

	var backend chatbot.Backend
	switch provider {
	case gemini.ProviderName:
		backend = gemini.NewProvider(cfg, logger)
	case openai.ProviderName:
		backend = openai.NewProvider(cfg, logger)
	case anthropic.ProviderName:
		backend = anthropic.NewProvider(cfg, logger)
	case ollama.ProviderName:
		backend, err = ollama.NewProvider(cfg, logger)
	case ark.ProviderName:
		backend, err = ark.NewProvider(ctx, cfg, logger)
	default:
		return nil, "", fmt.Errorf("unsupported provider: %s", provider)
	}
	if err != nil {
		return nil, "", fmt.Errorf("creating %s provider: %w", provider, err)
	}

	return chatbot.WithTimeout(backend, cfg.Timeout), provider, nil
}
