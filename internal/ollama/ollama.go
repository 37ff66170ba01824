// Package ollama adapts a local Ollama server to the chatbot.Backend interface.
package ollama

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JexSrs/go-ollama"
	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/sirupsen/logrus"
)

const (
	ProviderName   = "ollama"
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3"
)

// Config defines the configuration interface for Ollama provider
type Config interface {
	GetModel() string
	GetBaseURL(provider string) (string, error)
}

// generateFunc performs one non-streaming generation. It reports the
// response text and whether the server marked it as done.
type generateFunc func(model, prompt string) (string, bool, error)

// Provider implements the chatbot.Backend interface for Ollama
type Provider struct {
	model    string
	host     string
	generate generateFunc
	logger   logrus.FieldLogger
}

// NewProvider creates a new Ollama provider instance
func NewProvider(config Config, logger logrus.FieldLogger) (*Provider, error) {
	_, model, err := chatbot.ParseModelString(config.GetModel())
	if err != nil {
		return nil, fmt.Errorf("invalid model format: %w", err)
	}

	host, err := config.GetBaseURL(ProviderName)
	if err != nil || host == "" {
		host = DefaultBaseURL
	}

	ollamaURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := ollama.New(*ollamaURL)
	p := &Provider{
		model:  model,
		host:   host,
		logger: logger.WithField("provider", ProviderName),
	}
	p.generate = func(model, prompt string) (string, bool, error) {
		res, err := client.Generate(
			client.Generate.WithModel(model),
			client.Generate.WithPrompt(prompt),
		)
		if err != nil {
			return "", false, err
		}
		return res.Response, res.Done, nil
	}

	p.logger.WithFields(logrus.Fields{"host": host, "model": model}).Debug("Using Ollama")
	return p, nil
}

type generateResult struct {
	text string
	done bool
	err  error
}

// Complete sends the merged prompt to the Generate endpoint. The client
// library has no context support, so cancellation abandons the call.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	ch := make(chan generateResult, 1)
	go func() {
		text, done, err := p.generate(p.model, prompt)
		ch <- generateResult{text: text, done: done, err: err}
	}()

	var res generateResult
	select {
	case <-ctx.Done():
		return "", chatbot.AsBackendError(ProviderName, ctx.Err())
	case res = <-ch:
	}

	if res.err != nil {
		return "", chatbot.AsBackendError(ProviderName, fmt.Errorf("error calling Ollama Generate API at %s: %w", p.host, res.err))
	}
	if !res.done {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "request not finished (unexpected streaming behaviour)")
	}

	text := strings.TrimSpace(res.text)
	if text == "" {
		return "", chatbot.NewBackendError(ProviderName, chatbot.KindMalformed, "empty response marked as done")
	}
	return text, nil
}
