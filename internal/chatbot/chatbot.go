// Package chatbot provides the core abstractions of the conversation client:
// role-tagged messages, the per-session transcript, and the Backend interface
// that every completion provider (gemini, openai, etc.) implements.
package chatbot

import (
	"context"
	"fmt"
	"strings"
)

// DefaultLanguage is the language tag carried by new transcripts.
const DefaultLanguage = "English"

// DefaultSystemPrompt seeds the transcript of every new session.
const DefaultSystemPrompt = "You are a helpful assistant."

// Backend defines the completion capability the conversation depends on.
// All provider implementations (gemini, openai, etc.) must implement this interface.
//
// Example usage:
//
//	backend := gemini.NewProvider(cfg)
//	reply, err := backend.Complete(ctx, "User: Hello, world!")
type Backend interface {
	// Complete sends a fully assembled prompt and returns the reply text.
	// Failures are reported as *BackendError.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ParseModelString parses a model string in "provider:model" format.
// Returns (provider, model, error).
//
// Example:
//
//	provider, model, err := ParseModelString("gemini:gemini-2.0-flash")
//	// provider = "gemini", model = "gemini-2.0-flash"
func ParseModelString(modelStr string) (string, string, error) {
	parts := strings.SplitN(modelStr, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid model format: %s (expected format: provider:model, e.g., gemini:gemini-2.0-flash)", modelStr)
	}

	provider := strings.TrimSpace(parts[0])
	model := strings.TrimSpace(parts[1])

	if provider == "" || model == "" {
		return "", "", fmt.Errorf("provider and model cannot be empty")
	}

	return provider, model, nil
}

// FormatModelString formats provider and model into "provider:model" format.
func FormatModelString(provider, model string) string {
	return fmt.Sprintf("%s:%s", provider, model)
}
