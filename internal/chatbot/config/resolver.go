package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Provider names accepted in the "provider:model" string.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderArk       = "ark"
)

// expandEnvVar expands environment variable references in the given value
// Supports both $VAR and ${VAR} syntax
// If the environment variable is not set, returns empty string.
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}

	var envVarName string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVarName = value[2 : len(value)-1]
	} else {
		envVarName = strings.TrimPrefix(value, "$")
	}

	return os.Getenv(envVarName)
}

// GetBaseURL returns the base URL for the specified provider
func (c *Config) GetBaseURL(provider string) (string, error) {
	var baseURLValue string
	switch provider {
	case ProviderGemini:
		baseURLValue = c.GeminiBaseURL
	case ProviderOpenAI:
		baseURLValue = c.OpenAIBaseURL
	case ProviderAnthropic:
		baseURLValue = c.AnthropicBaseURL
	case ProviderOllama:
		baseURLValue = c.OllamaBaseURL
	case ProviderArk:
		baseURLValue = c.ArkBaseURL
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	if baseURLValue == "" {
		return "", fmt.Errorf("%s base URL is not configured. Set it in config file (%s_base_url) or environment variable (CHATBOT_%s_BASE_URL)", provider, provider, strings.ToUpper(provider))
	}

	return baseURLValue, nil
}

// GetToken returns the token for the specified provider
func (c *Config) GetToken(provider string) (string, error) {
	var tokenValue string
	switch provider {
	case ProviderGemini:
		tokenValue = c.GeminiToken
	case ProviderOpenAI:
		tokenValue = c.OpenAIToken
	case ProviderAnthropic:
		tokenValue = c.AnthropicToken
	case ProviderArk:
		tokenValue = c.ArkToken
	case ProviderOllama:
		// local server, no credential
		return "", nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	if tokenValue == "" {
		return "", fmt.Errorf("%s token is not configured. Set it in config file (%s_token) or environment variable (CHATBOT_%s_TOKEN)", provider, provider, strings.ToUpper(provider))
	}

	return tokenValue, nil
}

// ResolvePath converts a relative path to absolute path if needed.
// Relative paths are resolved against the directory of the config file in use.
func ResolvePath(v *viper.Viper, path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	configFile := v.ConfigFileUsed()
	if configFile == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		return filepath.Join(cwd, path), nil
	}

	configDir := filepath.Dir(configFile)
	if !filepath.IsAbs(configDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		configDir = filepath.Join(cwd, configDir)
	}

	return filepath.Join(configDir, path), nil
}
