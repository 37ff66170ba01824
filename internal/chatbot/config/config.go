package config

import (
	"fmt"
	"time"

	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/spf13/viper"
)

// Config holds the configuration for the chat client
type Config struct {
	Model            string        `toml:"model" mapstructure:"model"` // Format: "provider:model" (e.g., "gemini:gemini-2.0-flash")
	Temperature      float64       `toml:"temperature" mapstructure:"temperature"`
	SystemPrompt     string        `toml:"system_prompt" mapstructure:"system_prompt"`
	Language         string        `toml:"language" mapstructure:"language"`
	Timeout          time.Duration `toml:"timeout" mapstructure:"timeout"`
	GeminiBaseURL    string        `toml:"gemini_base_url" mapstructure:"gemini_base_url"`
	GeminiToken      string        `toml:"gemini_token" mapstructure:"gemini_token"`
	OpenAIBaseURL    string        `toml:"openai_base_url" mapstructure:"openai_base_url"`
	OpenAIToken      string        `toml:"openai_token" mapstructure:"openai_token"`
	AnthropicBaseURL string        `toml:"anthropic_base_url" mapstructure:"anthropic_base_url"`
	AnthropicToken   string        `toml:"anthropic_token" mapstructure:"anthropic_token"`
	OllamaBaseURL    string        `toml:"ollama_base_url" mapstructure:"ollama_base_url"`
	ArkBaseURL       string        `toml:"ark_base_url" mapstructure:"ark_base_url"`
	ArkToken         string        `toml:"ark_token" mapstructure:"ark_token"`
	ArkRegion        string        `toml:"ark_region" mapstructure:"ark_region"`
	PromptDirs       []string      `toml:"prompt_dirs" mapstructure:"prompt_dirs"`
	LogLevel         string        `toml:"log_level" mapstructure:"log_level"`
	LogFormat        string        `toml:"log_format" mapstructure:"log_format"`
	LogOutput        string        `toml:"log_output" mapstructure:"log_output"`
}

// GetModel returns the model string in "provider:model" format
func (c *Config) GetModel() string {
	return c.Model
}

// GetTemperature returns the sampling temperature
func (c *Config) GetTemperature() float64 {
	return c.Temperature
}

// GetRegion returns the Ark region
func (c *Config) GetRegion() string {
	return c.ArkRegion
}

// GetProvider extracts provider name from the model string
func (c *Config) GetProvider() (string, error) {
	provider, _, err := chatbot.ParseModelString(c.Model)
	return provider, err
}

// GetModelName extracts model name from the model string
func (c *Config) GetModelName() (string, error) {
	_, model, err := chatbot.ParseModelString(c.Model)
	return model, err
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(promptDir string) *Config {
	return &Config{
		Model:            "gemini:gemini-2.0-flash",
		Temperature:      0.3,
		SystemPrompt:     chatbot.DefaultSystemPrompt,
		Language:         chatbot.DefaultLanguage,
		Timeout:          60 * time.Second,
		GeminiBaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		GeminiToken:      "$GOOGLE_API_KEY",
		OpenAIBaseURL:    "https://api.openai.com/v1",
		OpenAIToken:      "$OPENAI_API_KEY",
		AnthropicBaseURL: "https://api.anthropic.com/v1",
		AnthropicToken:   "$ANTHROPIC_API_KEY",
		OllamaBaseURL:    "http://localhost:11434",
		ArkBaseURL:       "https://ark.cn-beijing.volces.com/api/v3",
		ArkToken:         "$ARK_API_KEY",
		ArkRegion:        "cn-beijing",
		PromptDirs:       []string{promptDir},
		LogLevel:         "warn",
		LogFormat:        "text",
		LogOutput:        "stderr",
	}
}

// SetDefaults registers the default values with viper
func SetDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("model", defaults.Model)
	v.SetDefault("temperature", defaults.Temperature)
	v.SetDefault("system_prompt", defaults.SystemPrompt)
	v.SetDefault("language", defaults.Language)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("gemini_base_url", defaults.GeminiBaseURL)
	v.SetDefault("gemini_token", defaults.GeminiToken)
	v.SetDefault("openai_base_url", defaults.OpenAIBaseURL)
	v.SetDefault("openai_token", defaults.OpenAIToken)
	v.SetDefault("anthropic_base_url", defaults.AnthropicBaseURL)
	v.SetDefault("anthropic_token", defaults.AnthropicToken)
	v.SetDefault("ollama_base_url", defaults.OllamaBaseURL)
	v.SetDefault("ark_base_url", defaults.ArkBaseURL)
	v.SetDefault("ark_token", defaults.ArkToken)
	v.SetDefault("ark_region", defaults.ArkRegion)
	v.SetDefault("prompt_dirs", defaults.PromptDirs)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("log_output", defaults.LogOutput)
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration from v, expands $VAR references in tokens
// and base URLs, and resolves prompt directories to absolute paths.
func LoadFrom(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	for _, field := range []*string{
		&config.GeminiBaseURL, &config.GeminiToken,
		&config.OpenAIBaseURL, &config.OpenAIToken,
		&config.AnthropicBaseURL, &config.AnthropicToken,
		&config.OllamaBaseURL,
		&config.ArkBaseURL, &config.ArkToken,
	} {
		*field = expandEnvVar(*field)
	}

	for i, promptDir := range config.PromptDirs {
		absPath, err := ResolvePath(v, promptDir)
		if err != nil {
			return nil, fmt.Errorf("error resolving prompt directory path '%s': %v", promptDir, err)
		}
		config.PromptDirs[i] = absPath
	}

	if _, _, err := chatbot.ParseModelString(config.Model); err != nil {
		return nil, err
	}

	return config, nil
}
