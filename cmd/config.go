package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/longkey1/chatbot/internal/chatbot/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFields = []string{
	"configfile", "model", "temperature", "system_prompt", "language", "timeout",
	"gemini_base_url", "gemini_token", "openai_base_url", "openai_token",
	"anthropic_base_url", "anthropic_token", "ollama_base_url",
	"ark_base_url", "ark_token", "ark_region", "prompt_dirs",
	"log_level", "log_format", "log_output",
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.
Tokens are masked.

If a field name is specified, only that field's value is displayed.

Examples:
  chatbot config                 # Show all configuration
  chatbot config model           # Show only model
  chatbot config gemini_token    # Show only the (masked) Gemini token`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(args) > 0 {
			value, ok := configValue(cfg, strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("unknown field: %s\nAvailable fields: %s", args[0], strings.Join(configFields, ", "))
			}
			fmt.Fprintln(out, value)
			return nil
		}

		printConfig(out, cfg)
		return nil
	},
}

func printConfig(out io.Writer, cfg *config.Config) {
	for _, field := range configFields {
		value, _ := configValue(cfg, field)
		fmt.Fprintf(out, "%s: %s\n", field, value)
	}
}

func configValue(cfg *config.Config, field string) (string, bool) {
	switch field {
	case "configfile":
		return viper.ConfigFileUsed(), true
	case "model":
		return cfg.Model, true
	case "temperature":
		return fmt.Sprintf("%g", cfg.Temperature), true
	case "system_prompt":
		return cfg.SystemPrompt, true
	case "language":
		return cfg.Language, true
	case "timeout":
		return cfg.Timeout.String(), true
	case "gemini_base_url":
		return cfg.GeminiBaseURL, true
	case "gemini_token":
		return maskToken(cfg.GeminiToken), true
	case "openai_base_url":
		return cfg.OpenAIBaseURL, true
	case "openai_token":
		return maskToken(cfg.OpenAIToken), true
	case "anthropic_base_url":
		return cfg.AnthropicBaseURL, true
	case "anthropic_token":
		return maskToken(cfg.AnthropicToken), true
	case "ollama_base_url":
		return cfg.OllamaBaseURL, true
	case "ark_base_url":
		return cfg.ArkBaseURL, true
	case "ark_token":
		return maskToken(cfg.ArkToken), true
	case "ark_region":
		return cfg.ArkRegion, true
	case "prompt_dirs":
		return strings.Join(cfg.PromptDirs, ","), true
	case "log_level":
		return cfg.LogLevel, true
	case "log_format":
		return cfg.LogFormat, true
	case "log_output":
		return cfg.LogOutput, true
	}
	return "", false
}

// maskToken returns a masked version of the token for security
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
}
