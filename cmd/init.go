package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/chatbot/internal/chatbot/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/chatbot/config.toml by default.
You can specify a different location using the --config option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile := filepath.Join(userConfigDir(), "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
		}
		return writeDefaultConfig(cmd, configFile)
	},
}

func writeDefaultConfig(cmd *cobra.Command, configFile string) error {
	configDir := filepath.Dir(configFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at: %s", configFile)
	}

	promptsDir := filepath.Join(configDir, "prompts")
	cfg := config.NewDefaultConfig(promptsDir)

	f, err := os.Create(configFile)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	if err := os.MkdirAll(promptsDir, 0755); err != nil {
		return fmt.Errorf("failed to create prompts directory: %v", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Prompts directory created at: %s\n", promptsDir)
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
