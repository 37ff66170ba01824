/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/longkey1/chatbot/internal/chatbot/config"
	"github.com/longkey1/chatbot/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	envFile   string
	verbose   bool
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "A command-line chat client for LLM APIs",
	Long: `chatbot is a command-line chat client that forwards your messages to an LLM API
and prints the reply, keeping the conversation history for the whole session.
It supports Gemini, OpenAI, Anthropic, Ollama and Volcengine Ark.
You can configure the tool using a TOML configuration file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logCloser = logging.Init(logrus.StandardLogger(), logging.Options{
			Level:   viper.GetString("log_level"),
			Format:  viper.GetString("log_format"),
			Output:  viper.GetString("log_output"),
			Verbose: verbose,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/chatbot/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadDotEnv reads KEY=VALUE pairs from the dotenv file. Variables already
// present in the environment win; a missing file is not an error.
func loadDotEnv() {
	if envFile == "" {
		return
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading env file %s: %v\n", envFile, err)
	}
}

// userConfigDir returns $HOME/.config/chatbot
func userConfigDir() string {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return filepath.Join(home, ".config", "chatbot")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("CHATBOT")
	viper.AutomaticEnv()

	dir := userConfigDir()
	config.SetDefaults(viper.GetViper(), config.NewDefaultConfig(filepath.Join(dir, "prompts")))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		// System-wide config first (lower priority), user config merged on top
		candidates := []string{
			"/etc/chatbot/config.toml",
			"/usr/local/etc/chatbot/config.toml",
			filepath.Join(dir, "config.toml"),
		}
		loaded := false
		for _, path := range candidates {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			viper.SetConfigFile(path)
			var err error
			if loaded {
				err = viper.MergeInConfig()
			} else {
				err = viper.ReadInConfig()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", path, err)
				continue
			}
			loaded = true
			if verbose {
				fmt.Fprintln(os.Stderr, "Loaded config:", path)
			}
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  CHATBOT_MODEL:", viper.GetString("model"))
		fmt.Fprintln(os.Stderr, "  CHATBOT_PROMPT_DIRS:", viper.GetStringSlice("prompt_dirs"))
	}
}
