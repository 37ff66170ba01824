/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/longkey1/chatbot/internal/chatbot/config"
	promptpkg "github.com/longkey1/chatbot/internal/chatbot/prompt"
	"github.com/longkey1/chatbot/internal/chatbot/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	model       string
	prompt      string
	argFlags    []string
	sessionID   string
	noSpinner   bool
	historyFile string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the LLM",
	Long: `Chat with the LLM, keeping the conversation history across turns.

With a message argument, a single turn is run and the reply is printed.
Without one, an interactive session starts: type a message per line,
'/help' lists the available commands, '/exit' or Ctrl+D quits.

The first message of every conversation is the system prompt. It comes from
the system_prompt setting, or from a prompt template selected with --prompt.
Prompt templates are TOML files with the following structure:
system = "System prompt with optional {{key}} placeholders"
language = "optional-language-tag"
model = "optional provider:model"  # overrides the configured model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		seed, err := promptpkg.ResolveSeed(prompt, cfg.PromptDirs, argFlags, promptpkg.Seed{
			SystemPrompt: cfg.SystemPrompt,
			Language:     cfg.Language,
		})
		if err != nil {
			return fmt.Errorf("resolving prompt: %w", err)
		}

		// Apply model with priority: flag > env > prompt template > config file
		envModel := os.Getenv("CHATBOT_MODEL")
		if cmd.Flags().Changed("model") {
			if _, _, err := chatbot.ParseModelString(model); err != nil {
				return fmt.Errorf("invalid model from flag: %w", err)
			}
			cfg.Model = model
		} else if envModel != "" {
			cfg.Model = envModel
		} else if seed.Model != nil {
			cfg.Model = *seed.Model
		}

		logger := logrus.StandardLogger()
		backend, provider, err := newBackend(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}

		store := session.NewMemoryStore(session.SystemSeeder(seed.SystemPrompt, seed.Language))
		conv := session.NewConversation(store, backend,
			session.WithLogger(logger),
			session.WithProviderName(provider),
		)

		id := sessionID
		if id == "" {
			id = uuid.NewString()
		}
		logger.WithFields(logrus.Fields{"session": id, "model": cfg.Model}).Debug("Starting conversation")

		if len(args) > 0 {
			res, err := conv.Turn(cmd.Context(), id, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("chat request failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Reply)
			return nil
		}

		if historyFile == "" {
			historyFile = filepath.Join(userConfigDir(), "history")
		}
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "You: ",
			HistoryFile:     historyFile,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("initializing line editor: %w", err)
		}
		defer rl.Close()

		r := &repl{
			in:        rl,
			out:       cmd.OutOrStdout(),
			errOut:    cmd.ErrOrStderr(),
			conv:      conv,
			store:     store,
			sessionID: id,
			model:     cfg.Model,
			spinner:   !noSpinner,
			logger:    logger,
		}
		return r.run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&model, "model", "m", "", "Model to use (format: provider:model, e.g., gemini:gemini-2.0-flash)")
	chatCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Name of the prompt template (without .toml extension)")
	chatCmd.Flags().StringArrayVar(&argFlags, "arg", []string{}, "Key-value pairs for prompt template (format: key:value)")
	chatCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session ID (default: a new random UUID)")
	chatCmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "Do not show a spinner while waiting for a reply")
	chatCmd.Flags().StringVar(&historyFile, "history-file", "", "Input history file (default is $HOME/.config/chatbot/history)")
}
