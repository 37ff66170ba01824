/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/longkey1/chatbot/internal/chatbot/config"
	promptpkg "github.com/longkey1/chatbot/internal/chatbot/prompt"
	"github.com/spf13/cobra"
)

var withDir bool

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "List available prompt templates",
	Long: `List all available prompt templates from the configured prompt directories.
This command recursively scans all prompt directories and displays the names of
available .toml prompt files, including those in subdirectories.

Prompt names are displayed as relative paths from the prompt directory root.
For example, a file at ${prompt_dir}/foo/bar.toml will be displayed as "foo/bar".
When the same name exists in several directories, the later directory wins.

If you want to see which directory each prompt comes from, use the --with-dir option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		dirs, names, err := promptpkg.ListPrompts(cfg.PromptDirs)
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "No prompt templates found in: %v\n", cfg.PromptDirs)
			return nil
		}

		for _, name := range names {
			if withDir {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, dirs[name])
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().BoolVar(&withDir, "with-dir", false, "Show the directory each prompt is loaded from")
}
