package prompt

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/longkey1/chatbot/internal/chatbot"
)

// Seed is the resolved starting point of a new session.
type Seed struct {
	SystemPrompt string
	Language     string
	Model        *string
}

// ResolveSeed returns the seed for a new session. With an empty promptName
// the defaults are returned as-is; otherwise the named template is loaded
// from promptDirs and its {{key}} placeholders are filled from args.
func ResolveSeed(promptName string, promptDirs []string, args []string, defaults Seed) (Seed, error) {
	if promptName == "" {
		return defaults, nil
	}

	promptPath, err := FindPrompt(promptName, promptDirs)
	if err != nil {
		return Seed{}, err
	}

	tmpl, err := LoadPrompt(promptPath)
	if err != nil {
		return Seed{}, fmt.Errorf("error loading prompt file: %v", err)
	}

	argMap, err := processArgs(args)
	if err != nil {
		return Seed{}, fmt.Errorf("error processing arguments: %v", err)
	}

	system := tmpl.System
	for key, value := range argMap {
		system = strings.ReplaceAll(system, fmt.Sprintf("{{%s}}", key), value)
	}
	if strings.TrimSpace(system) == "" {
		return Seed{}, &chatbot.ValidationError{Field: "system", Reason: fmt.Sprintf("prompt template %q has an empty system prompt", promptName)}
	}

	seed := defaults
	seed.SystemPrompt = system
	if tmpl.Language != nil && *tmpl.Language != "" {
		seed.Language = *tmpl.Language
	}
	if tmpl.Model != nil {
		if _, _, err := chatbot.ParseModelString(*tmpl.Model); err != nil {
			return Seed{}, fmt.Errorf("invalid model format in prompt template: %w", err)
		}
		seed.Model = tmpl.Model
	}
	return seed, nil
}

// FindPrompt locates a template by name. Later directories take precedence.
func FindPrompt(promptName string, promptDirs []string) (string, error) {
	promptFile := promptName
	if !strings.HasSuffix(promptFile, ".toml") {
		promptFile = promptFile + ".toml"
	}

	var promptPath string
	for _, promptDir := range promptDirs {
		candidatePath := filepath.Join(promptDir, promptFile)
		if _, err := os.Stat(candidatePath); err == nil {
			promptPath = candidatePath
		}
	}

	if promptPath == "" {
		return "", fmt.Errorf("prompt file '%s' not found in any of the prompt directories: %v", promptFile, promptDirs)
	}
	return promptPath, nil
}

// ListPrompts returns template names (relative paths without the .toml
// extension) mapped to the directory they resolve from.
func ListPrompts(promptDirs []string) (map[string]string, []string, error) {
	found := make(map[string]string)
	for _, promptDir := range promptDirs {
		if _, err := os.Stat(promptDir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(promptDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".toml") {
				return nil
			}
			rel, err := filepath.Rel(promptDir, path)
			if err != nil {
				return err
			}
			found[strings.TrimSuffix(filepath.ToSlash(rel), ".toml")] = promptDir
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning prompt directory %s: %w", promptDir, err)
		}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return found, names, nil
}

// processArgs processes the command line arguments and returns a map of key-value pairs
func processArgs(args []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) {
			arg = strings.Trim(arg, `"`)
		}

		parts := strings.SplitN(arg, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid argument format: %s. Expected format: key:value", arg)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		value = strings.ReplaceAll(value, `\:`, ":")
		value = strings.ReplaceAll(value, `\"`, `"`)

		if key == "" {
			return nil, fmt.Errorf("invalid argument format: %s. Key cannot be empty", arg)
		}
		result[key] = value
	}
	return result, nil
}
