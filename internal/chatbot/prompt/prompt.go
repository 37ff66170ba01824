package prompt

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Prompt represents the structure of a TOML prompt template.
// The system text seeds the transcript of a new session.
type Prompt struct {
	System   string  `toml:"system"`
	Language *string `toml:"language,omitempty"`
	Model    *string `toml:"model,omitempty"`
}

// LoadPrompt loads a prompt file and returns its contents
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("error decoding prompt file: %v", err)
	}
	return &prompt, nil
}
