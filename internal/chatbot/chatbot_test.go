package chatbot

import "testing"

func TestParseModelString(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{
			name:         "valid gemini model",
			input:        "gemini:gemini-2.0-flash",
			wantProvider: "gemini",
			wantModel:    "gemini-2.0-flash",
		},
		{
			name:         "valid ollama model with tag",
			input:        "ollama:llama3:8b",
			wantProvider: "ollama",
			wantModel:    "llama3:8b",
		},
		{
			name:         "with whitespace",
			input:        " openai : gpt-4.1 ",
			wantProvider: "openai",
			wantModel:    "gpt-4.1",
		},
		{
			name:    "missing colon",
			input:   "gemini-2.0-flash",
			wantErr: true,
		},
		{
			name:    "empty provider",
			input:   ":gpt-4",
			wantErr: true,
		},
		{
			name:    "empty model",
			input:   "openai:",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, model, err := ParseModelString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseModelString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if provider != tt.wantProvider {
				t.Errorf("ParseModelString() provider = %v, want %v", provider, tt.wantProvider)
			}
			if model != tt.wantModel {
				t.Errorf("ParseModelString() model = %v, want %v", model, tt.wantModel)
			}
		})
	}
}

func TestFormatModelString(t *testing.T) {
	if got := FormatModelString("gemini", "gemini-2.0-flash"); got != "gemini:gemini-2.0-flash" {
		t.Errorf("FormatModelString() = %q", got)
	}
}
