package prompt

import (
	"fmt"
	"strings"

	"github.com/longkey1/chatbot/internal/chatbot"
)

// RoleLabel returns the label used for a role in an assembled prompt.
func RoleLabel(role chatbot.Role) (string, error) {
	switch role {
	case chatbot.RoleSystem:
		return "System", nil
	case chatbot.RoleUser:
		return "User", nil
	case chatbot.RoleAssistant:
		return "Assistant", nil
	}
	return "", &chatbot.ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", string(role))}
}

// Assemble merges a transcript into a single prompt string, one
// "<Label>: <text>" line per message in transcript order.
func Assemble(t *chatbot.Transcript) (string, error) {
	if t == nil || t.Len() == 0 {
		return "", &chatbot.EmptyPromptError{SessionID: sessionID(t)}
	}

	lines := make([]string, 0, t.Len())
	for _, msg := range t.Messages() {
		label, err := RoleLabel(msg.Role())
		if err != nil {
			return "", err
		}
		lines = append(lines, label+": "+msg.Text())
	}

	merged := strings.TrimSpace(strings.Join(lines, "\n"))
	if merged == "" {
		return "", &chatbot.EmptyPromptError{SessionID: t.SessionID}
	}
	return merged, nil
}

func sessionID(t *chatbot.Transcript) string {
	if t == nil {
		return ""
	}
	return t.SessionID
}
