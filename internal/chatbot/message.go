package chatbot

import (
	"fmt"
	"strings"
)

// Role tags the speaker of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// ParseRole converts a string into a Role. Unknown values are rejected.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", s)}
	}
	return r, nil
}

// Message is one utterance in a conversation. The zero value is invalid;
// construct messages with NewMessage.
type Message struct {
	role Role
	text string
}

// NewMessage returns a message with the given role and text.
// It fails with *ValidationError if the role is unknown or the text is blank.
func NewMessage(role Role, text string) (Message, error) {
	if !role.Valid() {
		return Message{}, &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", string(role))}
	}
	if strings.TrimSpace(text) == "" {
		return Message{}, &ValidationError{Field: "text", Reason: "message text is empty"}
	}
	return Message{role: role, text: text}, nil
}

// Role returns the speaker of the message.
func (m Message) Role() Role { return m.role }

// Text returns the message content.
func (m Message) Text() string { return m.text }

func (m Message) valid() bool {
	return m.role.Valid() && strings.TrimSpace(m.text) != ""
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.role, m.text)
}
