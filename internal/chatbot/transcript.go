package chatbot

import "time"

// Transcript is the ordered message history of one session.
// Messages are only ever appended; insertion order is conversational order.
type Transcript struct {
	SessionID string
	Language  string
	CreatedAt time.Time
	UpdatedAt time.Time

	messages []Message
}

// NewTranscript creates an empty transcript for the given session.
// An empty language falls back to DefaultLanguage.
func NewTranscript(sessionID, language string) *Transcript {
	if language == "" {
		language = DefaultLanguage
	}
	now := time.Now()
	return &Transcript{
		SessionID: sessionID,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
		messages:  []Message{},
	}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(m Message) error {
	if !m.valid() {
		return &ValidationError{Field: "message", Reason: "cannot append an invalid or empty message"}
	}
	t.messages = append(t.messages, m)
	t.UpdatedAt = time.Now()
	return nil
}

// AppendText builds a message from role and text and appends it.
func (t *Transcript) AppendText(role Role, text string) error {
	m, err := NewMessage(role, text)
	if err != nil {
		return err
	}
	return t.Append(m)
}

// Messages returns a copy of the messages in conversational order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// GetShortID returns the shortened session ID (first 8 characters)
func (t *Transcript) GetShortID() string {
	if len(t.SessionID) >= 8 {
		return t.SessionID[:8]
	}
	return t.SessionID
}

// Clone returns a deep copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	c := *t
	c.messages = t.Messages()
	return &c
}
