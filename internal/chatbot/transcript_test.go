package chatbot

import "testing"

func TestNewTranscriptDefaultsLanguage(t *testing.T) {
	tr := NewTranscript("abc", "")
	if tr.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", tr.Language, DefaultLanguage)
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
	if _, ok := tr.Last(); ok {
		t.Error("Last() on empty transcript should report false")
	}
}

func TestTranscriptAppendKeepsOrder(t *testing.T) {
	tr := NewTranscript("abc", "English")
	texts := []struct {
		role Role
		text string
	}{
		{RoleSystem, "You are a helpful assistant."},
		{RoleUser, "Hi"},
		{RoleAssistant, "Hello!"},
		{RoleUser, "Hi"},
	}
	for _, x := range texts {
		if err := tr.AppendText(x.role, x.text); err != nil {
			t.Fatalf("AppendText(%s, %q) error = %v", x.role, x.text, err)
		}
	}

	got := tr.Messages()
	if len(got) != len(texts) {
		t.Fatalf("Messages() len = %d, want %d", len(got), len(texts))
	}
	for i, x := range texts {
		if got[i].Role() != x.role || got[i].Text() != x.text {
			t.Errorf("Messages()[%d] = %v, want %s: %s", i, got[i], x.role, x.text)
		}
	}
	last, ok := tr.Last()
	if !ok || last.Text() != "Hi" || last.Role() != RoleUser {
		t.Errorf("Last() = %v, %v", last, ok)
	}
}

func TestTranscriptAppendRejectsInvalid(t *testing.T) {
	tr := NewTranscript("abc", "")
	if err := tr.Append(Message{}); !IsValidation(err) {
		t.Fatalf("Append(zero Message) error = %v, want validation error", err)
	}
	if err := tr.AppendText(RoleUser, "   "); !IsValidation(err) {
		t.Fatalf("AppendText(blank) error = %v, want validation error", err)
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d after rejected appends, want 0", tr.Len())
	}
}

func TestTranscriptMessagesIsCopy(t *testing.T) {
	tr := NewTranscript("abc", "")
	_ = tr.AppendText(RoleSystem, "seed")

	view := tr.Messages()
	view[0] = Message{}

	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
	if got := tr.Messages()[0].Text(); got != "seed" {
		t.Errorf("stored message changed through view: %q", got)
	}
}

func TestTranscriptClone(t *testing.T) {
	tr := NewTranscript("abcdef0123", "French")
	_ = tr.AppendText(RoleSystem, "seed")

	c := tr.Clone()
	if err := c.AppendText(RoleUser, "Bonjour"); err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 1 || c.Len() != 2 {
		t.Errorf("Len() original = %d clone = %d, want 1 and 2", tr.Len(), c.Len())
	}
	if c.SessionID != tr.SessionID || c.Language != "French" {
		t.Errorf("clone lost fields: %+v", c)
	}
	if tr.GetShortID() != "abcdef01" {
		t.Errorf("GetShortID() = %q", tr.GetShortID())
	}
}
