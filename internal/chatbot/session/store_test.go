package session

import (
	"testing"

	"github.com/longkey1/chatbot/internal/chatbot"
)

func TestMemoryStoreGetOrCreateSeeds(t *testing.T) {
	s := NewMemoryStore(nil)

	if _, ok := s.Get("a"); ok {
		t.Fatal("Get() on empty store reported an entry")
	}

	tr := s.GetOrCreate("a")
	if tr.Len() != 1 {
		t.Fatalf("seeded Len() = %d, want 1", tr.Len())
	}
	first := tr.Messages()[0]
	if first.Role() != chatbot.RoleSystem || first.Text() != chatbot.DefaultSystemPrompt {
		t.Errorf("seed message = %v", first)
	}
	if tr.Language != chatbot.DefaultLanguage || tr.SessionID != "a" {
		t.Errorf("seed transcript = %+v", tr)
	}
	if _, ok := s.Get("a"); !ok {
		t.Error("GetOrCreate() did not store the new entry")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore(nil)
	tr := s.GetOrCreate("a")
	_ = tr.AppendText(chatbot.RoleUser, "not stored")

	if got := s.GetOrCreate("a").Len(); got != 1 {
		t.Errorf("stored Len() = %d after mutating a copy, want 1", got)
	}

	s.Put("a", tr)
	_ = tr.AppendText(chatbot.RoleAssistant, "also not stored")
	got, _ := s.Get("a")
	if got.Len() != 2 {
		t.Errorf("stored Len() = %d, want 2", got.Len())
	}
}

func TestMemoryStorePutUsesKey(t *testing.T) {
	s := NewMemoryStore(nil)
	s.Put("b", s.Seed("a"))
	got, ok := s.Get("b")
	if !ok || got.SessionID != "b" {
		t.Errorf("Get(b) = %+v, %v", got, ok)
	}
}

func TestMemoryStoreDeleteAndIDs(t *testing.T) {
	s := NewMemoryStore(nil)
	s.GetOrCreate("a")
	s.GetOrCreate("b")

	if ids := s.IDs(); len(ids) != 2 {
		t.Fatalf("IDs() = %v", ids)
	}
	if !s.Delete("a") {
		t.Error("Delete(a) = false")
	}
	if s.Delete("a") {
		t.Error("second Delete(a) = true")
	}
	if ids := s.IDs(); len(ids) != 1 || ids[0] != "b" {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestSystemSeederBlankPromptFallsBack(t *testing.T) {
	tr := SystemSeeder("  ", "")("x")
	if tr.Len() != 1 || tr.Messages()[0].Text() != chatbot.DefaultSystemPrompt {
		t.Errorf("seed = %v", tr.Messages())
	}
}
