package session

import (
	"sort"
	"sync"

	"github.com/longkey1/chatbot/internal/chatbot"
)

// Store maps session IDs to transcripts. Implementations hand out copies:
// callers never hold a reference to a stored transcript.
type Store interface {
	// GetOrCreate returns the transcript for id, creating and storing a
	// seeded one if the session is unknown.
	GetOrCreate(id string) *chatbot.Transcript
	// Get returns the transcript for id without creating it.
	Get(id string) (*chatbot.Transcript, bool)
	// Put replaces the transcript for id.
	Put(id string, t *chatbot.Transcript)
	// Seed returns the initial transcript a new session would get,
	// without storing it.
	Seed(id string) *chatbot.Transcript
}

// Seeder builds the initial transcript of a new session.
type Seeder func(id string) *chatbot.Transcript

// SystemSeeder returns a Seeder that starts every session with a single
// system message.
func SystemSeeder(systemPrompt, language string) Seeder {
	return func(id string) *chatbot.Transcript {
		t := chatbot.NewTranscript(id, language)
		if err := t.AppendText(chatbot.RoleSystem, systemPrompt); err != nil {
			// a blank system prompt leaves the default in place
			_ = t.AppendText(chatbot.RoleSystem, chatbot.DefaultSystemPrompt)
		}
		return t
	}
}

// MemoryStore keeps transcripts in process memory. Entries are never
// expired; the store lives as long as the process.
type MemoryStore struct {
	mu          sync.RWMutex
	seed        Seeder
	transcripts map[string]*chatbot.Transcript
}

// NewMemoryStore returns an empty store. A nil seed uses the default
// system prompt and language.
func NewMemoryStore(seed Seeder) *MemoryStore {
	if seed == nil {
		seed = SystemSeeder(chatbot.DefaultSystemPrompt, chatbot.DefaultLanguage)
	}
	return &MemoryStore{
		seed:        seed,
		transcripts: make(map[string]*chatbot.Transcript),
	}
}

// Seed returns a fresh seeded transcript for id without storing it.
func (s *MemoryStore) Seed(id string) *chatbot.Transcript {
	return s.seed(id)
}

// GetOrCreate returns a copy of the stored transcript, seeding the entry
// on first use.
func (s *MemoryStore) GetOrCreate(id string) *chatbot.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transcripts[id]
	if !ok {
		t = s.seed(id)
		s.transcripts[id] = t
	}
	return t.Clone()
}

// Get returns a copy of the stored transcript.
func (s *MemoryStore) Get(id string) (*chatbot.Transcript, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transcripts[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Put stores a copy of t under id.
func (s *MemoryStore) Put(id string, t *chatbot.Transcript) {
	c := t.Clone()
	c.SessionID = id

	s.mu.Lock()
	s.transcripts[id] = c
	s.mu.Unlock()
}

// Delete removes the session. It reports whether an entry existed.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.transcripts[id]
	delete(s.transcripts, id)
	return ok
}

// IDs returns the known session IDs, most recently updated first.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.transcripts))
	for id := range s.transcripts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.transcripts[ids[i]].UpdatedAt.After(s.transcripts[ids[j]].UpdatedAt)
	})
	return ids
}
