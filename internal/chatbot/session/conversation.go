// Package session runs conversation turns against a completion backend and
// keeps per-session transcripts in a Store.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/longkey1/chatbot/internal/chatbot/prompt"
	"github.com/sirupsen/logrus"
)

// State is the phase of the turn currently (or last) executed.
type State string

const (
	StateIdle            State = "idle"
	StatePromptBuilding  State = "prompt_building"
	StateAwaitingBackend State = "awaiting_backend"
	StateAppending       State = "appending"
	StateFailed          State = "failed"
)

// Result is the outcome of a successful turn.
type Result struct {
	Reply      string
	Transcript *chatbot.Transcript
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithLogger sets the logger used for turn diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Conversation) {
		c.logger = logger
	}
}

// WithProviderName labels backend errors and log lines with the provider.
func WithProviderName(name string) Option {
	return func(c *Conversation) {
		c.provider = name
	}
}

// Conversation orchestrates turns: it appends the user message, assembles
// the prompt, calls the backend and appends the reply.
type Conversation struct {
	store    Store
	backend  chatbot.Backend
	provider string
	logger   logrus.FieldLogger

	mu    sync.Mutex
	state State
}

// NewConversation creates a conversation over store and backend.
func NewConversation(store Store, backend chatbot.Backend, opts ...Option) *Conversation {
	c := &Conversation{
		store:   store,
		backend: backend,
		logger:  logrus.StandardLogger(),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the phase of the most recent turn.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conversation) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Turn runs one user → assistant exchange for sessionID.
//
// The store is only written when the whole turn succeeds; on any error the
// stored transcript is exactly what it was before the call. Turn does not
// serialize calls for the same session: callers must keep at most one turn
// in flight per session ID, otherwise concurrent turns can lose updates.
func (c *Conversation) Turn(ctx context.Context, sessionID, userText string) (*Result, error) {
	log := c.logger.WithFields(logrus.Fields{"session": sessionID, "provider": c.provider})

	if strings.TrimSpace(userText) == "" {
		return nil, &chatbot.ValidationError{Field: "text", Reason: "message text is empty"}
	}

	c.setState(StatePromptBuilding)
	working, ok := c.store.Get(sessionID)
	if !ok {
		working = c.store.Seed(sessionID)
	}

	if err := working.AppendText(chatbot.RoleUser, userText); err != nil {
		return nil, c.fail(log, err)
	}

	merged, err := prompt.Assemble(working)
	if err != nil {
		return nil, c.fail(log, err)
	}

	c.setState(StateAwaitingBackend)
	log.WithField("messages", working.Len()).Debug("invoking backend")
	start := time.Now()
	reply, err := c.backend.Complete(ctx, merged)
	if err != nil {
		return nil, c.fail(log, chatbot.AsBackendError(c.provider, err))
	}
	log.WithField("elapsed", time.Since(start)).Debug("backend replied")

	c.setState(StateAppending)
	if strings.TrimSpace(reply) == "" {
		return nil, c.fail(log, chatbot.NewBackendError(c.provider, chatbot.KindMalformed, "empty reply"))
	}
	if err := working.AppendText(chatbot.RoleAssistant, reply); err != nil {
		return nil, c.fail(log, err)
	}

	c.store.Put(sessionID, working)
	c.setState(StateIdle)
	log.WithField("messages", working.Len()).Info("turn completed")

	return &Result{Reply: reply, Transcript: working.Clone()}, nil
}

func (c *Conversation) fail(log logrus.FieldLogger, err error) error {
	c.setState(StateFailed)
	log.WithError(err).Warn("turn failed")
	return err
}
