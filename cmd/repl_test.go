package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/longkey1/chatbot/internal/chatbot/session"
	"github.com/sirupsen/logrus/hooks/test"
)

type scriptedReader struct {
	lines []string
	errs  []error
}

func (s *scriptedReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line, err := s.lines[0], s.errs[0]
	s.lines, s.errs = s.lines[1:], s.errs[1:]
	return line, err
}

func script(lines ...string) *scriptedReader {
	return &scriptedReader{lines: lines, errs: make([]error, len(lines))}
}

func newTestRepl(in lineReader, backend chatbot.Backend) (*repl, *bytes.Buffer, *bytes.Buffer) {
	logger, _ := test.NewNullLogger()
	store := session.NewMemoryStore(nil)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &repl{
		in:        in,
		out:       out,
		errOut:    errOut,
		conv:      session.NewConversation(store, backend, session.WithLogger(logger)),
		store:     store,
		sessionID: "0123456789",
		model:     "gemini:gemini-2.0-flash",
		logger:    logger,
	}, out, errOut
}

func TestReplConversation(t *testing.T) {
	replies := []string{"Hello!", "Fine, thanks."}
	backend := chatbot.BackendFunc(func(ctx context.Context, p string) (string, error) {
		r := replies[0]
		replies = replies[1:]
		return r, nil
	})

	r, out, errOut := newTestRepl(script("Hi", "   ", "How are you?"), backend)
	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "Assistant: Hello!\n\nAssistant: Fine, thanks.\n\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}
	if !strings.Contains(errOut.String(), "Please enter a message.") {
		t.Errorf("stderr = %q, want blank-input notice", errOut.String())
	}
	if got := r.store.GetOrCreate(r.sessionID).Len(); got != 5 {
		t.Errorf("transcript length = %d, want 5", got)
	}
}

func TestReplBackendErrorKeepsLooping(t *testing.T) {
	calls := 0
	backend := chatbot.BackendFunc(func(ctx context.Context, p string) (string, error) {
		calls++
		if calls == 1 {
			return "", chatbot.NewBackendError("gemini", chatbot.KindQuota, "quota exceeded")
		}
		return "Hello!", nil
	})

	r, out, _ := newTestRepl(script("Hi", "Hi"), backend)
	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "Assistant: " + apologyMessage + "\n\nAssistant: Hello!\n\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}
	if got := r.store.GetOrCreate(r.sessionID).Len(); got != 3 {
		t.Errorf("transcript length = %d, want 3 (failed turn rolled back)", got)
	}
}

func TestReplCommands(t *testing.T) {
	backend := chatbot.BackendFunc(func(ctx context.Context, p string) (string, error) {
		return "Hello!", nil
	})

	r, _, errOut := newTestRepl(script("Hi", "/history", "/info", "/reset", "/bogus", "/exit", "never read"), backend)
	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := errOut.String()
	for _, want := range []string{
		"System: You are a helpful assistant.\nUser: Hi\nAssistant: Hello!",
		"Full ID: 0123456789",
		"Messages: 3",
		"Conversation reset.",
		"Unknown command: /bogus",
		"Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("stderr missing %q:\n%s", want, got)
		}
	}
	if _, ok := r.store.Get(r.sessionID); ok {
		t.Error("/reset should remove the session")
	}
}

func TestReplInterruptAndInputError(t *testing.T) {
	in := &scriptedReader{
		lines: []string{"half typed", ""},
		errs:  []error{readline.ErrInterrupt, readline.ErrInterrupt},
	}
	r, _, _ := newTestRepl(in, chatbot.BackendFunc(func(context.Context, string) (string, error) {
		t.Fatal("backend must not be called")
		return "", nil
	}))
	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	boom := errors.New("tty gone")
	r, _, _ = newTestRepl(&scriptedReader{lines: []string{""}, errs: []error{boom}}, nil)
	if err := r.run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("run() error = %v, want %v", err, boom)
	}
}
