package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/longkey1/chatbot/internal/chatbot"
	promptpkg "github.com/longkey1/chatbot/internal/chatbot/prompt"
	"github.com/longkey1/chatbot/internal/chatbot/session"
	"github.com/sirupsen/logrus"
)

const apologyMessage = "I'm sorry, I didn't get a response. Try again?"

// lineReader is satisfied by *readline.Instance.
type lineReader interface {
	Readline() (string, error)
}

// repl is the interactive chat loop. Turn errors never end the loop.
type repl struct {
	in        lineReader
	out       io.Writer
	errOut    io.Writer
	conv      *session.Conversation
	store     *session.MemoryStore
	sessionID string
	model     string
	spinner   bool
	logger    logrus.FieldLogger
}

func (r *repl) run(ctx context.Context) error {
	fmt.Fprintf(r.errOut, "\n%s\n", titleStyle.Render(fmt.Sprintf("=== Chatbot [%s] ===", shortID(r.sessionID))))
	fmt.Fprintf(r.errOut, "Model: %s\n", r.model)
	fmt.Fprintln(r.errOut, dimStyle.Render("Type '/help' for commands, '/exit' or 'Ctrl+D' to quit"))
	fmt.Fprintln(r.errOut)

	for {
		line, err := r.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				fmt.Fprintln(r.errOut, "Goodbye!")
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.errOut, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			fmt.Fprintln(r.errOut, "Please enter a message.")
			continue
		}

		if strings.HasPrefix(input, "/") {
			if r.handleSpecialCommand(input) {
				continue
			}
			return nil
		}

		r.turn(ctx, input)
	}
}

// turn runs one exchange. Ctrl+C while waiting cancels only this request.
func (r *repl) turn(ctx context.Context, input string) {
	turnCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var done chan bool
	if r.spinner {
		done = make(chan bool)
		go showSpinner(r.errOut, done)
	}

	res, err := r.conv.Turn(turnCtx, r.sessionID, input)

	if done != nil {
		done <- true
		close(done)
	}

	switch {
	case err == nil:
		fmt.Fprintf(r.out, "Assistant: %s\n\n", res.Reply)
	case chatbot.IsValidation(err):
		fmt.Fprintln(r.errOut, "Please enter a message.")
	default:
		r.logger.WithError(err).WithField("session", r.sessionID).Error("Turn failed")
		fmt.Fprintf(r.out, "Assistant: %s\n\n", apologyMessage)
	}
}

// showSpinner displays a spinner animation while waiting for response
func showSpinner(w io.Writer, done chan bool) {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	i := 0
	for {
		select {
		case <-done:
			fmt.Fprint(w, "\r\033[K")
			return
		default:
			fmt.Fprintf(w, "\r%s Waiting for response...", spinners[i])
			i = (i + 1) % len(spinners)
			time.Sleep(80 * time.Millisecond)
		}
	}
}

// handleSpecialCommand processes special commands in interactive mode
// Returns true to continue the loop, false to exit
func (r *repl) handleSpecialCommand(command string) bool {
	command = strings.ToLower(strings.TrimSpace(command))

	switch command {
	case "/help", "/h":
		fmt.Fprintf(r.errOut, "\n%s\n", headingStyle.Render("Available commands:"))
		fmt.Fprintln(r.errOut, "  /help, /h     - Show this help message")
		fmt.Fprintln(r.errOut, "  /info, /i     - Show session information")
		fmt.Fprintln(r.errOut, "  /history      - Show the conversation as sent to the model")
		fmt.Fprintln(r.errOut, "  /reset        - Start the conversation over")
		fmt.Fprintln(r.errOut, "  /clear, /c    - Clear screen (Unix/Linux only)")
		fmt.Fprintln(r.errOut, "  /exit, /quit  - Exit interactive mode")
		fmt.Fprintln(r.errOut, "  Ctrl+D        - Exit interactive mode")
		fmt.Fprintln(r.errOut, "")
		return true

	case "/info", "/i":
		t := r.store.GetOrCreate(r.sessionID)
		fmt.Fprintf(r.errOut, "\n%s\n", headingStyle.Render("Session Information:"))
		fmt.Fprintf(r.errOut, "  ID: %s\n", t.GetShortID())
		fmt.Fprintf(r.errOut, "  Full ID: %s\n", t.SessionID)
		fmt.Fprintf(r.errOut, "  Model: %s\n", r.model)
		fmt.Fprintf(r.errOut, "  Language: %s\n", t.Language)
		fmt.Fprintf(r.errOut, "  Messages: %d\n", t.Len())
		fmt.Fprintf(r.errOut, "  Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(r.errOut, "")
		return true

	case "/history":
		merged, err := promptpkg.Assemble(r.store.GetOrCreate(r.sessionID))
		if err != nil {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(r.errOut, "\n%s\n\n", merged)
		return true

	case "/reset":
		r.store.Delete(r.sessionID)
		fmt.Fprintln(r.errOut, "Conversation reset.")
		return true

	case "/clear", "/c":
		fmt.Fprint(r.out, "\033[H\033[2J")
		return true

	case "/exit", "/quit", "/q":
		fmt.Fprintln(r.errOut, "Goodbye!")
		return false

	default:
		fmt.Fprintf(r.errOut, "Unknown command: %s (type '/help' for available commands)\n", command)
		return true
	}
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
