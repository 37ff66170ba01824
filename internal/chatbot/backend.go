package chatbot

import (
	"context"
	"time"
)

// BackendFunc adapts an ordinary function to the Backend interface.
type BackendFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt).
func (f BackendFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type timeoutBackend struct {
	next    Backend
	timeout time.Duration
}

// WithTimeout bounds every Complete call on b by d. A non-positive d
// returns b unchanged. An expired deadline is reported as KindTimeout.
func WithTimeout(b Backend, d time.Duration) Backend {
	if d <= 0 {
		return b
	}
	return &timeoutBackend{next: b, timeout: d}
}

func (t *timeoutBackend) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	reply, err := t.next.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			be := AsBackendError("", err)
			return "", &BackendError{Provider: be.Provider, Kind: KindTimeout, Err: be.Err}
		}
		return "", err
	}
	return reply, nil
}
