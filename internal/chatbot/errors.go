package chatbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is returned when a message or user input is malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EmptyPromptError is returned when a transcript assembles to nothing.
type EmptyPromptError struct {
	SessionID string
}

func (e *EmptyPromptError) Error() string {
	if e.SessionID == "" {
		return "prompt is empty: no messages to send"
	}
	return fmt.Sprintf("prompt is empty for session %s: no messages to send", e.SessionID)
}

// BackendErrorKind classifies a backend failure.
type BackendErrorKind string

const (
	KindNetwork   BackendErrorKind = "network"
	KindAuth      BackendErrorKind = "auth"
	KindQuota     BackendErrorKind = "quota"
	KindMalformed BackendErrorKind = "malformed"
	KindTimeout   BackendErrorKind = "timeout"
	KindRemote    BackendErrorKind = "remote"
)

// BackendError wraps any failure of a completion backend.
type BackendError struct {
	Provider string
	Kind     BackendErrorKind
	Err      error
}

func (e *BackendError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("backend %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError builds a BackendError from a formatted message.
func NewBackendError(provider string, kind BackendErrorKind, format string, args ...any) *BackendError {
	return &BackendError{Provider: provider, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// AsBackendError converts err into a *BackendError. Errors that already are
// backend errors are returned as-is; context deadline errors become
// KindTimeout and everything else KindNetwork.
func AsBackendError(provider string, err error) *BackendError {
	if err == nil {
		return nil
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be
	}
	kind := KindNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &BackendError{Provider: provider, Kind: kind, Err: err}
}

// KindForStatus maps a non-2xx HTTP status code to an error kind.
func KindForStatus(status int) BackendErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusTooManyRequests:
		return KindQuota
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return KindTimeout
	default:
		return KindRemote
	}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsEmptyPrompt reports whether err is (or wraps) an *EmptyPromptError.
func IsEmptyPrompt(err error) bool {
	var pe *EmptyPromptError
	return errors.As(err, &pe)
}

// IsBackend reports whether err is (or wraps) a *BackendError.
func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
