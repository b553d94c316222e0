package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorKind categorizes failures so the caller can render the right guidance.
type ErrorKind string

const (
	// ErrTimeout means the generation deadline elapsed. Retryable by a new call.
	ErrTimeout ErrorKind = "timeout"
	// ErrRateLimit means the backend signaled quota or throttling.
	ErrRateLimit ErrorKind = "rate_limit"
	// ErrAPI covers any other backend failure.
	ErrAPI ErrorKind = "api"
	// ErrParse means the backend replied but no command could be extracted.
	ErrParse ErrorKind = "parse"
	// ErrSecretStore means credential retrieval or storage failed.
	ErrSecretStore ErrorKind = "secret_store"
	// ErrValidation means the caller-supplied input was rejected locally.
	ErrValidation ErrorKind = "validation"
	// ErrConfig means the configuration could not be loaded or is invalid.
	ErrConfig ErrorKind = "config"
)

// Error is the structured error surfaced by the orchestrator. It carries a
// kind for programmatic branching and suggestions for the user-facing layer.
type Error struct {
	Kind        ErrorKind
	Message     string
	Details     string
	Suggestions []string
	Cause       error
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, e.Message)
	if e.Details != "" {
		parts = append(parts, fmt.Sprintf("Details: %s", e.Details))
	}
	if len(e.Suggestions) > 0 {
		parts = append(parts, fmt.Sprintf("Suggestions:\n  - %s", strings.Join(e.Suggestions, "\n  - ")))
	}
	return strings.Join(parts, "\n")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetails attaches detail text to an error.
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// WithSuggestion appends a user-facing suggestion.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// NewError builds a bare structured error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds a structured error around a cause.
func WrapError(err error, kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: err}
}

// KindOf extracts the kind from any error in the chain, or "" when the error
// is not a domain error.
func KindOf(err error) ErrorKind {
	var domErr *Error
	if errors.As(err, &domErr) {
		return domErr.Kind
	}
	return ""
}

// IsKind reports whether err (or anything it wraps) is a domain error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// NewTimeoutError reports a generation call that outlived its deadline.
func NewTimeoutError(model string, deadline time.Duration) *Error {
	return NewError(ErrTimeout, fmt.Sprintf("generation timed out after %s", deadline)).
		WithDetails(fmt.Sprintf("Model: %s", model)).
		WithSuggestion("Try again, or switch to a faster model with 'termgenie models use'")
}

// NewRateLimitError reports backend throttling.
func NewRateLimitError(cause error) *Error {
	return WrapError(cause, ErrRateLimit, "backend rate limit exceeded").
		WithSuggestion("Wait a moment before retrying")
}

// NewAPIError reports any other backend failure.
func NewAPIError(message string, cause error) *Error {
	return WrapError(cause, ErrAPI, message)
}

// NewParseError reports a reply from which no command could be extracted.
func NewParseError(raw string) *Error {
	return NewError(ErrParse, "no command found in the backend reply").
		WithDetails(snippet(raw, 120)).
		WithSuggestion("Rephrase the request and try again")
}

// NewSecretStoreError reports a credential retrieval or storage failure.
func NewSecretStoreError(message string, cause error) *Error {
	return WrapError(cause, ErrSecretStore, message).
		WithSuggestion("Run 'termgenie config set-key' to store the API key")
}

// NewValidationError reports rejected caller input.
func NewValidationError(message string) *Error {
	return NewError(ErrValidation, message)
}

// NewConfigError reports an unreadable or malformed configuration.
func NewConfigError(message string, cause error) *Error {
	return WrapError(cause, ErrConfig, message).
		WithSuggestion("Run 'termgenie config path' to locate the config file")
}

func snippet(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
