package domain

import (
	"errors"
	"fmt"
)

// ReplyPrefix is the leading word of every error reply sent to clients.
const ReplyPrefix = "ERR"

// DomainError is a client-visible failure with a stable identifier.
//
// Error() yields the exact text of the error reply, so a DomainError can be
// written to the wire without further formatting. ID identifies the error
// class for errors.Is and metrics; it never reaches the client.
type DomainError struct {
	ID      string // Stable identifier (e.g., "KV-CMD-4001")
	Code    string // Reply prefix, normally ReplyPrefix
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s %s: %s", e.Code, e.Message, e.Details)
	}
	return e.Code + " " + e.Message
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError with the same ID.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.ID == t.ID
}

// NewDomainError creates a DomainError with the default reply prefix.
func NewDomainError(id, message string) *DomainError {
	return &DomainError{
		ID:      id,
		Code:    ReplyPrefix,
		Message: message,
	}
}

// WithMessage returns a copy of the error with a different message.
func (e *DomainError) WithMessage(format string, args ...any) *DomainError {
	c := *e
	c.Message = fmt.Sprintf(format, args...)
	return &c
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// IsDomainError checks if an error is a DomainError with the given ID.
// If id is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, id string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if id == "" {
			return true
		}
		return de.ID == id
	}
	return false
}

// GetErrorID extracts the identifier from an error if it's a DomainError.
func GetErrorID(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ID
	}
	return ""
}

// ============================================================================
// Command Errors (CMD)
// ============================================================================

var (
	// ErrWrongArgs indicates a command was called with too few arguments.
	ErrWrongArgs = NewDomainError("KV-CMD-4001", "wrong number of arguments")

	// ErrNotInteger indicates a numeric argument failed to parse.
	ErrNotInteger = NewDomainError("KV-CMD-4002", "value is not an integer or out of range")

	// ErrInvalidExpire indicates a non-positive or oversized px value.
	ErrInvalidExpire = NewDomainError("KV-CMD-4003", "invalid expire time in 'set' command")

	// ErrUnknownCommand indicates an unrecognized command name.
	ErrUnknownCommand = NewDomainError("KV-CMD-4040", "unknown command")
)

// ============================================================================
// Connection Errors (CONN)
// ============================================================================

var (
	// ErrProtocolFrame indicates a request that is not a well-formed frame.
	ErrProtocolFrame = NewDomainError("KV-CONN-4000", "Protocol error")

	// ErrRateLimited indicates the connection exceeded its command rate.
	ErrRateLimited = NewDomainError("KV-CONN-4290", "rate limit exceeded")

	// ErrMaxClients indicates the server refused a connection over the limit.
	ErrMaxClients = NewDomainError("KV-CONN-5030", "max number of clients reached")
)
