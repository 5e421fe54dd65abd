package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("KV-TEST-1000", "test message"),
			expected: "ERR test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("KV-TEST-1001", "test message").WithDetails("extra info"),
			expected: "ERR test message: extra info",
		},
		{
			name:     "protocol error",
			err:      ErrProtocolFrame.WithDetails("expected '$'"),
			expected: "ERR Protocol error: expected '$'",
		},
		{
			name:     "custom prefix",
			err:      &DomainError{ID: "KV-TEST-1002", Code: "WRONGTYPE", Message: "bad type"},
			expected: "WRONGTYPE bad type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("KV-TEST-1000", "message 1")
	err2 := NewDomainError("KV-TEST-1000", "message 2") // Same ID, different message
	err3 := NewDomainError("KV-TEST-1001", "message 1") // Different ID

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error ID")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error ID")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}

	// Derived copies keep their identity.
	if !errors.Is(wrongArgs("get"), ErrWrongArgs) {
		t.Error("wrongArgs() should match ErrWrongArgs")
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", ErrNotInteger), ErrNotInteger) {
		t.Error("wrapped error should match ErrNotInteger")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("KV-TEST-1000", "wrapper").WithCause(cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := NewDomainError("KV-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_CopiesDoNotMutate(t *testing.T) {
	original := NewDomainError("KV-TEST-1000", "original message")

	_ = original.WithDetails("details")
	_ = original.WithMessage("changed %d", 1)
	_ = original.WithCause(errors.New("cause"))

	if original.Details != "" || original.Message != "original message" || original.Cause != nil {
		t.Errorf("original modified: %+v", original)
	}
}

func TestIsDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		id   string
		want bool
	}{
		{"matching id", ErrNotInteger, "KV-CMD-4002", true},
		{"different id", ErrNotInteger, "KV-CMD-4001", false},
		{"any domain error", ErrRateLimited, "", true},
		{"wrapped", fmt.Errorf("ctx: %w", ErrMaxClients), "KV-CONN-5030", true},
		{"plain error", errors.New("plain"), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDomainError(tt.err, tt.id); got != tt.want {
				t.Errorf("IsDomainError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorID(t *testing.T) {
	if got := GetErrorID(ErrInvalidExpire); got != "KV-CMD-4003" {
		t.Errorf("GetErrorID() = %q, want KV-CMD-4003", got)
	}
	if got := GetErrorID(errors.New("plain")); got != "" {
		t.Errorf("GetErrorID(plain) = %q, want empty", got)
	}
}
