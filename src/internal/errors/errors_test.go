package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      NewCorruptedDocumentError("separator appears twice"),
			expected: "[CORRUPTED_DOCUMENT] separator appears twice",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeIO, "failed to write hosts file", errors.New("permission denied")),
			expected: "[IO_ERROR] failed to write hosts file: permission denied",
		},
		{
			name:     "unknown source",
			err:      NewUnknownSourceError("https://example.com/hosts"),
			expected: "[UNKNOWN_SOURCE] source https://example.com/hosts was not found in the hosts file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestError_Is(t *testing.T) {
	err1 := &Error{Code: ErrCodeValidation, Message: "test error"}
	err2 := &Error{Code: ErrCodeValidation, Message: "another error"}
	err3 := &Error{Code: ErrCodeFetchTimeout, Message: "timeout"}

	if !err1.Is(err2) {
		t.Errorf("Expected errors with same code to match")
	}
	if err1.Is(err3) {
		t.Errorf("Expected errors with different codes to not match")
	}
}

func TestHasCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("update failed: %w", NewFetchTimeoutError("https://example.com", errors.New("deadline")))

	if !HasCode(err, ErrCodeFetchTimeout) {
		t.Errorf("Expected wrapped error to carry %s", ErrCodeFetchTimeout)
	}
	if HasCode(err, ErrCodeFetchConnection) {
		t.Errorf("Did not expect %s", ErrCodeFetchConnection)
	}
	if got := CodeOf(err); got != ErrCodeFetchTimeout {
		t.Errorf("CodeOf() = %v, want %v", got, ErrCodeFetchTimeout)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %v, want empty", got)
	}
}

func TestNewValidationError(t *testing.T) {
	cause := errors.New("line 3: invalid address")
	err := NewValidationError("hosts content is not valid", cause)

	if err.Code != ErrCodeValidation {
		t.Errorf("Expected code %v, got %v", ErrCodeValidation, err.Code)
	}
	if err.Message != "hosts content is not valid" {
		t.Errorf("Expected message 'hosts content is not valid', got %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("Expected cause to be preserved")
	}
}
