// Package errors provides domain-specific error types for lost.
//
// Errors carry a code so callers can tell a corrupted hosts file from a
// rejected source or a failed download with errors.Is, without matching on
// message text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeCorruptedDocument indicates the hosts file separator or markers were tampered with.
	ErrCodeCorruptedDocument ErrorCode = "CORRUPTED_DOCUMENT"

	// ErrCodeValidation indicates invalid hosts content or an invalid source URL.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeDuplicateSource indicates the source URL is already subscribed.
	ErrCodeDuplicateSource ErrorCode = "DUPLICATE_SOURCE"

	// ErrCodeUnknownSource indicates no subscribed source matches the URL.
	ErrCodeUnknownSource ErrorCode = "UNKNOWN_SOURCE"

	// ErrCodeNoSelection indicates an operation was invoked without a source URL.
	ErrCodeNoSelection ErrorCode = "NO_SELECTION"

	// ErrCodeFetchTimeout indicates the source download timed out.
	ErrCodeFetchTimeout ErrorCode = "FETCH_TIMEOUT"

	// ErrCodeFetchConnection indicates the source download failed.
	ErrCodeFetchConnection ErrorCode = "FETCH_CONNECTION"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeIO indicates reading or writing the hosts file failed.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return stderrors.Is(err, &Error{Code: code})
}

// NewCorruptedDocumentError creates a new corrupted hosts file error.
func NewCorruptedDocumentError(message string) *Error {
	return New(ErrCodeCorruptedDocument, message)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewDuplicateSourceError creates a new duplicate source error.
func NewDuplicateSourceError(url string) *Error {
	return New(ErrCodeDuplicateSource, fmt.Sprintf("source %s already exists in the hosts file", url))
}

// NewUnknownSourceError creates a new unknown source error.
func NewUnknownSourceError(url string) *Error {
	return New(ErrCodeUnknownSource, fmt.Sprintf("source %s was not found in the hosts file", url))
}

// NewNoSelectionError creates a new missing source URL error.
func NewNoSelectionError() *Error {
	return New(ErrCodeNoSelection, "no source URL selected")
}

// NewFetchTimeoutError creates a new download timeout error.
func NewFetchTimeoutError(url string, cause error) *Error {
	return Wrap(ErrCodeFetchTimeout, fmt.Sprintf("request to %s timed out", url), cause)
}

// NewFetchConnectionError creates a new download failure error.
func NewFetchConnectionError(url string, cause error) *Error {
	return Wrap(ErrCodeFetchConnection, fmt.Sprintf("failed to download %s", url), cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewIOError creates a new hosts file I/O error.
func NewIOError(message string, cause error) *Error {
	return Wrap(ErrCodeIO, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
