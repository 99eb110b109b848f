package api

import (
	"encoding/json"
	"net/http"

	"github.com/lost-hosts/lost/src/internal/errors"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested source was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeConflict indicates the source already exists.
	ErrCodeConflict ErrorCode = "conflict"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"

	// ErrCodeValidationFailed indicates the URL or the downloaded content is invalid.
	ErrCodeValidationFailed ErrorCode = "validation_failed"

	// ErrCodeForbidden indicates the client is not allowed to use the API.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeFetchFailed indicates the source could not be downloaded.
	ErrCodeFetchFailed ErrorCode = "fetch_failed"

	// ErrCodeConfirmationRequired indicates dangerous entries must be confirmed with a token.
	ErrCodeConfirmationRequired ErrorCode = "confirmation_required"

	// ErrCodeTooEarly indicates a confirmation token was used before its deliberation delay passed.
	ErrCodeTooEarly ErrorCode = "too_early"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err})
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WriteDomainError maps a coded error to an HTTP status and writes it.
func WriteDomainError(w http.ResponseWriter, err error) {
	message := err.Error()
	switch errors.CodeOf(err) {
	case errors.ErrCodeValidation:
		WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeValidationFailed, message))
	case errors.ErrCodeNoSelection:
		WriteInvalidRequest(w, message)
	case errors.ErrCodeDuplicateSource:
		WriteError(w, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
	case errors.ErrCodeUnknownSource:
		WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
	case errors.ErrCodeFetchTimeout:
		WriteError(w, http.StatusGatewayTimeout, NewAPIError(ErrCodeFetchFailed, message))
	case errors.ErrCodeFetchConnection:
		WriteError(w, http.StatusBadGateway, NewAPIError(ErrCodeFetchFailed, message))
	default:
		WriteInternalError(w, message)
	}
}
