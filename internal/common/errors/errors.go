// Package errors provides the standardized error taxonomy shared by
// validators, controllers and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Malformed or missing input from the request body, query string or path.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidQuery     ErrorCode = "INVALID_QUERY_PARAMETERS"
	ErrCodeInvalidParams    ErrorCode = "INVALID_PATH_PARAMETERS"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"

	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeRouteNotFound ErrorCode = "ROUTE_NOT_FOUND"
	ErrCodeConflict      ErrorCode = "CONFLICT"

	// Operation disallowed by the current status of an entity.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"

	ErrCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// FieldViolation is one failed rule for one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Hint      string                 `json:"hint,omitempty"`
	Details   string                 `json:"details,omitempty"`
	Fields    []FieldViolation       `json:"fields,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("StandardError[%s]: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status code for the error.
func (e *StandardError) Status() int {
	return HTTPStatus(e.Code)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError reports every violated rule of a request body.
func NewValidationError(fields []FieldViolation) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Validation failed",
		Hint:      "Please check your input data",
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryError reports every violated rule of a query string.
func NewInvalidQueryError(fields []FieldViolation) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQuery,
		Message:   "Invalid query parameters",
		Hint:      "Please check your search/filter parameters",
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidParamsError reports every violated rule of the URL path parameters.
func NewInvalidParamsError(fields []FieldViolation) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidParams,
		Message:   "Invalid parameters",
		Hint:      "Please check your URL parameters",
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// NewBadRequestError is a 400 without per-field details.
func NewBadRequestError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBadRequest,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewRouteNotFoundError carries the unmatched method and path in Metadata.
func NewRouteNotFoundError(method, path string) *StandardError {
	return &StandardError{
		Code:    ErrCodeRouteNotFound,
		Message: "Route not found",
		Metadata: map[string]interface{}{
			"method": method,
			"path":   path,
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewConflictError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConflict,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewStateError rejects an operation the entity's current status does not allow.
func NewStateError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidState,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceError wraps a store failure. The operation name ends up in logs only.
func NewPersistenceError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailed,
		Message:   "Internal server error",
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   details,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidQuery, ErrCodeInvalidParams,
		ErrCodeBadRequest, ErrCodeInvalidState:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return code == ErrCodePersistenceFailed
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeInvalidState:
		return "STATE"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID_") || code == ErrCodeBadRequest:
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case code == ErrCodeConflict:
		return "CONFLICT"
	case code == ErrCodePersistenceFailed:
		return "DATABASE"
	default:
		return "OTHER"
	}
}

// As extracts a *StandardError from err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}
