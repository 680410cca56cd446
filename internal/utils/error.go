package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes with HTTP status mapping
const (
	// General errors
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeValidationFailed = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"

	// Schema errors
	ErrCodeUnsupportedFeature = "UNSUPPORTED_FEATURE"
	ErrCodeUnsupportedLimit   = "UNSUPPORTED_LIMIT"
	ErrCodeMissingDomain      = "MISSING_DOMAIN"
	ErrCodeCatalogError       = "CATALOG_ERROR"

	// Connection errors
	ErrCodeConnectionFailed = "CONNECTION_FAILED"
)

// HTTPStatus maps error codes to HTTP status codes
var HTTPStatus = map[string]int{
	ErrCodeInvalidRequest:   http.StatusBadRequest,
	ErrCodeValidationFailed: http.StatusUnprocessableEntity,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeInternalError:    http.StatusInternalServerError,

	ErrCodeUnsupportedFeature: http.StatusNotImplemented,
	ErrCodeUnsupportedLimit:   http.StatusBadRequest,
	ErrCodeMissingDomain:      http.StatusInternalServerError,
	ErrCodeCatalogError:       http.StatusInternalServerError,

	ErrCodeConnectionFailed: http.StatusServiceUnavailable,
}

// AppError represents an application error with additional context
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for creating errors
type ErrorBuilder struct {
	code    string
	message string
	details string
	cause   error
}

// NewErrorBuilder creates a new error builder
func NewErrorBuilder(code string) *ErrorBuilder {
	return &ErrorBuilder{code: code}
}

// WithMessage sets the error message
func (eb *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// WithDetails sets the error details
func (eb *ErrorBuilder) WithDetails(details string) *ErrorBuilder {
	eb.details = details
	return eb
}

// WithCause sets the underlying error cause
func (eb *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Build constructs the final AppError
func (eb *ErrorBuilder) Build() *AppError {
	if eb.message == "" {
		eb.message = getDefaultMessage(eb.code)
	}

	return &AppError{
		Code:    eb.code,
		Message: eb.message,
		Details: eb.details,
		Cause:   eb.cause,
	}
}

// getDefaultMessage returns a default message for error codes
func getDefaultMessage(code string) string {
	messages := map[string]string{
		ErrCodeInvalidRequest:   "The request is invalid",
		ErrCodeValidationFailed: "Validation failed",
		ErrCodeNotFound:         "Resource not found",
		ErrCodeInternalError:    "Internal server error",

		ErrCodeUnsupportedFeature: "Firebird does not support this feature",
		ErrCodeUnsupportedLimit:   "Unsupported column limit",
		ErrCodeMissingDomain:      "Specified domain does not exist",
		ErrCodeCatalogError:       "Catalog operation failed",

		ErrCodeConnectionFailed: "Database connection failed",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Unknown error"
}

// Convenience functions for common error types
func NewUnsupportedFeatureError(message string) *AppError {
	return NewErrorBuilder(ErrCodeUnsupportedFeature).
		WithMessage(message).
		Build()
}

func NewUnsupportedLimitError(message string) *AppError {
	return NewErrorBuilder(ErrCodeUnsupportedLimit).
		WithMessage(message).
		Build()
}

// NewCatalogError keeps the driver text in Details so callers matching on
// Error() still see the original server message.
func NewCatalogError(cause error, statement string) *AppError {
	return NewErrorBuilder(ErrCodeCatalogError).
		WithMessage(fmt.Sprintf("failed to run %q", statement)).
		WithDetails(cause.Error()).
		WithCause(cause).
		Build()
}

func NewNotFoundError(resource string) *AppError {
	return NewErrorBuilder(ErrCodeNotFound).
		WithMessage(fmt.Sprintf("%s not found", resource)).
		Build()
}

func NewValidationError(message string, details string) *AppError {
	return NewErrorBuilder(ErrCodeValidationFailed).
		WithMessage(message).
		WithDetails(details).
		Build()
}

// IsErrorType checks if an error in the chain matches a specific error code
func IsErrorType(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, exists := HTTPStatus[appErr.Code]; exists {
			return status
		}
	}
	return http.StatusInternalServerError
}
