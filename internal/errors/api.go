package errors

import (
	"net/http"

	"github.com/go-chi/render"

	"gradecli/internal/middleware"
)

// APIError is the JSON error body returned by the HTTP surface.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	TraceID    string      `json:"trace_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	e.TraceID = middleware.GetReqID(r.Context())
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined errors for the read surface
var (
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrNoRun            = New(http.StatusServiceUnavailable, "NO_RUN", "No processed semester run is loaded")
	ErrInternalServer   = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", map[string]string{
		"field":   field,
		"message": message,
	})
}

// FromAppError maps an AppError onto the API error vocabulary.
func FromAppError(err *AppError) *APIError {
	switch err.Type {
	case ErrTypeNotFound:
		return NewWithDetails(http.StatusNotFound, "NOT_FOUND", err.Message, err.Context)
	case ErrTypeValidation:
		return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", err.Message, err.Context)
	default:
		return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err.Message, err.Context)
	}
}
