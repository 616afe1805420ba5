package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openedu/conductor-api/internal/constants"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodePreconditionFailed = "PRECONDITION_FAILED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Kind classifies a failure. The set is closed; anything untagged is KindStore.
type Kind int

const (
	KindStore Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindValidation
	KindPrecondition
)

// Status maps a kind to its HTTP status code
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code maps a kind to its stable error code
func (k Kind) Code() string {
	switch k {
	case KindUnauthenticated:
		return ErrCodeUnauthorized
	case KindUnauthorized:
		return ErrCodeForbidden
	case KindNotFound:
		return ErrCodeNotFound
	case KindValidation:
		return ErrCodeInvalidInput
	case KindPrecondition:
		return ErrCodePreconditionFailed
	default:
		return ErrCodeInternalError
	}
}

// Error is a tagged domain failure. Its message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a tagged error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first tagged error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// APIError is the JSON envelope returned for every failed request
type APIError struct {
	Err     bool        `json:"err"`
	Code    string      `json:"errCode"`
	Message string      `json:"errMsg"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Err:     true,
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Err:     true,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond translates a service error into the envelope and status for its kind.
// Untagged errors are logged and reported with a generic message.
func Respond(c *gin.Context, err error) {
	var tagged *Error
	if errors.As(err, &tagged) {
		RespondWithError(c, tagged.Kind.Status(), NewAPIError(tagged.Kind.Code(), tagged.Message))
		return
	}

	requestLogger(c).Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	InternalError(c, "")
}

// requestLogger returns the logger the request middleware stored, or the default one
func requestLogger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(constants.ContextKeyLogger); ok {
		if logger, ok := v.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
