package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an application-specific error kind.
type ErrorCode string

const (
	ErrCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeDuplicateCommitment ErrorCode = "DUPLICATE_COMMITMENT"
	ErrCodeGone                ErrorCode = "GONE"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// AppError is a structured application error carrying the HTTP status it
// maps to, alongside the gin handler's literal response body.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Details    any       `json:"details,omitempty"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError defaulting to 500 Internal Server Error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: http.StatusInternalServerError}
}

// NewWithStatus creates an AppError with an explicit HTTP status.
func NewWithStatus(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// Wrap wraps err in an AppError, defaulting to 500.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: http.StatusInternalServerError, Err: err}
}

// WrapWithStatus wraps err in an AppError with an explicit HTTP status.
func WrapWithStatus(code ErrorCode, message string, statusCode int, err error) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode, Err: err}
}

// WithDetails attaches extra debugging context to an AppError.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// BadRequest covers malformed or semantically invalid input: missing
// fields, a failed proof-of-work, malformed JSON bodies.
func BadRequest(message string) *AppError {
	return NewWithStatus(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// Unauthorized covers a missing, malformed, or incorrect admin bearer
// token.
func Unauthorized(message string) *AppError {
	return NewWithStatus(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

// ServiceUnavailable covers the admin surface when no admin token has been
// configured at all — distinct from a bad token.
func ServiceUnavailable(message string) *AppError {
	return NewWithStatus(ErrCodeUnauthorized, message, http.StatusServiceUnavailable)
}

// NotFound covers missing msg_id/message_id/user_id lookups.
func NotFound(message string) *AppError {
	return NewWithStatus(ErrCodeNotFound, message, http.StatusNotFound)
}

// DuplicateCommitment covers a commitment that has already been consumed
// by a prior submission (spec invariant I2).
func DuplicateCommitment(message string) *AppError {
	return NewWithStatus(ErrCodeDuplicateCommitment, message, http.StatusConflict)
}

// Gone covers a record whose data has already undergone data death: the
// record exists but its key material is permanently destroyed.
func Gone(message string) *AppError {
	return NewWithStatus(ErrCodeGone, message, http.StatusGone)
}

// Internal covers unexpected failures: storage I/O, marshal errors,
// cryptographic operations that should never fail in practice.
func Internal(message string) *AppError {
	return NewWithStatus(ErrCodeInternal, message, http.StatusInternalServerError)
}

// InternalFrom wraps err as an Internal AppError.
func InternalFrom(err error) *AppError {
	return Wrap(ErrCodeInternal, "internal error", err)
}

// IsAppError reports whether err is an *AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an *AppError from err, wrapping any other error as
// Internal.
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return InternalFrom(err)
}
