package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnauthorized            = Unauthorized("UNAUTHORIZED", "unauthorized access")
	ErrInvalidToken            = Unauthorized("INVALID_TOKEN", "invalid or expired token")
	ErrInsufficientPermissions = Forbidden("FORBIDDEN", "insufficient permissions")

	ErrInvalidEmail = NewAppError("INVALID_EMAIL", "invalid email format", nil)
)

// AppError carries a message and the HTTP status it should be reported with.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithErr returns a copy of e that wraps err, keeping code, message and status.
func (e *AppError) WithErr(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// NewAppError builds a 400 error, matching the behaviour of plain input errors.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

func NotFound(code, message string) *AppError {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *AppError {
	return New(http.StatusConflict, code, message)
}

func Forbidden(code, message string) *AppError {
	return New(http.StatusForbidden, code, message)
}

func Unauthorized(code, message string) *AppError {
	return New(http.StatusUnauthorized, code, message)
}

func Unprocessable(code, message string) *AppError {
	return New(http.StatusUnprocessableEntity, code, message)
}

func Internal(message string, err error) *AppError {
	return &AppError{Code: "INTERNAL", Message: message, Status: http.StatusInternalServerError, Err: err}
}

// Validation turns validator output into a single readable 400 error.
func Validation(err error) *AppError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return NewAppError("VALIDATION_ERROR", "Invalid input: "+strings.Join(parts, ", "), err)
}

// StatusOf reports the HTTP status for err, defaulting to 500 for unknown errors.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
