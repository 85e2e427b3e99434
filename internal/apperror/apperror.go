// Package apperror defines the domain errors shared by every layer.
//
// Repositories and services return these; only the HTTP layer decides which
// status code each one becomes.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("Validation Error")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

type AppError struct {
	Err      error    // actual error
	Message  string   // Human-readable error message
	Messages []string // Every violated rule, in order (validation only)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError for a missing resource, e.g. NotFound("Course")
// reads "Course not found".
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Validation bundles several rule violations into one error.
// The order of messages is preserved so clients see them in field order.
func Validation(messages []string) *AppError {
	return &AppError{
		Err:      ErrValidation,
		Message:  strings.Join(messages, "; "),
		Messages: messages,
	}
}

func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict on %s", resource, key),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthenticated carries the server-side reason a credential check failed.
// The reason is for logs only; clients always see a generic denial.
func Unauthenticated(reason string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: reason,
	}
}

// ValidationMessages returns the ordered rule messages carried by err, or nil
// if err is not a validation error.
func ValidationMessages(err error) []string {
	var appErr *AppError
	if !errors.As(err, &appErr) || !errors.Is(appErr.Err, ErrValidation) {
		return nil
	}
	return appErr.Messages
}
