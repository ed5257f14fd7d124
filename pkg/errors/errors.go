// Package errors provides structured error types for the fractal tools.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure classes of the tree algebra:
//   - STRUCTURAL_VIOLATION: a tree node has an impossible shape (fatal)
//   - INVALID_PATH: a vertex path points at a child that does not exist
//   - PARSE_FAILURE: tree text does not follow the tree grammar
//   - INVALID_INPUT, NOT_FOUND, INTERNAL_ERROR: surface-level failures
//
// Reaching either end of the undo history is not an error; the store reports
// it as a boolean.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPath, "no child %d at %q", d, path)
//	if errors.Is(err, errors.ErrCodeInvalidPath) {
//	    // reject the edit
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParseFailure, origErr, "import %q", text)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Tree errors
	ErrCodeStructuralViolation Code = "STRUCTURAL_VIOLATION"
	ErrCodeInvalidPath         Code = "INVALID_PATH"
	ErrCodeParseFailure        Code = "PARSE_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Capacity errors
	ErrCodeLimitExceeded Code = "LIMIT_EXCEEDED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsUserError reports whether err was caused by rejected input rather than
// a broken invariant. User errors leave all state untouched and are safe to
// show verbatim.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidPath, ErrCodeParseFailure, ErrCodeInvalidInput:
		return true
	}
	return false
}
