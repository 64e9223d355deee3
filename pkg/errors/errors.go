// Package errors provides structured error types for gridkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes are grouped by the failure taxonomy of the layout engine:
//   - Validation: malformed layout input (INVALID_LAYOUT, DUPLICATE_ID, ...)
//   - Configuration: missing or invalid grid options (MISSING_COLS, INVALID_CONFIG)
//   - Session: misuse of the drag/resize protocol (SESSION_PROTOCOL, SESSION_ACTIVE)
//   - Geometry: operations that need an unknown measurement (MISSING_CONTAINER_WIDTH)
//
// A move rejected because of collision prevention is not an error. It is
// reported as an outcome by the mover.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateID, "duplicate item id %q", id)
//	if errors.Is(err, errors.ErrCodeDuplicateID) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Validation errors
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidID     Code = "INVALID_ID"
	ErrCodeDuplicateID   Code = "DUPLICATE_ID"
	ErrCodeInvalidSpan   Code = "INVALID_SPAN"
	ErrCodeOutOfBounds   Code = "OUT_OF_BOUNDS"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Configuration errors
	ErrCodeMissingCols   Code = "MISSING_COLS"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Session protocol errors
	ErrCodeSessionProtocol Code = "SESSION_PROTOCOL"
	ErrCodeSessionActive   Code = "SESSION_ACTIVE"
	ErrCodeNotDraggable    Code = "NOT_DRAGGABLE"
	ErrCodeNotResizable    Code = "NOT_RESIZABLE"

	// Lookup and measurement errors
	ErrCodeItemNotFound          Code = "ITEM_NOT_FOUND"
	ErrCodeNotFound              Code = "NOT_FOUND"
	ErrCodeMissingContainerWidth Code = "MISSING_CONTAINER_WIDTH"

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

// IsValidation reports whether err belongs to the layout validation family.
// Validation failures are fatal to the operation that raised them, and the
// engine never repairs them silently.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidLayout, ErrCodeInvalidID, ErrCodeDuplicateID,
		ErrCodeInvalidSpan, ErrCodeOutOfBounds, ErrCodeInvalidFormat:
		return true
	}
	return false
}
