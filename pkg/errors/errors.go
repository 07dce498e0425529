// Package errors provides structured error types for legalcanvas.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the web UI
//   - Machine-readable error codes for programmatic handling
//   - Fixed user-facing messages that never leak model or rasterizer output
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found (sheet id, canvas root)
//   - *_FAILED: Terminal failure of one attempt (generation, export)
//   - BUSY: An action of the same kind is already in flight
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "contract text is empty")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeGeneration, origErr, MsgGeneration)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSuite  Code = "INVALID_SUITE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Attempt failures
	ErrCodeGeneration Code = "GENERATION_FAILED"
	ErrCodeExport     Code = "EXPORT_FAILED"
	ErrCodeBusy       Code = "BUSY"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Fixed user-facing messages. Diagnostic detail stays in the wrapped cause
// and in the logs.
const (
	MsgGeneration = "Could not architect the visual suite. Try a more specific fragment of the contract."
	MsgExport     = "Export failed. Try capturing the screen directly."
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

// Generation wraps cause as a GenerationError with the fixed user message.
func Generation(cause error) *Error {
	return &Error{Code: ErrCodeGeneration, Message: MsgGeneration, Cause: cause}
}

// Export wraps cause as an ExportError with the fixed user message.
func Export(cause error) *Error {
	return &Error{Code: ErrCodeExport, Message: MsgExport, Cause: cause}
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
