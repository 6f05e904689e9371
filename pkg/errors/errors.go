// Package errors provides structured error types for mulnet.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes recorded next to failed comparisons
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes follow the error taxonomy of the folding and comparison core:
//   - PARSE_ERROR: malformed Newick or extended Newick text
//   - STRUCTURAL_ERROR: networks that cannot be unfolded or validated
//     (reticulation root, several roots, cycles)
//   - DUPLICATE_RETICULATION: two definitions share one #H identifier
//   - INVALID_*: bad configuration or caller input
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "missing ';' at offset %d", pos)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStructural, dag.ErrGraphHasCycle, "network %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeParse                 Code = "PARSE_ERROR"
	ErrCodeStructural            Code = "STRUCTURAL_ERROR"
	ErrCodeDuplicateReticulation Code = "DUPLICATE_RETICULATION"
	ErrCodeInvalidInput          Code = "INVALID_INPUT"
	ErrCodeInvalidConfig         Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat         Code = "INVALID_FORMAT"
	ErrCodeInvalidPath           Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Runtime errors
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// ParseError describes malformed tree text. Offset is the byte position in
// the input at which parsing stopped.
type ParseError struct {
	Offset int
	Msg    string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Code returns the error code for this error type.
func (e *ParseError) Code() Code {
	return ErrCodeParse
}
