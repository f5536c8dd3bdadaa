// Package errors provides structured error types for gridplace.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP endpoint and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Placement failures each have their own code so callers can tell a bad
// directive from a grid that cannot be grown:
//   - INVALID_DIRECTIVE: element/position out of range, or a repeated position or element
//   - NO_SEED_ELEMENT: no placed element to grow the placement from
//   - MALFORMED_MATRIX: non-square, negative or asymmetric adjacency matrix
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDirective, "position %d used twice", pos)
//	if errors.Is(err, errors.ErrCodeInvalidDirective) {
//	    // reject request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidGrid      Code = "INVALID_GRID"
	ErrCodeInvalidDirective Code = "INVALID_DIRECTIVE"
	ErrCodeInvalidPlacement Code = "INVALID_PLACEMENT"
	ErrCodeMalformedMatrix  Code = "MALFORMED_MATRIX"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeUnknownAlgorithm Code = "UNKNOWN_ALGORITHM"

	// Placement errors
	ErrCodeNoSeedElement Code = "NO_SEED_ELEMENT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// IsInputError reports whether err was caused by bad caller input rather
// than an internal failure. The HTTP layer maps these to 400 responses.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidGrid, ErrCodeInvalidDirective,
		ErrCodeInvalidPlacement, ErrCodeMalformedMatrix, ErrCodeInvalidFormat,
		ErrCodeUnknownAlgorithm, ErrCodeNoSeedElement:
		return true
	}
	return false
}
