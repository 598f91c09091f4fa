// Package errors provides structured error types for chromatic.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engines, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The coloring core raises exactly three kinds of failure:
//   - INVALID_GRAPH: an edge references an unknown vertex or is a self-loop
//   - SEARCH_TOO_LARGE: the exact engine was asked to search past its ceiling
//   - CONFIGURATION: an engine parameter is out of range
//
// The remaining codes are used by the loaders, the cache and the service.
//
// Running out of iterations or being cancelled is never an error; those
// outcomes are reported on the result record.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "alpha must be in (0,1), got %v", alpha)
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // Handle bad parameters
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidGraph, graph.ErrSelfLoop, "edge %d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Coloring core errors
	ErrCodeInvalidGraph   Code = "INVALID_GRAPH"
	ErrCodeSearchTooLarge Code = "SEARCH_TOO_LARGE"
	ErrCodeConfiguration  Code = "CONFIGURATION"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// IsCallerError reports whether err was caused by bad input rather than an
// internal failure. The HTTP layer maps these to 4xx responses.
func IsCallerError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidGraph, ErrCodeSearchTooLarge, ErrCodeConfiguration,
		ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidAlgorithm, ErrCodeInvalidPath:
		return true
	}
	return false
}
