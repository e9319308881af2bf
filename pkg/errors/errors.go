// Package errors provides structured error types for gridraw.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core algorithms, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The drawing core fails with one of four codes:
//   - INVALID_INPUT_SIZE: the graph has fewer than 3 vertices
//   - NOT_TRIANGULATED / NOT_PLANAR: the embedding precondition is violated
//   - VISIBILITY_SEARCH_EXHAUSTED: Algorithm A found no visible row
//   - ARITHMETIC_PARITY_VIOLATION: the shift embedder met an odd numerator
//
// The remaining codes cover input parsing and the outer layers.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInputSize) {
//	    // Handle validation error
//	}
//
//	// Wrap a package sentinel so errors.Is works both ways
//	err := errors.Wrap(errors.ErrCodeNotTriangulated, ErrNoEligibleVertex, "step %d", k)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Core algorithm failures
	ErrCodeInvalidInputSize  Code = "INVALID_INPUT_SIZE"
	ErrCodeNotTriangulated   Code = "NOT_TRIANGULATED"
	ErrCodeNotPlanar         Code = "NOT_PLANAR"
	ErrCodeInvalidOrdering   Code = "INVALID_ORDERING"
	ErrCodeVisibilitySearch  Code = "VISIBILITY_SEARCH_EXHAUSTED"
	ErrCodeParityViolation   Code = "ARITHMETIC_PARITY_VIOLATION"
	ErrCodeInvalidDrawing    Code = "INVALID_DRAWING"
	ErrCodeUnknownAlgorithm  Code = "UNKNOWN_ALGORITHM"
	ErrCodeInvalidEmbedding  Code = "INVALID_EMBEDDING"
	ErrCodeInvalidOuterFace  Code = "INVALID_OUTER_FACE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidName   Code = "INVALID_NAME"

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

// IsCoreFailure reports whether err aborted a drawing run for a reason that
// lies in the input graph or ordering rather than in I/O.
func IsCoreFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInputSize, ErrCodeNotTriangulated, ErrCodeNotPlanar,
		ErrCodeInvalidOrdering, ErrCodeVisibilitySearch, ErrCodeParityViolation,
		ErrCodeInvalidEmbedding, ErrCodeInvalidOuterFace:
		return true
	}
	return false
}
