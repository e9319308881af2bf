package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxVertices bounds the size of a single instance accepted from untrusted
// input (API requests, batch files). The algorithms themselves have no limit.
const MaxVertices = 20000

// instanceNameRegex matches names usable as file name stems.
var instanceNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateInstanceName validates an instance name. Instance names become
// file name stems in batch output, so they must not carry path components.
func ValidateInstanceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "instance name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidName, "instance name too long (max 128 characters)")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "instance name contains invalid characters: %q", "..")
	}
	if !instanceNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid instance name: %q", name)
	}
	return nil
}

// ValidateVertexCount checks that n is a usable instance size.
// Fewer than 3 vertices is the core's InvalidInputSize condition.
func ValidateVertexCount(n int) error {
	if n < 3 {
		return New(ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
	}
	if n > MaxVertices {
		return New(ErrCodeInvalidInput, "too many vertices: %d (max %d)", n, MaxVertices)
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
