package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInputSize, "need at least %d vertices", 3)

	if err.Code != ErrCodeInvalidInputSize {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInputSize)
	}

	if err.Message != "need at least 3 vertices" {
		t.Errorf("Message = %v, want %v", err.Message, "need at least 3 vertices")
	}

	expected := "INVALID_INPUT_SIZE: need at least 3 vertices"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("odd numerator")
	err := Wrap(ErrCodeParityViolation, cause, "vertex %d", 7)

	if err.Code != ErrCodeParityViolation {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeParityViolation)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "ARITHMETIC_PARITY_VIOLATION: vertex 7: odd numerator"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeVisibilitySearch, "test"),
			code:     ErrCodeVisibilitySearch,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeVisibilitySearch, "test"),
			code:     ErrCodeParityViolation,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped with fmt",
			err:      wrapFmt(New(ErrCodeNotTriangulated, "inner")),
			code:     ErrCodeNotTriangulated,
			expected: true,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := wrapFmt(New(ErrCodeInvalidFormat, "line 3: bad coordinate"))

	if got := GetCode(err); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidFormat)
	}
	if got := UserMessage(err); got != "line 3: bad coordinate" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want plain", got)
	}
}

func TestIsCoreFailure(t *testing.T) {
	if !IsCoreFailure(New(ErrCodeVisibilitySearch, "x")) {
		t.Error("visibility exhaustion should be a core failure")
	}
	if IsCoreFailure(New(ErrCodeInvalidFormat, "x")) {
		t.Error("format errors are not core failures")
	}
	if IsCoreFailure(errors.New("x")) {
		t.Error("plain errors are not core failures")
	}
}

type fmtWrapper struct{ err error }

func (w fmtWrapper) Error() string { return "outer: " + w.err.Error() }
func (w fmtWrapper) Unwrap() error { return w.err }

func wrapFmt(err error) error { return fmtWrapper{err} }
