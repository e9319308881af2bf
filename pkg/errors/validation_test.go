package errors

import (
	"testing"
)

func TestValidateInstanceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "graph_1", false},
		{"valid with dash", "test-instance", false},
		{"valid with dot", "ref.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal", "a..b", true},
		{"slash", "a/b", true},
		{"leading dot", ".hidden", true},
		{"space", "a b", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstanceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInstanceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVertexCount(t *testing.T) {
	tests := []struct {
		n        int
		wantCode Code
	}{
		{3, ""},
		{17, ""},
		{2, ErrCodeInvalidInputSize},
		{0, ErrCodeInvalidInputSize},
		{MaxVertices + 1, ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		err := ValidateVertexCount(tt.n)
		if got := GetCode(err); got != tt.wantCode {
			t.Errorf("ValidateVertexCount(%d) code = %q, want %q", tt.n, got, tt.wantCode)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "out/instances", false},
		{"valid absolute", "/tmp/gridraw", false},

		{"empty", "", true},
		{"traversal", "out/../etc", true},
		{"backslash", "out\\x", true},
		{"control", "out\x01", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
