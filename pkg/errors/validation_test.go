package errors

import (
	"strings"
	"testing"
)

func TestValidateTreeText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"leaf", "0", false},
		{"binary", "[0,0]", false},
		{"json form", "[[],[]]", false},
		{"with newlines", "[0,\n(0)]\n", false},
		{"with tabs", "[0,\t0]", false},

		{"empty", "", true},
		{"only whitespace", " \n\t", true},
		{"null byte", "[0,\x000]", true},
		{"control char", "(\x010)", true},
		{"too long", strings.Repeat("(", MaxTreeTextLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTreeText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTreeText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeParseFailure) {
				t.Errorf("ValidateTreeText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeParseFailure)
			}
		})
	}
}

func TestValidatePathText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"root", "", false},
		{"single", "0", false},
		{"mixed", "0110", false},

		{"digit two", "02", true},
		{"letter", "0a", true},
		{"slash", "0/1", true},
		{"space", "0 1", true},
		{"too long", strings.Repeat("0", MaxPathLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePathText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
