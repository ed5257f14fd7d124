package errors

import (
	"strings"
	"unicode"
)

// MaxTreeTextLength bounds externally supplied tree text. A tree this large
// is far beyond anything the editor can display.
const MaxTreeTextLength = 1 << 20

// MaxPathLength bounds externally supplied vertex paths.
const MaxPathLength = 4096

// ValidateTreeText performs the cheap checks on imported tree text before it
// reaches the parser.
//
// The validation rules are intentionally conservative:
//   - No empty text (after trimming whitespace)
//   - No control characters other than whitespace
//   - Maximum length of MaxTreeTextLength bytes
//
// Grammar checks are done by the tree parser.
func ValidateTreeText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeParseFailure, "tree text cannot be empty")
	}

	if len(text) > MaxTreeTextLength {
		return New(ErrCodeParseFailure, "tree text too long (max %d bytes)", MaxTreeTextLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeParseFailure, "tree text contains invalid control characters")
		}
	}

	return nil
}

// ValidatePathText validates a vertex path string for safety.
// Paths are digit strings; the empty string addresses the root.
//
// Validation rules:
//   - Maximum length of MaxPathLength characters
//   - Only the branch digits 0 and 1
func ValidatePathText(path string) error {
	if len(path) > MaxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", MaxPathLength)
	}

	for i, r := range path {
		if r != '0' && r != '1' {
			return New(ErrCodeInvalidPath, "invalid branch digit %q at position %d in path %q", r, i, path)
		}
	}

	return nil
}
