package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a taxon label read from tree text or JSON.
// Labels are written back into Newick, so characters with a meaning in
// that grammar are rejected unless the writer quotes them.
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "taxon label cannot be empty")
	}
	if len(label) > 256 {
		return New(ErrCodeInvalidInput, "taxon label too long (max 256 characters)")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "taxon label contains invalid control characters")
		}
	}
	if strings.Contains(label, "#H") {
		return New(ErrCodeInvalidInput, "taxon label %q contains a reticulation marker", label)
	}
	return nil
}

// ValidatePath validates an input file path given to the comparison runner.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
