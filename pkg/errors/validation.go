package errors

import (
	"regexp"
	"unicode"
)

// graphNameRegex matches graph names accepted by the service and the result store.
var graphNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateGraphName validates a user-supplied graph label.
// Labels end up in cache keys, result records and output file names, so the
// rules are conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//   - Letters, digits, dot, dash and underscore only
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "graph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "graph name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "graph name contains invalid control characters")
		}
	}

	if !graphNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid graph name: %q", name)
	}

	return nil
}
