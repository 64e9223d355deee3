package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds item ids and breakpoint names.
const MaxIDLength = 256

// ValidateItemID rejects empty ids, ids longer than [MaxIDLength] bytes and
// ids containing control characters. Uniqueness is checked per layout by the
// grid package.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "item id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "item id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "item id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateBreakpointName validates a responsive breakpoint name.
// Names are free-form but must be printable and must not contain whitespace,
// since they are used as map keys in layout documents and query parameters.
func ValidateBreakpointName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "breakpoint name cannot be empty")
	}

	if len(name) > MaxIDLength {
		return New(ErrCodeInvalidConfig, "breakpoint name too long (max %d characters)", MaxIDLength)
	}

	if strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return New(ErrCodeInvalidConfig, "breakpoint name %q contains whitespace or control characters", name)
	}

	return nil
}
