package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxContractLength bounds the pasted contract text (in runes). Long
// agreements of a few dozen pages fit comfortably.
const MaxContractLength = 400_000

// ValidateContractText validates pasted contract text before it is sent to
// the generation client.
//
// Validation rules:
//   - Text must be non-empty after trimming whitespace
//   - Text must be valid UTF-8
//   - No null bytes
//   - Maximum length of MaxContractLength runes
func ValidateContractText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "contract text cannot be empty")
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "contract text is not valid UTF-8")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "contract text contains null bytes")
	}
	if n := utf8.RuneCountInString(text); n > MaxContractLength {
		return New(ErrCodeInvalidInput, "contract text too long (%d characters, max %d)", n, MaxContractLength)
	}
	return nil
}

// ValidateSheetID validates a sheet identifier received from the outside
// (URL path segment, CLI flag). It does not check existence.
func ValidateSheetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "sheet id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "sheet id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "sheet id contains invalid control characters")
		}
	}
	return nil
}
