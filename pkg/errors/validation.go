package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// sheetIDRegex matches Google-Sheets-style spreadsheet identifiers.
var sheetIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateSheetID validates a spreadsheet identifier for safety and
// correctness. It rejects identifiers that could be used for path traversal
// or URL injection when interpolated into the provider endpoint.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Only letters, digits, hyphens, and underscores
//   - Maximum length of 128 characters
func ValidateSheetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSheet, "sheet id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidSheet, "sheet id too long (max 128 characters)")
	}

	if !sheetIDRegex.MatchString(id) {
		return New(ErrCodeInvalidSheet, "sheet id contains invalid characters: %q", id)
	}

	return nil
}

// ValidateGraphName validates a saved-graph name for the store.
// Names are user-chosen, so the rules guard against control characters and
// path-like input rather than enforcing any particular convention.
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "graph name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "graph name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "graph name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "graph name cannot contain path separators")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https). Used both for
// endpoint overrides and for per-cell link payloads: a click on a node
// should only ever navigate to a well-formed external resource.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsNavigableURL reports whether a cell link payload is a well-formed
// external-resource reference. Unlike [ValidateURL] it returns a bool:
// non-navigable payloads are silently ignored by consumers, not reported.
func IsNavigableURL(rawURL string) bool {
	return ValidateURL(rawURL) == nil
}
