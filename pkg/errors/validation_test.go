package errors

import (
	"strings"
	"testing"
)

func TestValidateSheetID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"typical id", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", false},
		{"underscores and hyphens", "sheet_id-123", false},
		{"empty", "", true},
		{"path traversal", "../etc/passwd", true},
		{"url injection", "abc?key=value", true},
		{"spaces", "my sheet", true},
		{"too long", strings.Repeat("a", 129), true},
		{"max length", strings.Repeat("a", 128), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSheetID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSheetID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSheet) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidSheet)
			}
		})
	}
}

func TestValidateGraphName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "mnist-demo", false},
		{"with spaces", "my saved graph", false},
		{"unicode", "スタック", false},
		{"empty", "", true},
		{"forward slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"control character", "bad\x00name", true},
		{"too long", strings.Repeat("n", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraphName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://example.com/sheet", false},
		{"https", "https://example.com/sheet", false},
		{"empty", "", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsNavigableURL(t *testing.T) {
	if !IsNavigableURL("https://example.com/docs") {
		t.Error("https URL should be navigable")
	}
	if IsNavigableURL("ftp://example.com") {
		t.Error("non-http scheme should not be navigable")
	}
	if IsNavigableURL("") {
		t.Error("empty payload should not be navigable")
	}
}
