package errors

import (
	"strings"
	"testing"
)

func TestValidateContractText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"clause", "Clause 1: Late payment incurs 10% penalty.", false},
		{"multiline", "1. Term\n\n2. Termination", false},
		{"surrounding whitespace", "  \n text \t", false},

		{"empty", "", true},
		{"only spaces", "    ", true},
		{"only newlines and tabs", "\n\t\r\n", true},
		{"null byte", "foo\x00bar", true},
		{"invalid utf8", "foo\xffbar", true},
		{"too long", strings.Repeat("a", MaxContractLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContractText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContractText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateSheetID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "s1", false},
		{"with spaces", "sheet one", false},
		{"unicode", "lámina-1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 257), true},
		{"control char", "s\x01", true},
		{"newline", "s\n1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSheetID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSheetID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
