package validate

import (
	"strings"
	"testing"
)

func TestFilterName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ascii", "Portrait_01", false},
		{"cjk", "暖色人像", false},
		{"mixed", "暖色_Warm2", false},
		{"interior space", "Warm Portrait", false},
		{"surrounding whitespace trimmed", "  Warm  ", false},
		{"exactly twenty", strings.Repeat("a", 20), false},
		{"twenty cjk", strings.Repeat("暖", 20), false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"too long", strings.Repeat("a", 21), true},
		{"hyphen", "warm-portrait", true},
		{"emoji", "warm🔥", true},
		{"double space", "Warm  Portrait", true},
		{"tab", "Warm\tPortrait", true},
		{"hiragana", "あたたかい", true},
		{"accented latin", "caf\u00e9", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FilterName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("FilterName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	// "e" + combining acute composes to a single rune under NFC.
	got := NormalizeName("  cafe\u0301 ")
	if got != "caf\u00e9" {
		t.Errorf("NormalizeName = %q, want %q", got, "caf\u00e9")
	}
}
