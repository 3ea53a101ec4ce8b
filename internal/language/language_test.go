package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		{"hi", "hi"},
		// 3-letter codes convert
		{"eng", "en"},
		{"hin", "hi"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"chi", "zh"},
		// Word forms
		{"english", "en"},
		{"Hindi", "hi"},
		{"FRENCH", "fr"},
		// Unknown 2-letter passes through
		{"xy", "xy"},
		// Unknown 3-letter returns empty
		{"xyz", ""},
		// Empty
		{"", ""},
	}
	for _, tc := range tests {
		if got := ToISO2(tc.input); got != tc.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"hindi", "Hindi"},
		{"HIN", "Hindi"},
		{"klingon", "Klingon"},
		{"  english  ", "English"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.input); got != tc.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
