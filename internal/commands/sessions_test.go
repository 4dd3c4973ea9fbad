package commands

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		limit int
		want  string
	}{
		{"short stays intact", "Hello", 40, "Hello"},
		{"exact limit stays intact", strings.Repeat("a", 40), 40, strings.Repeat("a", 40)},
		{"long is ellipsized", strings.Repeat("a", 41), 40, strings.Repeat("a", 40) + "..."},
		{"empty", "", 40, ""},
		{"multibyte runes", strings.Repeat("я", 41), 40, strings.Repeat("я", 40) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.title, tt.limit)
			if got != tt.want {
				t.Errorf("truncateTitle(%q, %d) = %q, want %q", tt.title, tt.limit, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateTitle produced invalid UTF-8: %q", got)
			}
		})
	}
}
