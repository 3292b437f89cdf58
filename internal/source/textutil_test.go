package source

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Go Developer", "Go Developer"},
		{"collapses whitespace", "  Go \n\t Developer  ", "Go Developer"},
		{"strips tags", "<b>Go</b> Developer", "Go Developer"},
		{"decodes entities", "Backend &amp; Platform", "Backend & Platform"},
		{"empty", "", ""},
		{"whitespace only", "   \n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
