package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		value string
		limit int
		want  string
	}{
		{"  hello  ", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 0, "hello"},
		{"hello", 2, "he"},
		{"héllo wörld", 6, "hél..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.value, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
		}
	}
}
