package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames = %v, want 2 themes", names)
	}
	for _, name := range names {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
}

func TestGetTheme_UnknownFallsBackToDracula(t *testing.T) {
	if got := GetTheme("Solarized").Name; got != "Dracula" {
		t.Fatalf("GetTheme unknown = %q, want Dracula", got)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("bogus"); got != "Dracula" {
		t.Fatalf("NextTheme(bogus) = %q, want Dracula", got)
	}
}
