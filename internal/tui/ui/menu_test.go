package ui

import (
	"strings"
	"testing"
)

func TestMenuFillsColumns(t *testing.T) {
	m := NewMenu(DefaultTheme(), 2)
	m.Update([]MenuHint{
		{Key: "n", Description: "New"},
		{Key: "Enter", Description: "Open"},
		{Key: "?", Description: "Help"},
	})

	lines := strings.Split(strings.TrimRight(m.GetText(true), "\n"), "\n")
	want := []string{
		"<n> New        <?> Help",
		"<Enter> Open",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestMenuSingleColumnAndClear(t *testing.T) {
	m := NewMenu(DefaultTheme(), 0)
	m.Update([]MenuHint{{Key: "a", Description: "One"}, {Key: "b", Description: "Two"}})
	if got := m.GetText(true); got != "<a> One\n<b> Two\n" {
		t.Errorf("text = %q", got)
	}

	m.Update(nil)
	if got := m.GetText(true); got != "" {
		t.Errorf("text after empty update = %q", got)
	}
}
