package views

import (
	"strings"
	"testing"

	"github.com/matheus3301/wpnew/internal/tui/ui"
)

func TestHelpListsCommands(t *testing.T) {
	hv := NewHelpView(ui.DefaultTheme(), [][2]string{{":add <group>, :a", "Add members to a group"}})
	text := hv.GetText(true)
	for _, want := range []string{"Commands", ":add <group>, :a", "Drop the last chip"} {
		if !strings.Contains(text, want) {
			t.Errorf("help text misses %q", want)
		}
	}
	if len(helpSections) != 4 {
		t.Errorf("built-in sections changed to %d", len(helpSections))
	}
}
