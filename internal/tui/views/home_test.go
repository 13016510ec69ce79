package views

import (
	"testing"

	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/tui/ui"
)

func TestHomeFilterAndSelection(t *testing.T) {
	roster := rosterOf(
		compose.Entry{Name: "5511888888888@s.whatsapp.net", FName: "Mariana Costa"},
		compose.Entry{Name: "120363@g.us", FName: "Family", Group: true},
		compose.Entry{Name: "5511777777777@s.whatsapp.net", FName: "Pedro"},
	)
	h := NewHomeView(ui.DefaultTheme(), roster)
	h.Start()
	defer h.Stop()

	if got := h.GetRowCount(); got != 4 {
		t.Fatalf("rows = %d, want 4", got)
	}
	if got := h.GetCell(2, 3).Text; got != "GROUP" {
		t.Errorf("type = %q, want GROUP", got)
	}

	h.SetFilter("MARI")
	if got := h.GetRowCount(); got != 2 {
		t.Fatalf("filtered rows = %d, want 2", got)
	}
	h.Select(1, 0)
	e, ok := h.Selected()
	if !ok || e.FName != "Mariana Costa" {
		t.Errorf("Selected() = %+v, %v", e, ok)
	}

	h.SetFilter("7777")
	if e, ok := h.entryAt(1); !ok || e.FName != "Pedro" {
		t.Errorf("handle filter = %+v, %v", e, ok)
	}

	h.ClearFilter()
	if got := h.GetRowCount(); got != 4 {
		t.Errorf("rows after clear = %d, want 4", got)
	}
}

func TestHomeFollowsRoster(t *testing.T) {
	roster := compose.NewRoster()
	h := NewHomeView(ui.DefaultTheme(), roster)
	h.Start()

	roster.Set([]compose.Entry{{Name: "a@s.whatsapp.net"}})
	if got := h.GetRowCount(); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}

	h.Stop()
	if roster.Listeners() != 0 {
		t.Errorf("listeners after Stop = %d", roster.Listeners())
	}
}
