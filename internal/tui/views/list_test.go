package views

import (
	"testing"
	"time"

	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
)

func TestShortHandle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"5511999999999@s.whatsapp.net", "+5511999999999"},
		{"120363@g.us", "120363"},
		{"nohandle", "nohandle"},
	}
	for _, tt := range tests {
		if got := shortHandle(tt.in); got != tt.want {
			t.Errorf("shortHandle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(time.Time{}); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
	old := time.Date(2020, 3, 7, 10, 0, 0, 0, time.Local)
	if got := formatTimestamp(old); got != "03/07" {
		t.Errorf("old date = %q, want 03/07", got)
	}
	now := time.Now()
	if got := formatTimestamp(now); got != now.Format("15:04") {
		t.Errorf("today = %q, want %q", got, now.Format("15:04"))
	}
}

func TestRenderRowsMarksEdgesAndSelection(t *testing.T) {
	policy := compose.NewListPolicy(rosterOf(
		compose.Entry{Name: "a@s.whatsapp.net", FName: "Ana"},
		compose.Entry{Name: "b@s.whatsapp.net", FName: "Bruno"},
		compose.Entry{Name: "c@g.us", FName: "Team", Group: true},
	), nil)
	table := tview.NewTable()
	renderRows(table, ui.DefaultTheme(), policy.Rows(), func(h string) bool { return h == "b@s.whatsapp.net" })

	if got := table.GetRowCount(); got != 4 {
		t.Fatalf("rows = %d, want 4", got)
	}
	marks := []string{"╭ ", "│✓", "╰ "}
	for i, want := range marks {
		if got := table.GetCell(i+1, 0).Text; got != want {
			t.Errorf("row %d mark = %q, want %q", i, got, want)
		}
	}
	if got := table.GetCell(3, 1).Text; got != " Team (group)" {
		t.Errorf("group name = %q", got)
	}
	if got := table.GetCell(1, 2).Text; got != " +a" {
		t.Errorf("handle = %q, want \" +a\"", got)
	}
}

func TestRenderRowsSingleRow(t *testing.T) {
	policy := compose.NewListPolicy(rosterOf(compose.Entry{Name: "a@s.whatsapp.net"}), nil)
	table := tview.NewTable()
	renderRows(table, ui.DefaultTheme(), policy.Rows(), nil)

	if got := table.GetCell(1, 0).Text; got != "─ " {
		t.Errorf("mark = %q, want \"─ \"", got)
	}
	// No display name falls back to the handle.
	if got := table.GetCell(1, 1).Text; got != " a@s.whatsapp.net" {
		t.Errorf("name = %q", got)
	}
}

func rosterOf(entries ...compose.Entry) *compose.Roster {
	r := compose.NewRoster()
	r.Set(entries)
	return r
}
