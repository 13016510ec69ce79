package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
)

// HomeView is the conversation list, most recently active first.
type HomeView struct {
	*tview.Table
	theme    *ui.Theme
	roster   *compose.Roster
	filter   string
	visible  []compose.Entry
	unlisten func()
	onOpen   func(e compose.Entry)
}

// NewHomeView creates the conversation list over roster.
func NewHomeView(theme *ui.Theme, roster *compose.Roster) *HomeView {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Conversations ")
	table.SetTitleColor(theme.TitleColor)

	h := &HomeView{
		Table:  table,
		theme:  theme,
		roster: roster,
	}
	table.SetSelectedFunc(func(row, _ int) {
		if e, ok := h.entryAt(row); ok && h.onOpen != nil {
			h.onOpen(e)
		}
	})
	return h
}

// SetOnOpen sets the callback for Enter on a conversation.
func (h *HomeView) SetOnOpen(fn func(e compose.Entry)) { h.onOpen = fn }

// Name implements Component.
func (h *HomeView) Name() string { return "conversations" }

// Title implements ui.Titled.
func (h *HomeView) Title() string { return "Conversations" }

// Init implements Component.
func (h *HomeView) Init() {}

// Start implements Component. The roster must only be Set on the UI goroutine.
func (h *HomeView) Start() {
	if h.unlisten == nil {
		h.unlisten = h.roster.AddChangeListener(h.render)
	}
	h.render()
}

// Stop implements Component.
func (h *HomeView) Stop() {
	if h.unlisten != nil {
		h.unlisten()
		h.unlisten = nil
	}
}

// Hints implements Component.
func (h *HomeView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "n", Description: "New message"},
		{Key: "g", Description: "New group"},
		{Key: "i", Description: "Add members"},
		{Key: "/", Description: "Filter"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
		{Key: "q", Description: "Quit"},
	}
}

// SetFilter sets the active filter text and re-renders.
func (h *HomeView) SetFilter(filter string) {
	h.filter = filter
	h.render()
}

// ClearFilter clears the active filter.
func (h *HomeView) ClearFilter() {
	h.SetFilter("")
}

// Selected returns the entry under the cursor.
func (h *HomeView) Selected() (compose.Entry, bool) {
	row, _ := h.GetSelection()
	return h.entryAt(row)
}

func (h *HomeView) entryAt(row int) (compose.Entry, bool) {
	i := row - 1
	if i < 0 || i >= len(h.visible) {
		return compose.Entry{}, false
	}
	return h.visible[i], true
}

func (h *HomeView) render() {
	h.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" NAME", 2},
		{" HANDLE", 1},
		{" TIME", 0},
		{" TYPE", 0},
	}
	for col, hd := range headers {
		h.SetCell(0, col, tview.NewTableCell(hd.text).
			SetSelectable(false).
			SetTextColor(h.theme.TableHeaderFg).
			SetBackgroundColor(h.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(hd.exp))
	}

	all := h.roster.Entries()
	h.visible = h.visible[:0]
	for _, e := range all {
		u := compose.Normalize(e)
		if h.filter != "" && !containsFold(u.Label(), h.filter) && !containsFold(u.Handle, h.filter) {
			continue
		}
		h.visible = append(h.visible, e)

		kind := "DM"
		if e.Group {
			kind = "GROUP"
		}
		row := len(h.visible)
		h.SetCell(row, 0, tview.NewTableCell(" "+tview.Escape(displayName(u.Label()))).SetExpansion(2).SetTextColor(h.theme.FgColor))
		h.SetCell(row, 1, tview.NewTableCell(" "+shortHandle(u.Handle)).SetExpansion(1).SetTextColor(h.theme.FgColor))
		h.SetCell(row, 2, tview.NewTableCell(formatTimestamp(e.LastActivity)).SetAlign(tview.AlignRight).SetTextColor(h.theme.FgColor))
		h.SetCell(row, 3, tview.NewTableCell(kind).SetAlign(tview.AlignRight).SetTextColor(h.theme.FgColor))
	}

	if h.filter != "" {
		h.SetTitle(fmt.Sprintf(" Conversations (%d/%d) filter: %s ", len(h.visible), len(all), tview.Escape(h.filter)))
	} else {
		h.SetTitle(fmt.Sprintf(" Conversations (%d) ", len(all)))
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
