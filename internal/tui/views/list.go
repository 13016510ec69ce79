package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// ListDeps is what the New Message and Select Users screens need from the host.
type ListDeps struct {
	Theme    *ui.Theme
	Roster   *compose.Roster
	Searcher compose.Searcher

	// Quiet is the search debounce interval.
	Quiet time.Duration
	// Refresh coalesces roster changes before the list is redrawn.
	Refresh time.Duration
	Clock   clockwork.Clock

	// Dispatch runs f on the UI goroutine.
	Dispatch func(f func())
	Focus    func(p tview.Primitive)
	Flash    *ui.FlashModel
	Logger   *zap.Logger
}

func (d ListDeps) dispatch(f func()) {
	if d.Dispatch == nil {
		f()
		return
	}
	d.Dispatch(f)
}

func (d ListDeps) focus(p tview.Primitive) {
	if d.Focus != nil {
		d.Focus(p)
	}
}

// listScreen is the search box and list shared by New Message and Select
// Users. mount and unmount bracket one visit to the screen.
type listScreen struct {
	deps  ListDeps
	title string

	input *tview.InputField
	table *tview.Table

	search   *compose.SearchController
	policy   *compose.ListPolicy
	rerender *compose.Debouncer
	unlisten func()
	rows     []compose.Row
	prefill  string

	checked  func(handle string) bool
	onSelect func(row compose.Row)
}

func newListScreen(deps ListDeps, title string) *listScreen {
	theme := deps.Theme
	if theme == nil {
		theme = ui.DefaultTheme()
		deps.Theme = theme
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	input := tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetTitleColor(theme.TitleColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	l := &listScreen{
		deps:  deps,
		title: title,
		input: input,
		table: table,
	}

	input.SetChangedFunc(func(text string) {
		if l.search != nil {
			l.search.QueryChanged(text)
		}
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter, tcell.KeyTab, tcell.KeyDown:
			l.deps.focus(l.table)
		}
	})
	table.SetSelectedFunc(func(row, _ int) {
		if r, ok := l.rowAt(row); ok && l.onSelect != nil {
			l.onSelect(r)
		}
	})
	return l
}

func (l *listScreen) mount() {
	l.input.SetText("")
	l.search = compose.NewSearchController(l.deps.Searcher, compose.SearchOptions{
		Quiet:    l.deps.Quiet,
		Clock:    l.deps.Clock,
		Dispatch: l.deps.dispatch,
		OnChange: l.redraw,
		OnError: func(err error) {
			if l.deps.Flash != nil {
				l.deps.Flash.Warn("search failed: " + err.Error())
			}
		},
		Logger: l.deps.Logger,
	})
	l.policy = compose.NewListPolicy(l.deps.Roster, l.search)
	l.rerender = compose.NewDebouncer(l.deps.Refresh, l.deps.Clock)
	l.unlisten = l.deps.Roster.AddChangeListener(func() {
		l.rerender.Trigger(func() { l.deps.dispatch(l.redraw) })
	})
	l.redraw()
	l.table.Select(1, 0)
	l.deps.focus(l.input)
	if l.prefill != "" {
		// Goes through the changed func, so the search starts as if typed.
		l.input.SetText(l.prefill)
		l.prefill = ""
	}
}

func (l *listScreen) unmount() {
	if l.search != nil {
		l.search.Close()
		l.search = nil
	}
	if l.unlisten != nil {
		l.unlisten()
		l.unlisten = nil
	}
	if l.rerender != nil {
		l.rerender.Stop()
	}
	l.input.SetText("")
}

func (l *listScreen) redraw() {
	if l.policy == nil {
		return
	}
	l.rows = l.policy.Rows()
	renderRows(l.table, l.deps.Theme, l.rows, l.checked)

	state := ""
	switch {
	case l.search != nil && l.search.Loading():
		state = " searching…"
	case l.policy.Searching():
		state = " results"
	}
	l.table.SetTitle(fmt.Sprintf(" %s (%d)%s ", l.title, len(l.rows), state))
}

// rowAt maps a table row (header included) to the list row it shows.
func (l *listScreen) rowAt(tableRow int) (compose.Row, bool) {
	i := tableRow - 1
	if i < 0 || i >= len(l.rows) {
		return compose.Row{}, false
	}
	return l.rows[i], true
}

// handleListKeys moves focus back to the search box.
func (l *listScreen) handleListKeys(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyTab || (event.Key() == tcell.KeyRune && event.Rune() == '/') {
		l.deps.focus(l.input)
		return nil
	}
	return event
}

// renderRows fills table with a header and one line per row. checked marks
// selected handles; nil disables the mark column.
func renderRows(table *tview.Table, theme *ui.Theme, rows []compose.Row, checked func(handle string) bool) {
	table.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{"", 0},
		{" NAME", 2},
		{" HANDLE", 1},
		{" LAST", 0},
	}
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(theme.TableHeaderFg).
			SetBackgroundColor(theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp))
	}

	for i, r := range rows {
		mark := edge(r)
		if checked != nil && checked(r.User.Handle) {
			mark += "✓"
		} else {
			mark += " "
		}
		name := r.User.Label()
		if r.Entry.Group {
			name += " (group)"
		}
		table.SetCell(i+1, 0, tview.NewTableCell(mark).SetTextColor(theme.MarkColor))
		table.SetCell(i+1, 1, tview.NewTableCell(" "+tview.Escape(displayName(name))).SetExpansion(2).SetTextColor(theme.FgColor))
		table.SetCell(i+1, 2, tview.NewTableCell(" "+shortHandle(r.User.Handle)).SetExpansion(1).SetTextColor(theme.FgColor))
		table.SetCell(i+1, 3, tview.NewTableCell(formatTimestamp(r.Entry.LastActivity)).SetAlign(tview.AlignRight).SetTextColor(theme.FgColor))
	}
}

// edge draws the rounded list border for a row.
func edge(r compose.Row) string {
	switch {
	case r.Top && r.Bottom:
		return "─"
	case r.Top:
		return "╭"
	case r.Bottom:
		return "╰"
	default:
		return "│"
	}
}

// shortHandle drops the server part of a user JID and shows it as a phone number.
func shortHandle(jid string) string {
	user, server, ok := strings.Cut(jid, "@")
	if !ok {
		return jid
	}
	if server == "s.whatsapp.net" {
		return "+" + user
	}
	return user
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("01/02")
}
