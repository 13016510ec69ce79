package views

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
)

const pageLoading = "loading"

// SelectUsersView picks users for a new group or for an existing one.
type SelectUsersView struct {
	*tview.Flex
	list      *listScreen
	chips     *tview.TextView
	chipWidth int
	pages     *tview.Pages

	adder     compose.RoomAdder
	selection *compose.Selection
	submitter *compose.Submitter
	action    compose.NextAction
	roomID    string
	ctx       context.Context
	cancel    context.CancelFunc

	onHintsChanged  func()
	onCreateChannel func(users []compose.User)
	onAdded         func(roomID string, n int)
}

// NewSelectUsersView creates the Select Users screen. adder is used for
// AddToRoom submissions.
func NewSelectUsersView(deps ListDeps, adder compose.RoomAdder) *SelectUsersView {
	list := newListScreen(deps, "Select Users")
	theme := list.deps.Theme

	chips := tview.NewTextView().
		SetDynamicColors(false).
		SetWrap(false)
	chips.SetBackgroundColor(theme.BgColor)
	chips.SetTextColor(theme.ChipColor)

	body := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(list.input, 1, 0, true).
		AddItem(chips, 1, 0, false).
		AddItem(list.table, 0, 1, false)

	loading := tview.NewModal().SetText("Adding users…")
	loading.SetBackgroundColor(theme.BgColor)

	pages := tview.NewPages().
		AddPage("list", body, true, true).
		AddPage(pageLoading, loading, true, false)

	flex := tview.NewFlex().AddItem(pages, 0, 1, true)

	v := &SelectUsersView{
		Flex:      flex,
		list:      list,
		chips:     chips,
		pages:     pages,
		adder:     adder,
		selection: compose.NewSelection(),
	}
	list.checked = func(handle string) bool { return v.selection.IsSelected(handle) }
	list.onSelect = v.toggle
	list.table.SetInputCapture(list.handleListKeys)
	list.input.SetInputCapture(v.handleInputKeys)

	// The chip line is laid out for the width it is drawn at, which is only
	// known once tview has placed it.
	chips.SetDrawFunc(func(_ tcell.Screen, x, y, width, height int) (int, int, int, int) {
		if width != v.chipWidth {
			v.chipWidth = width
			v.renderChips()
		}
		return x, y, width, height
	})

	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlN {
			v.Next()
			return nil
		}
		return event
	})
	return v
}

// SetOnHintsChanged is called whenever the available actions change.
func (v *SelectUsersView) SetOnHintsChanged(fn func()) { v.onHintsChanged = fn }

// SetOnCreateChannel receives the selection when the action is CreateChannel.
func (v *SelectUsersView) SetOnCreateChannel(fn func(users []compose.User)) { v.onCreateChannel = fn }

// SetOnAdded is called after users were added to the room.
func (v *SelectUsersView) SetOnAdded(fn func(roomID string, n int)) { v.onAdded = fn }

// Prepare sets what Next does for the coming visit. roomID is ignored for
// CreateChannel.
func (v *SelectUsersView) Prepare(action compose.NextAction, roomID string) {
	v.action = action
	v.roomID = roomID
	v.list.title = "Select Users"
	if action == compose.AddToRoom {
		v.list.title = "Add to " + shortHandle(roomID)
	}
}

// Name implements Component.
func (v *SelectUsersView) Name() string { return "select-users" }

// Title is the current heading, which names the group when adding members.
func (v *SelectUsersView) Title() string { return v.list.title }

// Init implements Component.
func (v *SelectUsersView) Init() {}

// Start implements Component.
func (v *SelectUsersView) Start() {
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.selection = compose.NewSelection()
	v.selection.OnChange(func(int) {
		v.renderChips()
		if v.onHintsChanged != nil {
			v.onHintsChanged()
		}
	})
	v.submitter = compose.NewSubmitter(v.adder, v.list.deps.Logger, func(s compose.SubmitState) {
		v.list.deps.dispatch(func() { v.showLoading(s == compose.Submitting) })
	})

	v.showLoading(false)
	v.renderChips()
	v.list.mount()
}

// Stop implements Component.
func (v *SelectUsersView) Stop() {
	if v.cancel != nil {
		v.cancel()
	}
	v.list.unmount()
	v.selection.Reset()
	v.showLoading(false)
}

// Hints implements Component.
func (v *SelectUsersView) Hints() []ui.MenuHint {
	hints := []ui.MenuHint{
		{Key: "Enter", Description: "Toggle"},
		{Key: "Tab", Description: "Search/List"},
		{Key: "Esc", Description: "Back"},
	}
	if v.selection.HasSelection() {
		hints = append(hints, ui.MenuHint{Key: "Bksp", Description: "Drop last"})
		next := "Create group"
		if v.action == compose.AddToRoom {
			next = "Add to group"
		}
		hints = append(hints, ui.MenuHint{Key: "Ctrl-N", Description: next})
	}
	return hints
}

// Selection returns the selection of the current visit.
func (v *SelectUsersView) Selection() *compose.Selection { return v.selection }

func (v *SelectUsersView) toggle(r compose.Row) {
	if r.Entry.Group {
		return
	}
	v.selection.Toggle(r.Entry)
	v.list.redraw()
}

// DropLast deselects the most recently selected user. It reports false
// when nothing is selected.
func (v *SelectUsersView) DropLast() bool {
	users := v.selection.Users()
	if len(users) == 0 {
		return false
	}
	v.selection.ToggleUser(users[len(users)-1])
	v.list.redraw()
	return true
}

// handleInputKeys lets Backspace on an empty query walk back through the
// chips.
func (v *SelectUsersView) handleInputKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if v.list.input.GetText() == "" && v.DropLast() {
			return nil
		}
	}
	return event
}

// Next runs the action for the current selection. It does nothing without a
// selection or while a submission is running.
func (v *SelectUsersView) Next() {
	if !v.selection.HasSelection() || (v.submitter != nil && v.submitter.Loading()) {
		return
	}
	users := v.selection.Users()

	switch v.action {
	case compose.CreateChannel:
		if v.onCreateChannel != nil {
			v.onCreateChannel(users)
		}
	case compose.AddToRoom:
		ctx, roomID, submitter := v.ctx, v.roomID, v.submitter
		go func() {
			ok := submitter.Submit(ctx, roomID, users)
			v.list.deps.dispatch(func() {
				switch {
				case ok:
					if v.list.deps.Flash != nil {
						v.list.deps.Flash.Info(fmt.Sprintf("added %d to %s", len(users), shortHandle(roomID)))
					}
					if v.onAdded != nil {
						v.onAdded(roomID, len(users))
					}
				case ctx.Err() == nil && v.list.deps.Flash != nil:
					v.list.deps.Flash.Warn("could not add users to " + shortHandle(roomID))
				}
			})
		}()
	}
}

// renderChips lays the selection out for the last drawn width. Before the
// first draw the width is unknown and every chip is listed.
func (v *SelectUsersView) renderChips() {
	width := v.chipWidth - 1
	if width < 0 {
		width = 0
	}
	v.chips.SetText(" " + chipLine(v.selection.Users(), width))
}

func (v *SelectUsersView) showLoading(on bool) {
	if on {
		v.pages.ShowPage(pageLoading)
		return
	}
	v.pages.HidePage(pageLoading)
}
