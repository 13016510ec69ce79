package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
)

// NewMessageView lists recent direct conversations, or directory matches
// while a search is active, and starts a conversation with the chosen user.
type NewMessageView struct {
	*tview.Flex
	list *listScreen

	onDirect      func(u compose.User)
	onCreateGroup func()
}

// NewNewMessageView creates the New Message screen.
func NewNewMessageView(deps ListDeps) *NewMessageView {
	list := newListScreen(deps, "New Message")

	hint := tview.NewTextView().
		SetDynamicColors(true).
		SetText(" [::b]c[-:-:-] create group   [::b]Enter[-:-:-] start conversation")
	hint.SetBackgroundColor(list.deps.Theme.BgColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(list.input, 1, 0, true).
		AddItem(hint, 1, 0, false).
		AddItem(list.table, 0, 1, false)

	v := &NewMessageView{Flex: flex, list: list}

	list.onSelect = func(r compose.Row) {
		if v.onDirect != nil && r.User.Handle != "" {
			v.onDirect(r.User)
		}
	}
	list.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'c' {
			v.createGroup()
			return nil
		}
		return list.handleListKeys(event)
	})
	return v
}

// SetOnDirect sets the callback for a chosen user.
func (v *NewMessageView) SetOnDirect(fn func(u compose.User)) { v.onDirect = fn }

// SetOnCreateGroup sets the callback for the create group action.
func (v *NewMessageView) SetOnCreateGroup(fn func()) { v.onCreateGroup = fn }

// Prefill puts text in the search box. On a visible screen the search runs
// at once, otherwise on the next visit.
func (v *NewMessageView) Prefill(text string) {
	if v.list.search != nil {
		v.list.input.SetText(text)
		return
	}
	v.list.prefill = text
}

// Title implements ui.Titled.
func (v *NewMessageView) Title() string { return "New Message" }

func (v *NewMessageView) createGroup() {
	if v.onCreateGroup != nil {
		v.onCreateGroup()
	}
}

// Name implements Component.
func (v *NewMessageView) Name() string { return "new-message" }

// Init implements Component.
func (v *NewMessageView) Init() {}

// Start implements Component.
func (v *NewMessageView) Start() { v.list.mount() }

// Stop implements Component.
func (v *NewMessageView) Stop() { v.list.unmount() }

// Hints implements Component.
func (v *NewMessageView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Start chat"},
		{Key: "c", Description: "Create group"},
		{Key: "Tab", Description: "Search/List"},
		{Key: "Esc", Description: "Back"},
	}
}
