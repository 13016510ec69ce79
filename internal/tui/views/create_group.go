package views

import (
	"context"
	"strconv"
	"strings"

	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
)

// GroupCreator creates a group and returns its JID.
type GroupCreator func(ctx context.Context, name string, users []compose.User) (string, error)

// CreateGroupView asks for a group name and creates it with the users chosen
// on Select Users.
type CreateGroupView struct {
	*tview.Flex
	theme   *ui.Theme
	form    *tview.Form
	members *tview.TextView

	create   GroupCreator
	dispatch func(func())
	flash    *ui.FlashModel

	users  []compose.User
	busy   bool
	ctx    context.Context
	cancel context.CancelFunc

	onCreated func(jid, name string)
	onCancel  func()
}

// NewCreateGroupView creates the Create Group screen.
func NewCreateGroupView(theme *ui.Theme, create GroupCreator, dispatch func(func()), flash *ui.FlashModel) *CreateGroupView {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}

	members := tview.NewTextView().SetWrap(true)
	members.SetBorder(true)
	members.SetBorderColor(theme.BorderColor)
	members.SetBackgroundColor(theme.BgColor)
	members.SetTextColor(theme.FgColor)
	members.SetTitleColor(theme.TitleColor)

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetTitle(" Create Group ")
	form.SetTitleColor(theme.TitleColor)
	form.SetFieldBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.MenuKeyColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 7, 0, true).
		AddItem(members, 0, 1, false)

	v := &CreateGroupView{
		Flex:     flex,
		theme:    theme,
		form:     form,
		members:  members,
		create:   create,
		dispatch: dispatch,
		flash:    flash,
	}

	form.AddInputField("Name", "", 40, nil, nil)
	form.AddButton("Create", v.Submit)
	form.AddButton("Cancel", func() {
		if v.onCancel != nil {
			v.onCancel()
		}
	})
	return v
}

// SetOnCreated is called on the UI goroutine after the group exists.
func (v *CreateGroupView) SetOnCreated(fn func(jid, name string)) { v.onCreated = fn }

// SetOnCancel is called when the user cancels the form.
func (v *CreateGroupView) SetOnCancel(fn func()) { v.onCancel = fn }

// Prepare sets the members for the coming visit.
func (v *CreateGroupView) Prepare(users []compose.User) {
	v.users = append([]compose.User(nil), users...)
}

// Name implements Component.
func (v *CreateGroupView) Name() string { return "create-group" }

// Title implements ui.Titled.
func (v *CreateGroupView) Title() string { return "Create Group" }

// Init implements Component.
func (v *CreateGroupView) Init() {}

// Start implements Component.
func (v *CreateGroupView) Start() {
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.busy = false
	v.nameField().SetText("")
	v.form.SetFocus(0)

	v.members.Clear()
	v.members.SetTitle(" Members (" + strconv.Itoa(len(v.users)) + ") ")
	labels := make([]string, 0, len(v.users))
	for _, u := range v.users {
		labels = append(labels, " "+displayName(u.Label())+"  "+shortHandle(u.Handle))
	}
	v.members.SetText(strings.Join(labels, "\n"))
}

// Stop implements Component.
func (v *CreateGroupView) Stop() {
	if v.cancel != nil {
		v.cancel()
	}
}

// Hints implements Component.
func (v *CreateGroupView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Create"},
		{Key: "Esc", Description: "Back"},
	}
}

// Submit creates the group with the entered name.
func (v *CreateGroupView) Submit() {
	if v.busy {
		return
	}
	name := strings.TrimSpace(v.nameField().GetText())
	if name == "" {
		v.warn("group name is required")
		return
	}
	if len(v.users) == 0 {
		v.warn("select at least one member")
		return
	}

	v.busy = true
	ctx, users := v.ctx, v.users
	go func() {
		jid, err := v.create(ctx, name, users)
		v.dispatch(func() {
			v.busy = false
			if err != nil {
				if ctx.Err() == nil && v.flash != nil {
					v.flash.Err(err)
				}
				return
			}
			if v.flash != nil {
				v.flash.Info("group " + name + " created")
			}
			if v.onCreated != nil {
				v.onCreated(jid, name)
			}
		})
	}()
}

func (v *CreateGroupView) nameField() *tview.InputField {
	return v.form.GetFormItemByLabel("Name").(*tview.InputField)
}

func (v *CreateGroupView) warn(msg string) {
	if v.flash != nil {
		v.flash.Warn(msg)
	}
}
