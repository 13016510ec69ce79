package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
)

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Global", [][2]string{
		{":", "Command mode"},
		{"Esc", "Cancel / Go back"},
		{"?", "Help"},
		{"q", "Quit (outside inputs)"},
		{"Ctrl-C", "Quit immediately"},
	}},
	{"Conversations", [][2]string{
		{"n", "New message"},
		{"g", "New group"},
		{"i / Enter", "Add members to the selected group"},
		{"/", "Filter the list"},
	}},
	{"New Message", [][2]string{
		{"type", "Search the directory"},
		{"Tab", "Switch between search and list"},
		{"Enter", "Start a conversation"},
		{"c", "Create a group instead"},
	}},
	{"Select Users", [][2]string{
		{"Enter", "Toggle a user"},
		{"Bksp", "Drop the last chip (empty search)"},
		{"Ctrl-N", "Next (shown once someone is selected)"},
	}},
}

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view. commands are usage and summary pairs
// listed after the key bindings.
func NewHelpView(theme *ui.Theme, commands [][2]string) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	sections := helpSections
	if len(commands) > 0 {
		sections = append(sections[:len(sections):len(sections)], helpSection{"Commands", commands})
	}
	hv.SetText(helpText(sections, fmt.Sprintf("#%06x", theme.MenuKeyColor.Hex())))
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "help" }

// Title implements ui.Titled.
func (hv *HelpView) Title() string { return "Help" }

// Init implements Component.
func (hv *HelpView) Init() {}

// Start implements Component.
func (hv *HelpView) Start() { hv.ScrollToBeginning() }

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func helpText(sections []helpSection, keyColor string) string {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "\n  [::b]%s[-:-:-]\n\n", s.title)
		for _, k := range s.keys {
			fmt.Fprintf(&b, "  [%s]%-22s[-:-:-] %s\n", keyColor, tview.Escape(k[0]), k[1])
		}
	}
	return b.String()
}
