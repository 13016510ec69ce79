package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Crumbs shows the page stack as a breadcrumb trail, the top page
// highlighted.
type Crumbs struct {
	*tview.TextView
	theme *Theme
	label func(name string) string
}

// NewCrumbs creates a breadcrumb bar that shows page names as they are.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	tv.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		TextView: tv,
		theme:    theme,
		label:    func(name string) string { return name },
	}
}

// SetLabeler maps page names to the text shown for them.
func (c *Crumbs) SetLabeler(fn func(name string) string) {
	if fn != nil {
		c.label = fn
	}
}

// Update renders the trail for stack, bottom page first.
func (c *Crumbs) Update(stack []string) {
	c.Clear()

	parts := make([]string, 0, len(stack))
	for i, name := range stack {
		fg, bg, attr := c.theme.CrumbInactiveFg, c.theme.CrumbInactiveBg, ""
		if i == len(stack)-1 {
			fg, bg, attr = c.theme.CrumbActiveFg, c.theme.CrumbActiveBg, "b"
		}
		parts = append(parts, fmt.Sprintf("[%s:%s:%s] %s [-:-:-]",
			colorName(fg), colorName(bg), attr, tview.Escape(c.label(name))))
	}
	_, _ = fmt.Fprint(c, strings.Join(parts, " › "))
}

// colorName returns a color as tview's style tags expect it.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
