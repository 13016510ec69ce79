package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

const menuGap = 3

// Menu lists the key bindings of the current screen in the header. Hints
// fill a column top to bottom, then continue in the next one.
type Menu struct {
	*tview.TextView
	theme *Theme
	rows  int
}

// NewMenu creates the hint panel. rows is the height of one column; zero
// puts every hint in a single column.
func NewMenu(theme *Theme, rows int) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
		rows:     rows,
	}
}

// Update replaces the hints.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()
	if len(hints) == 0 {
		return
	}

	rows := m.rows
	if rows <= 0 || rows > len(hints) {
		rows = len(hints)
	}
	cols := (len(hints) + rows - 1) / rows
	widths := make([]int, cols)
	for i, h := range hints {
		if w := hintWidth(h); w > widths[i/rows] {
			widths[i/rows] = w
		}
	}

	keyColor := colorName(m.theme.MenuKeyColor)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(hints) {
				break
			}
			h := hints[i]
			fmt.Fprintf(&b, "[%s::b]<%s>[-:-:-] %s", keyColor, tview.Escape(h.Key), tview.Escape(h.Description))
			if next := i + rows; next < len(hints) {
				b.WriteString(strings.Repeat(" ", widths[c]-hintWidth(h)+menuGap))
			}
		}
		b.WriteByte('\n')
	}
	_, _ = fmt.Fprint(m, b.String())
}

func hintWidth(h MenuHint) int {
	return runewidth.StringWidth("<" + h.Key + "> " + h.Description)
}
