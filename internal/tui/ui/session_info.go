package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SessionData holds session information for display.
type SessionData struct {
	Session string
	Phone   string
	Status  string
	Direct  int64
	Groups  int64
	Uptime  time.Duration
}

// SessionInfo is the header panel naming the session, the linked phone and
// the roster counts the daemon reports.
type SessionInfo struct {
	*tview.TextView
	theme *Theme
}

// NewSessionInfo creates a new session info panel.
func NewSessionInfo(theme *Theme) *SessionInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &SessionInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the session info. A nil data clears the panel.
func (si *SessionInfo) Update(data *SessionData) {
	si.Clear()
	if data == nil {
		return
	}

	phone := "-"
	if data.Phone != "" {
		phone = "+" + strings.TrimPrefix(data.Phone, "+")
	}
	rows := [][2]string{
		{"Session", tview.Escape(data.Session)},
		{"Phone", tview.Escape(phone)},
		{"Status", fmt.Sprintf("[%s]%s", colorName(si.stateColor(data.Status)), tview.Escape(data.Status))},
		{"Chats", fmt.Sprint(data.Direct)},
		{"Groups", fmt.Sprint(data.Groups)},
		{"Uptime", formatUptime(data.Uptime)},
	}

	label := colorName(si.theme.FgColor)
	value := colorName(si.theme.CounterColor)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("[%s::b]%-8s[-:-:-] [%s]%s[-]", label, r[0]+":", value, r[1])
	}
	_, _ = fmt.Fprint(si, strings.Join(lines, "\n"))
}

func (si *SessionInfo) stateColor(state string) tcell.Color {
	switch state {
	case "READY":
		return si.theme.MarkColor
	case "ERROR":
		return si.theme.FlashErrColor
	case "AUTH_REQUIRED", "CONNECTING", "RECONNECTING":
		return si.theme.FlashWarnColor
	}
	return si.theme.CounterColor
}

func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d.Hours()) / 24
	h := int(d.Hours()) % 24
	m := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, h)
	case h > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
