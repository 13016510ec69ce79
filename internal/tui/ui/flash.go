package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rivo/tview"
	"google.golang.org/grpc/status"
)

// FlashLevel is the severity of a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// How long each level stays on the bar.
var flashTTL = [...]time.Duration{
	FlashInfo: 5 * time.Second,
	FlashWarn: 8 * time.Second,
	FlashErr:  10 * time.Second,
}

// FlashMessage is one notification and when it stops showing.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel holds the latest notification. Every new message is also
// offered on Watch; a slow reader misses messages rather than blocking the
// sender.
type FlashModel struct {
	clock clockwork.Clock

	mu      sync.RWMutex
	current FlashMessage
	watchCh chan FlashMessage
}

// NewFlashModel creates a flash model. A nil clock uses the wall clock.
func NewFlashModel(clock clockwork.Clock) *FlashModel {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FlashModel{
		clock:   clock,
		watchCh: make(chan FlashMessage, 8),
	}
}

// Info shows an informational message.
func (f *FlashModel) Info(msg string) { f.set(msg, FlashInfo) }

// Warn shows a warning.
func (f *FlashModel) Warn(msg string) { f.set(msg, FlashWarn) }

// Err shows an error. Errors returned by the daemon show their status
// message without the gRPC code prefix.
func (f *FlashModel) Err(err error) {
	f.set(status.Convert(err).Message(), FlashErr)
}

func (f *FlashModel) set(msg string, level FlashLevel) {
	fm := FlashMessage{
		Text:    msg,
		Level:   level,
		Expires: f.clock.Now().Add(flashTTL[level]),
	}
	f.mu.Lock()
	f.current = fm
	f.mu.Unlock()
	select {
	case f.watchCh <- fm:
	default:
	}
}

// Get returns the text of the live message, or "" once it expired.
func (f *FlashModel) Get() string {
	if m := f.GetMessage(); m != nil {
		return m.Text
	}
	return ""
}

// GetMessage returns the live message, or nil once it expired.
func (f *FlashModel) GetMessage() *FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current.Text == "" || !f.clock.Now().Before(f.current.Expires) {
		return nil
	}
	m := f.current
	return &m
}

// Watch returns the channel new messages are offered on.
func (f *FlashModel) Watch() <-chan FlashMessage {
	return f.watchCh
}

// FlashBar is the one-line notification area at the bottom.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

// NewFlashBar creates the notification bar.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	tv.SetBackgroundColor(theme.BgColor)

	return &FlashBar{
		TextView: tv,
		theme:    theme,
	}
}

// Update shows msg, or clears the bar for nil. Message text is shown
// literally, brackets in names included.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil {
		return
	}

	color := fb.theme.FlashInfoColor
	switch msg.Level {
	case FlashWarn:
		color = fb.theme.FlashWarnColor
	case FlashErr:
		color = fb.theme.FlashErrColor
	}
	_, _ = fmt.Fprintf(fb, " [%s]%s[-]", colorName(color), tview.Escape(msg.Text))
}
