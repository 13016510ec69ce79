package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFlashLevels(t *testing.T) {
	f := NewFlashModel(nil)
	if f.GetMessage() != nil {
		t.Fatal("fresh model should have no message")
	}

	f.Warn("search failed")
	msg := f.GetMessage()
	if msg == nil || msg.Level != FlashWarn || msg.Text != "search failed" {
		t.Errorf("message = %+v", msg)
	}

	f.Err(errors.New("boom"))
	if msg := f.GetMessage(); msg == nil || msg.Level != FlashErr || f.Get() != "boom" {
		t.Errorf("message = %+v", msg)
	}

	select {
	case got := <-f.Watch():
		if got.Text != "search failed" {
			t.Errorf("first watched = %q", got.Text)
		}
	default:
		t.Error("watch channel empty")
	}
}

func TestFlashExpiresPerLevel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := NewFlashModel(clock)

	f.Info("saved")
	clock.Advance(4 * time.Second)
	if f.Get() != "saved" {
		t.Fatal("info expired early")
	}
	clock.Advance(time.Second)
	if f.Get() != "" || f.GetMessage() != nil {
		t.Error("info still visible after 5s")
	}

	f.Err(errors.New("boom"))
	clock.Advance(9 * time.Second)
	if f.Get() != "boom" {
		t.Error("error expired before 10s")
	}
}

func TestFlashErrShowsStatusMessage(t *testing.T) {
	f := NewFlashModel(nil)
	f.Err(status.Error(codes.FailedPrecondition, "not an admin of this group"))
	if got := f.Get(); got != "not an admin of this group" {
		t.Errorf("text = %q, want the bare status message", got)
	}
}

func TestFlashBarEscapesText(t *testing.T) {
	fb := NewFlashBar(DefaultTheme())
	fb.Update(&FlashMessage{Text: "added [red]Ana", Level: FlashInfo})
	if got := fb.GetText(false); !strings.Contains(got, "added [red[]Ana") {
		t.Errorf("bar = %q, want the name escaped", got)
	}

	fb.Update(nil)
	if got := fb.GetText(true); got != "" {
		t.Errorf("bar after nil = %q", got)
	}
}
