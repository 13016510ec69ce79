package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewBindingShadowsGlobal(t *testing.T) {
	r := NewRegistry()
	var got string
	r.AddGlobal("quit", &Action{Key: tcell.KeyRune, Rune: 'q', Handler: func() { got = "global" }})
	r.AddView("home", "quit", &Action{Key: tcell.KeyRune, Rune: 'q', Handler: func() { got = "view" }})

	if !r.HandleEvent("home", runeKey('q')) || got != "view" {
		t.Errorf("home: got %q, want view", got)
	}
	if !r.HandleEvent("other", runeKey('q')) || got != "global" {
		t.Errorf("other: got %q, want global", got)
	}
	if r.HandleEvent("home", runeKey('x')) {
		t.Error("unbound key handled")
	}
}

func TestDisabledActionIsSkipped(t *testing.T) {
	r := NewRegistry()
	enabled := false
	fired := 0
	r.AddView("select", "next", &Action{
		Key:     tcell.KeyCtrlN,
		Enabled: func() bool { return enabled },
		Handler: func() { fired++ },
	})

	ev := tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl)
	if r.HandleEvent("select", ev) || fired != 0 {
		t.Error("disabled action fired")
	}

	enabled = true
	if !r.HandleEvent("select", ev) || fired != 1 {
		t.Error("enabled action did not fire")
	}
}

func TestAddReplacesAndRemoveView(t *testing.T) {
	r := NewRegistry()
	var got string
	r.AddView("home", "new", &Action{Key: tcell.KeyRune, Rune: 'n', Handler: func() { got = "first" }})
	r.AddView("home", "new", &Action{Key: tcell.KeyRune, Rune: 'n', Handler: func() { got = "second" }})

	r.HandleEvent("home", runeKey('n'))
	if got != "second" {
		t.Errorf("got %q, want the replacement binding", got)
	}

	r.RemoveView("home")
	if r.HandleEvent("home", runeKey('n')) {
		t.Error("binding survived RemoveView")
	}
}
