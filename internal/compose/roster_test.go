package compose

import "testing"

func TestRosterNotifiesListeners(t *testing.T) {
	r := NewRoster()

	var calls []string
	removeA := r.AddChangeListener(func() { calls = append(calls, "a") })
	r.AddChangeListener(func() { calls = append(calls, "b") })

	r.Set([]Entry{{Name: "x@s"}})
	if !equalStrings(calls, []string{"a", "b"}) {
		t.Errorf("calls = %v, want [a b]", calls)
	}

	removeA()
	removeA()
	calls = nil
	r.Set(nil)
	if !equalStrings(calls, []string{"b"}) {
		t.Errorf("calls = %v, want [b]", calls)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}

	r.RemoveAllListeners()
	calls = nil
	r.Set([]Entry{{Name: "y@s"}})
	if len(calls) != 0 {
		t.Errorf("listener called after RemoveAllListeners: %v", calls)
	}
	if r.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", r.Listeners())
	}
}

func TestRosterEntriesIsCopy(t *testing.T) {
	r := NewRoster()
	in := []Entry{{Name: "a@s"}}
	r.Set(in)
	in[0].Name = "changed"

	got := r.Entries()
	got[0].Name = "also changed"
	if r.Entries()[0].Name != "a@s" {
		t.Errorf("roster mutated through a copy: %q", r.Entries()[0].Name)
	}
}
