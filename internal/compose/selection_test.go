package compose

import "testing"

func TestSelectionToggleTwiceRestores(t *testing.T) {
	s := NewSelection()
	e := Entry{ID: "1", Name: "alice@s", FName: "Alice"}

	if s.IsSelected("alice@s") {
		t.Fatal("selected before toggle")
	}
	if !s.Toggle(e) {
		t.Error("first Toggle() = false, want true")
	}
	if !s.IsSelected("alice@s") {
		t.Error("not selected after first toggle")
	}
	if s.Toggle(e) {
		t.Error("second Toggle() = true, want false")
	}
	if s.IsSelected("alice@s") {
		t.Error("still selected after second toggle")
	}
}

func TestSelectionMatchesAcrossSources(t *testing.T) {
	s := NewSelection()
	s.Toggle(Entry{ID: "1", Name: "alice@s", FName: "Alice"})

	// The same person found through search deselects.
	if s.Toggle(Entry{ID: "1", Username: "alice@s", Name: "Alice", Search: true}) {
		t.Error("search row did not match roster row")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSelectionOrderAndNoDuplicates(t *testing.T) {
	s := NewSelection()
	for _, h := range []string{"c@s", "a@s", "b@s"} {
		s.ToggleUser(User{Handle: h, DisplayName: h})
	}
	s.ToggleUser(User{Handle: "a@s"})
	s.ToggleUser(User{Handle: "a@s", DisplayName: "A"})

	if got := s.Handles(); !equalStrings(got, []string{"c@s", "b@s", "a@s"}) {
		t.Errorf("Handles() = %v, want [c@s b@s a@s]", got)
	}
	users := s.Users()
	if users[2].DisplayName != "A" {
		t.Errorf("re-added user = %+v, want DisplayName A", users[2])
	}
}

func TestSelectionIgnoresEmptyHandle(t *testing.T) {
	s := NewSelection()
	if s.Toggle(Entry{FName: "nobody"}) {
		t.Error("Toggle() of an entry without handle = true")
	}
	if s.HasSelection() {
		t.Error("HasSelection() = true")
	}
}

func TestSelectionResetClears(t *testing.T) {
	s := NewSelection()
	var sizes []int
	s.OnChange(func(n int) { sizes = append(sizes, n) })

	handles := []string{"a@s", "b@s", "c@s"}
	for _, h := range handles {
		s.ToggleUser(User{Handle: h})
	}
	if !s.HasSelection() {
		t.Fatal("HasSelection() = false")
	}

	s.Reset()
	for _, h := range handles {
		if s.IsSelected(h) {
			t.Errorf("%s selected after Reset", h)
		}
	}
	if s.HasSelection() || len(s.Users()) != 0 {
		t.Error("selection not empty after Reset")
	}

	// Resetting an empty selection does not notify.
	s.Reset()
	want := []int{1, 2, 3, 0}
	if len(sizes) != len(want) {
		t.Fatalf("OnChange sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("OnChange sizes = %v, want %v", sizes, want)
			break
		}
	}
}
