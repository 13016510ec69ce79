package compose

import "sync"

// Selection is the set of users picked on the Select Users screen, keyed by
// handle. Users keep the order they were added in.
type Selection struct {
	mu       sync.Mutex
	order    []string
	users    map[string]User
	onChange func(n int)
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{users: make(map[string]User)}
}

// OnChange sets the func called with the new size after every change.
func (s *Selection) OnChange(fn func(n int)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Toggle adds or removes the user behind e and reports whether it is
// selected afterwards.
func (s *Selection) Toggle(e Entry) bool {
	return s.ToggleUser(Normalize(e))
}

// ToggleUser adds u if its handle is absent, removes it otherwise. Users
// without a handle are ignored.
func (s *Selection) ToggleUser(u User) bool {
	if u.Handle == "" {
		return false
	}

	s.mu.Lock()
	_, present := s.users[u.Handle]
	if present {
		delete(s.users, u.Handle)
		for i, h := range s.order {
			if h == u.Handle {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	} else {
		s.users[u.Handle] = u
		s.order = append(s.order, u.Handle)
	}
	n, fn := len(s.order), s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(n)
	}
	return !present
}

// IsSelected reports whether handle is in the selection.
func (s *Selection) IsSelected(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[handle]
	return ok
}

// Users returns the selected users in insertion order.
func (s *Selection) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.users[h])
	}
	return out
}

// Handles returns the selected handles in insertion order.
func (s *Selection) Handles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of selected users.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// HasSelection gates the confirm action.
func (s *Selection) HasSelection() bool {
	return s.Len() > 0
}

// Reset empties the selection.
func (s *Selection) Reset() {
	s.mu.Lock()
	changed := len(s.order) > 0
	s.order = nil
	s.users = make(map[string]User)
	fn := s.onChange
	s.mu.Unlock()

	if changed && fn != nil {
		fn(0)
	}
}
