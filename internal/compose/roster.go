package compose

import "sync"

// Roster is the observable, ordered list of existing direct conversations,
// most recently active first.
type Roster struct {
	mu        sync.RWMutex
	entries   []Entry
	listeners []rosterListener
	nextID    int
}

type rosterListener struct {
	id int
	fn func()
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Set replaces the contents and notifies listeners in registration order.
func (r *Roster) Set(entries []Entry) {
	cp := make([]Entry, len(entries))
	copy(cp, entries)

	r.mu.Lock()
	r.entries = cp
	listeners := make([]rosterListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, l := range listeners {
		l.fn()
	}
}

// Entries returns a copy of the current contents.
func (r *Roster) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// AddChangeListener registers fn to run after every Set. The returned func
// removes it.
func (r *Roster) AddChangeListener(fn func()) (remove func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners = append(r.listeners, rosterListener{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// RemoveAllListeners drops every registered listener.
func (r *Roster) RemoveAllListeners() {
	r.mu.Lock()
	r.listeners = nil
	r.mu.Unlock()
}

// Listeners reports how many listeners are registered.
func (r *Roster) Listeners() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
