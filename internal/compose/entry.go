// Package compose holds the state behind the New Message and Select Users
// screens: debounced directory search, the roster/search list policy, the
// selection set and the add-users submission flag.
package compose

import "time"

// Entry is a row as delivered by either the roster or the directory search.
// The two sources name their fields differently: roster rows carry the
// handle in Name and the display name in FName, search rows carry the handle
// in Username and the display name in Name and set Search.
type Entry struct {
	ID           string
	Name         string
	FName        string
	Username     string
	Search       bool
	Group        bool
	LastActivity time.Time
}

// User is the canonical shape of an Entry.
type User struct {
	ID          string
	Handle      string
	DisplayName string
}

// Normalize maps an Entry to a User. Every render and every selection lookup
// goes through here.
func Normalize(e Entry) User {
	if e.Search {
		return User{ID: e.ID, Handle: e.Username, DisplayName: e.Name}
	}
	return User{ID: e.ID, Handle: e.Name, DisplayName: e.FName}
}

// Label is the text shown for u, falling back to the handle.
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Handle
}
