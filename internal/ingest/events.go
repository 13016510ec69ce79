package ingest

import "github.com/matheus3301/wpnew/internal/store"

// Activity is the payload of wa.activity: something happened in a chat.
type Activity struct {
	ChatJID string
	Kind    store.Kind
	At      int64 // unix ms
}

// GroupJoined is the payload of wa.group_joined.
type GroupJoined struct {
	JID  string
	Name string
	At   int64
}

// Conversation is one entry of a history sync batch.
type Conversation struct {
	JID    string
	Kind   store.Kind
	Name   string
	At     int64
	Unread int
}

// RosterChange is the payload of roster.changed.
type RosterChange struct {
	JIDs   []string
	Reason string
}

// Reasons carried by RosterChange.
const (
	ReasonActivity = "activity"
	ReasonContact  = "contact"
	ReasonContacts = "contacts_synced"
	ReasonGroup    = "group_joined"
	ReasonHistory  = "history_sync"
	ReasonLIDs     = "lid_reconciled"
)
