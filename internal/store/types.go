package store

// Kind distinguishes direct conversations from groups.
type Kind string

const (
	KindDirect Kind = "d"
	KindGroup  Kind = "g"
)

// Subscription is a conversation the account takes part in. DisplayName is
// resolved on read: subscription name, then contact name, then push name,
// then the JID itself.
type Subscription struct {
	JID           string
	Kind          Kind
	Name          string
	DisplayName   string
	RoomUpdatedAt int64 // unix ms of the last activity
	UnreadCount   int
}

// Contact is an address book entry synced from the phone.
type Contact struct {
	JID      string
	Name     string
	PushName string
}

// Candidate is a row the directory search may rank.
type Candidate struct {
	JID           string
	Kind          Kind
	DisplayName   string
	RoomUpdatedAt int64
}
