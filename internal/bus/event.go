package bus

import "time"

// Event kinds. Subscribers filter by namespace prefix ("wa.", "roster.", "session.").
const (
	KindActivity       = "wa.activity"
	KindContact        = "wa.contact"
	KindContactsSynced = "wa.contacts_synced"
	KindGroupJoined    = "wa.group_joined"
	KindHistoryBatch   = "wa.history_batch"
	KindLIDMappings    = "wa.lid_mappings"

	KindRosterChanged = "roster.changed"

	KindStatusChanged = "session.status_changed"
	KindAuthEvent     = "session.auth"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// NewEvent stamps an event with the current time.
func NewEvent(kind string, payload any) Event {
	return Event{Kind: kind, Timestamp: time.Now(), Payload: payload}
}
