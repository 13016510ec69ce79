package rpc

// Empty is used where a call takes or returns nothing.
type Empty struct{}

// SessionStatus describes the daemon and its WhatsApp connection.
type SessionStatus struct {
	Session     string `json:"session"`
	State       string `json:"state"`
	Description string `json:"description"`
	PhoneNumber string `json:"phone_number,omitempty"`
	UptimeMs    int64  `json:"uptime_ms"`
	DirectCount int64  `json:"direct_count"`
	GroupCount  int64  `json:"group_count"`
}

// AuthEvent is one step of the QR pairing flow.
type AuthEvent struct {
	Type    string `json:"type"`
	QRCode  string `json:"qr_code,omitempty"`
	Message string `json:"message,omitempty"`
}

// SessionInfo is a session directory on disk.
type SessionInfo struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	DaemonRunning bool   `json:"daemon_running"`
}

type ListSessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

// Room kinds.
const (
	KindDirect = "d"
	KindGroup  = "g"
)

// RosterEntry is a conversation, most recently active first.
type RosterEntry struct {
	JID           string `json:"jid"`
	Kind          string `json:"kind"`
	Name          string `json:"name,omitempty"`
	DisplayName   string `json:"display_name"`
	RoomUpdatedAt int64  `json:"room_updated_at"`
	UnreadCount   int    `json:"unread_count,omitempty"`
}

type ListRosterRequest struct {
	// Kind filters by room kind; empty lists everything.
	Kind  string `json:"kind,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type ListRosterResponse struct {
	Entries []RosterEntry `json:"entries"`
}

// RosterEvent tells watchers the roster changed.
type RosterEvent struct {
	EventID          string   `json:"event_id"`
	Session          string   `json:"session"`
	OccurredAtUnixMs int64    `json:"occurred_at_unix_ms"`
	Kind             string   `json:"kind"`
	Reason           string   `json:"reason,omitempty"`
	JIDs             []string `json:"jids,omitempty"`
}

type SearchRequest struct {
	Text string `json:"text"`
	// FilterRooms includes groups in the results.
	FilterRooms bool `json:"filter_rooms"`
	Limit       int  `json:"limit,omitempty"`
}

// SearchResult is a directory match. Username holds the handle.
type SearchResult struct {
	ID            string `json:"_id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	RoomUpdatedAt int64  `json:"room_updated_at,omitempty"`
	Score         int    `json:"score"`
	Search        bool   `json:"search"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type AddUsersRequest struct {
	RoomID string   `json:"room_id"`
	Users  []string `json:"users"`
}

type AddUsersResponse struct {
	Added int `json:"added"`
}

type CreateGroupRequest struct {
	Name  string   `json:"name"`
	Users []string `json:"users"`
}

type CreateGroupResponse struct {
	JID string `json:"jid"`
}

type StartDirectRequest struct {
	JID string `json:"jid"`
}

type StartDirectResponse struct {
	JID string `json:"jid"`
}
