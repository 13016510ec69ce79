package store

import (
	"database/sql"
	"fmt"
	"time"
)

const displayNameExpr = `COALESCE(NULLIF(s.name,''), NULLIF(ct.name,''), NULLIF(ct.push_name,''), s.jid)`

const upsertSubscriptionSQL = `
	INSERT INTO subscriptions (jid, kind, name, room_updated_at, unread_count, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(jid) DO UPDATE SET
		kind = excluded.kind,
		name = CASE WHEN excluded.name != '' THEN excluded.name ELSE subscriptions.name END,
		room_updated_at = MAX(subscriptions.room_updated_at, excluded.room_updated_at),
		unread_count = excluded.unread_count,
		updated_at = excluded.updated_at`

func validKind(s *Subscription) error {
	if s.Kind != KindDirect && s.Kind != KindGroup {
		return fmt.Errorf("subscription %q: unknown kind %q", s.JID, s.Kind)
	}
	return nil
}

// UpsertSubscription inserts or replaces a subscription. An empty name never
// overwrites a known one and activity never moves backwards.
func (db *DB) UpsertSubscription(s *Subscription) error {
	if err := validKind(s); err != nil {
		return err
	}
	_, err := db.Exec(upsertSubscriptionSQL,
		s.JID, s.Kind, s.Name, s.RoomUpdatedAt, s.UnreadCount, time.Now().UnixMilli())
	return err
}

// BulkUpsertSubscriptions applies UpsertSubscription to every entry in one
// transaction.
func (db *DB) BulkUpsertSubscriptions(subs []Subscription) error {
	for i := range subs {
		if err := validKind(&subs[i]); err != nil {
			return err
		}
	}

	now := time.Now().UnixMilli()
	err := db.bulkExec(upsertSubscriptionSQL, len(subs), func(i int) []any {
		s := subs[i]
		return []any{s.JID, s.Kind, s.Name, s.RoomUpdatedAt, s.UnreadCount, now}
	})
	if err != nil {
		return fmt.Errorf("bulk upsert subscriptions: %w", err)
	}
	return nil
}

// TouchSubscription records activity in a conversation, creating it when unknown.
func (db *DB) TouchSubscription(jid string, kind Kind, at int64) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO subscriptions (jid, kind, room_updated_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(jid) DO UPDATE SET
			room_updated_at = MAX(subscriptions.room_updated_at, excluded.room_updated_at),
			updated_at = excluded.updated_at`,
		jid, kind, at, now)
	return err
}

// ListRoster returns subscriptions of the given kind (all kinds when empty),
// most recently active first.
func (db *DB) ListRoster(kind Kind, limit int) ([]Subscription, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT s.jid, s.kind, s.name, `+displayNameExpr+`, s.room_updated_at, s.unread_count
		FROM subscriptions s
		LEFT JOIN contacts ct ON ct.jid = s.jid
		WHERE ? = '' OR s.kind = ?
		ORDER BY s.room_updated_at DESC, s.jid ASC
		LIMIT ?`, kind, kind, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []Subscription
	for rows.Next() {
		var s Subscription
		if err := rows.Scan(&s.JID, &s.Kind, &s.Name, &s.DisplayName, &s.RoomUpdatedAt, &s.UnreadCount); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// GetSubscription returns a single subscription, or nil if it does not exist.
func (db *DB) GetSubscription(jid string) (*Subscription, error) {
	var s Subscription
	err := db.QueryRow(`
		SELECT s.jid, s.kind, s.name, `+displayNameExpr+`, s.room_updated_at, s.unread_count
		FROM subscriptions s
		LEFT JOIN contacts ct ON ct.jid = s.jid
		WHERE s.jid = ?`, jid).
		Scan(&s.JID, &s.Kind, &s.Name, &s.DisplayName, &s.RoomUpdatedAt, &s.UnreadCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RosterCount returns the number of subscriptions per kind.
func (db *DB) RosterCount() (map[Kind]int64, error) {
	rows, err := db.Query(`SELECT kind, COUNT(*) FROM subscriptions GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[Kind]int64)
	for rows.Next() {
		var k Kind
		var n int64
		if err := rows.Scan(&k, &n); err != nil {
			return nil, err
		}
		counts[k] = n
	}
	return counts, rows.Err()
}
