package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	pnSuffix  = "@s.whatsapp.net"
	lidSuffix = "@lid"
)

// LIDMapping links a linked identity to the phone number it hides. Both
// fields hold the user part only, without server.
type LIDMapping struct {
	LID string
	PN  string
}

// SyncLIDMap replaces the stored LID map.
func (db *DB) SyncLIDMap(mappings []LIDMapping) error {
	now := time.Now().UnixMilli()
	return db.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM lid_map`); err != nil {
			return fmt.Errorf("clear lid map: %w", err)
		}
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO lid_map (lid, pn, updated_at) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare lid insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, m := range mappings {
			if m.LID == "" || m.PN == "" {
				continue
			}
			if _, err := stmt.Exec(m.LID, m.PN, now); err != nil {
				return fmt.Errorf("insert lid %q: %w", m.LID, err)
			}
		}
		return nil
	})
}

// LookupPN maps a "<lid>@lid" JID to its phone number JID. ok is false when
// jid is not a LID or no mapping is known.
func (db *DB) LookupPN(jid string) (pn string, ok bool, err error) {
	user, isLID := strings.CutSuffix(jid, lidSuffix)
	if !isLID {
		return "", false, nil
	}
	err = db.QueryRow(`SELECT pn FROM lid_map WHERE lid = ?`, user).Scan(&pn)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pn + pnSuffix, true, nil
}

// ReconcileLIDs folds subscriptions and contacts stored under a mapped LID
// into their phone number JID and removes the LID rows. It returns the number
// of subscriptions merged.
func (db *DB) ReconcileLIDs() (int64, error) {
	var merged int64
	now := time.Now().UnixMilli()
	err := db.withTx(func(tx *sql.Tx) error {
		// WHERE true keeps SQLite from reading ON CONFLICT as a join clause.
		if _, err := tx.Exec(`
			INSERT INTO subscriptions (jid, kind, name, room_updated_at, unread_count, updated_at)
			SELECT lm.pn || ?, 'd', s.name, s.room_updated_at, s.unread_count, ?
			FROM subscriptions s
			JOIN lid_map lm ON s.jid = lm.lid || ?
			WHERE true
			ON CONFLICT(jid) DO UPDATE SET
				name = CASE WHEN subscriptions.name = '' THEN excluded.name ELSE subscriptions.name END,
				room_updated_at = MAX(subscriptions.room_updated_at, excluded.room_updated_at),
				unread_count = MAX(subscriptions.unread_count, excluded.unread_count),
				updated_at = excluded.updated_at`,
			pnSuffix, now, lidSuffix); err != nil {
			return fmt.Errorf("merge lid subscriptions: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO contacts (jid, name, push_name, updated_at)
			SELECT lm.pn || ?, ct.name, ct.push_name, ?
			FROM contacts ct
			JOIN lid_map lm ON ct.jid = lm.lid || ?
			WHERE true
			ON CONFLICT(jid) DO UPDATE SET
				name = CASE WHEN contacts.name = '' THEN excluded.name ELSE contacts.name END,
				push_name = CASE WHEN contacts.push_name = '' THEN excluded.push_name ELSE contacts.push_name END,
				updated_at = excluded.updated_at`,
			pnSuffix, now, lidSuffix); err != nil {
			return fmt.Errorf("merge lid contacts: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM contacts WHERE jid IN (SELECT lid || ? FROM lid_map)`, lidSuffix); err != nil {
			return fmt.Errorf("delete lid contacts: %w", err)
		}
		res, err := tx.Exec(`DELETE FROM subscriptions WHERE jid IN (SELECT lid || ? FROM lid_map)`, lidSuffix)
		if err != nil {
			return fmt.Errorf("delete lid subscriptions: %w", err)
		}
		merged, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return merged, nil
}
