package store

// DirectoryCandidates returns everything a directory search may match:
// every contact, every direct subscription without a contact entry and,
// when includeRooms is set, every group.
func (db *DB) DirectoryCandidates(includeRooms bool) ([]Candidate, error) {
	rows, err := db.Query(`
		SELECT ct.jid, 'd',
			COALESCE(NULLIF(ct.name,''), NULLIF(ct.push_name,''), NULLIF(s.name,''), ct.jid),
			COALESCE(s.room_updated_at, 0)
		FROM contacts ct
		LEFT JOIN subscriptions s ON s.jid = ct.jid
		UNION ALL
		SELECT s.jid, s.kind, COALESCE(NULLIF(s.name,''), s.jid), s.room_updated_at
		FROM subscriptions s
		WHERE s.jid NOT IN (SELECT jid FROM contacts)
			AND (s.kind = 'd' OR (? AND s.kind = 'g'))
		ORDER BY 4 DESC, 1 ASC`, includeRooms)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.JID, &c.Kind, &c.DisplayName, &c.RoomUpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
