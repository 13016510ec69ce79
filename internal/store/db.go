package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the daemon's roster.db: subscriptions, contacts, the LID map and
// sync checkpoints. The whatsmeow session lives in a separate file.
type DB struct {
	*sql.DB
}

// Open connects to roster.db in WAL mode. SQLite allows a single writer, so
// the pool is capped at one connection and writers queue behind
// busy_timeout instead of failing with SQLITE_BUSY.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open roster db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping roster db %s: %w", path, err)
	}
	return &DB{db}, nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (db *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// bulkExec prepares query once inside a transaction and executes it with
// args(i) for every i in [0, n).
func (db *DB) bulkExec(query string, n int, args func(i int) []any) error {
	return db.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(query)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i := 0; i < n; i++ {
			if _, err := stmt.Exec(args(i)...); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
		}
		return nil
	})
}
