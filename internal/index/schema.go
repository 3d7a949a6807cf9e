// Package index keeps a SQLite snapshot of the seed collections served in
// local CMS mode.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS collections (
	name      TEXT PRIMARY KEY,
	source    TEXT NOT NULL UNIQUE,
	checksum  TEXT NOT NULL DEFAULT '',
	synced_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS records (
	collection TEXT    NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	id         TEXT    NOT NULL DEFAULT '',
	data       TEXT    NOT NULL,
	PRIMARY KEY (collection, position)
);

CREATE INDEX IF NOT EXISTS idx_records_id ON records(collection, id);
`

// DB wraps a sql.DB with snapshot-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
