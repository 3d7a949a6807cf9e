package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CollectionRow represents a row in the collections table.
type CollectionRow struct {
	Name     string
	Source   string
	Checksum string
	SyncedAt time.Time
	Count    int
}

// ReplaceCollection swaps the stored snapshot of c.Name for items within a
// transaction. Items keep the order they are given in.
func (db *DB) ReplaceCollection(c CollectionRow, items []json.RawMessage) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if c.SyncedAt.IsZero() {
		c.SyncedAt = time.Now().UTC()
	}

	// A seed file may have switched to another collection name.
	if _, err := tx.Exec(`DELETE FROM collections WHERE source = ? AND name <> ?`, c.Source, c.Name); err != nil {
		return fmt.Errorf("index: drop previous source owner: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO collections (name, source, checksum, synced_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source    = excluded.source,
			checksum  = excluded.checksum,
			synced_at = excluded.synced_at
	`, c.Name, c.Source, c.Checksum, c.SyncedAt)
	if err != nil {
		return fmt.Errorf("index: upsert collection: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM records WHERE collection = ?`, c.Name); err != nil {
		return fmt.Errorf("index: clear records: %w", err)
	}
	if len(items) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO records (collection, position, id, data) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare record insert: %w", err)
		}
		defer stmt.Close()
		for i, raw := range items {
			if _, err := stmt.Exec(c.Name, i, recordID(raw), string(raw)); err != nil {
				return fmt.Errorf("index: insert record: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteSource removes the collection imported from source and returns its
// name. An unknown source yields an empty name and no error.
func (db *DB) DeleteSource(source string) (string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var name string
	err = tx.QueryRow(`SELECT name FROM collections WHERE source = ?`, source).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: lookup source: %w", err)
	}

	_, _ = tx.Exec(`DELETE FROM records WHERE collection = ?`, name)
	_, _ = tx.Exec(`DELETE FROM collections WHERE name = ?`, name)

	return name, tx.Commit()
}

// GetAll returns every stored item of collection in source order. A
// collection that was never imported yields an empty, non-nil slice.
func (db *DB) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT data FROM records WHERE collection = ? ORDER BY position`, collection)
	if err != nil {
		return nil, fmt.Errorf("index: get all: %w", err)
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(data))
	}
	return out, rows.Err()
}

// Collections lists the imported collections with their item counts.
func (db *DB) Collections() ([]CollectionRow, error) {
	rows, err := db.conn.Query(`
		SELECT c.name, c.source, c.checksum, c.synced_at,
			(SELECT COUNT(*) FROM records r WHERE r.collection = c.name)
		FROM collections c
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("index: collections: %w", err)
	}
	defer rows.Close()

	var out []CollectionRow
	for rows.Next() {
		var c CollectionRow
		if err := rows.Scan(&c.Name, &c.Source, &c.Checksum, &c.SyncedAt, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AllChecksums returns source path → checksum for every imported file.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT source, checksum FROM collections`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

func recordID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"_id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ID
}
