// Package testutil provides shared test helpers for seed directories and
// the local collection index.
package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/starford/hirelens/internal/index"
	"github.com/starford/hirelens/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "hirelens-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestSeedDir creates a temporary seed directory with a storage.Provider.
func TestSeedDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// SeedCollection replaces collection in db with docs, in order.
func SeedCollection(t *testing.T, db *index.DB, collection string, docs ...string) {
	t.Helper()
	items := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		items[i] = json.RawMessage(d)
	}
	row := index.CollectionRow{Name: collection, Source: collection + ".yaml", Checksum: "test"}
	if err := db.ReplaceCollection(row, items); err != nil {
		t.Fatalf("seed %s: %v", collection, err)
	}
}
