package index

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/hirelens/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "hirelens-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func raws(docs ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = json.RawMessage(d)
	}
	return out
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM collections`).Scan(&count); err != nil {
		t.Fatalf("collections table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM records`).Scan(&count); err != nil {
		t.Fatalf("records table missing: %v", err)
	}
}

func TestReplaceAndGetAll_PreservesOrder(t *testing.T) {
	db := testDB(t)
	items := raws(`{"_id":"z"}`, `{"_id":"a"}`, `{"_id":"m"}`)
	if err := db.ReplaceCollection(CollectionRow{Name: "mentors", Source: "mentors.yaml", Checksum: "1"}, items); err != nil {
		t.Fatalf("ReplaceCollection: %v", err)
	}
	got, err := db.GetAll(context.Background(), "mentors")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := range items {
		if string(got[i]) != string(items[i]) {
			t.Errorf("got[%d] = %s, want %s", i, got[i], items[i])
		}
	}
}

func TestReplaceCollection_SwapsSnapshot(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceCollection(CollectionRow{Name: "mentors", Source: "mentors.yaml", Checksum: "1"}, raws(`{"_id":"a"}`, `{"_id":"b"}`))
	_ = db.ReplaceCollection(CollectionRow{Name: "mentors", Source: "mentors.yaml", Checksum: "2"}, raws(`{"_id":"c"}`))

	got, _ := db.GetAll(context.Background(), "mentors")
	if len(got) != 1 || string(got[0]) != `{"_id":"c"}` {
		t.Errorf("snapshot = %s, want only c", got)
	}
	cs, _ := db.AllChecksums()
	if cs["mentors.yaml"] != "2" {
		t.Errorf("checksum = %q, want 2", cs["mentors.yaml"])
	}
}

func TestReplaceCollection_SourceRenamesCollection(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceCollection(CollectionRow{Name: "mentors", Source: "people.yaml", Checksum: "1"}, raws(`{"_id":"a"}`))
	_ = db.ReplaceCollection(CollectionRow{Name: "careerpaths", Source: "people.yaml", Checksum: "2"}, raws(`{"_id":"b"}`))

	got, _ := db.GetAll(context.Background(), "mentors")
	if len(got) != 0 {
		t.Errorf("old collection still has %d items", len(got))
	}
	cols, _ := db.Collections()
	if len(cols) != 1 || cols[0].Name != "careerpaths" {
		t.Errorf("collections = %+v", cols)
	}
}

func TestGetAll_UnknownIsEmpty(t *testing.T) {
	db := testDB(t)
	got, err := db.GetAll(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestDeleteSource(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceCollection(CollectionRow{Name: "accreditations", Source: "acc.json", Checksum: "x"}, raws(`{"_id":"a1"}`))

	name, err := db.DeleteSource("acc.json")
	if err != nil {
		t.Fatalf("DeleteSource: %v", err)
	}
	if name != "accreditations" {
		t.Errorf("name = %q, want accreditations", name)
	}
	got, _ := db.GetAll(context.Background(), "accreditations")
	if len(got) != 0 {
		t.Errorf("records left after delete: %d", len(got))
	}

	name, err = db.DeleteSource("acc.json")
	if err != nil || name != "" {
		t.Errorf("second delete = (%q, %v), want empty, nil", name, err)
	}
}

func TestCollections_Counts(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceCollection(CollectionRow{Name: "mentors", Source: "mentors.yaml", Checksum: "1"}, raws(`{"_id":"a"}`, `{"_id":"b"}`))
	_ = db.ReplaceCollection(CollectionRow{Name: "careerpaths", Source: "careerpaths.yaml", Checksum: "2"}, nil)

	cols, err := db.Collections()
	if err != nil {
		t.Fatalf("Collections: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("len = %d, want 2", len(cols))
	}
	// ordered by name
	if cols[0].Name != "careerpaths" || cols[0].Count != 0 {
		t.Errorf("cols[0] = %+v", cols[0])
	}
	if cols[1].Name != "mentors" || cols[1].Count != 2 {
		t.Errorf("cols[1] = %+v", cols[1])
	}
}

func TestSync_ImportsAndDropsStale(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	db := testDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	_ = store.Write("mentors.yaml", []byte("- _id: m1\n  mentorName: Ada\n"))
	_ = store.Write("careerpaths.yaml", []byte("- _id: c1\n"))
	_ = store.Write("bogus.yaml", []byte("- _id: x\n"))

	if err := Sync(db, store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	cs, _ := db.AllChecksums()
	if len(cs) != 2 {
		t.Fatalf("imported %d files, want 2 (unknown collection skipped): %v", len(cs), cs)
	}

	_ = os.Remove(filepath.Join(dir, "careerpaths.yaml"))
	if err := Sync(db, store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	got, _ := db.GetAll(context.Background(), "careerpaths")
	if len(got) != 0 {
		t.Errorf("stale collection still present")
	}
	got, _ = db.GetAll(context.Background(), "mentors")
	if len(got) != 1 {
		t.Errorf("mentors len = %d, want 1", len(got))
	}
}
