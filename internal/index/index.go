package index

import (
	"context"
	"encoding/json"
)

// CollectionIndex defines the snapshot operations used by the local CMS mode.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type CollectionIndex interface {
	ReplaceCollection(c CollectionRow, items []json.RawMessage) error
	DeleteSource(source string) (string, error)
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	Collections() ([]CollectionRow, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies CollectionIndex at compile time.
var _ CollectionIndex = (*DB)(nil)
