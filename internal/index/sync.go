package index

import (
	"fmt"
	"log/slog"

	"github.com/starford/hirelens/internal/cms"
	"github.com/starford/hirelens/internal/parser"
	"github.com/starford/hirelens/internal/storage"
)

// Sync walks the seed directory and brings the snapshot up to date:
//   - new/changed files are parsed and their collection replaced
//   - collections whose file is gone are dropped
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		name, err := importFile(db, m.Path, data)
		if err != nil {
			logger.Warn("sync: import failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: imported", slog.String("path", m.Path), slog.String("collection", name))
		}
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if name, err := db.DeleteSource(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p), slog.String("collection", name))
			}
		}
	}

	return nil
}

// importFile parses a seed file and replaces its collection snapshot.
func importFile(db *DB, path string, data []byte) (string, error) {
	seed, err := parser.ParseSeed(path, data)
	if err != nil {
		return "", err
	}
	if !cms.Known(seed.Collection) {
		return "", fmt.Errorf("unknown collection %q", seed.Collection)
	}
	row := CollectionRow{
		Name:     seed.Collection,
		Source:   path,
		Checksum: storage.Checksum(data),
	}
	if err := db.ReplaceCollection(row, seed.Items); err != nil {
		return "", err
	}
	return seed.Collection, nil
}
