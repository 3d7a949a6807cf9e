package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/hirelens/internal/storage"
)

// Event kinds passed to EventCallback.
const (
	KindUpdated = "updated"
	KindRemoved = "removed"
)

const reconcileDelay = 200 * time.Millisecond

// EventCallback is called after a watcher-driven snapshot change.
type EventCallback func(kind string, collection string)

// Watch starts an fsnotify watcher on the seed root and processes file
// change events until ctx is cancelled. It calls cb (if non-nil) after
// each successful snapshot mutation.
//
// New directories created at runtime are added to the watch list. Rename
// events trigger a debounced reconciliation pass against the directory.
func Watch(ctx context.Context, db *DB, store storage.Provider, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(reconcileDelay)
		}
	}

	notify := func(kind, collection string) {
		if cb != nil && collection != "" {
			cb(kind, collection)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, store, logger, notify)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					}
					importNewDir(db, store, root, absPath, logger, notify)
					continue
				}
			}

			if !isWatchedSeed(absPath) {
				continue
			}

			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(rel)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", readErr.Error()))
					continue
				}
				name, impErr := importFile(db, rel, data)
				if impErr != nil {
					logger.Warn("watcher: import failed", slog.String("path", rel), slog.String("error", impErr.Error()))
					continue
				}
				logger.Debug("watcher: imported", slog.String("path", rel), slog.String("collection", name))
				notify(KindUpdated, name)

			case ev.Op&fsnotify.Remove != 0:
				name, delErr := db.DeleteSource(rel)
				if delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: removed", slog.String("path", rel), slog.String("collection", name))
				notify(KindRemoved, name)

			case ev.Op&fsnotify.Rename != 0:
				// Rename fires on the old path only; the new path arrives as
				// a Create if it stays inside a watched dir.
				name, delErr := db.DeleteSource(rel)
				if delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
				} else {
					notify(KindRemoved, name)
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcile drops snapshots whose file is gone and imports files whose
// checksum differs from the stored one.
func reconcile(db *DB, store storage.Provider, logger *slog.Logger, notify EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	metas, err := store.List("")
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	for _, m := range metas {
		disk[m.Path] = m.Checksum
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if name, delErr := db.DeleteSource(p); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("path", p))
				notify(KindRemoved, name)
			}
		}
	}

	for p, cs := range disk {
		if checksums[p] == cs {
			continue
		}
		data, readErr := store.Read(p)
		if readErr != nil {
			continue
		}
		if name, impErr := importFile(db, p, data); impErr == nil {
			logger.Debug("reconcile: imported", slog.String("path", p))
			notify(KindUpdated, name)
		}
	}
}

// importNewDir imports any seed files found in a newly created directory.
func importNewDir(db *DB, store storage.Provider, root, dirPath string, logger *slog.Logger, notify EventCallback) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isWatchedSeed(path) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		data, readErr := store.Read(rel)
		if readErr != nil {
			return nil
		}
		if name, impErr := importFile(db, rel, data); impErr == nil {
			logger.Debug("watcher: imported from new dir", slog.String("path", rel))
			notify(KindUpdated, name)
		}
		return nil
	})
}

// isWatchedSeed skips dotfiles, which covers the storage temp files.
func isWatchedSeed(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && storage.IsSeedFile(base)
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
