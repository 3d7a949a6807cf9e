package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/catalog"
	"github.com/starford/hirelens/internal/cms"
	"github.com/starford/hirelens/internal/index"
	"github.com/starford/hirelens/internal/intake"
	"github.com/starford/hirelens/internal/metrics"
	"github.com/starford/hirelens/internal/storage"
)

// core holds the services shared by the HTTP and MCP entry points.
type core struct {
	metrics   *metrics.Metrics
	catalog   *catalog.Catalog
	generator *analysis.Generator
	inspector *intake.Inspector

	// Set in local mode only.
	db    *index.DB
	store storage.Provider
}

func (c *core) Close() {
	if c.db != nil {
		_ = c.db.Close()
	}
}

// buildCore wires the collection source, catalog and analysis services.
// In local mode the seed directory is synced into SQLite before returning.
func buildCore(app *application, logger *slog.Logger) (*core, error) {
	cfg := app.config
	c := &core{metrics: metrics.New()}

	src := app.source
	if src == nil {
		switch cfg.CMS.Mode {
		case CMSModeRemote:
			src = cms.NewHTTPClient(cfg.CMS.BaseURL, cfg.CMS.APIKey, cfg.CMS.Timeout)
		default:
			// Ensure seed directory exists.
			if err := os.MkdirAll(cfg.CMS.SeedDir, 0o755); err != nil {
				return nil, fmt.Errorf("create seed dir: %w", err)
			}

			store, err := storage.NewFS(cfg.CMS.SeedDir)
			if err != nil {
				return nil, fmt.Errorf("init storage: %w", err)
			}

			db, err := index.Open(cfg.SQLite.Path)
			if err != nil {
				return nil, fmt.Errorf("init index: %w", err)
			}

			// Run initial sync.
			if err := index.Sync(db, store, logger); err != nil {
				logger.Warn("initial sync failed", slog.String("error", err.Error()))
			}
			c.db, c.store, src = db, store, db
		}
	}

	c.catalog = catalog.New(src, c.metrics, logger)
	c.generator = analysis.NewGenerator(analysis.WithMaxFiles(cfg.Analysis.MaxFiles))
	c.inspector = intake.NewInspector(cfg.Analysis.MaxUploadBytes, logger)
	return c, nil
}
