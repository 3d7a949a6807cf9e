package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/hirelens/internal/cms"
	"github.com/starford/hirelens/internal/storage"
)

// PullResult reports what Pull wrote.
type PullResult struct {
	Collection string `json:"collection"`
	File       string `json:"file"`
	Items      int    `json:"items"`
}

type seedFile struct {
	Collection string            `json:"collection"`
	Items      []json.RawMessage `json:"items"`
}

// Pull mirrors every collection of the hosted CMS into the seed directory
// as <collection>.json, so local mode can serve the same content offline.
// A collection that fails to fetch keeps its previous seed file.
func Pull(ctx context.Context, opts ...Option) ([]PullResult, error) {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return nil, err
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	src := app.source
	if src == nil {
		if cfg.CMS.BaseURL == "" {
			return nil, errors.New("pull: cms.base_url is required")
		}
		src = cms.NewHTTPClient(cfg.CMS.BaseURL, cfg.CMS.APIKey, cfg.CMS.Timeout)
	}

	if err := os.MkdirAll(cfg.CMS.SeedDir, 0o755); err != nil {
		return nil, fmt.Errorf("create seed dir: %w", err)
	}
	store, err := storage.NewFS(cfg.CMS.SeedDir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	var (
		results []PullResult
		errs    []error
	)
	for _, name := range cms.Collections {
		items, err := src.GetAll(ctx, name)
		if err != nil {
			logger.Warn("pull skipped collection",
				slog.String("collection", name), slog.String("error", err.Error()))
			errs = append(errs, err)
			continue
		}

		data, err := json.MarshalIndent(seedFile{Collection: name, Items: items}, "", "  ")
		if err != nil {
			errs = append(errs, fmt.Errorf("pull: encode %s: %w", name, err))
			continue
		}
		file := name + ".json"
		if err := store.Write(file, append(data, '\n')); err != nil {
			errs = append(errs, err)
			continue
		}

		logger.Info("pulled collection",
			slog.String("collection", name), slog.Int("items", len(items)), slog.String("file", file))
		results = append(results, PullResult{Collection: name, File: file, Items: len(items)})
	}

	return results, errors.Join(errs...)
}
