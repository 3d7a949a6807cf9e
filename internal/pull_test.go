package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/hirelens/internal/cms"
	"github.com/starford/hirelens/internal/index"
	"github.com/starford/hirelens/internal/storage"
)

type stubSource map[string][]json.RawMessage

func (s stubSource) GetAll(_ context.Context, collection string) ([]json.RawMessage, error) {
	items, ok := s[collection]
	if !ok {
		return nil, errors.New("cms: unavailable")
	}
	return items, nil
}

func TestPull_WritesSeedFiles(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.CMS.SeedDir = t.TempDir()

	src := stubSource{
		cms.Mentors:           {json.RawMessage(`{"_id":"m1","mentorName":"Ada"}`)},
		cms.Accreditations:    {},
		cms.LearningResources: {json.RawMessage(`{"_id":"l1","title":"Go"}`), json.RawMessage(`{"_id":"l2"}`)},
	}

	results, err := Pull(context.Background(), WithConfig(cfg), WithSource(src), WithLogOutput(io.Discard))
	require.Error(t, err, "careerpaths is missing from the source")
	require.Len(t, results, 3)
	assert.Equal(t, PullResult{Collection: cms.LearningResources, File: "learningresources.json", Items: 2}, results[2])

	_, statErr := os.Stat(filepath.Join(cfg.CMS.SeedDir, "careerpaths.json"))
	assert.True(t, os.IsNotExist(statErr))

	// The pulled files round-trip through the local index.
	store, err := storage.NewFS(cfg.CMS.SeedDir)
	require.NoError(t, err)
	db, err := index.Open(filepath.Join(t.TempDir(), "pull.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, index.Sync(db, store, slog.New(slog.NewJSONHandler(io.Discard, nil))))
	got, err := db.GetAll(context.Background(), cms.LearningResources)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPull_RequiresBaseURL(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.CMS.SeedDir = t.TempDir()

	_, err := Pull(context.Background(), WithConfig(cfg), WithLogOutput(io.Discard))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}
