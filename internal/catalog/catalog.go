// Package catalog fetches CMS collections and applies search and facet
// filtering on top of them.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/hirelens/internal/apperr"
	"github.com/starford/hirelens/internal/cms"
	"github.com/starford/hirelens/internal/filter"
	"github.com/starford/hirelens/internal/metrics"
	"github.com/starford/hirelens/internal/models"
)

// SkillShares is the name under which the in-process skill share list is served.
const SkillShares = "skillshares"

// Listing is one filtered view of a collection.
type Listing struct {
	Collection string              `json:"collection"`
	Items      []models.Record     `json:"items"`
	Total      int                 `json:"total"`
	Facets     map[string][]string `json:"facets"`
}

type schema struct {
	facets []filter.Facet
	decode func(raw json.RawMessage) (models.Record, error)
}

func decoder[T any, P interface {
	*T
	models.Record
}]() func(json.RawMessage) (models.Record, error) {
	return func(raw json.RawMessage) (models.Record, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		p := P(&v)
		p.Normalize()
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return p, nil
	}
}

var schemas = map[string]schema{
	cms.Mentors: {
		facets: []filter.Facet{{Param: "expertise", Field: "expertise", Mode: filter.List}},
		decode: decoder[models.Mentor](),
	},
	cms.Accreditations: {
		facets: []filter.Facet{{Param: "type", Field: "accreditationType"}},
		decode: decoder[models.Accreditation](),
	},
	cms.LearningResources: {
		facets: []filter.Facet{
			{Param: "type", Field: "resourceType"},
			{Param: "difficulty", Field: "difficultyLevel"},
		},
		decode: decoder[models.LearningResource](),
	},
	cms.CareerPaths: {
		decode: decoder[models.CareerPath](),
	},
}

var skillShareFacets = []filter.Facet{{Param: "level", Field: "level"}}

// Catalog serves filtered collection listings.
type Catalog struct {
	source  cms.Source
	metrics *metrics.Metrics
	logger  *slog.Logger
	skills  []models.Record
}

// New creates a Catalog reading from source. m may be nil.
func New(source cms.Source, m *metrics.Metrics, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	skills := make([]models.Record, len(defaultSkillShares))
	for i := range defaultSkillShares {
		s := defaultSkillShares[i]
		skills[i] = &s
	}
	return &Catalog{source: source, metrics: m, logger: logger, skills: skills}
}

// Collections returns the served collection names, skill shares last.
func (c *Catalog) Collections() []string {
	out := append([]string{}, cms.Collections...)
	return append(out, SkillShares)
}

// FacetParams returns the query parameters accepted as facets for collection.
func (c *Catalog) FacetParams(collection string) ([]string, error) {
	facets, err := c.facetsFor(collection)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(facets))
	for i, f := range facets {
		out[i] = f.Param
	}
	return out, nil
}

func (c *Catalog) facetsFor(collection string) ([]filter.Facet, error) {
	if collection == SkillShares {
		return skillShareFacets, nil
	}
	s, ok := schemas[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnknownCollection, collection)
	}
	return s.facets, nil
}

// List fetches collection and returns the items matching q in source order.
// A failed fetch yields an empty listing; only an unknown collection errors.
func (c *Catalog) List(ctx context.Context, collection string, q filter.Query) (*Listing, error) {
	facets, err := c.facetsFor(collection)
	if err != nil {
		return nil, err
	}
	all, err := c.load(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := &Listing{
		Collection: collection,
		Items:      filter.Apply(all, facets, q),
		Total:      len(all),
		Facets:     make(map[string][]string, len(facets)),
	}
	for _, f := range facets {
		out.Facets[f.Param] = filter.Values(all, f)
	}
	return out, nil
}

// Get returns the record with the given id.
func (c *Catalog) Get(ctx context.Context, collection, id string) (models.Record, error) {
	all, err := c.load(ctx, collection)
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.RecordID() == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", apperr.ErrNotFound, collection, id)
}

// load returns every valid record of collection. Fetch failures are logged
// and yield an empty slice.
func (c *Catalog) load(ctx context.Context, collection string) ([]models.Record, error) {
	if collection == SkillShares {
		return c.skills, nil
	}
	s, ok := schemas[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnknownCollection, collection)
	}

	start := time.Now()
	raws, err := c.source.GetAll(ctx, collection)
	c.metrics.ObserveFetch(collection, time.Since(start), err)
	if err != nil {
		c.logger.Error("catalog: fetch failed",
			slog.String("collection", collection),
			slog.String("error", err.Error()))
		return []models.Record{}, nil
	}

	out := make([]models.Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := s.decode(raw)
		if err != nil {
			c.logger.Warn("catalog: record dropped",
				slog.String("collection", collection),
				slog.Int("position", i),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
