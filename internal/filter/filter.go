// Package filter implements the in-memory search and facet filtering applied
// to fetched collections.
package filter

import (
	"strings"

	"github.com/starford/hirelens/internal/models"
)

// Mode controls how a facet value is compared against a record field.
type Mode int

const (
	// Exact compares the whole field, case-insensitively.
	Exact Mode = iota
	// List splits the field on commas and matches any trimmed element.
	List
)

// Facet binds a query parameter to a categorical record field.
type Facet struct {
	Param string
	Field string
	Mode  Mode
}

// Query is the active search text plus selected facet values keyed by Param.
type Query struct {
	Search string
	Facets map[string]string
}

// IsZero reports whether the query selects everything.
func (q Query) IsZero() bool {
	if strings.TrimSpace(q.Search) != "" {
		return false
	}
	for _, v := range q.Facets {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Apply returns the items matching q in source order. Facet params not
// declared in facets are ignored. The result never aliases items.
func Apply[T models.Record](items []T, facets []Facet, q Query) []T {
	out := make([]T, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, it := range items {
		if needle != "" && !matchesSearch(it, needle) {
			continue
		}
		if !matchesFacets(it, facets, q.Facets) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Values returns the distinct non-empty values of a facet in first-seen order.
func Values[T models.Record](items []T, f Facet) []string {
	seen := make(map[string]struct{})
	out := []string{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, it := range items {
		raw := it.FacetValue(f.Field)
		if f.Mode == List {
			for _, part := range strings.Split(raw, ",") {
				add(part)
			}
			continue
		}
		add(raw)
	}
	return out
}

func matchesSearch(r models.Record, needle string) bool {
	for _, field := range r.SearchFields() {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesFacets(r models.Record, facets []Facet, selected map[string]string) bool {
	for _, f := range facets {
		want := strings.TrimSpace(selected[f.Param])
		if want == "" {
			continue
		}
		if !matchFacet(r.FacetValue(f.Field), want, f.Mode) {
			return false
		}
	}
	return true
}

func matchFacet(value, want string, mode Mode) bool {
	if mode == List {
		for _, part := range strings.Split(value, ",") {
			if strings.EqualFold(strings.TrimSpace(part), want) {
				return true
			}
		}
		return false
	}
	return strings.EqualFold(strings.TrimSpace(value), want)
}
