// Package parser decodes seed files (YAML or JSON) into raw collection items.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seed is the decoded content of one seed file.
type Seed struct {
	Collection string
	Items      []json.RawMessage
}

type seedDoc struct {
	Collection string           `yaml:"collection"`
	Items      []map[string]any `yaml:"items"`
}

// ParseSeed decodes data. Two layouts are accepted:
//
//	collection: mentors       # optional, defaults to the file stem
//	items: [{_id: ...}, ...]
//
// or a bare list of items, in which case the collection is the file stem.
func ParseSeed(filename string, data []byte) (*Seed, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parser: %s: %w", filename, err)
	}

	stem := strings.ToLower(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))

	var doc seedDoc
	switch {
	case len(root.Content) == 0:
		doc.Collection = stem
	case root.Content[0].Kind == yaml.SequenceNode:
		if err := root.Content[0].Decode(&doc.Items); err != nil {
			return nil, fmt.Errorf("parser: %s: items: %w", filename, err)
		}
	case root.Content[0].Kind == yaml.MappingNode:
		if err := root.Content[0].Decode(&doc); err != nil {
			return nil, fmt.Errorf("parser: %s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("parser: %s: expected a mapping or a list", filename)
	}

	collection := strings.TrimSpace(doc.Collection)
	if collection == "" {
		collection = stem
	}
	if collection == "" {
		return nil, errors.New("parser: cannot determine collection name")
	}

	items := make([]json.RawMessage, 0, len(doc.Items))
	for i, it := range doc.Items {
		raw, err := json.Marshal(jsonSafe(it))
		if err != nil {
			return nil, fmt.Errorf("parser: %s: item %d: %w", filename, i, err)
		}
		items = append(items, raw)
	}

	return &Seed{Collection: collection, Items: items}, nil
}

// jsonSafe converts YAML-decoded values into types encoding/json accepts.
// yaml.v3 yields map[string]any for string-keyed mappings but
// map[any]any would appear for non-string keys.
func jsonSafe(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = jsonSafe(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonSafe(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = jsonSafe(val)
		}
		return t
	default:
		return v
	}
}
