// Package cms reads the hosted collections that back the public pages.
package cms

//go:generate mockgen -source=source.go -destination=../catalog/mocks/source.go -package=mocks Source

import (
	"context"
	"encoding/json"
)

// Collection names served by the CMS.
const (
	Accreditations    = "accreditations"
	CareerPaths       = "careerpaths"
	Mentors           = "mentors"
	LearningResources = "learningresources"
)

// Collections lists every known collection in display order.
var Collections = []string{Mentors, Accreditations, LearningResources, CareerPaths}

// Known reports whether name is a served collection.
func Known(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// Source returns full snapshots of a collection. Items are raw JSON objects
// in source order; decoding and normalization happen in the catalog.
type Source interface {
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
}
