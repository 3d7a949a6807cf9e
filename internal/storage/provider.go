// Package storage defines the seed-directory abstraction used in local CMS mode.
package storage

import "time"

// FileMeta is a lightweight description of one seed file.
type FileMeta struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for seed file operations.
type Provider interface {
	// List returns metadata for every seed file under dir (relative to root).
	List(dir string) ([]FileMeta, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
}
