package api

import (
	"github.com/starford/hirelens/internal/catalog"
	"github.com/starford/hirelens/internal/feedback"
	"github.com/starford/hirelens/internal/session"
)

// CollectionInfo describes one served collection.
type CollectionInfo struct {
	Name   string   `json:"name" example:"mentors" validate:"required"`
	Facets []string `json:"facets" example:"expertise" validate:"required"`
}

// CollectionListResponse wraps the collection names.
type CollectionListResponse struct {
	Collections []CollectionInfo `json:"collections" validate:"required"`
}

// Listing is a filtered collection view (aliased from the domain layer).
type Listing = catalog.Listing

// SessionResponse is a session snapshot (aliased from the domain layer).
type SessionResponse = session.Snapshot

// FeedbackRequest is the request body for a speak-up submission.
type FeedbackRequest = feedback.Submission

// FeedbackReceipt acknowledges an accepted submission.
type FeedbackReceipt = feedback.Receipt
