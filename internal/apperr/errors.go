// Package apperr holds the sentinel errors shared across services and handlers.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrBusy              = errors.New("analysis already in progress")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTooLarge          = errors.New("payload too large")
	ErrUnknownCollection = errors.New("unknown collection")
)
