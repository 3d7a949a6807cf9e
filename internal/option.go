package internal

import (
	"io"

	"github.com/starford/hirelens/internal/cms"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	source    cms.Source
	logOutput io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSource replaces the collection source selected by cms.mode.
func WithSource(src cms.Source) Option {
	return func(a *application) {
		a.source = src
	}
}

// WithLogOutput redirects the JSON log stream (stdout by default).
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}
