package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/intake"
	"github.com/starford/hirelens/internal/session"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// CMS modes.
const (
	CMSModeLocal  = "local"
	CMSModeRemote = "remote"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	CMS      CMSConfig         `yaml:"cms"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Analysis AnalysisConfig    `yaml:"analysis"`
	SSE      SSEConfig         `yaml:"sse"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.CMS.Validate(); err != nil {
		return err
	}
	if c.CMS.Mode == CMSModeLocal {
		if err := c.SQLite.Validate(); err != nil {
			return err
		}
	}
	if err := c.Analysis.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CMSConfig selects where collections come from.
//
// Mode "remote" reads the hosted CMS at BaseURL. Mode "local" serves a
// SQLite snapshot of the YAML/JSON seed files in SeedDir, optionally
// re-imported on change when Watch is set.
type CMSConfig struct {
	Mode    string        `yaml:"mode"`
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
	SeedDir string        `yaml:"seed_dir"`
	Watch   bool          `yaml:"watch"`
}

// Validate validates the CMS configuration.
func (c *CMSConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = CMSModeLocal
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(CMSModeLocal, CMSModeRemote)),
		validation.Field(&c.BaseURL,
			validation.When(c.Mode == CMSModeRemote, validation.Required, is.URL)),
		validation.Field(&c.SeedDir,
			validation.When(c.Mode == CMSModeLocal, validation.Required)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AnalysisConfig tunes the mock analysis jobs.
type AnalysisConfig struct {
	Delays         map[string]time.Duration `yaml:"delays"`
	MaxFiles       int                      `yaml:"max_files"`
	MaxUploadBytes int64                    `yaml:"max_upload_bytes"`
	SessionTTL     time.Duration            `yaml:"session_ttl"`
	SweepInterval  time.Duration            `yaml:"sweep_interval"`
}

// Validate validates the analysis configuration.
func (c *AnalysisConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.MaxFiles, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.MaxUploadBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.SessionTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.SweepInterval, validation.Required, validation.Min(time.Second)),
	); err != nil {
		return err
	}
	for name, d := range c.Delays {
		if _, ok := analysis.ParseKind(name); !ok {
			return fmt.Errorf("analysis: unknown kind %q in delays", name)
		}
		if d < 0 {
			return fmt.Errorf("analysis: negative delay for %q", name)
		}
	}
	return nil
}

// KindDelays returns the configured delays keyed by analysis kind.
func (c *AnalysisConfig) KindDelays() map[analysis.Kind]time.Duration {
	out := make(map[analysis.Kind]time.Duration, len(c.Delays))
	for name, d := range c.Delays {
		if k, ok := analysis.ParseKind(name); ok {
			out[k] = d
		}
	}
	return out
}

// SSEConfig holds event stream configuration.
type SSEConfig struct {
	CatalogThrottle time.Duration `yaml:"catalog_throttle"`
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	delays := make(map[string]time.Duration, len(session.DefaultDelays))
	for k, d := range session.DefaultDelays {
		delays[string(k)] = d
	}
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port:        8080,
				CORSOrigins: []string{"*"},
			},
		},
		CMS: CMSConfig{
			Mode:    CMSModeLocal,
			Timeout: 10 * time.Second,
			SeedDir: "./seed",
			Watch:   true,
		},
		SQLite: SQLiteConfig{
			Path: "./hirelens.db",
		},
		Analysis: AnalysisConfig{
			Delays:         delays,
			MaxFiles:       20,
			MaxUploadBytes: intake.DefaultMaxBytes,
			SessionTTL:     session.DefaultTTL,
			SweepInterval:  time.Minute,
		},
		SSE: SSEConfig{
			CatalogThrottle: 2 * time.Second,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
