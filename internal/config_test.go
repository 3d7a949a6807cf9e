package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/intake"
	pkgconfig "github.com/starford/hirelens/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if got := cfg.Analysis.KindDelays()[analysis.KindReskill]; got != 3500*time.Millisecond {
		t.Errorf("reskill delay = %v, want 3.5s", got)
	}
}

func TestCMSConfig_RemoteNeedsURL(t *testing.T) {
	cfg := CMSConfig{Mode: CMSModeRemote}
	if err := cfg.Validate(); err == nil {
		t.Fatal("remote mode without base_url should fail")
	}
	cfg.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("remote mode with invalid base_url should fail")
	}
	cfg.BaseURL = "https://cms.example.com/api"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("remote mode with base_url should pass: %v", err)
	}
}

func TestCMSConfig_LocalNeedsSeedDir(t *testing.T) {
	cfg := CMSConfig{Mode: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("local mode without seed_dir should fail")
	}
	if cfg.Mode != CMSModeLocal {
		t.Errorf("mode = %q, want %q", cfg.Mode, CMSModeLocal)
	}
}

func TestCMSConfig_InvalidMode(t *testing.T) {
	cfg := CMSConfig{Mode: "ftp", SeedDir: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_RemoteSkipsSQLite(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.CMS.Mode = CMSModeRemote
	cfg.CMS.BaseURL = "https://cms.example.com"
	cfg.SQLite.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("remote mode should not need sqlite: %v", err)
	}
	cfg.CMS.Mode = CMSModeLocal
	if err := cfg.Validate(); err == nil {
		t.Fatal("local mode should need sqlite path")
	}
}

func TestAnalysisConfig_UnknownKind(t *testing.T) {
	cfg := NewDefaultConfig().Analysis
	cfg.Delays["horoscope"] = time.Second
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "horoscope") {
		t.Fatalf("unknown kind should fail, got %v", err)
	}
}

func TestAnalysisConfig_NegativeDelay(t *testing.T) {
	cfg := NewDefaultConfig().Analysis
	cfg.Delays["resume"] = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative delay should fail")
	}
}

func TestAnalysisConfig_Limits(t *testing.T) {
	cfg := NewDefaultConfig().Analysis
	cfg.MaxFiles = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("max_files 0 should fail")
	}
	cfg = NewDefaultConfig().Analysis
	cfg.MaxUploadBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("max_upload_bytes 0 should fail")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("HIRELENS_TEST_TOKEN", "s3cret")
	content := `
app:
  log_level: debug
  http:
    port: 9090
cms:
  mode: local
  seed_dir: ./seed
analysis:
  delays:
    resume: 1500ms
  max_files: 5
auth:
  mode: token
  token: ${HIRELENS_TEST_TOKEN}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 || cfg.App.LogLevel != slog.LevelDebug {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Auth.Token != "s3cret" {
		t.Errorf("token = %q, want expanded env value", cfg.Auth.Token)
	}
	delays := cfg.Analysis.KindDelays()
	if delays[analysis.KindResume] != 1500*time.Millisecond {
		t.Errorf("resume delay = %v", delays[analysis.KindResume])
	}
	if delays[analysis.KindAdmin] != 4*time.Second {
		t.Errorf("admin delay = %v, want default 4s kept", delays[analysis.KindAdmin])
	}
	if cfg.Analysis.MaxFiles != 5 || cfg.Analysis.MaxUploadBytes != intake.DefaultMaxBytes {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
}
