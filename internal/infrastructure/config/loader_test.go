package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/termgenie/termgenie/internal/domain"
)

func TestLoadWritesDefaultConfigOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "gemini-flash" {
		t.Fatalf("DefaultModel = %q", cfg.Preferences.DefaultModel)
	}
	if !cfg.Security.Enabled {
		t.Fatal("security must be enabled by default")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
}

func TestLoadParsesExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `config_format_version: "1.0"
preferences:
  default_model: claude-sonnet
  command_timeout: 45
history:
  backend: sqlite
  max_items: 25
models:
  - name: claude-sonnet
    endpoint: https://api.anthropic.com/v1/messages
    auth_env_var: ANTHROPIC_API_KEY
    model_id: claude-3-5-sonnet-20240620
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "claude-sonnet" {
		t.Fatalf("DefaultModel = %q", cfg.Preferences.DefaultModel)
	}
	if got := cfg.Preferences.CommandTimeout(); got.Seconds() != 45 {
		t.Fatalf("CommandTimeout = %s", got)
	}
	if cfg.History.Backend != "sqlite" || cfg.History.MaxItems != 25 {
		t.Fatalf("History = %+v", cfg.History)
	}
}

func TestLoadHydratesMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `models:
  - name: gemini-flash
    model_id: gemini-2.5-flash
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "gemini-flash" {
		t.Fatalf("DefaultModel = %q, want first declared model", cfg.Preferences.DefaultModel)
	}
	if cfg.Preferences.CommandTimeout() != domain.DefaultCommandTimeout {
		t.Fatalf("CommandTimeout = %s", cfg.Preferences.CommandTimeout())
	}
	if cfg.Preferences.ScriptTimeout() != domain.DefaultScriptTimeout {
		t.Fatalf("ScriptTimeout = %s", cfg.Preferences.ScriptTimeout())
	}
	if cfg.History.MaxItems != domain.DefaultMaxHistoryItems || cfg.History.Backend != "json" {
		t.Fatalf("History = %+v", cfg.History)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	_, err := NewFileLoader(path).Load(context.Background())
	if !domain.IsKind(err, domain.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestDirHonorsEnvironmentOverride(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/termgenie-test")
	if got := Dir(); got != "/tmp/termgenie-test" {
		t.Fatalf("Dir() = %q", got)
	}
}
