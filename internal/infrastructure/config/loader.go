// Package config loads YAML configuration from the ~/.termgenie directory
// and seeds a default file on first run.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// EnvConfigDir overrides the config directory (default ~/.termgenie).
const EnvConfigDir = "TERMGENIE_CONFIG"

// FileLoader loads YAML configuration from <config dir>/config.yaml.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a loader. An empty path means the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, domain.NewConfigError("create config directory", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, domain.NewConfigError("write default config", err)
			}
			return cfg, nil
		}
		return domain.Config{}, domain.NewConfigError("read config file", err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, domain.NewConfigError(fmt.Sprintf("parse %s", filepath.Base(path)), err)
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the config file location this loader reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Dir returns the config directory, honouring the TERMGENIE_CONFIG override.
func Dir() string {
	if custom := os.Getenv(EnvConfigDir); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".termgenie")
}

// Save writes cfg back to the loader's config file.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.NewConfigError("create config directory", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return domain.NewConfigError("encode config", err)
	}
	if err := os.WriteFile(path, raw, domain.SecureFilePermissions); err != nil {
		return domain.NewConfigError("write config file", err)
	}
	return nil
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	dir := Dir()
	return domain.Config{
		ConfigFormatVersion: "1.0",
		Preferences: domain.Preferences{
			DefaultModel:         "gemini-flash",
			CommandTimeoutSecs:   int(domain.DefaultCommandTimeout.Seconds()),
			ScriptTimeoutSecs:    int(domain.DefaultScriptTimeout.Seconds()),
			ConfirmBeforeHistory: false,
		},
		Security: domain.SecuritySettings{
			Enabled:   true,
			RulesFile: filepath.Join(dir, "rules.yaml"),
		},
		History: domain.HistorySettings{
			MaxItems: domain.DefaultMaxHistoryItems,
			Backend:  "json",
			Path:     filepath.Join(dir, "history.json"),
		},
		Models: []domain.ModelDefinition{
			{
				Name:       "gemini-flash",
				SecretName: "gemini",
				AuthEnvVar: "GEMINI_API_KEY",
				ModelID:    "gemini-2.5-flash",
				MaxTokens:  domain.DefaultMaxTokens,
			},
			{
				Name:       "claude-sonnet",
				Endpoint:   "https://api.anthropic.com/v1/messages",
				SecretName: "anthropic",
				AuthEnvVar: "ANTHROPIC_API_KEY",
				ModelID:    "claude-3-5-sonnet-20240620",
				MaxTokens:  domain.DefaultMaxTokens,
			},
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.CommandTimeoutSecs <= 0 {
		cfg.Preferences.CommandTimeoutSecs = int(domain.DefaultCommandTimeout.Seconds())
	}
	if cfg.Preferences.ScriptTimeoutSecs <= 0 {
		cfg.Preferences.ScriptTimeoutSecs = int(domain.DefaultScriptTimeout.Seconds())
	}
	if cfg.History.MaxItems <= 0 {
		cfg.History.MaxItems = domain.DefaultMaxHistoryItems
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = "json"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(Dir(), "history.json")
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
