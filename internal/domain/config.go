package domain

import (
	"fmt"
	"time"
)

// Config mirrors ~/.termgenie/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Security            SecuritySettings  `yaml:"security"`
	History             HistorySettings   `yaml:"history"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel         string `yaml:"default_model"`
	CommandTimeoutSecs   int    `yaml:"command_timeout"`
	ScriptTimeoutSecs    int    `yaml:"script_timeout"`
	CustomInstructions   string `yaml:"custom_instructions"`
	ConfirmBeforeHistory bool   `yaml:"confirm_before_history"`
}

// SecuritySettings defines classifier behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// HistorySettings controls the bounded history store and its persistence.
type HistorySettings struct {
	MaxItems int    `yaml:"max_items"`
	Backend  string `yaml:"backend"` // "json" or "sqlite"
	Path     string `yaml:"path"`
}

// ModelDefinition describes an AI provider configuration declared in the
// config file.
type ModelDefinition struct {
	Name       string `yaml:"name"`
	Endpoint   string `yaml:"endpoint"`
	SecretName string `yaml:"secret_name"`
	AuthEnvVar string `yaml:"auth_env_var"`
	ModelID    string `yaml:"model_id"`
	MaxTokens  int    `yaml:"max_tokens"`
}

// ProviderKind identifies which wire adapter a model definition needs.
type ProviderKind string

const (
	ProviderKindGemini    ProviderKind = "gemini"
	ProviderKindAnthropic ProviderKind = "anthropic"
	ProviderKindOpenAI    ProviderKind = "openai"
	ProviderKindOllama    ProviderKind = "ollama"
	ProviderKindUnknown   ProviderKind = "unknown"
)

// CommandTimeout returns the command generation deadline.
func (p Preferences) CommandTimeout() time.Duration {
	if p.CommandTimeoutSecs <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(p.CommandTimeoutSecs) * time.Second
}

// ScriptTimeout returns the script generation deadline.
func (p Preferences) ScriptTimeout() time.Duration {
	if p.ScriptTimeoutSecs <= 0 {
		return DefaultScriptTimeout
	}
	return time.Duration(p.ScriptTimeoutSecs) * time.Second
}

// GetDefaultModel retrieves the default model definition from configuration.
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		if len(c.Models) > 0 {
			return c.Models[0], nil
		}
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}
	if model, ok := c.FindModelByName(c.Preferences.DefaultModel); ok {
		return model, nil
	}
	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// FindModelByName searches for a model by its name.
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration.
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}
