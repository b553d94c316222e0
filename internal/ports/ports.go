// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces keep the generation service independent of
// specific backends, stores, and UI surfaces.
package ports

import (
	"context"

	"github.com/termgenie/termgenie/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.termgenie/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProviderFactory builds AI provider instances based on model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider wraps one text-generation backend. Generate returns the raw
// textual reply; extracting a command from it is the parser's job, not the
// provider's.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(ctx context.Context, prompt string) (string, error)
}

// RiskClassifier labels a command with a risk verdict. Pure and total: it
// never fails, and unmatched input yields (safe, no reasons).
type RiskClassifier interface {
	Classify(command string) domain.RiskResult
}

// HistoryRepository is the bounded, deduplicating record of accepted
// (prompt, command) pairs, most-recently-used first.
type HistoryRepository interface {
	Add(prompt, command, alias string)
	All() []domain.HistoryEntry
	Search(query string) []domain.HistoryEntry
	ByAlias(alias string) (domain.HistoryEntry, bool)
	Count() int
	Clear()
}

// HistoryPersister loads the entry list at startup and saves it after every
// mutation. The in-memory store owns ordering; persisters only mirror it.
type HistoryPersister interface {
	Load() ([]domain.HistoryEntry, error)
	Save(entries []domain.HistoryEntry) error
}

// SecretStore is the injected key-value credential accessor. Get returns
// ("", nil) when the secret is absent; errors are reserved for access
// failures.
type SecretStore interface {
	Get(name string) (string, error)
	Set(name, value string) error
}

// ProgressReporter is the cancellable progress-indicator activity paired
// with one in-flight generation call. Stop blocks until the activity has
// fully terminated; no output may appear after Stop returns.
type ProgressReporter interface {
	Start()
	Stop()
}

// ConfirmationPrompter handles the interactive confirmations required for
// risky verdicts. The dangerous flow must default to cancel.
type ConfirmationPrompter interface {
	ConfirmWarning(command string, reasons []string) (bool, error)
	ConfirmDangerous(command string, reasons []string) (bool, error)
	Enabled() bool
}

// Clipboard provides cross-platform clipboard integration for copying
// generated commands and scripts.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
