// Package app wires application services with infrastructure adapters.
package app

import (
	"context"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/infrastructure/ai"
	"github.com/termgenie/termgenie/internal/infrastructure/config"
	"github.com/termgenie/termgenie/internal/infrastructure/history"
	"github.com/termgenie/termgenie/internal/infrastructure/secret"
	"github.com/termgenie/termgenie/internal/infrastructure/security"
	"github.com/termgenie/termgenie/internal/pkg/logger"
	"github.com/termgenie/termgenie/internal/ports"
	"github.com/termgenie/termgenie/internal/services"
)

// Container holds the dependency graph for one process.
type Container struct {
	Generator    *services.Generator
	ConfigLoader *config.FileLoader
	Config       domain.Config
	History      ports.HistoryRepository
	Secrets      ports.SecretStore
	Classifier   ports.RiskClassifier
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph from configuration.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	secretPath, err := secret.DefaultPath()
	if err != nil {
		return nil, err
	}
	secrets := secret.NewFileStore(secretPath)

	classifier, err := security.NewClassifier(cfg.Security.RulesFile)
	if err != nil {
		log.Warn("risk rules file rejected, using built-in rules", map[string]interface{}{"error": err.Error()})
		classifier = security.NewDefaultClassifier()
	}

	var persister ports.HistoryPersister
	switch cfg.History.Backend {
	case "sqlite":
		persister = history.NewSQLitePersister(cfg.History.Path)
	default:
		persister = history.NewFilePersister(cfg.History.Path)
	}
	historyStore := history.NewStore(cfg.History.MaxItems, persister, log)

	generator := services.NewGenerator(ai.NewFactory(secrets), classifier, log)
	container := &Container{
		Generator:    generator,
		ConfigLoader: cfgLoader,
		Config:       cfg,
		History:      historyStore,
		Secrets:      secrets,
		Classifier:   classifier,
		Logger:       log,
	}
	if err := container.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return container, nil
}

// ApplyConfig pushes model selection and deadlines into the generator. The
// config watcher calls this on every reload.
func (c *Container) ApplyConfig(cfg domain.Config) error {
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return domain.NewConfigError("select default model", err)
	}
	c.Config = cfg
	c.Generator.SetModel(model)
	c.Generator.SetTimeouts(cfg.Preferences.CommandTimeout(), cfg.Preferences.ScriptTimeout())
	return nil
}
