// Package services contains the request orchestrator: it renders backend
// prompts, enforces deadlines, parses replies, and attaches risk verdicts.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// Generator turns natural-language requests into shell commands and scripts.
// The current model is mutable between calls; changing it never affects
// calls already in flight. Multiple calls may run concurrently, each with
// its own deadline and progress task.
type Generator struct {
	Factory     ports.ProviderFactory
	Classifier  ports.RiskClassifier
	Logger      ports.Logger
	NewProgress func() ports.ProgressReporter

	mu             sync.Mutex
	model          domain.ModelDefinition
	commandTimeout time.Duration
	scriptTimeout  time.Duration
}

// NewGenerator wires an orchestrator with default deadlines.
func NewGenerator(factory ports.ProviderFactory, classifier ports.RiskClassifier, logger ports.Logger) *Generator {
	return &Generator{
		Factory:        factory,
		Classifier:     classifier,
		Logger:         logger,
		commandTimeout: domain.DefaultCommandTimeout,
		scriptTimeout:  domain.DefaultScriptTimeout,
	}
}

// SetModel switches the model used by subsequent calls.
func (g *Generator) SetModel(model domain.ModelDefinition) {
	g.mu.Lock()
	g.model = model
	g.mu.Unlock()
}

// Model returns the currently selected model definition.
func (g *Generator) Model() domain.ModelDefinition {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.model
}

// SetTimeouts overrides the default command/script deadlines. Zero keeps the
// current value.
func (g *Generator) SetTimeouts(command, script time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if command > 0 {
		g.commandTimeout = command
	}
	if script > 0 {
		g.scriptTimeout = script
	}
}

func (g *Generator) timeouts() (time.Duration, time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.commandTimeout, g.scriptTimeout
}

// GenerateCommand produces a single shell command with a risk verdict
// attached. The verdict always comes from the classifier, never from the
// backend.
func (g *Generator) GenerateCommand(ctx context.Context, req domain.GenerateRequest) (domain.GeneratedCommand, error) {
	if err := req.Validate(); err != nil {
		return domain.GeneratedCommand{}, err
	}

	prompt, err := buildCommandPrompt(req)
	if err != nil {
		return domain.GeneratedCommand{}, domain.NewAPIError("render prompt", err)
	}

	commandTimeout, _ := g.timeouts()
	model := g.Model()
	raw, err := g.callBackend(ctx, model, prompt, commandTimeout)
	if err != nil {
		return domain.GeneratedCommand{}, err
	}

	command, explanation, err := parseCommandReply(raw)
	if err != nil {
		return domain.GeneratedCommand{}, err
	}

	risk := domain.RiskResult{Level: domain.RiskSafe}
	if g.Classifier != nil {
		risk = g.Classifier.Classify(command)
	}

	g.logInfo("command generated", map[string]interface{}{
		"model": model.Name,
		"risk":  string(risk.Level),
	})
	return domain.NewGeneratedCommand(command, explanation, model.Name, risk), nil
}

// GenerateScript produces a multi-line script body. Scripts are saved or
// copied rather than inserted for immediate execution, so no classification
// happens here; screening belongs to the caller's save/clipboard flow.
func (g *Generator) GenerateScript(ctx context.Context, req domain.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	prompt, err := buildScriptPrompt(req)
	if err != nil {
		return "", domain.NewAPIError("render prompt", err)
	}

	_, scriptTimeout := g.timeouts()
	raw, err := g.callBackend(ctx, g.Model(), prompt, scriptTimeout)
	if err != nil {
		return "", err
	}
	return parseScriptReply(raw)
}

// Explain asks the backend for a detailed explanation of a command.
func (g *Generator) Explain(ctx context.Context, command string) (string, error) {
	if command == "" {
		return "", domain.NewValidationError("command is empty")
	}

	prompt, err := buildExplainPrompt(command)
	if err != nil {
		return "", domain.NewAPIError("render prompt", err)
	}

	_, scriptTimeout := g.timeouts()
	raw, err := g.callBackend(ctx, g.Model(), prompt, scriptTimeout)
	if err != nil {
		return "", err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.NewParseError(raw)
	}
	return raw, nil
}

// callBackend performs one single-shot backend exchange under a hard
// deadline, with a progress task running alongside. The progress task is
// stopped and joined before any result or error is surfaced; once the
// deadline fires the in-flight call is abandoned and TimeoutError raised.
func (g *Generator) callBackend(ctx context.Context, model domain.ModelDefinition, prompt string, timeout time.Duration) (string, error) {
	provider, err := g.Factory.ForModel(model)
	if err != nil {
		return "", domain.NewAPIError("provider init", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	progress := g.progress()
	progress.Start()
	raw, err := provider.Generate(callCtx, prompt)
	progress.Stop()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.NewTimeoutError(model.Name, timeout)
		}
		var domErr *domain.Error
		if errors.As(err, &domErr) {
			return "", err
		}
		return "", domain.NewAPIError("backend call failed", err)
	}
	return raw, nil
}

func (g *Generator) progress() ports.ProgressReporter {
	if g.NewProgress == nil {
		return nopProgress{}
	}
	return g.NewProgress()
}

func (g *Generator) logInfo(msg string, fields map[string]interface{}) {
	if g.Logger == nil {
		return
	}
	g.Logger.Info(msg, fields)
}

type nopProgress struct{}

func (nopProgress) Start() {}
func (nopProgress) Stop()  {}
