package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/infrastructure/cli"
	"github.com/termgenie/termgenie/internal/infrastructure/config"
	"github.com/termgenie/termgenie/internal/pkg/singleinstance"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, container, err := cli.NewRootCmd(ctx, cli.Options{Verbose: isVerbose()})
	if err != nil {
		cli.RenderError(os.Stderr, err)
		return 1
	}

	// One instance per config directory. A newer invocation supersedes a
	// stuck older one.
	guard, err := singleinstance.Acquire(filepath.Join(config.Dir(), "termgenie.pid"))
	if err != nil {
		cli.RenderError(os.Stderr, err)
		return 1
	}
	defer guard.Release()

	watcher, err := config.NewWatcher(container.ConfigLoader, container.Logger, func(cfg domain.Config) {
		if err := container.ApplyConfig(cfg); err != nil {
			container.Logger.Warn("reloaded config rejected", map[string]interface{}{"error": err.Error()})
		}
	})
	if err == nil {
		watcher.Start(ctx)
		defer watcher.Stop()
	} else {
		container.Logger.Debug("config watcher unavailable", map[string]interface{}{"error": err.Error()})
	}

	if err := root.ExecuteContext(ctx); err != nil {
		cli.RenderError(os.Stderr, err)
		return 1
	}
	return 0
}

func isVerbose() bool {
	value := os.Getenv("TERMGENIE_DEBUG")
	return strings.EqualFold(value, "1") || strings.EqualFold(value, "true")
}
