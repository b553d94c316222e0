package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// Watcher reloads the configuration when the file changes on disk and hands
// the fresh copy to a callback. Editors often replace the file rather than
// write it in place, so the whole directory is watched and events are
// debounced.
type Watcher struct {
	loader   *FileLoader
	onReload func(domain.Config)
	logger   ports.Logger
	debounce time.Duration

	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

func NewWatcher(loader *FileLoader, logger ports.Logger, onReload func(domain.Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, domain.NewConfigError("start config watcher", err)
	}
	if err := fsWatcher.Add(filepath.Dir(loader.Path())); err != nil {
		fsWatcher.Close()
		return nil, domain.NewConfigError("watch config directory", err)
	}
	return &Watcher{
		loader:    loader,
		onReload:  onReload,
		logger:    logger,
		debounce:  300 * time.Millisecond,
		fsWatcher: fsWatcher,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start launches the watch loop. It returns immediately; Stop terminates the
// loop and waits for it.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

func (w *Watcher) Stop() {
	close(w.stopChan)
	w.fsWatcher.Close()
	w.wg.Wait()
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	target := w.loader.Path()
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("config watch error", map[string]interface{}{"error": err.Error()})
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := w.loader.Load(ctx)
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("config reload failed", map[string]interface{}{"error": err.Error()})
		}
		return
	}
	if w.logger != nil {
		w.logger.Debug("config reloaded", map[string]interface{}{"default_model": cfg.Preferences.DefaultModel})
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
