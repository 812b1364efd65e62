package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a callback when files under a directory change,
// coalescing bursts of events through a debounce window.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher returns a watcher with the given debounce window.
func NewWatcher(debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{debounce: debounce, logger: logger}
}

// Watch blocks, invoking fn after each settled burst of changes in dir,
// until ctx is cancelled. Errors from fn are logged, not fatal; the
// watch keeps running so a later change can recover.
func (w *Watcher) Watch(ctx context.Context, dir string, fn func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching for changes", "dir", dir, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			pending = false
			w.logger.Info("changes settled, rerunning")
			if err := fn(ctx); err != nil {
				w.logger.Error("rerun failed", "error", err)
			}
		}
	}
}
