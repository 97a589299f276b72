package policy

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch recompiles the bundle whenever a .rego file in it changes, until ctx
// is done. A bundle that fails to compile leaves the previous policies active.
func (e *Evaluator) Watch(ctx context.Context) error {
	dir := e.cfg().BundlePath
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch policy dir %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isPolicyFile(filepath.Base(event.Name)) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				slog.Info("policy file changed, reloading", "file", event.Name)
				if err := e.Load(); err != nil {
					slog.Error("failed to reload policies", "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("fsnotify error", "error", err)
			}
		}
	}()

	return nil
}
