package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/internal/logging"
	"github.com/aretw0/marionette/pkg/adapters/file"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// WatchValidate validates path and re-validates whenever a file in the directory
// of any reachable script changes. It returns when ctx is done.
func WatchValidate(ctx context.Context, cfg config.Config, path string, w io.Writer) error {
	if cfg.Redis.Addr != "" {
		return fmt.Errorf("%w: --watch only supports filesystem scripts", domain.ErrInvalidArgument)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	engine := createEngine(cfg, logging.NewNop(), domain.LifecycleHooks{}, io.Discard)
	watched := make(map[string]bool)

	check := func() {
		scripts, err := engine.Inspect(file.New(path))
		reportValidation(w, path, err)

		dirs := []string{filepath.Dir(path)}
		for _, s := range scripts {
			dirs = append(dirs, filepath.Dir(filepath.FromSlash(s.Location().String())))
		}
		for _, dir := range dirs {
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err == nil {
				watched[dir] = true
			}
		}
	}

	check()
	printSystemMessage(w, "Waiting for changes...")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printSystemMessage(w, "Watcher error: %v", err)
		case <-pending:
			pending = nil
			printSystemMessage(w, "Change detected.")
			check()
		}
	}
}
