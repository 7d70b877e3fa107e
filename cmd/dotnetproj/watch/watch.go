// Package watch re-runs an action when watched files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/willibrandon/dotnetproj/observability"
)

// DefaultDebounce is how long a file must be quiet before its handler runs.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc handles a change to path. Its error is logged and watching
// continues.
type ChangeFunc func(ctx context.Context, path string) error

// Watcher watches a fixed set of files.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	onChange ChangeFunc
	logger   observability.Logger

	// Debounce coalesces bursts of events for one file.
	Debounce time.Duration

	// ready, when set, is closed once the directories are being watched.
	ready chan struct{}
}

// New creates a watcher for paths. The parent directories are watched so
// editors that save by renaming a temporary file are still seen.
func New(paths []string, onChange ChangeFunc, logger observability.Logger) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		onChange: onChange,
		logger:   observability.OrNull(logger).WithProperty("Component", "watch"),
		Debounce: DefaultDebounce,
	}

	seen := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Run blocks until ctx is done, calling the change handler for each
// watched file that is written or recreated.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.logger.Debug("Watching {Directory}", dir)
	}
	if w.ready != nil {
		close(w.ready)
	}

	fire := make(chan string)
	timers := map[string]*time.Timer{}
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if !w.files[path] {
				continue
			}
			if t, ok := timers[path]; ok {
				t.Stop()
			}
			timers[path] = time.AfterFunc(w.Debounce, func() {
				select {
				case fire <- path:
				case <-ctx.Done():
				}
			})

		case path := <-fire:
			delete(timers, path)
			w.logger.Debug("Change detected in {Path}", path)
			if err := w.onChange(ctx, path); err != nil {
				w.logger.Warn("Handling change to {Path} failed: {Error}", path, err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error: {Error}", err)
		}
	}
}
