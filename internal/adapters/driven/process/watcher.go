package process

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/drivegate/internal/logger"
)

// Watcher re-validates executables whenever their directory changes.
type Watcher struct {
	mu      sync.RWMutex
	targets map[string]string // name -> absolute path
	status  map[string]error
}

// NewWatcher checks every target once. Missing executables are reported by
// Status rather than failing construction.
func NewWatcher(targets map[string]string) *Watcher {
	w := &Watcher{
		targets: make(map[string]string, len(targets)),
		status:  make(map[string]error, len(targets)),
	}
	for name, path := range targets {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		w.targets[name] = path
		w.status[name] = CheckExecutable(path)
	}
	return w
}

// Status returns "ok" or the failure message for each target.
func (w *Watcher) Status() map[string]string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make(map[string]string, len(w.status))
	for name, err := range w.status {
		if err != nil {
			out[name] = err.Error()
		} else {
			out[name] = "ok"
		}
	}
	return out
}

// Healthy reports whether every target is runnable.
func (w *Watcher) Healthy() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, err := range w.status {
		if err != nil {
			return false
		}
	}
	return true
}

// Recheck validates every target again and logs changes.
func (w *Watcher) Recheck() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, path := range w.targets {
		w.update(name, CheckExecutable(path))
	}
}

// update records a new status; caller must hold the lock.
func (w *Watcher) update(name string, err error) {
	prev := w.status[name]
	w.status[name] = err
	switch {
	case prev == nil && err != nil:
		logger.Warn("executable %s became unavailable: %v", name, err)
	case prev != nil && err == nil:
		logger.Info("executable %s is available again", name)
	}
}

// Run watches the targets' directories until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs() {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("not watching %s: %v", dir, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("executable watcher: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	for name, target := range w.targets {
		if target == path {
			logger.Debug("executable %s changed: %s", name, event.Op)
			w.update(name, CheckExecutable(target))
		}
	}
}

// dirs returns the unique parent directories of all targets.
func (w *Watcher) dirs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, path := range w.targets {
		seen[filepath.Dir(path)] = struct{}{}
	}
	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
