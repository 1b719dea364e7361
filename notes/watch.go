package notes

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/montrey/sift/session"
)

// DefaultReloadDelay coalesces bursts of file events into one reload.
const DefaultReloadDelay = 300 * time.Millisecond

// Watcher reloads a notes tree whenever files below it change.
type Watcher struct {
	root     string
	opts     WalkOptions
	delay    time.Duration
	onReload func(*Collection)

	fsWatcher *fsnotify.Watcher
	debouncer session.Debouncer
}

// NewWatcher prepares a watcher for root. onReload receives each freshly
// loaded collection; it is called from the watcher's timer goroutine.
func NewWatcher(root string, opts WalkOptions, delay time.Duration, onReload func(*Collection)) (*Watcher, error) {
	if onReload == nil {
		return nil, fmt.Errorf("reload callback is required")
	}
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve notes dir: %w", err)
	}
	return &Watcher{root: abs, opts: opts, delay: delay, onReload: onReload}, nil
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()
	defer w.debouncer.Stop()

	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("failed to watch notes dir: %w", err)
	}
	slog.Info("watching notes", "root", w.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if hidden(w.root, event.Name) {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
		}
	}
	if event.Op == fsnotify.Chmod {
		return
	}
	slog.Debug("notes changed", "op", event.Op.String(), "path", event.Name)
	w.debouncer.Schedule(w.reload, w.delay)
}

func (w *Watcher) reload() {
	c, err := Load(w.root, w.opts)
	if err != nil {
		slog.Error("failed to reload notes", "root", w.root, "error", err)
		return
	}
	w.onReload(c)
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func hidden(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
