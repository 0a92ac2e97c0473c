// Package watch reruns a build whenever project sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period after the last change before a
// rebuild starts.
const DefaultDebounce = 100 * time.Millisecond

// RebuildFunc runs one build. Errors are logged and watching continues.
type RebuildFunc func(ctx context.Context, reason string) error

// Config configures a Watcher.
type Config struct {
	// Dirs are watched recursively (required)
	Dirs []string
	// Ignore lists files whose changes never trigger a rebuild, typically
	// the generated modules
	Ignore []string
	// Debounce defaults to DefaultDebounce
	Debounce time.Duration
	// Rebuild is called serially, never concurrently (required)
	Rebuild RebuildFunc
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Watcher debounces file system events into serialized rebuilds.
type Watcher struct {
	dirs     []string
	ignore   map[string]struct{}
	debounce time.Duration
	rebuild  RebuildFunc
	logger   *slog.Logger
}

// New creates a Watcher.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Dirs) == 0 {
		return nil, errors.New("at least one directory to watch is required")
	}
	if cfg.Rebuild == nil {
		return nil, errors.New("rebuild function is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ignore := make(map[string]struct{}, len(cfg.Ignore))
	for _, path := range cfg.Ignore {
		ignore[filepath.Clean(path)] = struct{}{}
	}

	return &Watcher{
		dirs:     cfg.Dirs,
		ignore:   ignore,
		debounce: debounce,
		rebuild:  cfg.Rebuild,
		logger:   logger,
	}, nil
}

// Run performs an initial rebuild, then watches until ctx is cancelled.
// It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := w.watchDir(fsw, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	// Holds at most one pending rebuild; changes during a rebuild coalesce.
	trigger := make(chan string, 1)
	trigger <- "initial build"

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w.eventLoop(gctx, fsw, trigger)
		return nil
	})
	g.Go(func() error {
		w.worker(gctx, trigger)
		return nil
	})

	w.logger.Info("watching for changes", "dirs", w.dirs)
	return g.Wait()
}

// Relevant reports whether event should trigger a rebuild.
func (w *Watcher) Relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if _, ok := w.ignore[filepath.Clean(event.Name)]; ok {
		return false
	}
	return !hidden(filepath.Base(event.Name))
}

func (w *Watcher) eventLoop(ctx context.Context, fsw *fsnotify.Watcher, trigger chan<- string) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.Relevant(event) {
				continue
			}

			if event.Op.Has(fsnotify.Create) {
				// New directories are not covered by existing watches.
				if err := w.watchDir(fsw, event.Name); err != nil {
					w.logger.Debug("could not watch new path", "path", event.Name, "error", err)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			name := event.Name
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case trigger <- name:
				default:
				}
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) worker(ctx context.Context, trigger <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-trigger:
			w.logger.Info("change detected", "path", reason)
			if err := w.rebuild(ctx, reason); err != nil {
				w.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

// watchDir adds dir and its subdirectories. Non-directories are ignored.
func (w *Watcher) watchDir(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (d.Name() == "node_modules" || hidden(d.Name())) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
