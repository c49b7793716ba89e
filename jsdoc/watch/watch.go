// Package watch reruns documentation generation when sources change.
//
// A [Watcher] watches a source tree with fsnotify, collects changes to
// JavaScript files and package manifests, and calls a handler once the tree
// has been quiet for the debounce delay.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// ErrWatch is returned when the source tree cannot be watched.
var ErrWatch = errors.New("watch")

var (
	skipDirs = map[string]struct{}{
		"node_modules":     {},
		"bower_components": {},
	}

	manifests = map[string]struct{}{
		"package.json": {},
		"package.yaml": {},
		"package.yml":  {},
	}
)

// Handler is called with the changed paths, sorted, after each burst of
// changes.
type Handler func(ctx context.Context, changed []string) error

// Option configures a [Watcher].
type Option func(*Watcher)

// WithDebounce sets how long the tree must be quiet before the handler runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger. It defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithSkip excludes a directory, typically the output directory, from the
// watch.
func WithSkip(dir string) Option {
	return func(w *Watcher) {
		if dir != "" {
			w.skip = append(w.skip, absPath(dir))
		}
	}
}

// Watcher watches a source tree.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	pending  map[string]struct{}
	root     string
	skip     []string
	debounce time.Duration
	mu       sync.Mutex
}

// New creates a [Watcher] for root, which may be a directory or a single
// file. Directories below root are watched immediately; directories created
// later are added as they appear.
func New(root string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		root:     absPath(root),
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		pending:  make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	w.fsw = fsw

	info, err := os.Stat(w.root)
	if err != nil {
		_ = fsw.Close()

		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	if !info.IsDir() {
		err = fsw.Add(filepath.Dir(w.root))
	} else {
		err = w.addTree(w.root)
	}

	if err != nil {
		_ = fsw.Close()

		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	return w, nil
}

// Close stops watching. It is called by [Watcher.Run] on return.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	return nil
}

// Run delivers changes to fn until ctx is done. Handler errors are logged
// and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	defer func() {
		_ = w.Close()
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	w.logger.Info("watching for changes",
		slog.String("root", w.root),
		slog.Duration("debounce", w.debounce),
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if w.handle(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			w.logger.Error("watch error", slog.Any("error", err))

		case <-timer.C:
			changed := w.flush()
			if len(changed) == 0 {
				continue
			}

			w.logger.Debug("sources changed", slog.Int("files", len(changed)))

			err := fn(ctx, changed)
			if err != nil {
				w.logger.Error("regenerate", slog.Any("error", err))
			}
		}
	}
}

// handle records a relevant event and reports whether it was recorded.
func (w *Watcher) handle(event fsnotify.Event) bool {
	path := filepath.Clean(event.Name)

	if w.skipped(path) {
		return false
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if !w.watchable(path) {
				return false
			}

			err := w.addTree(path)
			if err != nil {
				w.logger.Warn("cannot watch new directory",
					slog.String("path", path),
					slog.Any("error", err),
				)
			}

			return false
		}
	}

	if !Relevant(path) {
		return false
	}

	w.mu.Lock()
	w.pending[path] = struct{}{}
	w.mu.Unlock()

	w.logger.Debug("change detected",
		slog.String("path", path),
		slog.String("op", event.Op.String()),
	)

	return true
}

func (w *Watcher) flush() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}

	clear(w.pending)
	slices.Sort(changed)

	return changed
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error { //nolint:wrapcheck // Wrapped by callers.
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && !w.watchable(path) {
			return filepath.SkipDir
		}

		err = w.fsw.Add(path)
		if err != nil {
			return err //nolint:wrapcheck // Wrapped by callers.
		}

		w.logger.Debug("watching directory", slog.String("path", path))

		return nil
	})
}

func (w *Watcher) watchable(dir string) bool {
	base := filepath.Base(dir)
	if _, skip := skipDirs[base]; skip || strings.HasPrefix(base, ".") {
		return false
	}

	return !w.skipped(dir)
}

func (w *Watcher) skipped(path string) bool {
	for _, dir := range w.skip {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

// Relevant reports whether a change to path affects generated documentation:
// JavaScript sources and package manifests.
func Relevant(path string) bool {
	if _, ok := manifests[filepath.Base(path)]; ok {
		return true
	}

	return filepath.Ext(path) == ".js"
}

// absPath makes path absolute so that it compares equal to event names.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}
