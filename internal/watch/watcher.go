package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jpalmerr/writable"
	"github.com/jpalmerr/writable/config"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading. Editors often emit several events for a single save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a script file into a store whenever the file changes.
//
// Create one with [New] and run it with [Watcher.Start].
type Watcher struct {
	path     string
	debounce time.Duration
	store    *writable.Store[*config.Script]
	logger   *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// New loads path and returns a [Watcher] whose store holds the result.
//
// Returns an error if the initial load fails. A debounce of zero or less
// uses [DefaultDebounce]. If logger is nil, [slog.Default] is used.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	script, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		store: writable.New(script,
			writable.WithName("script:"+filepath.Base(path)),
			writable.WithLogger(logger),
			writable.WithPanicRecovery(),
		),
		logger: logger,
		ready:  make(chan struct{}),
	}, nil
}

// Store returns the store holding the most recently loaded script.
func (w *Watcher) Store() *writable.Store[*config.Script] {
	return w.store
}

// Ready is closed once [Watcher.Start] is watching the file.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Reload parses the file and sets the store on success.
//
// On failure the store keeps its previous script and the error is returned.
func (w *Watcher) Reload() error {
	script, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("script reload failed, keeping previous version",
			"path", w.path,
			"error", err.Error(),
		)
		return err
	}

	w.logger.Info("script reloaded", "path", w.path, "steps", len(script.Steps))
	w.store.Set(script)
	return nil
}

// Start watches the file until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file on save are still observed.
// Returns nil on cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("watching script", "path", w.path)
	w.readyOnce.Do(func() { close(w.ready) })

	// reload is nil until a change arrives, then fires once the file is quiet
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("script changed", "path", w.path, "op", event.Op.String())
			reload = time.After(w.debounce)

		case <-reload:
			reload = nil
			_ = w.Reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err.Error())
		}
	}
}
