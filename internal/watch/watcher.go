// Package watch re-runs validation when watched files change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event describes a change to one of the watched files.
type Event struct {
	Path string
}

// Watcher monitors a fixed set of files - the schema and the instance
// files of a validation run - and invokes a callback when any of them
// changes. Parent directories are watched rather than the files
// themselves, so editors that replace files on save are still seen.
type Watcher struct {
	logger *slog.Logger
	files  map[string]struct{}
	dirs   map[string]struct{}
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
	debounce   time.Duration
}

// New creates a Watcher over the given file paths.
func New(logger *slog.Logger, paths ...string) *Watcher {
	w := &Watcher{
		logger:     logger.With("component", "watcher"),
		files:      make(map[string]struct{}, len(paths)),
		dirs:       make(map[string]struct{}),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
		debounce:   100 * time.Millisecond,
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		w.files[abs] = struct{}{}
		w.dirs[filepath.Dir(abs)] = struct{}{}
	}
	return w
}

// Watch blocks until the context is cancelled, calling callback for each
// debounced change to a watched file.
func (w *Watcher) Watch(ctx context.Context, callback func(Event)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	w.logger.Info("Watching for changes", "files", len(w.files))
	if w.Ready != nil {
		close(w.Ready)
	}

	var timer *time.Timer
	var pending Event

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev := w.handleEvent(event); ev != nil {
				if timer != nil {
					timer.Stop()
				}
				pending = *ev
				timer = time.AfterFunc(w.debounce, func() {
					callback(pending)
				})
			}
		}
	}
}

// handleEvent filters one fsnotify event down to the watched file set.
func (w *Watcher) handleEvent(event fsnotify.Event) *Event {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return nil
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return nil
	}
	if _, watched := w.files[abs]; !watched {
		return nil
	}
	return &Event{Path: abs}
}
