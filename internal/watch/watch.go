// Package watch republishes library changes made by other processes.
//
// Only the file backend can be watched. The watcher observes the data
// directory, since atomic writes replace library.json by rename, and
// publishes a library-updated event once writes settle.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mesh-intelligence/scriptbox/internal/kv"
	"github.com/mesh-intelligence/scriptbox/internal/library"
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// DefaultDebounce is the quiet period before an event is published.
const DefaultDebounce = 100 * time.Millisecond

var ErrWatchUnsupported = errors.New("storage backend cannot be watched")

// Watcher publishes library-updated events for changes to library.json.
type Watcher struct {
	fsw      *fsnotify.Watcher
	file     string
	bus      *library.Bus
	debounce time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New starts watching the data directory of storage. It returns
// ErrWatchUnsupported unless storage is a *kv.FileStore. Changes made
// before New returns are not reported.
func New(storage types.Storage, bus *library.Bus, opts ...Option) (*Watcher, error) {
	fs, ok := storage.(*kv.FileStore)
	if !ok {
		return nil, ErrWatchUnsupported
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(fs.Dir()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", fs.Dir(), err)
	}

	w := &Watcher{
		fsw:      fsw,
		file:     kv.FileName(types.KeyLibrary),
		bus:      bus,
		debounce: DefaultDebounce,
		logger:   slog.Default().With("component", "watch"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run delivers events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.logger.Debug("library changed", "op", ev.Op.String())
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.file {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

// schedule publishes once no further change arrives within the debounce
// period.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.publish)
}

func (w *Watcher) publish() {
	w.mu.Lock()
	w.timer = nil
	w.mu.Unlock()

	w.bus.Publish(library.NewEvent(library.EventLibraryUpdated, library.SourceWatch))
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("closing watcher", "error", err)
	}
}
