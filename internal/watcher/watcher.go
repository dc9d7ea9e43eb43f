// Package watcher reports settled changes to individual data files.
//
// Files are watched through their parent directory so that editors and
// export tools that replace a file by rename are still observed.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a set of files and debounces their change events.
type Watcher struct {
	logger  *slog.Logger
	opts    Options
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	targets map[string]struct{}
	dirs    map[string]struct{}
	pending map[string]*pendingEvent
	stopped bool

	events   chan Event
	errors   chan error
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// pendingEvent tracks a file that may still be changing.
type pendingEvent struct {
	size    int64
	modTime time.Time
	exists  bool
	timer   *time.Timer
}

// New creates a watcher backed by fsnotify.
func New(logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		logger:  logger,
		opts:    opts,
		watcher: fw,
		targets: make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, 16),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}, nil
}

// Watch adds a file to be monitored. The file does not need to exist yet,
// but its directory does.
func (w *Watcher) Watch(path string) error {
	path, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; !ok {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
		w.logger.Debug("added watch", "dir", dir)
	}
	w.targets[path] = struct{}{}
	return nil
}

// Start processes events until ctx is cancelled or Stop is called.
// Calling Start after Stop returns immediately.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("watcher error dropped", "error", err)
			}
		}
	}
}

// Events returns the channel of settled file events.
// The channel is never closed; stop reading once Stop returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of backend errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop releases the fsnotify handle and cancels pending timers. It is safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		w.stopped = true
		for _, p := range w.pending {
			p.timer.Stop()
		}
		clear(w.pending)
		w.mu.Unlock()

		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.targets[path]; !ok || w.stopped {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	if p, ok := w.pending[path]; ok {
		p.timer.Stop()
	}

	p := &pendingEvent{}
	p.size, p.modTime, p.exists = stat(path)
	p.timer = time.AfterFunc(w.opts.SettleDelay, func() { w.checkSettled(path) })
	w.pending[path] = p
}

// checkSettled emits once the file's size and mtime stop moving.
func (w *Watcher) checkSettled(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok || w.stopped {
		w.mu.Unlock()
		return
	}

	size, modTime, exists := stat(path)
	if exists && (size != p.size || !modTime.Equal(p.modTime) || !p.exists) {
		p.size, p.modTime, p.exists = size, modTime, exists
		p.timer = time.AfterFunc(w.opts.SettleDelay, func() { w.checkSettled(path) })
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.mu.Unlock()

	event := Event{Type: EventRemoved, Path: path}
	if exists {
		event = Event{Type: EventChanged, Path: path, Size: size, ModTime: modTime}
	}

	select {
	case w.events <- event:
	case <-w.done:
	}
}

func stat(path string) (int64, time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, time.Time{}, false
	}
	return info.Size(), info.ModTime(), true
}
