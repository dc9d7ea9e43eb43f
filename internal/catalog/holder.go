package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/scentdex/scentdex-server/internal/watcher"
)

// Holder owns the current catalog snapshot and swaps it atomically on reload.
// Readers never see a partially loaded catalog.
type Holder struct {
	path   string
	logger *slog.Logger

	current atomic.Pointer[Catalog]

	mu        sync.Mutex // serializes reloads and listener registration
	listeners []func(*Catalog)
}

// NewHolder loads path and returns a holder serving it.
func NewHolder(path string, logger *slog.Logger) (*Holder, error) {
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	h := &Holder{path: path, logger: logger}
	h.current.Store(c)

	logger.Info("catalog loaded",
		"path", path,
		"records", c.Len(),
		"skipped", c.Skipped,
		"version", c.Version,
	)
	return h, nil
}

// NewStaticHolder serves a catalog that never reloads.
func NewStaticHolder(c *Catalog, logger *slog.Logger) *Holder {
	h := &Holder{path: c.Source, logger: logger}
	h.current.Store(c)
	return h
}

// Current returns the snapshot in use.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Path returns the file the holder loads from.
func (h *Holder) Path() string {
	return h.path
}

// OnReload registers fn to run after each successful reload.
// fn runs synchronously with reloads serialized.
func (h *Holder) OnReload(fn func(*Catalog)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Reload re-reads the file. On failure the previous snapshot stays in place.
func (h *Holder) Reload() (*Catalog, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, err := LoadFile(h.path)
	if err != nil {
		h.logger.Warn("catalog reload failed, keeping previous version",
			"path", h.path,
			"version", h.Current().Version,
			"error", err,
		)
		return nil, err
	}

	previous := h.current.Swap(c)
	h.logger.Info("catalog reloaded",
		"records", c.Len(),
		"skipped", c.Skipped,
		"version", c.Version,
		"previous_version", previous.Version,
	)

	for _, fn := range h.listeners {
		fn(c)
	}
	return c, nil
}

// Watch reloads the catalog whenever w reports a settled change to its file.
// It blocks until ctx is cancelled.
func (h *Holder) Watch(ctx context.Context, w *watcher.Watcher) error {
	if err := w.Watch(h.path); err != nil {
		return err
	}

	go w.Start(ctx) //nolint:errcheck // Start only returns nil

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.Events():
			switch event.Type {
			case watcher.EventChanged:
				_, _ = h.Reload()
			case watcher.EventRemoved:
				h.logger.Warn("catalog file removed, serving last loaded version", "path", event.Path)
			}
		case err := <-w.Errors():
			h.logger.Warn("catalog watcher error", "error", err)
		}
	}
}
