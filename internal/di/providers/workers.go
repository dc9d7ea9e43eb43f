package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/config"
	"github.com/scentdex/scentdex-server/internal/logger"
	"github.com/scentdex/scentdex-server/internal/watcher"
)

// CatalogWatcherHandle wraps the catalog file watcher with shutdown capability.
// Watcher is nil when hot reload is disabled.
type CatalogWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideCatalogWatcher reloads the catalog when its file changes.
// The search index must exist first so its reload hook sees every change.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	holder := do.MustInvoke[*catalog.Holder](i)
	_ = do.MustInvoke[*SearchIndexHandle](i)

	if !cfg.Catalog.Watch {
		log.Info("Catalog hot reload disabled by configuration")
		return &CatalogWatcherHandle{}, nil
	}

	w, err := watcher.New(log.WithComponent("watcher").Logger, watcher.Options{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := holder.Watch(ctx, w); err != nil {
			log.Error("Catalog watcher error", "error", err)
		}
	}()

	log.Info("Catalog watcher started", "path", holder.Path())

	return &CatalogWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}
