// Package di provides dependency injection configuration for the ScentDex server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/config"
	"github.com/scentdex/scentdex-server/internal/di/providers"
	"github.com/scentdex/scentdex-server/internal/imagesync"
	"github.com/scentdex/scentdex-server/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Data layer
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvidePalette)
	do.Provide(injector, providers.ProvideImageStorage)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Workers
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. The HTTP server starts listening last.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*catalog.Holder](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*color.Palette](injector)
	if _, err := do.Invoke[*imagesync.Storage](injector); err != nil {
		return err
	}

	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CatalogWatcherHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
