package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/scentdex/scentdex-server/internal/config"
	"github.com/scentdex/scentdex-server/internal/imagesync"
	"github.com/scentdex/scentdex-server/internal/logger"
)

// ProvideImageStorage provides the downloaded image directory the API serves from.
func ProvideImageStorage(i do.Injector) (*imagesync.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := imagesync.NewStorage(cfg.Images.Dir)
	if err != nil {
		return nil, fmt.Errorf("image storage: %w", err)
	}

	log.Info("Image storage initialized",
		"dir", storage.Dir(),
		"prefix", cfg.Images.PublicPrefix,
	)
	return storage, nil
}
