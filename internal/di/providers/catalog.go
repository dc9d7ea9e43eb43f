package providers

import (
	"github.com/samber/do/v2"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/config"
	"github.com/scentdex/scentdex-server/internal/logger"
)

// ProvideCatalog loads the fragrance export. A load failure stops startup.
func ProvideCatalog(i do.Injector) (*catalog.Holder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewHolder(cfg.Catalog.DataPath, log.Logger)
}

// ProvidePalette loads the accord colour table. A missing table is not fatal;
// every accord then renders with the fallback colour.
func ProvidePalette(i do.Injector) (*color.Palette, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	palette, err := color.LoadPalette(cfg.Catalog.AccordsPath)
	if err != nil {
		log.Warn("Accord palette unavailable, using fallback colour",
			"path", cfg.Catalog.AccordsPath,
			"error", err,
		)
		return color.NewPalette(nil), nil
	}

	log.Info("Accord palette loaded", "accords", palette.Len())
	return palette, nil
}
