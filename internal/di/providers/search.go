package providers

import (
	"github.com/samber/do/v2"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/logger"
	"github.com/scentdex/scentdex-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex builds the Bleve index from the current catalog and
// rebuilds it after every catalog reload.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	holder := do.MustInvoke[*catalog.Holder](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(search.Options{Logger: log.WithComponent("search").Logger})
	if err != nil {
		return nil, err
	}

	c := holder.Current()
	if err := index.Rebuild(c.Records, c.Version); err != nil {
		_ = index.Close()
		return nil, err
	}

	holder.OnReload(func(c *catalog.Catalog) {
		if err := index.Rebuild(c.Records, c.Version); err != nil {
			log.Error("Search reindex failed", "version", c.Version, "error", err)
		}
	})

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}
