package search

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/scentdex/scentdex-server/internal/domain"
)

// Index wraps an in-memory Bleve index over one catalog version.
//
// Thread safety: all methods are safe for concurrent use. Rebuild indexes
// into a fresh index and swaps it in, so searches never see a half-built index.
type Index struct {
	index   bleve.Index
	version string
	logger  *slog.Logger
	mu      sync.RWMutex
}

// Options configures the search index.
type Options struct {
	Logger *slog.Logger // Uses a discard logger if nil
}

// batchSize bounds the number of documents per Bleve batch.
const batchSize = 500

// NewIndex creates an empty in-memory index.
func NewIndex(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Index{index: index, logger: logger}, nil
}

// Rebuild replaces the indexed documents with records, tagged with the catalog version.
func (s *Index) Rebuild(records []domain.Fragrance, version string) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	if err := indexRecords(fresh, records); err != nil {
		_ = fresh.Close()
		return err
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.version = version
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close previous search index", "error", err)
	}

	s.logger.Info("rebuilt search index", "documents", len(records), "version", version)
	return nil
}

func indexRecords(index bleve.Index, records []domain.Fragrance) error {
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))

		batch := index.NewBatch()
		for i := start; i < end; i++ {
			doc := FromFragrance(&records[i])
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// Version returns the catalog version currently indexed.
func (s *Index) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// DocumentCount returns the number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Close releases the index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Shutdown implements do.Shutdowner.
func (s *Index) Shutdown() error {
	return s.Close()
}
