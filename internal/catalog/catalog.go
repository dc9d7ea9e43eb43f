// Package catalog loads the fragrance export into an immutable snapshot
// and keeps the current snapshot fresh when the file changes.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/scentdex/scentdex-server/internal/domain"
	"github.com/scentdex/scentdex-server/internal/errors"
	"github.com/scentdex/scentdex-server/internal/id"
)

// Catalog is one loaded, read-only view of the dataset.
// Records[i].ID == i for every record.
type Catalog struct {
	Records  []domain.Fragrance
	Index    Index
	Version  string
	Source   string
	LoadedAt time.Time
	// Skipped counts array elements that were not JSON objects.
	Skipped int
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.Records)
}

// Get resolves a record by its load-order identity.
func (c *Catalog) Get(id int) (*domain.Fragrance, error) {
	if id < 0 || id >= len(c.Records) {
		return nil, errors.NotFoundf("fragrance %d not found", id)
	}
	return &c.Records[id], nil
}

// LoadFile reads and decodes the export at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnavailable, "open catalog")
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, err
	}
	c.Source = path
	return c, nil
}

// Decode reads a JSON array of fragrance records.
// Only a top-level shape error fails; malformed fields and elements degrade to empty values.
func Decode(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "read catalog")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "catalog must be a JSON array")
	}

	c := &Catalog{
		Records:  make([]domain.Fragrance, len(elements)),
		LoadedAt: time.Now(),
	}

	for i, element := range elements {
		var raw rawRecord
		if !isObject(element) || json.Unmarshal(element, &raw) != nil {
			// Keep the slot so identities stay aligned with array positions.
			c.Records[i] = domain.Fragrance{ID: i}
			c.Skipped++
			continue
		}
		c.Records[i] = raw.toDomain(i)
	}

	c.Index = BuildIndex(c.Records)

	version, err := id.Generate(id.PrefixCatalog)
	if err != nil {
		return nil, fmt.Errorf("catalog version: %w", err)
	}
	c.Version = version

	return c, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
