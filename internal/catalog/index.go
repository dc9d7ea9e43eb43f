package catalog

import (
	"slices"
	"strings"

	"github.com/scentdex/scentdex-server/internal/domain"
)

// NoteFacetLimit is how many notes a note picker shows by default.
const NoteFacetLimit = 50

// Count is one facet entry: a designer or note name and how many times it occurs.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Index holds the lookup structures derived from one record list.
type Index struct {
	// Designers counts records per brand.
	Designers []Count
	// Notes counts note entries by stored name across all groups of all records.
	Notes []Count
}

// BuildIndex derives designer and note counts. Both lists are ordered by count
// descending; equal counts keep the order in which names were first seen.
func BuildIndex(records []domain.Fragrance) Index {
	designers := newCounter()
	notes := newCounter()

	for i := range records {
		designers.add(records[i].Brand)
		for n := range records[i].AllNotes() {
			notes.add(n.Name)
		}
	}

	return Index{
		Designers: designers.sorted(),
		Notes:     notes.sorted(),
	}
}

// FilterCounts keeps entries whose name contains search, case-insensitively.
// A limit of zero or less means no limit.
func FilterCounts(counts []Count, search string, limit int) []Count {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]Count, 0, min(len(counts), max(limit, 0)))
	for _, c := range counts {
		if limit > 0 && len(out) == limit {
			break
		}
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

type counter struct {
	order []Count
	pos   map[string]int
}

func newCounter() *counter {
	return &counter{pos: make(map[string]int)}
}

func (c *counter) add(name string) {
	if name == "" {
		return
	}
	if i, ok := c.pos[name]; ok {
		c.order[i].Count++
		return
	}
	c.pos[name] = len(c.order)
	c.order = append(c.order, Count{Name: name, Count: 1})
}

func (c *counter) sorted() []Count {
	out := slices.Clone(c.order)
	slices.SortStableFunc(out, func(a, b Count) int {
		return b.Count - a.Count
	})
	return out
}
