// Package search provides relevance-ranked full-text search over the catalog using Bleve.
// It complements the exact substring filter of the query package with fuzzy
// and prefix matching across names, brands, accords and notes.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scentdex/scentdex-server/internal/domain"
)

// Document is the indexed form of one fragrance.
// Note names are flattened across groups since search does not care about the pyramid level.
type Document struct {
	ID       string   `json:"id"`
	Position string   `json:"position"` // zero-padded ID, the score tiebreak
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Gender   string   `json:"gender"`
	Year     int      `json:"year"`
	Accords  []string `json:"accords"`
	Notes    []string `json:"notes"`
}

// FromFragrance converts a record to its search document.
func FromFragrance(f *domain.Fragrance) *Document {
	doc := &Document{
		ID:       strconv.Itoa(f.ID),
		Position: fmt.Sprintf("%010d", f.ID),
		Name:     f.Name,
		Brand:    f.Brand,
		Gender:   strings.ToLower(strings.TrimSpace(f.Gender)),
		Year:     f.Year,
		Accords:  f.MainAccords,
	}
	for n := range f.AllNotes() {
		doc.Notes = append(doc.Notes, n.Name)
	}
	return doc
}

// ToMap converts the document to a map so field names match the mapping exactly.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":       d.ID,
		"position": d.Position,
		"name":     d.Name,
		"brand":    d.Brand,
		"gender":   d.Gender,
		"year":     float64(d.Year),
	}
	if len(d.Accords) > 0 {
		m["accords"] = d.Accords
	}
	if len(d.Notes) > 0 {
		m["notes"] = d.Notes
	}
	return m
}
