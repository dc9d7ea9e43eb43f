// Package domain contains the core catalog entities of ScentDex.
package domain

import (
	"iter"
	"strings"
)

// Fragrance is one record of the read-only catalog.
// ID is the record's position in the export and only stable within one load.
type Fragrance struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Gender      string     `json:"gender"`
	Year        int        `json:"year"`
	YearText    string     `json:"year_text,omitempty"` // As exported, for display
	Popularity  Popularity `json:"popularity"`
	Rating      float64    `json:"rating"`
	MainAccords []string   `json:"main_accords"`
	Notes       NoteGroups `json:"notes"`
	Seasons     []Ranking  `json:"season_ranking"`
	Occasions   []Ranking  `json:"occasion_ranking"`
	ImageURL    string     `json:"image_url,omitempty"`
	PurchaseURL string     `json:"purchase_url,omitempty"`
	Longevity   string     `json:"longevity,omitempty"`
	Sillage     string     `json:"sillage,omitempty"`
	Gallery     []Photo    `json:"gallery,omitempty"`
}

// Ranking is a suitability score on the 0-3 scale for one season or occasion.
type Ranking struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Photo is one gallery image.
type Photo struct {
	URL    string `json:"url"`
	Author string `json:"author,omitempty"`
}

// MaxRankingScore is the top of the season/occasion scale.
const MaxRankingScore = 3.0

// Season returns the season ranking whose name matches case-insensitively.
func (f *Fragrance) Season(name string) (Ranking, bool) {
	for _, r := range f.Seasons {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Ranking{}, false
}

// AllNotes yields every note of the top, middle and base groups in order.
func (f *Fragrance) AllNotes() iter.Seq[Note] {
	return f.Notes.All()
}

// HasNote reports whether any group holds a note whose stored name equals name exactly.
func (f *Fragrance) HasNote(name string) bool {
	for n := range f.AllNotes() {
		if n.Name == name {
			return true
		}
	}
	return false
}

// NoteKeys returns the distinct normalized note names of the record.
func (f *Fragrance) NoteKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for n := range f.AllNotes() {
		keys[n.Key()] = struct{}{}
	}
	return keys
}

// SearchText is the brand-then-name string the free-text filter runs against.
func (f *Fragrance) SearchText() string {
	return f.Brand + " " + f.Name
}

// Popularity is an ordinal tier label such as "Very high".
type Popularity string

// Popularity tiers in ascending order.
const (
	PopularityVeryLow  Popularity = "Very low"
	PopularityLow      Popularity = "Low"
	PopularityMedium   Popularity = "Medium"
	PopularityHigh     Popularity = "High"
	PopularityVeryHigh Popularity = "Very high"
)

var popularityRanks = map[string]int{
	"very low":  1,
	"low":       2,
	"medium":    3,
	"high":      4,
	"very high": 5,
}

// Rank maps the tier to 1 (Very low) through 5 (Very high). Unknown tiers rank 0.
func (p Popularity) Rank() int {
	return popularityRanks[strings.ToLower(strings.TrimSpace(string(p)))]
}
