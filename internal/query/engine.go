package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/scentdex/scentdex-server/internal/domain"
)

// Result is the filtered, sorted sequence for one State.
type Result struct {
	// Items holds every matching record in sort order.
	Items []*domain.Fragrance
	Total int
}

// Visible returns the first reveal items.
func (r Result) Visible(reveal int) []*domain.Fragrance {
	return r.Items[:min(max(reveal, 0), len(r.Items))]
}

// HasMore reports whether records remain beyond the reveal window.
func (r Result) HasMore(reveal int) bool {
	return reveal < r.Total
}

// Apply filters records by every active predicate of s, then sorts them stably.
// The input is never modified.
func Apply(records []domain.Fragrance, s State) Result {
	items := make([]*domain.Fragrance, 0, len(records))
	search := strings.ToLower(s.Search)

	for i := range records {
		if matches(&records[i], s, search) {
			items = append(items, &records[i])
		}
	}

	slices.SortStableFunc(items, comparator(s.Sort))

	return Result{Items: items, Total: len(items)}
}

func matches(f *domain.Fragrance, s State, search string) bool {
	if search != "" && !strings.Contains(strings.ToLower(f.SearchText()), search) {
		return false
	}
	if s.Gender != "" && f.Gender != s.Gender {
		return false
	}
	if s.Designer != "" && f.Brand != s.Designer {
		return false
	}
	if s.Note != "" && !f.HasNote(s.Note) {
		return false
	}
	if s.Season != "" {
		r, ok := f.Season(s.Season)
		if !ok || r.Score <= SeasonThreshold {
			return false
		}
	}
	return true
}

func comparator(sort Sort) func(a, b *domain.Fragrance) int {
	switch sort {
	case SortPopular:
		return func(a, b *domain.Fragrance) int {
			return cmp.Compare(b.Popularity.Rank(), a.Popularity.Rank())
		}
	case SortRated:
		return func(a, b *domain.Fragrance) int {
			return cmp.Compare(b.Rating, a.Rating)
		}
	case SortNewest:
		return func(a, b *domain.Fragrance) int {
			return cmp.Compare(b.Year, a.Year)
		}
	default:
		return func(a, b *domain.Fragrance) int {
			return cmp.Compare(a.ID, b.ID)
		}
	}
}
