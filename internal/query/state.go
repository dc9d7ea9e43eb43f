// Package query implements catalog filtering, sorting and the paged reveal window.
//
// State is an immutable value. Every reducer returns a new State and leaves
// the receiver untouched, so callers can keep previous states around freely.
package query

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sort selects the result ordering.
type Sort string

// Sort modes by wire name.
const (
	SortPopular Sort = "popular"
	SortRated   Sort = "rated"
	SortNewest  Sort = "newest"
	SortID      Sort = "id"
)

// Sorts lists the modes in the order a selector presents them.
var Sorts = []Sort{SortPopular, SortRated, SortNewest, SortID}

// Label returns the human-readable name of the sort mode.
func (s Sort) Label() string {
	switch s {
	case SortPopular:
		return "Most popular"
	case SortRated:
		return "Highest rated"
	case SortNewest:
		return "Newest"
	default:
		return "Catalog order"
	}
}

// ParseSort resolves a wire name. Unknown names fall back to catalog order.
func ParseSort(name string) (Sort, bool) {
	for _, s := range Sorts {
		if string(s) == name {
			return s, true
		}
	}
	return SortID, false
}

// Filter option sets offered to users.
var (
	Genders = []string{"men", "women", "unisex"}
	Seasons = []string{"fall", "spring", "summer", "winter"}
)

const (
	// PageSize is the initial reveal count.
	PageSize = 20
	// RevealStep is how many more records one "show more" reveals.
	RevealStep = 20
	// MaxReveal caps the reveal count.
	MaxReveal = 10000
	// SeasonThreshold is the score a season ranking must exceed to pass the season filter.
	SeasonThreshold = 0.9
)

// Label title-cases a filter option for display ("summer" -> "Summer").
func Label(option string) string {
	// Casers carry state and cannot be shared between goroutines.
	return cases.Title(language.English).String(option)
}

// State is the filter, sort and reveal selection of one browsing session.
// Empty strings mean the filter is inactive.
type State struct {
	Search   string `json:"search,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Season   string `json:"season,omitempty"`
	Designer string `json:"designer,omitempty"`
	Note     string `json:"note,omitempty"`
	Sort     Sort   `json:"sort"`
	Reveal   int    `json:"reveal"`
}

// NewState returns the defaults a session starts with.
func NewState() State {
	return State{Sort: SortPopular, Reveal: PageSize}
}

// SetSearch replaces the free-text query.
func (s State) SetSearch(q string) State {
	s.Search = q
	return s
}

// ToggleGender selects gender, or clears it when it is already selected.
func (s State) ToggleGender(gender string) State {
	s.Gender = toggle(s.Gender, gender)
	return s
}

// ToggleSeason selects season, or clears it when it is already selected.
func (s State) ToggleSeason(season string) State {
	s.Season = toggle(s.Season, season)
	return s
}

// ToggleDesigner selects a brand, or clears it when it is already selected.
func (s State) ToggleDesigner(brand string) State {
	s.Designer = toggle(s.Designer, brand)
	return s
}

// ToggleNote selects a note, or clears it when it is already selected.
func (s State) ToggleNote(note string) State {
	s.Note = toggle(s.Note, note)
	return s
}

// SetSort changes the ordering. The reveal count is kept.
func (s State) SetSort(sort Sort) State {
	s.Sort = sort
	return s
}

// ShowMore grows the reveal count by RevealStep, saturating at MaxReveal.
// A count already above the cap is left alone.
func (s State) ShowMore() State {
	if s.Reveal < MaxReveal {
		s.Reveal = min(s.Reveal+RevealStep, MaxReveal)
	}
	return s
}

// Clear drops every filter and the search text. Sort and reveal count are kept.
func (s State) Clear() State {
	return State{Sort: s.Sort, Reveal: s.Reveal}
}

// HasActiveFilters reports whether any filter or search text is set.
func (s State) HasActiveFilters() bool {
	return s.Search != "" || s.Gender != "" || s.Season != "" || s.Designer != "" || s.Note != ""
}

func toggle(current, value string) string {
	if current == value {
		return ""
	}
	return value
}

// Cycle steps through "", options[0], options[1], ... and back to "".
// A current value outside options restarts at options[0].
func Cycle(options []string, current string) string {
	if current == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	for i, o := range options {
		if o == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return ""
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0]
}
