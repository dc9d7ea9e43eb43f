package validation

import (
	"strings"

	"github.com/scentdex/scentdex-server/internal/query"
)

// FilterParams is the normalized form of the list query string.
// Enumerated values are lower-cased before validation; free text is kept verbatim.
type FilterParams struct {
	Search   string `json:"q" validate:"max=200"`
	Gender   string `json:"gender" validate:"omitempty,gender"`
	Season   string `json:"season" validate:"omitempty,season"`
	Designer string `json:"designer" validate:"max=200"`
	Note     string `json:"note" validate:"max=200"`
	Sort     string `json:"sort" validate:"omitempty,sortmode"`
	Reveal   int    `json:"reveal" validate:"gte=1,lte=10000"`
}

// Normalize trims and lower-cases the enumerations.
// Search, designer and note are left untouched: designers and notes match
// their stored names exactly, and search treats whitespace as text.
func (p FilterParams) Normalize() FilterParams {
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.Season = strings.ToLower(strings.TrimSpace(p.Season))
	p.Sort = strings.ToLower(strings.TrimSpace(p.Sort))
	return p
}

// State converts validated params into a filter state.
// An empty sort keeps the default ordering.
func (p FilterParams) State() query.State {
	s := query.NewState()
	s.Search = p.Search
	s.Gender = p.Gender
	s.Season = p.Season
	s.Designer = p.Designer
	s.Note = p.Note
	if sort, ok := query.ParseSort(p.Sort); ok {
		s.Sort = sort
	}
	if p.Reveal > 0 {
		s.Reveal = p.Reveal
	}
	return s
}

// ValidateFilters normalizes p, validates it and returns the resulting state.
func (v *Validator) ValidateFilters(p FilterParams) (query.State, error) {
	p = p.Normalize()
	if err := v.Validate(p); err != nil {
		return query.State{}, err
	}
	return p.State(), nil
}
