package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/detail"
	"github.com/scentdex/scentdex-server/internal/domain"
	domainerrors "github.com/scentdex/scentdex-server/internal/errors"
	"github.com/scentdex/scentdex-server/internal/gallery"
	"github.com/scentdex/scentdex-server/internal/query"
	"github.com/scentdex/scentdex-server/internal/validation"
)

func (s *Server) registerFragranceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFragrances",
		Method:      http.MethodGet,
		Path:        "/api/v1/fragrances",
		Summary:     "List fragrances",
		Description: "Filters, sorts and windows the catalog",
		Tags:        []string{"Fragrances"},
	}, s.handleListFragrances)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFragrance",
		Method:      http.MethodGet,
		Path:        "/api/v1/fragrances/{id}",
		Summary:     "Get fragrance",
		Description: "Returns the detail page of one fragrance with related records",
		Tags:        []string{"Fragrances"},
	}, s.handleGetFragrance)

	huma.Register(s.api, huma.Operation{
		OperationID: "navigateGallery",
		Method:      http.MethodGet,
		Path:        "/api/v1/fragrances/{id}/gallery",
		Summary:     "Navigate gallery",
		Description: "Applies one lightbox action to a gallery position and returns the result",
		Tags:        []string{"Fragrances"},
	}, s.handleNavigateGallery)
}

// === DTOs ===

// ListFragrancesInput contains the filter, sort and reveal selection.
type ListFragrancesInput struct {
	Query    string `query:"q" maxLength:"200" doc:"Case-insensitive substring of brand and name"`
	Gender   string `query:"gender" doc:"men, women or unisex"`
	Season   string `query:"season" doc:"fall, spring, summer or winter; keeps scores above 0.9"`
	Designer string `query:"designer" maxLength:"200" doc:"Exact brand"`
	Note     string `query:"note" maxLength:"200" doc:"Exact note name in any pyramid level"`
	Sort     string `query:"sort" default:"popular" doc:"popular, rated, newest or id"`
	Reveal   int    `query:"reveal" default:"20" minimum:"1" maximum:"10000" doc:"How many matches to return"`
}

// FragranceSummary is one row of a listing.
type FragranceSummary struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Brand       string            `json:"brand"`
	Gender      string            `json:"gender"`
	GenderLabel string            `json:"gender_label"`
	Year        int               `json:"year,omitempty"`
	Rating      float64           `json:"rating"`
	Popularity  domain.Popularity `json:"popularity"`
	ImageURL    string            `json:"image_url,omitempty"`
	Accords     []color.Swatch    `json:"accords"`
}

// FragranceListResponse is the visible window of a filtered listing.
type FragranceListResponse struct {
	Total      int                `json:"total" doc:"Number of matches before windowing"`
	Reveal     int                `json:"reveal" doc:"Requested window size"`
	HasMore    bool               `json:"has_more" doc:"Whether more matches exist beyond the window"`
	NextReveal int                `json:"next_reveal" doc:"Reveal value for the next page"`
	SortLabel  string             `json:"sort_label"`
	Filters    AppliedFilters     `json:"filters"`
	Items      []FragranceSummary `json:"items"`
}

// AppliedFilters echoes the normalized selection the listing was computed with.
type AppliedFilters struct {
	Search   string `json:"q,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Season   string `json:"season,omitempty"`
	Designer string `json:"designer,omitempty"`
	Note     string `json:"note,omitempty"`
	Sort     string `json:"sort"`
	Active   bool   `json:"active" doc:"Whether any filter is set"`
}

func appliedFilters(s query.State) AppliedFilters {
	return AppliedFilters{
		Search:   s.Search,
		Gender:   s.Gender,
		Season:   s.Season,
		Designer: s.Designer,
		Note:     s.Note,
		Sort:     string(s.Sort),
		Active:   s.HasActiveFilters(),
	}
}

// ListFragrancesOutput wraps the list response for Huma.
type ListFragrancesOutput struct {
	CatalogVersion string `header:"X-Catalog-Version"`
	Body           FragranceListResponse
}

// GetFragranceInput identifies one record by its catalog position.
type GetFragranceInput struct {
	ID string `path:"id" doc:"Catalog position of the fragrance"`
}

// GetFragranceOutput wraps the detail view for Huma.
type GetFragranceOutput struct {
	CatalogVersion string `header:"X-Catalog-Version"`
	Body           detail.View
}

// GalleryInput is one lightbox action.
type GalleryInput struct {
	ID     string `path:"id" doc:"Catalog position of the fragrance"`
	Index  int    `query:"index" default:"0" doc:"Photo index the action applies to"`
	Action string `query:"action" default:"open" enum:"open,prev,next,close" doc:"Lightbox action"`
}

// GalleryResponse is the lightbox after an action.
type GalleryResponse struct {
	State gallery.State `json:"state"`
	Photo *domain.Photo `json:"photo,omitempty" doc:"Photo at the active index, absent while closed"`
}

// GalleryOutput wraps the gallery response for Huma.
type GalleryOutput struct {
	Body GalleryResponse
}

// === Handlers ===

func (s *Server) handleListFragrances(_ context.Context, input *ListFragrancesInput) (*ListFragrancesOutput, error) {
	state, err := s.validator.ValidateFilters(validation.FilterParams{
		Search:   input.Query,
		Gender:   input.Gender,
		Season:   input.Season,
		Designer: input.Designer,
		Note:     input.Note,
		Sort:     input.Sort,
		Reveal:   input.Reveal,
	})
	if err != nil {
		return nil, err
	}

	c, err := s.requireCatalog()
	if err != nil {
		return nil, err
	}

	result := query.Apply(c.Records, state)
	visible := result.Visible(state.Reveal)

	items := make([]FragranceSummary, len(visible))
	for i, f := range visible {
		items[i] = s.summarize(f)
	}

	return &ListFragrancesOutput{
		CatalogVersion: c.Version,
		Body: FragranceListResponse{
			Total:      result.Total,
			Reveal:     state.Reveal,
			HasMore:    result.HasMore(state.Reveal),
			NextReveal: state.ShowMore().Reveal,
			SortLabel:  state.Sort.Label(),
			Filters:    appliedFilters(state),
			Items:      items,
		},
	}, nil
}

func (s *Server) handleGetFragrance(_ context.Context, input *GetFragranceInput) (*GetFragranceOutput, error) {
	c, f, err := s.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	return &GetFragranceOutput{
		CatalogVersion: c.Version,
		Body:           detail.Build(f, c.Records, s.palette, s.now()),
	}, nil
}

func (s *Server) handleNavigateGallery(_ context.Context, input *GalleryInput) (*GalleryOutput, error) {
	_, f, err := s.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	if len(f.Gallery) == 0 {
		return nil, domainerrors.NotFoundf("fragrance %d has no photos", f.ID)
	}

	action := gallery.Action(input.Action)
	start := gallery.New(len(f.Gallery))
	if action != gallery.ActionOpen {
		if input.Index < 0 || input.Index >= len(f.Gallery) {
			return nil, huma.Error422UnprocessableEntity(
				fmt.Sprintf("index %d out of range [0, %d]", input.Index, len(f.Gallery)-1))
		}
		start = gallery.At(len(f.Gallery), input.Index)
	}

	state, err := start.Apply(action, input.Index)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	resp := GalleryResponse{State: state}
	if i, open := state.Active(); open {
		photo := f.Gallery[i]
		resp.Photo = &photo
	}
	return &GalleryOutput{Body: resp}, nil
}

// === Helpers ===

func (s *Server) requireCatalog() (*catalog.Catalog, error) {
	c := s.snapshot()
	if c == nil {
		return nil, domainerrors.Unavailable("catalog not loaded")
	}
	return c, nil
}

// lookup resolves a path id. Anything that is not a valid position is not found.
func (s *Server) lookup(rawID string) (*catalog.Catalog, *domain.Fragrance, error) {
	c, err := s.requireCatalog()
	if err != nil {
		return nil, nil, err
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, nil, domainerrors.NotFoundf("fragrance %q not found", rawID)
	}

	f, err := c.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return c, f, nil
}

func (s *Server) summarize(f *domain.Fragrance) FragranceSummary {
	return FragranceSummary{
		ID:          f.ID,
		Name:        f.Name,
		Brand:       f.Brand,
		Gender:      f.Gender,
		GenderLabel: detail.GenderLabel(f.Gender),
		Year:        f.Year,
		Rating:      f.Rating,
		Popularity:  f.Popularity,
		ImageURL:    f.ImageURL,
		Accords:     s.palette.Swatches(f.MainAccords),
	}
}
