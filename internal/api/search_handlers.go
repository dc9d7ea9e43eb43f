package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/scentdex/scentdex-server/internal/errors"
	"github.com/scentdex/scentdex-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search fragrances",
		Description: "Relevance-ranked search over names, brands, accords and notes with typo tolerance",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains parameters for searching the catalog.
type SearchInput struct {
	Query  string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Search query"`
	Gender string `query:"gender" enum:"men,women,unisex" doc:"Restrict to one gender"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Max results"`
	Offset int    `query:"offset" minimum:"0" doc:"Pagination offset"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	CatalogVersion string `header:"X-Catalog-Version"`
	Body           search.Result
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if s.search == nil {
		return nil, domainerrors.Unavailable("search is not available")
	}

	q := strings.TrimSpace(input.Query)
	if q == "" {
		return nil, domainerrors.Validation("search query cannot be blank")
	}

	result, err := s.search.Search(ctx, search.Params{
		Query:  q,
		Gender: input.Gender,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		s.logger.Error("search failed", "query", q, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	return &SearchOutput{
		CatalogVersion: s.search.Version(),
		Body:           *result,
	}, nil
}
