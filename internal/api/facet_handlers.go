package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
)

func (s *Server) registerFacetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listDesigners",
		Method:      http.MethodGet,
		Path:        "/api/v1/designers",
		Summary:     "List designers",
		Description: "Brands ordered by how many fragrances they have",
		Tags:        []string{"Facets"},
	}, s.handleListDesigners)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes",
		Summary:     "List notes",
		Description: "Notes ordered by how often they appear across all pyramids",
		Tags:        []string{"Facets"},
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAccord",
		Method:      http.MethodGet,
		Path:        "/api/v1/accords/{name}",
		Summary:     "Get accord colour",
		Description: "Returns the display colour of an accord and a readable text colour",
		Tags:        []string{"Facets"},
	}, s.handleGetAccord)
}

// === DTOs ===

// DesignersInput filters the designer facet.
type DesignersInput struct {
	Query string `query:"q" maxLength:"100" doc:"Case-insensitive substring filter"`
	Limit int    `query:"limit" minimum:"0" maximum:"1000" doc:"Maximum entries, 0 for all"`
}

// NotesInput filters the note facet.
type NotesInput struct {
	Query string `query:"q" maxLength:"100" doc:"Case-insensitive substring filter"`
	Limit int    `query:"limit" default:"50" minimum:"0" maximum:"1000" doc:"Maximum entries, 0 for all"`
}

// FacetResponse is a filtered facet list.
type FacetResponse struct {
	Total int             `json:"total" doc:"Distinct values before filtering"`
	Items []catalog.Count `json:"items"`
}

// FacetOutput wraps the facet response for Huma.
type FacetOutput struct {
	Body FacetResponse
}

// AccordInput names one accord.
type AccordInput struct {
	Name string `path:"name" maxLength:"100" doc:"Accord name, case-insensitive"`
}

// AccordResponse is an accord's colours.
type AccordResponse struct {
	color.Swatch
	Known bool `json:"known" doc:"False when the fallback colour was used"`
}

// AccordOutput wraps the accord response for Huma.
type AccordOutput struct {
	Body AccordResponse
}

// === Handlers ===

func (s *Server) handleListDesigners(_ context.Context, input *DesignersInput) (*FacetOutput, error) {
	c, err := s.requireCatalog()
	if err != nil {
		return nil, err
	}
	return facetOutput(c.Index.Designers, input.Query, input.Limit), nil
}

func (s *Server) handleListNotes(_ context.Context, input *NotesInput) (*FacetOutput, error) {
	c, err := s.requireCatalog()
	if err != nil {
		return nil, err
	}
	return facetOutput(c.Index.Notes, input.Query, input.Limit), nil
}

func facetOutput(counts []catalog.Count, q string, limit int) *FacetOutput {
	return &FacetOutput{Body: FacetResponse{
		Total: len(counts),
		Items: catalog.FilterCounts(counts, q, limit),
	}}
}

func (s *Server) handleGetAccord(_ context.Context, input *AccordInput) (*AccordOutput, error) {
	name := strings.TrimSpace(input.Name)
	_, known := s.palette.Lookup(name)
	return &AccordOutput{Body: AccordResponse{
		Swatch: s.palette.Swatch(name),
		Known:  known,
	}}, nil
}
