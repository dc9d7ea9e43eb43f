package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// Component statuses.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status         string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	CatalogVersion string                     `json:"catalog_version,omitempty" doc:"Version of the catalog being served"`
	Components     map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := HealthResponse{
		Status:     statusHealthy,
		Components: make(map[string]ComponentHealth, 3),
	}

	if c := s.snapshot(); c != nil {
		resp.CatalogVersion = c.Version
	}

	for name, h := range map[string]ComponentHealth{
		"catalog": s.checkCatalog(),
		"search":  s.checkSearchIndex(),
		"palette": s.checkPalette(),
	} {
		resp.Components[name] = h
		resp.Status = worse(resp.Status, h.Status)
	}

	return &HealthOutput{Body: resp}, nil
}

// worse returns the more severe of two statuses.
func worse(a, b string) string {
	rank := map[string]int{statusHealthy: 0, statusDegraded: 1, statusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

func (s *Server) checkCatalog() ComponentHealth {
	c := s.snapshot()
	if c == nil {
		return ComponentHealth{Status: statusUnhealthy, Message: "catalog not loaded"}
	}
	if c.Len() == 0 {
		return ComponentHealth{Status: statusDegraded, Message: "catalog is empty"}
	}
	return ComponentHealth{
		Status:  statusHealthy,
		Message: strconv.Itoa(c.Len()) + " records",
	}
}

// checkSearchIndex verifies the Bleve index is reachable and in step with the catalog.
func (s *Server) checkSearchIndex() ComponentHealth {
	if s.search == nil {
		return ComponentHealth{Status: statusDegraded, Message: "search index not configured"}
	}

	start := time.Now()
	docCount, err := s.search.DocumentCount()
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "search index unreachable",
		}
	}

	if c := s.snapshot(); c != nil && s.search.Version() != c.Version {
		return ComponentHealth{
			Status:  statusDegraded,
			Latency: latency.String(),
			Message: "search index is rebuilding",
		}
	}

	if docCount == 0 {
		return ComponentHealth{
			Status:  statusDegraded,
			Latency: latency.String(),
			Message: "search index empty",
		}
	}

	return ComponentHealth{Status: statusHealthy, Latency: latency.String()}
}

func (s *Server) checkPalette() ComponentHealth {
	if s.palette.Len() == 0 {
		return ComponentHealth{Status: statusDegraded, Message: "no accord colours loaded"}
	}
	return ComponentHealth{Status: statusHealthy, Message: strconv.Itoa(s.palette.Len()) + " accords"}
}
