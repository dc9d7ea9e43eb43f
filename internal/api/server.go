// Package api provides the read-only HTTP API over the fragrance catalog.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/http/response"
	"github.com/scentdex/scentdex-server/internal/imagesync"
	"github.com/scentdex/scentdex-server/internal/ratelimit"
	"github.com/scentdex/scentdex-server/internal/search"
	"github.com/scentdex/scentdex-server/internal/validation"
)

// Options tunes a Server. The zero value is usable.
type Options struct {
	// CORSOrigins lists allowed browser origins. Empty allows none.
	CORSOrigins []string
	// RateLimiter throttles clients by address. Nil disables throttling.
	RateLimiter *ratelimit.KeyedRateLimiter
	// Now is the clock used for "new release" checks. Defaults to time.Now.
	Now func() time.Time
	// Images serves downloaded images under ImagesPrefix. Nil disables the route.
	Images       *imagesync.Storage
	ImagesPrefix string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog   *catalog.Holder
	palette   *color.Palette
	search    *search.Index
	validator *validation.Validator
	limiter   *ratelimit.KeyedRateLimiter
	images    *imagesync.Storage
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
	now       func() time.Time
}

// NewServer creates the HTTP server with all routes configured.
// palette and searchIndex may be nil.
func NewServer(holder *catalog.Holder, palette *color.Palette, searchIndex *search.Index, opts Options, logger *slog.Logger) *Server {
	if palette == nil {
		palette = color.NewPalette(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		catalog:   holder,
		palette:   palette,
		search:    searchIndex,
		validator: validation.New(),
		limiter:   opts.RateLimiter,
		images:    opts.Images,
		router:    chi.NewRouter(),
		logger:    logger,
		now:       opts.Now,
	}

	s.setupMiddleware(opts.CORSOrigins)

	humaConfig := huma.DefaultConfig("ScentDex API", "1.0.0")
	humaConfig.Info.Description = "Read-only access to the fragrance catalog."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerFragranceRoutes()
	s.registerFacetRoutes()
	s.registerSearchRoutes()
	if s.images != nil {
		s.router.Get(strings.TrimSuffix(opts.ImagesPrefix, "/")+"/{file}", s.handleServeImage)
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found: "+r.URL.Path, s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "method not allowed: "+r.Method, s.logger)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, used to wrap it in tests and to export the OpenAPI document.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag", "X-Catalog-Version"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}

// snapshot returns the catalog currently served.
func (s *Server) snapshot() *catalog.Catalog {
	return s.catalog.Current()
}
