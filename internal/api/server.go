// Package api provides the HTTP API server and handlers for the BrewLog application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/brewlogapp/brewlog-server/internal/http/response"
	"github.com/brewlogapp/brewlog-server/internal/ratelimit"
	"github.com/brewlogapp/brewlog-server/internal/service"
	"github.com/brewlogapp/brewlog-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService      *service.AuthService
	bagService       *service.BagService
	brewService      *service.BrewService
	analyticsService *service.AnalyticsService
	feedService      *service.FeedService
	validator        *validation.Validator
	limiter          *ratelimit.KeyedRateLimiter
	corsOrigins      []string
	router           *chi.Mux
	logger           *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	authService *service.AuthService,
	bagService *service.BagService,
	brewService *service.BrewService,
	analyticsService *service.AnalyticsService,
	feedService *service.FeedService,
	limiter *ratelimit.KeyedRateLimiter,
	corsOrigins []string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		authService:      authService,
		bagService:       bagService,
		brewService:      brewService,
		analyticsService: analyticsService,
		feedService:      feedService,
		validator:        validation.New(),
		limiter:          limiter,
		corsOrigins:      corsOrigins,
		router:           chi.NewRouter(),
		logger:           logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check, reachable with and without the API prefix.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1. Every request resolves to a user identity (token or guest).
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(s.resolveIdentity)

			r.Route("/bags", func(r chi.Router) {
				r.Post("/", s.handleCreateBag)
				r.Get("/", s.handleListBags)
				r.Get("/{id}", s.handleGetBag)
				r.Patch("/{id}", s.handleUpdateBag)
				r.Patch("/{id}/archive", s.handleArchiveBag)
				r.Patch("/{id}/unarchive", s.handleUnarchiveBag)
				r.Post("/{id}/brews", s.handleCreateBrew)
				r.Get("/{id}/brews", s.handleListBrews)
				r.Patch("/{bagID}/brews/{brewID}/best", s.handleMarkBestBrew)
				r.Get("/{id}/analytics", s.handleBagAnalytics)
			})

			r.Get("/feed/brews", s.handleFeed)
		})
	})
}

// handleHealthCheck returns server liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]bool{"ok": true}, s.logger)
}
