// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sovradar/internal/config"
	"sovradar/internal/domain/sov"
	"sovradar/internal/server/dashboard"
	"sovradar/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, service sov.Service) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	metricsHandler := handlers.NewMetricsHandler(service)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Read endpoints get a short timeout; refresh drives a full
			// collection run against the upstream API and needs longer.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(cfg.ReadTimeout))

				r.Route("/metrics", func(r chi.Router) {
					r.Get("/overall", metricsHandler.GetOverall)
					r.Get("/keywords", metricsHandler.GetByKeyword)
				})
				r.Get("/records", metricsHandler.GetRecords)
				r.Get("/insights", metricsHandler.GetInsights)
				r.Get("/filters", metricsHandler.GetFilters)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(cfg.RefreshTimeout))
				r.Post("/refresh", metricsHandler.Refresh)
			})
		})
	})

	// Dashboard single-page app
	router.Get("/", dashboard.Handler())

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
