package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/mhrbek/facetone/internal/web/handlers"
)

func (s *Server) setupRoutes(estimator handlers.Estimator) {
	toneHandler := handlers.NewToneHandler(estimator)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/tone", toneHandler.Estimate)
	})
}
