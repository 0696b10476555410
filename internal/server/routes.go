package server

import (
	"os"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/domaingen/domaingen/internal/config"
	"github.com/domaingen/domaingen/internal/observability"
	"github.com/domaingen/domaingen/internal/server/handlers"
)

func (s *Server) registerRoutes() {
	if s.health != nil {
		s.router.Get("/health", s.health.HealthHandler)
		s.router.Get("/health/live", s.health.LivenessHandler)
		s.router.Get("/health/ready", s.health.ReadinessHandler)
		s.router.Get("/health/startup", s.health.StartupHandler)
	}

	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", MetricsHandler)

	if s.api != nil {
		s.router.Route("/api", func(r chi.Router) {
			r.Get("/items", s.api.ListItems)
			r.Post("/items", s.api.SaveItem)
			r.Delete("/items/{id}", s.api.DeleteItem)
			r.Post("/domains", s.api.GenerateDomains)
			r.Post("/domains/{name}", s.api.GenerateDomain)
		})
	}

	s.registerAdminEndpoint()
}

// registerAdminEndpoint mounts POST /admin/signal when DOMAINGEN_ADMIN_TOKEN is
// set, so operators can trigger a config reload or shutdown over HTTP.
func (s *Server) registerAdminEndpoint() {
	tokenVar := config.EnvPrefix + "_ADMIN_TOKEN"
	adminToken := os.Getenv(tokenVar)
	logger := observability.ServerLogger

	if adminToken == "" {
		if logger != nil {
			logger.Debug("Admin signal endpoint disabled (no " + tokenVar + " set)")
		}
		return
	}

	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: adminToken,
		RateLimit: 10,
		RateBurst: 5,
		Manager:   nil,
	})
	s.router.Post("/admin/signal", handler.ServeHTTP)

	if logger != nil {
		logger.Info("Admin signal endpoint enabled",
			zap.String("path", "/admin/signal"),
			zap.String("rate_limit", "10/min, burst 5"))
	}
}
