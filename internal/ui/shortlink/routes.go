package shortlink

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/state"
	"github.com/otelview-labs/otelview/internal/ui/session"
)

// SetupRoutes registers the short-link routes. The crawler rewrite
// middleware is mounted by the router, not here, so it can run before
// route matching.
func SetupRoutes(router chi.Router, store state.Store, sessions *session.Manager, m *metrics.Metrics, logger *slog.Logger) error {
	handlers := NewHandlers(store, sessions, m, logger)

	router.Post("/api/links", handlers.Create)
	router.Get("/s/{id}", handlers.Resolve)
	router.Get("/s/{id}/preview", handlers.Preview)

	return nil
}
