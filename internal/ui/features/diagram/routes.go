package diagram

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/otelview-labs/otelview/internal/ui/session"
)

// SetupRoutes registers the diagram feature routes.
func SetupRoutes(router chi.Router, sessions *session.Manager, logger *slog.Logger) error {
	handlers := NewHandlers(sessions, logger)

	router.Get("/api/diagram", handlers.DiagramData)
	router.Post("/diagram/lock", handlers.SetLock)

	return nil
}
