package view

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/otelview-labs/otelview/internal/ui/session"
)

// SetupRoutes registers the view feature routes.
func SetupRoutes(router chi.Router, sessions *session.Manager, logger *slog.Logger) error {
	handlers := NewHandlers(sessions, logger)

	router.Post("/view/mode", handlers.SetMode)
	router.Post("/view/width", handlers.SetWidth)

	return nil
}
