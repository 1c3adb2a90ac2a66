package editor

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/otelview-labs/otelview/internal/analytics"
	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/ui/notifier"
	"github.com/otelview-labs/otelview/internal/ui/session"
)

// SetupRoutes registers the editor feature routes.
func SetupRoutes(
	router chi.Router,
	sessions *session.Manager,
	notify *notifier.Notifier,
	tracker *analytics.Tracker,
	m *metrics.Metrics,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(sessions, notify, tracker, m, logger)

	router.Get("/", handlers.EditorPage)
	router.Post("/editor/apply", handlers.Apply)
	router.Get("/editor/updates", handlers.Updates)
	router.Post("/welcome/dismiss", handlers.DismissWelcome)

	return nil
}
