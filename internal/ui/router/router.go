// Package router sets up HTTP routes for the UI server.
package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/otelview-labs/otelview/internal/analytics"
	"github.com/otelview-labs/otelview/internal/collector"
	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/state"
	diagramFeature "github.com/otelview-labs/otelview/internal/ui/features/diagram"
	editorFeature "github.com/otelview-labs/otelview/internal/ui/features/editor"
	viewFeature "github.com/otelview-labs/otelview/internal/ui/features/view"
	"github.com/otelview-labs/otelview/internal/ui/notifier"
	"github.com/otelview-labs/otelview/internal/ui/resources"
	"github.com/otelview-labs/otelview/internal/ui/session"
	"github.com/otelview-labs/otelview/internal/ui/shortlink"
)

// Deps bundles everything the routes need. State is explicit and owned by
// the server; nothing reads ambient globals.
type Deps struct {
	Store    state.Store
	Sessions *session.Manager
	Notifier *notifier.Notifier
	Tracker  *analytics.Tracker
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	IsDev    bool
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	if deps.IsDev {
		setupReload(router)
	}

	router.Handle("/static/*", resources.Handler())
	router.Handle("/metrics", deps.Metrics.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Get("/api/samples", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(collector.Samples()); err != nil {
			deps.Logger.Debug("encode samples", "error", err)
		}
	})

	if err := editorFeature.SetupRoutes(router, deps.Sessions, deps.Notifier, deps.Tracker, deps.Metrics, deps.Logger); err != nil {
		return err
	}
	if err := viewFeature.SetupRoutes(router, deps.Sessions, deps.Logger); err != nil {
		return err
	}
	if err := diagramFeature.SetupRoutes(router, deps.Sessions, deps.Logger); err != nil {
		return err
	}
	if err := shortlink.SetupRoutes(router, deps.Store, deps.Sessions, deps.Metrics, deps.Logger); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
