// Package ui provides the web workbench server for otelview.
package ui

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/otelview-labs/otelview/internal/analytics"
	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/state"
	"github.com/otelview-labs/otelview/internal/ui/notifier"
	"github.com/otelview-labs/otelview/internal/ui/router"
	"github.com/otelview-labs/otelview/internal/ui/session"
	"github.com/otelview-labs/otelview/internal/ui/shortlink"
	"github.com/otelview-labs/otelview/internal/validate"
)

// Server is the main UI server.
type Server struct {
	store      state.Store
	sessions   *session.Manager
	notifier   *notifier.Notifier
	tracker    *analytics.Tracker
	metrics    *metrics.Metrics
	port       int
	watch      bool
	configsDir string
	isDev      bool
	logger     *slog.Logger
}

// Config holds configuration for the UI server.
type Config struct {
	Store         state.Store
	Port          int
	Watch         bool
	ConfigsDir    string
	SessionSecret string
	RemoteURL     string // empty disables server-side validation
	IsDev         bool
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	notify := notifier.New()
	m := metrics.New()

	var remote validate.RemoteValidator
	if cfg.RemoteURL != "" {
		remote = validate.NewHTTPValidator(cfg.RemoteURL)
	}

	sessions := session.NewManager(cfg.SessionSecret, func(_ *session.State) *validate.Aggregator {
		opts := []validate.Option{
			validate.WithOnUpdate(func(validate.Report) {
				notify.Broadcast(notifier.SignalValidation)
			}),
		}
		if remote != nil {
			opts = append(opts, validate.WithRemote(remote))
		}
		return validate.NewAggregator(cfg.Logger, opts...)
	})

	return &Server{
		store:      cfg.Store,
		sessions:   sessions,
		notifier:   notify,
		tracker:    analytics.New(cfg.Store, m, cfg.Logger),
		metrics:    m,
		port:       cfg.Port,
		watch:      cfg.Watch,
		configsDir: cfg.ConfigsDir,
		isDev:      cfg.IsDev,
		logger:     cfg.Logger,
	}
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting workbench", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
		shortlink.RewriteBots(s.metrics, s.logger),
	)

	deps := router.Deps{
		Store:    s.store,
		Sessions: s.sessions,
		Notifier: s.notifier,
		Tracker:  s.tracker,
		Metrics:  s.metrics,
		Logger:   s.logger,
		IsDev:    s.isDev,
	}
	if err := router.SetupRoutes(r, deps); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.configsDir != "" {
		eg.Go(func() error {
			return s.watchConfigs(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down workbench...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchConfigs watches the local configs directory and broadcasts a
// debounced signal so open sessions revalidate against fresh samples.
func (s *Server) watchConfigs(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.configsDir); err != nil {
		s.logger.Error("failed to watch configs directory", "error", err)
		// Continue without watching.
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ext := filepath.Ext(event.Name)
			if ext != ".yaml" && ext != ".yml" {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("configs changed, notifying sessions", "file", event.Name)
				s.notifier.Broadcast(notifier.SignalConfigs)
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
