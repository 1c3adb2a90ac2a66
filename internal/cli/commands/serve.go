package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/otelview-labs/otelview/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the otelview workbench",
		Long: `Start a local web server providing the collector configuration workbench.

The workbench provides:
- YAML editor with live structural validation
- Pipeline diagram rendered from valid configurations
- Code, diagram and split view modes with a resizable divider
- Shareable short links with bot-safe previews`,
		Example: `  # Start on the default port
  otelview serve

  # Start on a custom port
  otelview serve --port 3000

  # Start without auto-opening the browser
  otelview serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the configs directory for changes")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Serve static assets from disk instead of the embedded copy")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	// CLI flags override config file.
	port := cfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}
	if watch {
		if _, err := os.Stat(cfg.ConfigsDir); os.IsNotExist(err) {
			watch = false
			cc.Logger.Debug("configs directory missing, watcher disabled", "dir", cfg.ConfigsDir)
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer func() { _ = store.Close() }()

	serverCfg := ui.Config{
		Store:         store,
		Port:          port,
		Watch:         watch,
		ConfigsDir:    cfg.ConfigsDir,
		SessionSecret: sessionSecret(cfg.SessionSecret),
		RemoteURL:     cfg.RemoteValidationURL,
		IsDev:         opts.Dev,
		Logger:        cc.Logger,
	}

	server := ui.NewServer(serverCfg)

	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	cc.Renderer.Successf("Starting otelview on http://localhost:%d", port)
	cc.Renderer.Mutedf("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// sessionSecret prefers the environment over the configured value so the
// dev-grade default never has to appear in a config file.
func sessionSecret(configured string) string {
	if secret := os.Getenv("OTELVIEW_SESSION_SECRET"); secret != "" {
		return secret
	}
	return configured
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
