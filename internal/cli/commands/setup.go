// Package commands implements the otelview subcommands.
package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/otelview-labs/otelview/internal/cli/config"
	"github.com/otelview-labs/otelview/internal/cli/output"
	"github.com/otelview-labs/otelview/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's loaded
// configuration and output settings.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to environment
// variables with defaults when PersistentPreRunE has not run.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Port:          config.DefaultPort,
		Watch:         true,
		AutoOpen:      true,
		ConfigsDir:    getEnvOrDefault("OTELVIEW_CONFIGS_DIR", config.DefaultConfigsDir),
		StatePath:     getEnvOrDefault("OTELVIEW_STATE_PATH", config.DefaultStateFile),
		SessionSecret: getEnvOrDefault("OTELVIEW_SESSION_SECRET", config.DefaultSecret),
		Verbose:       os.Getenv("OTELVIEW_VERBOSE") == "true",
		Output:        getEnvOrDefault("OTELVIEW_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens and migrates the SQLite state database, creating the
// parent directory if needed.
func openStore(cfg *config.Config) (*state.SQLiteStore, error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, err
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
