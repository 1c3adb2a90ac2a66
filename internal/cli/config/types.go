// Package config loads and validates the otelview CLI/server configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Port the workbench listens on.
	Port int `koanf:"port" validate:"gte=0,lte=65535"`
	// Watch enables the configs directory watcher.
	Watch bool `koanf:"watch"`
	// AutoOpen opens the browser on serve.
	AutoOpen bool `koanf:"auto_open"`
	// ConfigsDir is a local directory of collector config samples.
	ConfigsDir string `koanf:"configs_dir"`
	// StatePath is the SQLite state database location.
	StatePath string `koanf:"state_path" validate:"required"`
	// SessionSecret signs the session cookie. Dev-grade by default.
	SessionSecret string `koanf:"session_secret"`
	// RemoteValidationURL enables server-side validation when set.
	RemoteValidationURL string `koanf:"remote_validation_url" validate:"omitempty,url"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// Output selects the CLI rendering mode.
	Output string `koanf:"output" validate:"omitempty,oneof=auto text json"`
}

// Default configuration values.
const (
	DefaultPort       = 8765
	DefaultConfigsDir = "configs"
	DefaultStateFile  = ".otelview/state.db"
	DefaultOutput     = "auto"
	DefaultSecret     = "otelview-dev-secret-change-in-production"
)

func defaults() map[string]any {
	return map[string]any{
		"port":           DefaultPort,
		"watch":          true,
		"auto_open":      true,
		"configs_dir":    DefaultConfigsDir,
		"state_path":     DefaultStateFile,
		"session_secret": DefaultSecret,
		"output":         DefaultOutput,
	}
}
