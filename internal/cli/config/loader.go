package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// a config file.
const maxUpwardSearchLevels = 10

// configFileUsed tracks which file the last load read, for verbose output.
var configFileUsed string

// currentConfig holds the last loaded configuration for command access.
var currentConfig *Config

// GetCurrentConfig returns the configuration loaded by the last LoadConfig.
func GetCurrentConfig() *Config {
	return currentConfig
}

// GetConfigFileUsed returns the config file used by the last LoadConfig.
func GetConfigFileUsed() string { return configFileUsed }

// findConfigFile finds the config file to use.
// Priority: explicit path > otelview.yaml > otelview.yml, searching upward.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return ""
		}
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range []string{"otelview.yaml", "otelview.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// LoadConfig loads configuration from defaults, config file, environment
// variables (OTELVIEW_*) and flags, in ascending precedence.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	configFileUsed = ""

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		configFileUsed = path
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	if err := k.Load(env.Provider("OTELVIEW_", ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		// Flag names use dashes; koanf keys use underscores. Values arrive
		// as strings and are coerced back to the flag's declared type.
		provider := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
			mapped := strings.ReplaceAll(key, "-", "_")
			if f := flags.Lookup(key); f != nil {
				switch f.Value.Type() {
				case "bool":
					return mapped, value == "true"
				case "int":
					if n, err := strconv.Atoi(value); err == nil {
						return mapped, n
					}
				}
			}
			return mapped, value
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	currentConfig = &cfg
	return &cfg, nil
}
