package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	err := structValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

// ValidateConfigsDir checks that the configs directory exists when watching
// is enabled. Serve calls this; other commands do not need the directory.
func (c *Config) ValidateConfigsDir() error {
	if !c.Watch || c.ConfigsDir == "" {
		return nil
	}
	if _, err := os.Stat(c.ConfigsDir); os.IsNotExist(err) {
		return fmt.Errorf("configs directory does not exist: %s\nHint: create it or set --configs-dir", c.ConfigsDir)
	}
	return nil
}

// envKeyMapper turns OTELVIEW_STATE_PATH into state_path.
func envKeyMapper(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "OTELVIEW_"))
}
