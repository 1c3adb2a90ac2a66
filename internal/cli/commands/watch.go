package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/otelview-labs/otelview/internal/tui"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a directory of configs with live validation",
		Long: `Open a terminal view that lists every collector configuration file in a
directory with its validation status and re-validates files as they change
on disk.`,
		Example: `  # Watch the configured configs directory
  otelview watch

  # Watch a specific directory
  otelview watch ./deploy/collectors`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			dir = cc.Cfg.ConfigsDir
			if len(args) > 0 {
				dir = args[0]
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return fmt.Errorf("not a directory: %s", dir)
			}
			return tui.Run(dir)
		},
	}

	return cmd
}
