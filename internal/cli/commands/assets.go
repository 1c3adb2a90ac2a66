package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/otelview-labs/otelview/internal/ui/assets"
	"github.com/otelview-labs/otelview/internal/ui/resources"
)

// NewAssetsCommand creates the assets command.
func NewAssetsCommand() *cobra.Command {
	var srcDir string
	var outDir string
	var minify bool

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Rebuild the bundled frontend assets",
		Long: `Bundle the frontend source tree with esbuild and write the result
into the static directory served by the workbench. The output is embedded
into the binary on the next build.`,
		Example: `  # Rebuild from the default source tree
  otelview assets

  # Unminified output for debugging
  otelview assets --minify=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssets(cmd, srcDir, outDir, minify)
		},
	}

	cmd.Flags().StringVar(&srcDir, "src", "web/src", "Frontend source directory")
	cmd.Flags().StringVar(&outDir, "out", resources.StaticDirectoryPath, "Output directory for bundled assets")
	cmd.Flags().BoolVar(&minify, "minify", true, "Minify the bundled output")

	return cmd
}

func runAssets(cmd *cobra.Command, srcDir, outDir string, minify bool) error {
	cc := NewCommandContext(cmd)

	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		return fmt.Errorf("frontend source directory does not exist: %s", srcDir)
	}

	result, err := assets.Build(srcDir, minify)
	if err != nil {
		return fmt.Errorf("bundle frontend: %w", err)
	}
	if err := result.WriteTo(outDir); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}

	cc.Renderer.Successf("Assets written to %s", outDir)
	if result.CSS == "" {
		cc.Renderer.Mutedf("No CSS in bundle; existing stylesheet kept")
	}
	return nil
}
