package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/otelview-labs/otelview/internal/cli/output"
	"github.com/otelview-labs/otelview/internal/collector"
)

// DiffOptions holds options for the diff command.
type DiffOptions struct {
	Format string
}

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	opts := &DiffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <file> [file2]",
		Short: "Diff a configuration against the starter or another file",
		Long: `Show a line-level diff between two collector configuration files.
With a single argument the file is compared against the built-in starter
configuration, which is useful to see how far a config has drifted from
the default.`,
		Example: `  # Compare against the starter configuration
  otelview diff collector.yaml

  # Compare two files
  otelview diff old.yaml new.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

var (
	addStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	delStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func runDiff(cmd *cobra.Command, opts *DiffOptions, args []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	newText, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	oldText := collector.DefaultConfig
	oldName := "starter configuration"
	if len(args) == 2 {
		oldText = newText
		oldName = args[0]
		newText, err = readInput(cmd, args[1])
		if err != nil {
			return err
		}
	}

	lines := collector.Diff(oldText, newText)

	if r.IsJSON() {
		type jsonLine struct {
			Op   string `json:"op"`
			Text string `json:"text"`
		}
		out := make([]jsonLine, 0, len(lines))
		for _, l := range lines {
			out = append(out, jsonLine{Op: string(l.Op), Text: l.Text})
		}
		return r.JSON(out)
	}

	if len(lines) == 0 {
		r.Successf("No differences against %s", oldName)
		return nil
	}

	for _, l := range lines {
		line := fmt.Sprintf("%c %s", l.Op, l.Text)
		switch l.Op {
		case '+':
			fmt.Fprintln(cmd.OutOrStdout(), addStyle.Render(line))
		case '-':
			fmt.Fprintln(cmd.OutOrStdout(), delStyle.Render(line))
		default:
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
	return nil
}
