package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/otelview-labs/otelview/internal/cli/output"
	"github.com/otelview-labs/otelview/internal/validate"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Format string
	Remote bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate collector configuration files",
		Long: `Run structural validation against one or more collector configuration
files and report the findings. Use "-" to read from stdin.

Exit code is 1 when any file has an error-severity finding.`,
		Example: `  # Validate a single file
  otelview validate collector.yaml

  # Validate several files
  otelview validate configs/*.yaml

  # Validate stdin
  cat collector.yaml | otelview validate -

  # Machine-readable output
  otelview validate collector.yaml --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.Remote, "remote", false, "Also run remote validation (requires remote_validation_url)")

	return cmd
}

// fileReport pairs a file with its validation result for JSON output.
type fileReport struct {
	File     string          `json:"file"`
	Valid    bool            `json:"valid"`
	Parse    *jsonParseError `json:"parse_error,omitempty"`
	Findings []jsonIssue     `json:"findings,omitempty"`
}

type jsonParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type jsonIssue struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

func runValidate(cmd *cobra.Command, opts *ValidateOptions, args []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	var remote validate.RemoteValidator
	if opts.Remote {
		if cc.Cfg.RemoteValidationURL == "" {
			return fmt.Errorf("--remote requires remote_validation_url to be configured")
		}
		remote = validate.NewHTTPValidator(cc.Cfg.RemoteValidationURL)
	}

	var reports []fileReport
	invalid := false

	for _, arg := range args {
		text, err := readInput(cmd, arg)
		if err != nil {
			return err
		}

		report := validate.Local(text)
		if remote != nil && report.ParseError == nil {
			issues, err := remote.Validate(cmd.Context(), text)
			if err != nil {
				cc.Logger.Warn("remote validation failed", "file", arg, "error", err)
			} else {
				report.Issues = append(report.Issues, issues...)
			}
		}

		if !report.Valid() {
			invalid = true
		}
		reports = append(reports, toFileReport(arg, report))
	}

	if r.IsJSON() {
		if err := r.JSON(reports); err != nil {
			return err
		}
	} else {
		renderReports(r, reports)
	}

	if invalid {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func readInput(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), nil
}

func toFileReport(file string, report validate.Report) fileReport {
	fr := fileReport{File: file, Valid: report.Valid()}
	if report.ParseError != nil {
		fr.Parse = &jsonParseError{
			Message: report.ParseError.Message,
			Line:    report.ParseError.Line,
			Column:  report.ParseError.Column,
		}
	}
	for _, iss := range report.Issues {
		fr.Findings = append(fr.Findings, jsonIssue{
			Path:     iss.Path,
			Message:  iss.Message,
			Severity: string(iss.Severity),
			Line:     iss.Line,
			Column:   iss.Column,
		})
	}
	return fr
}

func renderReports(r *output.Renderer, reports []fileReport) {
	for _, fr := range reports {
		if fr.Valid && fr.Parse == nil && len(fr.Findings) == 0 {
			r.Successf("%s: valid", fr.File)
			continue
		}

		if fr.Parse != nil {
			loc := ""
			if fr.Parse.Line > 0 {
				loc = fmt.Sprintf(" (line %d)", fr.Parse.Line)
			}
			r.Errorf("%s: parse error%s: %s", fr.File, loc, fr.Parse.Message)
			continue
		}

		if fr.Valid {
			r.Warnf("%s: valid with %d warning(s)", fr.File, len(fr.Findings))
		} else {
			r.Errorf("%s: invalid", fr.File)
		}

		rows := make([][]string, 0, len(fr.Findings))
		for _, f := range fr.Findings {
			line := ""
			if f.Line > 0 {
				line = strconv.Itoa(f.Line)
			}
			rows = append(rows, []string{f.Severity, line, f.Path, f.Message})
		}
		r.Table([]string{"Severity", "Line", "Path", "Message"}, rows)
	}
}
