// Package output renders CLI results. Output adapts to the environment:
// styled text on a terminal, plain text when piped, JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
)

// Mode selects the rendering style.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Renderer writes results in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styled bool
}

// NewRenderer creates a renderer. Mode auto resolves to styled text on a
// color terminal and plain text otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	styled := false
	if mode == "" {
		mode = ModeAuto
	}
	if mode == ModeAuto {
		mode = ModeText
		styled = termenv.DefaultOutput().Profile != termenv.Ascii
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styled: styled}
}

// IsJSON reports whether JSON output was requested.
func (r *Renderer) IsJSON() bool { return r.mode == ModeJSON }

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes a table with the given header and rows.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	h := make(table.Row, len(header))
	for i, col := range header {
		h[i] = col
	}
	t.AppendHeader(h)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.styled {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	t.Render()
}

// Successf writes a success line.
func (r *Renderer) Successf(format string, args ...any) {
	r.line(r.out, successStyle, format, args...)
}

// Errorf writes an error line to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	r.line(r.errOut, errorStyle, format, args...)
}

// Warnf writes a warning line.
func (r *Renderer) Warnf(format string, args ...any) {
	r.line(r.out, warnStyle, format, args...)
}

// Mutedf writes a de-emphasized line.
func (r *Renderer) Mutedf(format string, args ...any) {
	r.line(r.out, mutedStyle, format, args...)
}

func (r *Renderer) line(w io.Writer, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.styled {
		msg = style.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
