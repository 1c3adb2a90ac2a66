// Package view tracks which panels render (code, diagram, or both) and
// derives the split layout width.
package view

import "fmt"

// Mode enumerates the panel layouts.
type Mode string

const (
	ModeCode    Mode = "code"
	ModeDiagram Mode = "diagram"
	ModeSplit   Mode = "split"
)

// ParseMode maps a raw string to a Mode, defaulting to split.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeCode, ModeDiagram, ModeSplit:
		return Mode(s)
	}
	return ModeSplit
}

// PanelWidth maps (mode, width) to the CSS width of the code panel:
// code fills the view, diagram collapses it, split uses the stored pixels.
func PanelWidth(mode Mode, width int) string {
	switch mode {
	case ModeCode:
		return "100%"
	case ModeDiagram:
		return "0px"
	default:
		return fmt.Sprintf("%dpx", width)
	}
}
