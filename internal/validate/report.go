// Package validate combines local structural validation of collector
// configurations with optional out-of-band remote validation into a single
// unified report.
package validate

import "github.com/otelview-labs/otelview/internal/collector"

// Report is the unified validation result. It is recomputed from scratch on
// every run, never mutated incrementally. A top-level parse error and
// field-level issues are mutually exclusive: when ParseError is set the
// document could not be read and no issues are produced.
type Report struct {
	ParseError *collector.ParseError
	Issues     []collector.Issue
}

// Empty is the report returned before the editor session is ready.
var Empty = Report{}

// Valid reports whether the configuration may be handed to the diagram:
// no parse error and zero error-severity issues. Warnings do not block.
func (r Report) Valid() bool {
	if r.ParseError != nil {
		return false
	}
	for _, iss := range r.Issues {
		if iss.Severity == collector.SeverityError {
			return false
		}
	}
	return true
}

// ErrorCount returns the number of error-severity issues.
func (r Report) ErrorCount() int {
	n := 0
	for _, iss := range r.Issues {
		if iss.Severity == collector.SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity issues.
func (r Report) WarningCount() int {
	n := 0
	for _, iss := range r.Issues {
		if iss.Severity == collector.SeverityWarning {
			n++
		}
	}
	return n
}

// Marker is an inline annotation for the text editing surface.
type Marker struct {
	Line     int                `json:"line"`
	Column   int                `json:"column"`
	Message  string             `json:"message"`
	Severity collector.Severity `json:"severity"`
}

// Markers converts the report into editor annotations.
func (r Report) Markers() []Marker {
	if r.ParseError != nil {
		line := r.ParseError.Line
		if line < 1 {
			line = 1
		}
		col := r.ParseError.Column
		if col < 1 {
			col = 1
		}
		return []Marker{{
			Line:     line,
			Column:   col,
			Message:  r.ParseError.Message,
			Severity: collector.SeverityError,
		}}
	}
	markers := make([]Marker, 0, len(r.Issues))
	for _, iss := range r.Issues {
		markers = append(markers, Marker{
			Line:     iss.Line,
			Column:   iss.Column,
			Message:  iss.Message,
			Severity: iss.Severity,
		})
	}
	return markers
}
