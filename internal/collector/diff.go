package collector

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one line of a line-level diff against another configuration.
type DiffLine struct {
	// Op is '+' for added, '-' for removed, ' ' for unchanged.
	Op   byte
	Text string
}

// DiffDefault returns a line-level diff of text against the documented
// default configuration. An empty slice means the texts are equivalent.
func DiffDefault(text string) []DiffLine {
	return Diff(DefaultConfig, text)
}

// Diff computes a line-level diff from old to new.
func Diff(oldText, newText string) []DiffLine {
	if normalize(oldText) == normalize(newText) {
		return nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		var op byte
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = '+'
		case diffmatchpatch.DiffDelete:
			op = '-'
		default:
			op = ' '
		}
		for _, line := range splitLines(d.Text) {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
