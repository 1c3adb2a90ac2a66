package collector

import (
	"testing"
)

func TestDiff_Identical(t *testing.T) {
	if lines := Diff(DefaultConfig, DefaultConfig); lines != nil {
		t.Errorf("identical texts should produce no diff, got %v", lines)
	}
}

func TestDiff_NormalizedEquivalent(t *testing.T) {
	if lines := Diff(DefaultConfig, DefaultConfig+"\n"); lines != nil {
		t.Errorf("trailing newline should not produce a diff, got %v", lines)
	}
}

func TestDiff_AddedLine(t *testing.T) {
	oldText := "receivers:\n  otlp:\n"
	newText := "receivers:\n  otlp:\n  jaeger:\n"

	lines := Diff(oldText, newText)
	var added []string
	for _, l := range lines {
		if l.Op == '+' {
			added = append(added, l.Text)
		}
	}
	if len(added) != 1 || added[0] != "  jaeger:" {
		t.Errorf("added lines = %v, want [  jaeger:]", added)
	}
}

func TestDiff_RemovedLine(t *testing.T) {
	oldText := "a: 1\nb: 2\nc: 3\n"
	newText := "a: 1\nc: 3\n"

	lines := Diff(oldText, newText)
	var removed []string
	for _, l := range lines {
		if l.Op == '-' {
			removed = append(removed, l.Text)
		}
	}
	if len(removed) != 1 || removed[0] != "b: 2" {
		t.Errorf("removed lines = %v, want [b: 2]", removed)
	}
}

func TestDiffDefault(t *testing.T) {
	if lines := DiffDefault(DefaultConfig); lines != nil {
		t.Errorf("default against itself should be empty, got %v", lines)
	}
	if lines := DiffDefault("service:\n  pipelines:\n"); len(lines) == 0 {
		t.Error("different text should produce a diff")
	}
}
