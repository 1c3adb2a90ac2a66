package view

import "testing"

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"code":    ModeCode,
		"diagram": ModeDiagram,
		"split":   ModeSplit,
		"":        ModeSplit,
		"bogus":   ModeSplit,
		"CODE":    ModeSplit,
	}
	for in, want := range cases {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPanelWidth(t *testing.T) {
	tests := []struct {
		mode  Mode
		width int
		want  string
	}{
		{ModeCode, 480, "100%"},
		{ModeCode, 0, "100%"},
		{ModeDiagram, 480, "0px"},
		{ModeSplit, 480, "480px"},
		{ModeSplit, 0, "0px"},
		{ModeSplit, 1200, "1200px"},
	}
	for _, tt := range tests {
		if got := PanelWidth(tt.mode, tt.width); got != tt.want {
			t.Errorf("PanelWidth(%s, %d) = %q, want %q", tt.mode, tt.width, got, tt.want)
		}
	}
}
