package collector

import (
	"testing"
)

func TestParse_DefaultConfig(t *testing.T) {
	doc, perr := Parse(DefaultConfig)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}

	if len(doc.Receivers.Order) != 1 || doc.Receivers.Order[0] != "otlp" {
		t.Errorf("expected one otlp receiver, got %v", doc.Receivers.Order)
	}
	if len(doc.Service.Order) != 3 {
		t.Errorf("expected 3 pipelines, got %v", doc.Service.Order)
	}
	if len(doc.Service.Extensions) != 3 {
		t.Errorf("expected 3 service extensions, got %v", doc.Service.Extensions)
	}

	traces, ok := doc.Service.Pipelines["traces"]
	if !ok {
		t.Fatal("traces pipeline missing")
	}
	if len(traces.Receivers) != 1 || traces.Receivers[0].ID != "otlp" {
		t.Errorf("traces receivers = %v", traces.Receivers)
	}
	if len(traces.Processors) != 1 || traces.Processors[0].ID != "batch" {
		t.Errorf("traces processors = %v", traces.Processors)
	}
}

func TestParse_Empty(t *testing.T) {
	doc, perr := Parse("")
	if perr != nil {
		t.Fatalf("empty input should parse, got %v", perr)
	}
	if doc.Service.Present {
		t.Error("empty document should have no service section")
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, perr := Parse("receivers:\n  otlp: [\n")
	if perr == nil {
		t.Fatal("expected parse error for unclosed sequence")
	}
	if perr.Message == "" {
		t.Error("parse error should carry a message")
	}
}

func TestParse_ErrorLineExtraction(t *testing.T) {
	// Tab indentation is invalid YAML; the error names the line.
	_, perr := Parse("receivers:\n\totlp:\n")
	if perr == nil {
		t.Fatal("expected parse error")
	}
	if perr.Line != 2 {
		t.Errorf("expected error on line 2, got %d (%s)", perr.Line, perr.Message)
	}
}

func TestParse_NonMappingRoot(t *testing.T) {
	_, perr := Parse("- just\n- a\n- list\n")
	if perr == nil {
		t.Fatal("expected parse error for sequence root")
	}
}

func TestParse_UnknownTopLevelKeys(t *testing.T) {
	doc, perr := Parse("recievers:\n  otlp:\nservice:\n  pipelines:\n")
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	if len(doc.Unknown) != 1 || doc.Unknown[0].ID != "recievers" {
		t.Errorf("expected the typo to land in Unknown, got %v", doc.Unknown)
	}
}

func TestParse_DuplicateComponents(t *testing.T) {
	text := `receivers:
  otlp:
    protocols:
      grpc:
  otlp:
    protocols:
      http:
`
	doc, perr := Parse(text)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	if len(doc.Receivers.Order) != 1 {
		t.Errorf("first definition should win, got order %v", doc.Receivers.Order)
	}
	if len(doc.Receivers.Duplicates) != 1 {
		t.Fatalf("expected one duplicate, got %v", doc.Receivers.Duplicates)
	}
	if doc.Receivers.Duplicates[0].Line != 5 {
		t.Errorf("duplicate line = %d, want 5", doc.Receivers.Duplicates[0].Line)
	}
}

func TestComponentType(t *testing.T) {
	cases := map[string]string{
		"otlp":          "otlp",
		"otlp/internal": "otlp",
		"batch/2":       "batch",
		"":              "",
	}
	for id, want := range cases {
		if got := ComponentType(id); got != want {
			t.Errorf("ComponentType(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestPipelineSignal(t *testing.T) {
	cases := map[string]string{
		"traces":          "traces",
		"traces/backend":  "traces",
		"metrics":         "metrics",
		"logs/2":          "logs",
		"profiles":        "profiles",
		"events":          "",
		"tracesandthings": "",
	}
	for name, want := range cases {
		p := Pipeline{Name: name}
		if got := p.Signal(); got != want {
			t.Errorf("Signal(%q) = %q, want %q", name, got, want)
		}
	}
}
