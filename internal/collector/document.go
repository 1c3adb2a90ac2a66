// Package collector provides the OpenTelemetry Collector configuration
// document model. It parses collector YAML into a structured Document and
// performs the structural checks that back field-level validation issues.
package collector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section names recognized at the top level of a collector config.
const (
	SectionReceivers  = "receivers"
	SectionProcessors = "processors"
	SectionExporters  = "exporters"
	SectionConnectors = "connectors"
	SectionExtensions = "extensions"
	SectionService    = "service"
)

// Entry is a single component definition inside a section.
type Entry struct {
	// ID is the full component identifier, e.g. "otlp" or "otlp/internal".
	ID string
	// Line and Column locate the key in the source text (1-based).
	Line   int
	Column int
	// Value is the raw configuration node for the component.
	Value *yaml.Node
}

// Type returns the component type portion of an ID ("otlp/internal" -> "otlp").
func (e Entry) Type() string {
	return ComponentType(e.ID)
}

// ComponentType returns the type portion of a component ID.
func ComponentType(id string) string {
	if i := strings.IndexByte(id, '/'); i >= 0 {
		return id[:i]
	}
	return id
}

// Section holds the component definitions of one top-level section,
// keyed by the full component ID. Order holds IDs in source order.
type Section struct {
	Entries map[string]Entry
	Order   []string
	// Duplicates holds repeated component IDs; the first definition wins.
	Duplicates []Ref
	Line       int
	Present    bool
}

// Ref is a reference to a component from a service pipeline.
type Ref struct {
	ID     string
	Line   int
	Column int
}

// Pipeline is one entry under service.pipelines.
type Pipeline struct {
	Name       string
	Line       int
	Receivers  []Ref
	Processors []Ref
	Exporters  []Ref
}

// Signal returns the telemetry signal of a pipeline name
// ("traces/backend" -> "traces"). Empty if the name has no known signal.
func (p Pipeline) Signal() string {
	sig := ComponentType(p.Name)
	switch sig {
	case "traces", "metrics", "logs", "profiles":
		return sig
	}
	return ""
}

// Service is the service section of a collector config.
type Service struct {
	Present    bool
	Line       int
	Pipelines  map[string]Pipeline
	Order      []string
	Extensions []Ref
}

// Document is a parsed collector configuration.
type Document struct {
	Receivers  Section
	Processors Section
	Exporters  Section
	Connectors Section
	Extensions Section
	Service    Service

	// Unknown holds top-level keys that are not collector sections.
	Unknown []Ref
}

// ParseError is a top-level YAML failure. It is mutually exclusive with a
// usable Document: when non-nil, no field-level checks run.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// yamlLineRe extracts the line number yaml.v3 embeds in its error strings.
var yamlLineRe = regexp.MustCompile(`line (\d+):\s*(.*)`)

// Parse parses collector YAML source into a Document. A nil Document with a
// non-nil ParseError indicates the text could not be read at all; structural
// problems inside an otherwise well-formed document are reported by Check,
// not here.
func Parse(text string) (*Document, *ParseError) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, newParseError(err)
	}

	doc := &Document{
		Receivers:  newSection(),
		Processors: newSection(),
		Exporters:  newSection(),
		Connectors: newSection(),
		Extensions: newSection(),
		Service:    Service{Pipelines: map[string]Pipeline{}},
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty input parses to an empty document.
		return doc, nil
	}

	body := root.Content[0]
	if body.Kind != yaml.MappingNode {
		if body.Kind == yaml.ScalarNode && body.Value == "" {
			return doc, nil
		}
		return nil, &ParseError{
			Message: "configuration must be a YAML mapping",
			Line:    body.Line,
			Column:  body.Column,
		}
	}

	for i := 0; i+1 < len(body.Content); i += 2 {
		key, val := body.Content[i], body.Content[i+1]
		switch key.Value {
		case SectionReceivers:
			doc.Receivers = parseSection(key, val)
		case SectionProcessors:
			doc.Processors = parseSection(key, val)
		case SectionExporters:
			doc.Exporters = parseSection(key, val)
		case SectionConnectors:
			doc.Connectors = parseSection(key, val)
		case SectionExtensions:
			doc.Extensions = parseSection(key, val)
		case SectionService:
			doc.Service = parseService(key, val)
		default:
			doc.Unknown = append(doc.Unknown, Ref{ID: key.Value, Line: key.Line, Column: key.Column})
		}
	}

	return doc, nil
}

func newParseError(err error) *ParseError {
	msg := err.Error()
	// yaml.v3 wraps everything in a "yaml: " prefix.
	msg = strings.TrimPrefix(msg, "yaml: ")
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ParseError{Message: m[2], Line: line}
	}
	return &ParseError{Message: msg}
}

func newSection() Section {
	return Section{Entries: map[string]Entry{}}
}

func parseSection(key, val *yaml.Node) Section {
	s := Section{Entries: map[string]Entry{}, Line: key.Line, Present: true}
	if val.Kind != yaml.MappingNode {
		return s
	}
	for i := 0; i+1 < len(val.Content); i += 2 {
		k, v := val.Content[i], val.Content[i+1]
		if _, dup := s.Entries[k.Value]; dup {
			// Keep the first definition; Check reports the duplicate.
			s.Duplicates = append(s.Duplicates, Ref{ID: k.Value, Line: k.Line, Column: k.Column})
			continue
		}
		s.Entries[k.Value] = Entry{ID: k.Value, Line: k.Line, Column: k.Column, Value: v}
		s.Order = append(s.Order, k.Value)
	}
	return s
}

func parseService(key, val *yaml.Node) Service {
	svc := Service{Present: true, Line: key.Line, Pipelines: map[string]Pipeline{}}
	if val.Kind != yaml.MappingNode {
		return svc
	}
	for i := 0; i+1 < len(val.Content); i += 2 {
		k, v := val.Content[i], val.Content[i+1]
		switch k.Value {
		case "pipelines":
			parsePipelines(&svc, v)
		case "extensions":
			svc.Extensions = parseRefList(v)
		}
	}
	return svc
}

func parsePipelines(svc *Service, node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		p := Pipeline{Name: k.Value, Line: k.Line}
		if v.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(v.Content); j += 2 {
				pk, pv := v.Content[j], v.Content[j+1]
				switch pk.Value {
				case SectionReceivers:
					p.Receivers = parseRefList(pv)
				case SectionProcessors:
					p.Processors = parseRefList(pv)
				case SectionExporters:
					p.Exporters = parseRefList(pv)
				}
			}
		}
		if _, dup := svc.Pipelines[k.Value]; !dup {
			svc.Pipelines[k.Value] = p
			svc.Order = append(svc.Order, k.Value)
		}
	}
}

func parseRefList(node *yaml.Node) []Ref {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	refs := make([]Ref, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			continue
		}
		refs = append(refs, Ref{ID: item.Value, Line: item.Line, Column: item.Column})
	}
	return refs
}
