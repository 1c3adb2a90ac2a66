package collector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/otelview-labs/otelview/internal/graph"
)

// Severity of a structural issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a field-level finding inside an otherwise parseable document.
type Issue struct {
	// Path is the dotted location, e.g. "service.pipelines.traces.receivers".
	Path     string
	Message  string
	Severity Severity
	Line     int
	Column   int
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// Check runs all structural checks against a parsed document and returns
// findings sorted by source position. The document itself is never mutated.
func Check(doc *Document) []Issue {
	if doc == nil {
		return nil
	}

	var issues []Issue
	add := func(iss Issue) { issues = append(issues, iss) }

	for _, u := range doc.Unknown {
		add(Issue{
			Path:     u.ID,
			Message:  fmt.Sprintf("unknown top-level section %q", u.ID),
			Severity: SeverityWarning,
			Line:     u.Line,
			Column:   u.Column,
		})
	}

	checkDuplicates(doc, add)

	if !doc.Service.Present {
		add(Issue{
			Path:     "service",
			Message:  "service section is required",
			Severity: SeverityError,
			Line:     1,
			Column:   1,
		})
		return issues
	}

	if len(doc.Service.Pipelines) == 0 {
		add(Issue{
			Path:     "service.pipelines",
			Message:  "at least one pipeline must be defined",
			Severity: SeverityError,
			Line:     doc.Service.Line,
			Column:   1,
		})
	}

	used := map[string]map[string]bool{
		SectionReceivers:  {},
		SectionProcessors: {},
		SectionExporters:  {},
		SectionConnectors: {},
		SectionExtensions: {},
	}

	for _, name := range doc.Service.Order {
		checkPipeline(doc, doc.Service.Pipelines[name], used, add)
	}

	for _, ext := range doc.Service.Extensions {
		path := "service.extensions"
		if _, ok := doc.Extensions.Entries[ext.ID]; !ok {
			add(Issue{
				Path:     path,
				Message:  fmt.Sprintf("extension %q is not defined in extensions", ext.ID),
				Severity: SeverityError,
				Line:     ext.Line,
				Column:   ext.Column,
			})
			continue
		}
		used[SectionExtensions][ext.ID] = true
	}

	checkUnused(doc, used, add)
	checkConnectors(doc, used, add)
	checkConnectorCycles(doc, add)

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Column < issues[j].Column
	})
	return issues
}

func checkDuplicates(doc *Document, add func(Issue)) {
	for _, sec := range []struct {
		name string
		s    Section
	}{
		{SectionReceivers, doc.Receivers},
		{SectionProcessors, doc.Processors},
		{SectionExporters, doc.Exporters},
		{SectionConnectors, doc.Connectors},
		{SectionExtensions, doc.Extensions},
	} {
		for _, dup := range sec.s.Duplicates {
			add(Issue{
				Path:     sec.name + "." + dup.ID,
				Message:  fmt.Sprintf("duplicate component ID %q", dup.ID),
				Severity: SeverityError,
				Line:     dup.Line,
				Column:   dup.Column,
			})
		}
	}
}

func checkPipeline(doc *Document, p Pipeline, used map[string]map[string]bool, add func(Issue)) {
	base := "service.pipelines." + p.Name

	if p.Signal() == "" {
		add(Issue{
			Path:     base,
			Message:  fmt.Sprintf("pipeline %q has no known signal; name must start with traces, metrics, logs or profiles", p.Name),
			Severity: SeverityError,
			Line:     p.Line,
			Column:   1,
		})
	}

	if len(p.Receivers) == 0 {
		add(Issue{
			Path:     base + ".receivers",
			Message:  "pipeline must have at least one receiver",
			Severity: SeverityError,
			Line:     p.Line,
			Column:   1,
		})
	}
	if len(p.Exporters) == 0 {
		add(Issue{
			Path:     base + ".exporters",
			Message:  "pipeline must have at least one exporter",
			Severity: SeverityError,
			Line:     p.Line,
			Column:   1,
		})
	}

	for _, ref := range p.Receivers {
		if _, ok := doc.Receivers.Entries[ref.ID]; ok {
			used[SectionReceivers][ref.ID] = true
			continue
		}
		if _, ok := doc.Connectors.Entries[ref.ID]; ok {
			used[SectionConnectors][ref.ID] = true
			continue
		}
		add(undefinedRef(base+".receivers", "receiver", ref))
	}
	for _, ref := range p.Processors {
		if _, ok := doc.Processors.Entries[ref.ID]; ok {
			used[SectionProcessors][ref.ID] = true
			continue
		}
		add(undefinedRef(base+".processors", "processor", ref))
	}
	for _, ref := range p.Exporters {
		if _, ok := doc.Exporters.Entries[ref.ID]; ok {
			used[SectionExporters][ref.ID] = true
			continue
		}
		if _, ok := doc.Connectors.Entries[ref.ID]; ok {
			used[SectionConnectors][ref.ID] = true
			continue
		}
		add(undefinedRef(base+".exporters", "exporter", ref))
	}
}

func undefinedRef(path, kind string, ref Ref) Issue {
	return Issue{
		Path:     path,
		Message:  fmt.Sprintf("%s %q is not defined", kind, ref.ID),
		Severity: SeverityError,
		Line:     ref.Line,
		Column:   ref.Column,
	}
}

func checkUnused(doc *Document, used map[string]map[string]bool, add func(Issue)) {
	for _, sec := range []struct {
		name string
		s    Section
	}{
		{SectionReceivers, doc.Receivers},
		{SectionProcessors, doc.Processors},
		{SectionExporters, doc.Exporters},
		{SectionExtensions, doc.Extensions},
	} {
		for _, id := range sec.s.Order {
			if used[sec.name][id] {
				continue
			}
			e := sec.s.Entries[id]
			add(Issue{
				Path:     sec.name + "." + id,
				Message:  fmt.Sprintf("%s %q is defined but not used by any pipeline", strings.TrimSuffix(sec.name, "s"), id),
				Severity: SeverityWarning,
				Line:     e.Line,
				Column:   e.Column,
			})
		}
	}
}

// checkConnectors verifies every connector is wired as both an exporter of
// one pipeline and a receiver of another.
func checkConnectors(doc *Document, used map[string]map[string]bool, add func(Issue)) {
	asReceiver := map[string]bool{}
	asExporter := map[string]bool{}
	for _, p := range doc.Service.Pipelines {
		for _, ref := range p.Receivers {
			if _, ok := doc.Connectors.Entries[ref.ID]; ok {
				asReceiver[ref.ID] = true
			}
		}
		for _, ref := range p.Exporters {
			if _, ok := doc.Connectors.Entries[ref.ID]; ok {
				asExporter[ref.ID] = true
			}
		}
	}

	for _, id := range doc.Connectors.Order {
		e := doc.Connectors.Entries[id]
		switch {
		case !asReceiver[id] && !asExporter[id]:
			add(Issue{
				Path:     SectionConnectors + "." + id,
				Message:  fmt.Sprintf("connector %q is defined but not used by any pipeline", id),
				Severity: SeverityWarning,
				Line:     e.Line,
				Column:   e.Column,
			})
		case !asReceiver[id]:
			add(Issue{
				Path:     SectionConnectors + "." + id,
				Message:  fmt.Sprintf("connector %q is used as an exporter but never as a receiver", id),
				Severity: SeverityError,
				Line:     e.Line,
				Column:   e.Column,
			})
		case !asExporter[id]:
			add(Issue{
				Path:     SectionConnectors + "." + id,
				Message:  fmt.Sprintf("connector %q is used as a receiver but never as an exporter", id),
				Severity: SeverityError,
				Line:     e.Line,
				Column:   e.Column,
			})
		}
	}
}

// checkConnectorCycles builds the pipeline-to-pipeline graph induced by
// connectors and reports any loop.
func checkConnectorCycles(doc *Document, add func(Issue)) {
	g := graph.New()
	for _, name := range doc.Service.Order {
		g.AddNode(name, graph.KindPipeline, name)
	}

	// Edge A -> B when a connector exports from A and feeds B.
	feeds := map[string][]string{} // connector -> pipelines receiving from it
	for _, name := range doc.Service.Order {
		for _, ref := range doc.Service.Pipelines[name].Receivers {
			if _, ok := doc.Connectors.Entries[ref.ID]; ok {
				feeds[ref.ID] = append(feeds[ref.ID], name)
			}
		}
	}
	for _, name := range doc.Service.Order {
		for _, ref := range doc.Service.Pipelines[name].Exporters {
			for _, target := range feeds[ref.ID] {
				if target != name {
					_ = g.AddEdge(name, target)
				}
			}
		}
	}

	if cycle, ok := g.FindCycle(); ok {
		add(Issue{
			Path:     "service.pipelines",
			Message:  fmt.Sprintf("connector loop between pipelines: %s", strings.Join(cycle, " -> ")),
			Severity: SeverityError,
			Line:     doc.Service.Line,
			Column:   1,
		})
	}
}
