// Package diagram feeds the pipeline diagram surface. The surface only ever
// receives configuration that passed validation; anything else is replaced
// by the constant placeholder.
package diagram

import (
	"fmt"
	"sort"

	"github.com/otelview-labs/otelview/internal/collector"
	"github.com/otelview-labs/otelview/internal/graph"
	"github.com/otelview-labs/otelview/internal/validate"
)

// Placeholder is what the diagram receives instead of invalid text. There
// is no partially-valid representation; validity is a single boolean gate.
const Placeholder = ""

// GraphNode is one rendered node. IDs are namespaced per pipeline so the
// same component appearing in two pipelines renders twice.
type GraphNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Pipeline string `json:"pipeline"`
	Rank     int    `json:"rank"`
}

// GraphEdge is a directed data-flow edge.
type GraphEdge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Pipeline string `json:"pipeline,omitempty"`
}

// GraphData is the diagram payload for the external renderer.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Gate applies the validity gate: valid text passes through unmodified with
// its graph, anything else yields the placeholder and no graph.
func Gate(text string, report validate.Report) (string, *GraphData) {
	if !report.Valid() {
		return Placeholder, nil
	}
	doc, perr := collector.Parse(text)
	if perr != nil {
		// Cannot happen for a valid report; gate defensively anyway.
		return Placeholder, nil
	}
	return text, BuildGraph(doc)
}

// BuildGraph creates diagram data from a parsed document: one lane per
// service pipeline, receivers feeding processors feeding exporters, plus
// cross-pipeline edges for connectors.
func BuildGraph(doc *collector.Document) *GraphData {
	data := &GraphData{Nodes: []GraphNode{}, Edges: []GraphEdge{}}

	// exporterNodes and receiverNodes track connector endpoints per
	// pipeline for the cross-pipeline edges.
	exporterNodes := map[string]map[string]string{} // connector ID -> pipeline -> node ID
	receiverNodes := map[string]map[string]string{}

	for _, name := range doc.Service.Order {
		p := doc.Service.Pipelines[name]
		g := graph.New()

		nodeID := func(ref collector.Ref) string {
			return fmt.Sprintf("%s/%s", name, ref.ID)
		}
		kindOf := func(ref collector.Ref, fallback graph.Kind) graph.Kind {
			if _, ok := doc.Connectors.Entries[ref.ID]; ok {
				return graph.KindConnector
			}
			return fallback
		}

		for _, ref := range p.Receivers {
			id := nodeID(ref)
			g.AddNode(id, kindOf(ref, graph.KindReceiver), ref.ID)
			if _, ok := doc.Connectors.Entries[ref.ID]; ok {
				if receiverNodes[ref.ID] == nil {
					receiverNodes[ref.ID] = map[string]string{}
				}
				receiverNodes[ref.ID][name] = id
			}
		}
		for _, ref := range p.Processors {
			g.AddNode(nodeID(ref), graph.KindProcessor, ref.ID)
		}
		for _, ref := range p.Exporters {
			id := nodeID(ref)
			g.AddNode(id, kindOf(ref, graph.KindExporter), ref.ID)
			if _, ok := doc.Connectors.Entries[ref.ID]; ok {
				if exporterNodes[ref.ID] == nil {
					exporterNodes[ref.ID] = map[string]string{}
				}
				exporterNodes[ref.ID][name] = id
			}
		}

		// Chain: every receiver feeds the first processor, processors chain
		// in declared order, the last stage feeds every exporter.
		prev := make([]string, 0, len(p.Receivers))
		for _, ref := range p.Receivers {
			prev = append(prev, nodeID(ref))
		}
		for _, ref := range p.Processors {
			id := nodeID(ref)
			for _, src := range prev {
				_ = g.AddEdge(src, id)
			}
			prev = []string{id}
		}
		for _, ref := range p.Exporters {
			id := nodeID(ref)
			for _, src := range prev {
				_ = g.AddEdge(src, id)
			}
		}

		appendPipeline(data, name, g)
	}

	// Connector edges: exporter endpoint in one pipeline to receiver
	// endpoint in another.
	connectors := make([]string, 0, len(exporterNodes))
	for id := range exporterNodes {
		connectors = append(connectors, id)
	}
	sort.Strings(connectors)
	for _, id := range connectors {
		for _, fromPipeline := range sortedKeys(exporterNodes[id]) {
			for _, toPipeline := range sortedKeys(receiverNodes[id]) {
				if fromPipeline == toPipeline {
					continue
				}
				data.Edges = append(data.Edges, GraphEdge{
					Source: exporterNodes[id][fromPipeline],
					Target: receiverNodes[id][toPipeline],
				})
			}
		}
	}

	return data
}

func appendPipeline(data *GraphData, pipeline string, g *graph.Graph) {
	ranks, err := g.Ranks()
	rankOf := map[string]int{}
	if err == nil {
		for r, ids := range ranks {
			for _, id := range ids {
				rankOf[id] = r
			}
		}
	}

	for _, n := range g.Nodes() {
		data.Nodes = append(data.Nodes, GraphNode{
			ID:       n.ID,
			Label:    n.Label,
			Kind:     string(n.Kind),
			Pipeline: pipeline,
			Rank:     rankOf[n.ID],
		})
	}
	for _, n := range g.Nodes() {
		for _, next := range g.Successors(n.ID) {
			data.Edges = append(data.Edges, GraphEdge{
				Source:   n.ID,
				Target:   next,
				Pipeline: pipeline,
			})
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
