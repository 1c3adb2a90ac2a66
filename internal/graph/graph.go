// Package graph provides directed-graph operations for collector pipeline
// topology: rank assignment for diagram layout and cycle detection for
// connector loops.
package graph

import (
	"fmt"
	"sort"
)

// Kind classifies a pipeline graph node.
type Kind string

const (
	KindReceiver  Kind = "receiver"
	KindProcessor Kind = "processor"
	KindExporter  Kind = "exporter"
	KindConnector Kind = "connector"
	KindPipeline  Kind = "pipeline"
)

// Node is a vertex in the pipeline graph.
type Node struct {
	// ID uniquely identifies the node, e.g. "traces/otlp" or a pipeline name.
	ID string
	// Kind says what the node represents.
	Kind Kind
	// Label is the display name (component ID without pipeline prefix).
	Label string
}

// Graph is a directed graph of pipeline elements. Edges point in the
// direction of data flow: receiver -> processor -> exporter.
type Graph struct {
	nodes map[string]*Node
	succ  map[string][]string
	pred  map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
	}
}

// AddNode inserts a node, updating it in place if the ID already exists.
func (g *Graph) AddNode(id string, kind Kind, label string) {
	if n, ok := g.nodes[id]; ok {
		n.Kind = kind
		n.Label = label
		return
	}
	g.nodes[id] = &Node{ID: id, Kind: kind, Label: label}
	g.succ[id] = []string{}
	g.pred[id] = []string{}
}

// AddEdge adds a directed edge from -> to. Both nodes must already exist
// and self-loops are rejected.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("source node %q does not exist", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("target node %q does not exist", to)
	}
	if from == to {
		return fmt.Errorf("self-loop on %q", from)
	}
	if !contains(g.succ[from], to) {
		g.succ[from] = append(g.succ[from], to)
	}
	if !contains(g.pred[to], from) {
		g.pred[to] = append(g.pred[to], from)
	}
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Successors returns the downstream neighbors of a node.
func (g *Graph) Successors(id string) []string { return g.succ[id] }

// Predecessors returns the upstream neighbors of a node.
func (g *Graph) Predecessors(id string) []string { return g.pred[id] }

// Nodes returns all nodes sorted by ID for deterministic output.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, s := range g.succ {
		n += len(s)
	}
	return n
}

// FindCycle returns a cycle path if the graph contains one.
func (g *Graph) FindCycle() ([]string, bool) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	parent := make(map[string]string)

	var cycle []string
	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		for _, next := range g.succ[id] {
			if !visited[next] {
				parent[next] = id
				if dfs(next) {
					return true
				}
			} else if onStack[next] {
				cycle = []string{next}
				for cur := id; cur != next; cur = parent[cur] {
					cycle = append([]string{cur}, cycle...)
				}
				cycle = append([]string{next}, cycle...)
				return true
			}
		}
		onStack[id] = false
		return false
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if !visited[id] {
			if dfs(id) {
				return cycle, true
			}
		}
	}
	return nil, false
}

// Ranks groups node IDs by their distance from a source node. Rank 0 holds
// nodes with no predecessors. The diagram renderer uses ranks as columns.
// Returns an error when the graph contains a cycle.
func (g *Graph) Ranks() ([][]string, error) {
	if cycle, ok := g.FindCycle(); ok {
		return nil, fmt.Errorf("cycle detected: %v", cycle)
	}

	rank := make(map[string]int)
	var rankOf func(id string) int
	rankOf = func(id string) int {
		if r, ok := rank[id]; ok {
			return r
		}
		preds := g.pred[id]
		if len(preds) == 0 {
			rank[id] = 0
			return 0
		}
		max := 0
		for _, p := range preds {
			if r := rankOf(p); r > max {
				max = r
			}
		}
		rank[id] = max + 1
		return max + 1
	}

	maxRank := 0
	for id := range g.nodes {
		if r := rankOf(id); r > maxRank {
			maxRank = r
		}
	}

	out := make([][]string, maxRank+1)
	for id, r := range rank {
		out[r] = append(out[r], id)
	}
	for _, level := range out {
		sort.Strings(level)
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
