// Package graphio provides the canonical JSON serialization for dependency
// graphs. The format is used for cache entries, API responses, and the
// `modviz filter --json` output, and round-trips through [ReadJSON] without
// loss.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/modviz/modviz/pkg/depgraph"
)

// Node is the serialized form of a graph node.
type Node struct {
	ID         string `json:"id"`
	Normalized string `json:"normalized"`
}

// Edge is the serialized form of a directed edge.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the serialized form of a dependency graph. Nodes appear in
// first-seen order and edges in insertion order, so serialization preserves
// the determinism guarantees of the in-memory graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// FromGraph converts an in-memory graph to its serialized form.
func FromGraph(g *depgraph.Graph) Graph {
	out := Graph{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		norm, _ := g.Normalized(id)
		out.Nodes = append(out.Nodes, Node{ID: id, Normalized: norm})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}
	return out
}

// ToGraph converts a serialized graph back to the in-memory form. The
// normalized IDs are recomputed rather than trusted, keeping the node
// invariant intact for hand-edited files.
func ToGraph(data Graph) *depgraph.Graph {
	g := depgraph.New()
	for _, n := range data.Nodes {
		g.AddNode(n.ID)
	}
	for _, e := range data.Edges {
		g.AddEdge(e.From, e.To)
	}
	return g
}

// WriteJSON encodes the graph as indented JSON.
func WriteJSON(g *depgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// MarshalJSON returns the graph as indented JSON bytes.
func MarshalJSON(g *depgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadJSON decodes a graph from its JSON form.
func ReadJSON(r io.Reader) (*depgraph.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return ToGraph(data), nil
}
