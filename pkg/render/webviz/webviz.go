// Package webviz renders dependency graphs as a self-contained interactive
// HTML page built on the vis-network browser library. The page loads
// vis-network from a CDN, enables physics-based layout, and supports
// dragging and hover tooltips.
package webviz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/render"
)

type visNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type visEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Title string `json:"title,omitempty"`
	Color string `json:"color,omitempty"`
}

var pageTemplate = template.Must(template.New("webviz").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
<style>
  html, body { margin: 0; height: 100%; }
  #graph { width: 100dvw; height: 90dvh; }
  h1 { font-family: sans-serif; font-size: 1.1em; margin: 0.4em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="graph"></div>
<script>
  const nodes = new vis.DataSet({{.Nodes}});
  const edges = new vis.DataSet({{.Edges}});
  const container = document.getElementById("graph");
  const options = {
    edges: { arrows: "to" },
    physics: { solver: "forceAtlas2Based", stabilization: true },
    interaction: { dragNodes: true, hover: true },
  };
  new vis.Network(container, { nodes: nodes, edges: edges }, options);
</script>
</body>
</html>
`))

// ToHTML renders the graph as an interactive HTML page. Node colors come
// from the deterministic palette; edges inherit their source node's color.
// With opts.ShowVersion, node labels gain a version line and edges a
// version tooltip.
func ToHTML(g *depgraph.Graph, opts render.Options) ([]byte, error) {
	opts = opts.Defaulted()
	if opts.Title == "" {
		opts.Title = "Dependency graph"
	}

	nodes := make([]visNode, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		label := depgraph.Simplify(id, opts.HostPrefix)
		text := label.Display("\n")
		if opts.ShowVersion {
			if v := label.ShortVersion(); v != "" {
				text = v + "\n" + text
			}
		}
		nodes = append(nodes, visNode{
			ID:    id,
			Label: text,
			Title: text,
			Color: render.AssignColor(id, nil),
		})
	}

	edges := make([]visEdge, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		edge := visEdge{From: e.From, To: e.To, Color: render.AssignColor(e.From, nil)}
		if opts.ShowVersion {
			edge.Title = depgraph.Simplify(e.To, opts.HostPrefix).ShortVersion()
		}
		edges = append(edges, edge)
	}

	nodeJSON, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("marshal nodes: %w", err)
	}
	edgeJSON, err := json.Marshal(edges)
	if err != nil {
		return nil, fmt.Errorf("marshal edges: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		Title string
		Nodes template.JS
		Edges template.JS
	}{
		Title: opts.Title,
		Nodes: template.JS(nodeJSON),
		Edges: template.JS(edgeJSON),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}
