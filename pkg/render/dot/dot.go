// Package dot renders dependency graphs as Graphviz DOT and rasterizes
// them to SVG or PNG using the goccy/go-graphviz engine.
package dot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/render"
)

// ToDOT converts a graph to Graphviz DOT. Node labels carry the simplified
// organization/project split on two lines, prefixed with a short version
// fragment when opts.ShowVersion is set. Each node is filled with its
// deterministic palette color.
//
// The resulting DOT can be rendered with [RenderSVG] or [RenderPNG], or fed
// to external Graphviz tooling.
func ToDOT(g *depgraph.Graph, opts render.Options) string {
	opts = opts.Defaulted()

	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		label := nodeLabel(id, opts)
		color := render.AssignColor(id, nil)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", id, label, color)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.ShowVersion {
			if v := depgraph.Simplify(e.To, opts.HostPrefix).ShortVersion(); v != "" {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=9];\n", e.From, e.To, v)
				continue
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(id string, opts render.Options) string {
	label := depgraph.Simplify(id, opts.HostPrefix)
	text := label.Display("\n")
	if opts.ShowVersion {
		if v := label.ShortVersion(); v != "" {
			text = v + "\n" + text
		}
	}
	return text
}

// RenderSVG renders a DOT graph to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
