// Package mermaid emits Mermaid flowchart markup from dependency graphs,
// suitable for embedding in Markdown documents.
package mermaid

import (
	"bytes"
	"fmt"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/render"
)

// ToMermaid renders the graph as a left-to-right Mermaid flowchart wrapped
// in a fenced code block. Node identifiers use the graph's normalized IDs;
// display labels show the simplified organization/project form.
func ToMermaid(g *depgraph.Graph, opts render.Options) string {
	opts = opts.Defaulted()

	var buf bytes.Buffer
	buf.WriteString("```mermaid\n")
	buf.WriteString("graph LR\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "    %%%% %s\n", opts.Title)
	}
	buf.WriteByte('\n')

	for _, id := range g.Nodes() {
		norm, _ := g.Normalized(id)
		label := depgraph.Simplify(id, opts.HostPrefix).Display(" | ")
		if opts.ShowVersion {
			if v := depgraph.Simplify(id, opts.HostPrefix).ShortVersion(); v != "" {
				label += " " + v
			}
		}
		fmt.Fprintf(&buf, "    %s[\"%s\"]\n", norm, label)
	}

	buf.WriteByte('\n')
	for _, e := range g.Edges() {
		from, _ := g.Normalized(e.From)
		to, _ := g.Normalized(e.To)
		fmt.Fprintf(&buf, "    %s --> %s\n", from, to)
	}

	buf.WriteString("```\n")
	return buf.String()
}
