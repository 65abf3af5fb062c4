package transform

import "github.com/modviz/modviz/pkg/depgraph"

// RemoveIsolated drops nodes that currently have neither incoming nor
// outgoing edges. Applying it twice yields the same graph as applying it
// once: removing an isolated node cannot isolate another.
func RemoveIsolated(g *depgraph.Graph) *depgraph.Graph {
	return g.Subgraph(func(raw string) bool {
		return g.InDegree(raw) > 0 || g.OutDegree(raw) > 0
	})
}
