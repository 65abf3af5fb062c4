package transform_test

import (
	"fmt"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/depgraph/transform"
)

func Example() {
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/a/y@v1",
		"github.com/a/y@v1 github.com/b/z@v2",
	})

	depths := transform.Depths(g)
	for _, id := range g.Nodes() {
		fmt.Printf("%s depth=%d\n", id, depths[id])
	}

	filtered := transform.FilterMaxDepth(g, 1)
	fmt.Printf("depth<=1: %d nodes, %d edges\n", filtered.NodeCount(), filtered.EdgeCount())
	// Output:
	// github.com/a/x@v1 depth=0
	// github.com/a/y@v1 depth=1
	// github.com/b/z@v2 depth=2
	// depth<=1: 2 nodes, 1 edges
}

func ExampleConsolidate() {
	g := depgraph.BuildLines([]string{
		"github.com/acme/foo@v1 github.com/acme/bar@v1",
		"github.com/acme/foo@v2 github.com/acme/bar@v1",
	})

	c := transform.Consolidate(g, transform.ConsolidateOptions{})
	for _, e := range c.Edges() {
		fmt.Printf("%s -> %s\n", e.From, e.To)
	}
	// Output:
	// foo -> bar
}
