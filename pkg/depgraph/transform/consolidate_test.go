package transform

import (
	"testing"

	"github.com/modviz/modviz/pkg/depgraph"
)

func TestConsolidateCollapsesDuplicates(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/acme/foo@v1 github.com/acme/bar@v1",
		"github.com/acme/foo@v2 github.com/acme/bar@v1",
	})

	c := Consolidate(g, ConsolidateOptions{})

	if c.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2 (foo@v1 and foo@v2 share key foo)", c.NodeCount())
	}
	if c.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1 (both edges collapse to foo -> bar)", c.EdgeCount())
	}
	e := c.Edges()[0]
	if e.From != "foo" || e.To != "bar" {
		t.Errorf("edge = %+v, want foo -> bar", e)
	}
}

func TestConsolidateDropsSameKeyEdges(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/acme/foo@v1 github.com/acme/foo@v2",
		"github.com/acme/foo@v1 github.com/acme/foo@v1", // raw self-loop
	})

	c := Consolidate(g, ConsolidateOptions{})

	if c.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 (intra-component edges are dropped)", c.EdgeCount())
	}
	if c.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", c.NodeCount())
	}
}

func TestConsolidateFirstSeenLabelWins(t *testing.T) {
	// "a/x" and "b/x" collide on key "x"; the first-seen label is kept.
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/c/y@v1",
		"github.com/b/x@v1 github.com/c/y@v1",
	})

	c := Consolidate(g, ConsolidateOptions{})

	label, ok := c.Label("x")
	if !ok {
		t.Fatal("key x missing")
	}
	if label.Org != "a" {
		t.Errorf("representative label org = %q, want first-seen %q", label.Org, "a")
	}
}

func TestConsolidateVersionAnnotation(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/b/z@v0.0.0-20231006140011-7918f672742d",
	})

	c := Consolidate(g, ConsolidateOptions{ShowVersion: true})

	if got := c.Edges()[0].Annotation; got != "v0.0.0-202" {
		t.Errorf("Annotation = %q, want first ten version characters", got)
	}

	// Without the flag no annotation is emitted.
	c = Consolidate(g, ConsolidateOptions{})
	if got := c.Edges()[0].Annotation; got != "" {
		t.Errorf("Annotation = %q, want empty", got)
	}
}

func TestConsolidateAnnotationLastWriteWins(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/b/z@v1",
		"github.com/a/x@v2 github.com/b/z@v2",
	})

	c := Consolidate(g, ConsolidateOptions{ShowVersion: true})

	if c.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1", c.EdgeCount())
	}
	if got := c.Edges()[0].Annotation; got != "v2" {
		t.Errorf("Annotation = %q, want last-written %q", got, "v2")
	}
}

func TestConsolidateDeterministicOrder(t *testing.T) {
	lines := []string{
		"github.com/a/x@v1 github.com/a/y@v1",
		"github.com/a/y@v1 github.com/b/z@v2",
	}

	c1 := Consolidate(depgraph.BuildLines(lines), ConsolidateOptions{})
	c2 := Consolidate(depgraph.BuildLines(lines), ConsolidateOptions{})

	for i, k := range c1.Keys() {
		if c2.Keys()[i] != k {
			t.Fatalf("key order differs between runs: %v vs %v", c1.Keys(), c2.Keys())
		}
	}
	for i, e := range c1.Edges() {
		if c2.Edges()[i] != e {
			t.Fatalf("edge order differs between runs")
		}
	}
}

// The concrete end-to-end scenario from the tool's documentation.
func TestConsolidateScenario(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/a/y@v1",
		"github.com/a/y@v1 github.com/b/z@v2",
	})

	c := Consolidate(g, ConsolidateOptions{})

	wantKeys := []string{"x", "y", "z"}
	keys := c.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("Keys = %v, want %v", keys, wantKeys)
	}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Errorf("Keys[%d] = %q, want %q", i, keys[i], k)
		}
	}

	wantEdges := []ConsolidatedEdge{{From: "x", To: "y"}, {From: "y", To: "z"}}
	for i, want := range wantEdges {
		if c.Edges()[i] != want {
			t.Errorf("Edges[%d] = %+v, want %+v", i, c.Edges()[i], want)
		}
	}
}
