// Package depgraph provides the dependency graph model for modviz.
//
// A [Graph] is built from a textual edge list (the `go mod graph` format:
// one "SOURCE TARGET" pair per line) and records, for every raw module
// identifier, a normalized identifier suitable for prefix matching. Graphs
// have value semantics: every transformation in the transform subpackage
// returns a fresh graph and never mutates its input, so a single parsed
// graph can be filtered under several configurations.
//
// Iteration order is deterministic. Nodes iterate in first-seen input
// order and edges in insertion order, which downstream consumers (most
// importantly node consolidation) rely on for reproducible output.
//
// # Example
//
//	g, err := depgraph.Build(file)
//	if err != nil {
//	    return err
//	}
//	for _, id := range g.Nodes() {
//	    fmt.Println(id, g.Normalized(id))
//	}
package depgraph
