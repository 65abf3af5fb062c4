// Package transform provides filtering and consolidation stages for
// dependency graphs.
//
// Every stage takes a [depgraph.Graph] and returns a new one, leaving its
// input untouched. The canonical application order, matching the CLI
// contract, is:
//
//	allow-prefix filter -> hide-prefix filter -> max-depth filter -> isolated removal
//
// Skipped stages simply pass the graph through. [Consolidate] runs last and
// produces a [ConsolidatedGraph] keyed by consolidation keys rather than raw
// identifiers.
package transform
