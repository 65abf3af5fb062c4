package transform

import (
	"strings"

	"github.com/modviz/modviz/pkg/depgraph"
)

// FilterAllowedPrefixes keeps only nodes whose normalized identifier starts
// with at least one of the given prefixes. Prefixes are normalized with
// [depgraph.NormalizePrefix] before matching. Edges survive only when both
// endpoints do.
//
// When allowAll is true the prefixes are ignored and a copy of g is
// returned unchanged.
func FilterAllowedPrefixes(g *depgraph.Graph, prefixes []string, allowAll bool) *depgraph.Graph {
	if allowAll {
		return g.Clone()
	}
	normalized := normalizePrefixes(prefixes)
	return g.Subgraph(func(raw string) bool {
		id, _ := g.Normalized(raw)
		return matchesAny(id, normalized)
	})
}

// FilterHiddenPrefixes removes nodes whose normalized identifier starts with
// any of the given prefixes, recomputing edges accordingly. An empty prefix
// list returns a copy of g unchanged.
func FilterHiddenPrefixes(g *depgraph.Graph, hidden []string) *depgraph.Graph {
	if len(hidden) == 0 {
		return g.Clone()
	}
	normalized := normalizePrefixes(hidden)
	return g.Subgraph(func(raw string) bool {
		id, _ := g.Normalized(raw)
		return !matchesAny(id, normalized)
	})
}

func normalizePrefixes(prefixes []string) []string {
	out := make([]string, len(prefixes))
	for i, p := range prefixes {
		out[i] = depgraph.NormalizePrefix(p)
	}
	return out
}

func matchesAny(id string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}
