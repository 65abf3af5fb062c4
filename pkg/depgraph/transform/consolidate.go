package transform

import "github.com/modviz/modviz/pkg/depgraph"

// ConsolidateOptions configures node consolidation.
type ConsolidateOptions struct {
	// HostPrefix is stripped when deriving labels.
	// Defaults to depgraph.DefaultHostPrefix when empty.
	HostPrefix string

	// ShowVersion annotates consolidated edges with a short version fragment
	// of the target identifier.
	ShowVersion bool
}

// ConsolidatedEdge is a directed connection between two consolidated nodes.
// Annotation carries at most the first ten characters of the target's
// version when requested, "" otherwise.
type ConsolidatedEdge struct {
	From       string
	To         string
	Annotation string
}

// ConsolidatedGraph is a graph whose node set is the set of observed
// consolidation keys. Each key maps to one representative display label.
// Key and edge iteration order is deterministic (first-seen under the input
// graph's recorded order).
type ConsolidatedGraph struct {
	keys   []string
	labels map[string]depgraph.Label
	edges  []ConsolidatedEdge
}

// Keys returns the consolidation keys in first-seen order.
func (c *ConsolidatedGraph) Keys() []string { return c.keys }

// Label returns the representative label for a key and whether the key
// exists. The representative is the label of the first raw node that mapped
// to the key - a deliberately lossy choice when distinct labels collide.
func (c *ConsolidatedGraph) Label(key string) (depgraph.Label, bool) {
	l, ok := c.labels[key]
	return l, ok
}

// Edges returns the deduplicated consolidated edges in first-seen order.
func (c *ConsolidatedGraph) Edges() []ConsolidatedEdge { return c.edges }

// NodeCount returns the number of consolidated nodes.
func (c *ConsolidatedGraph) NodeCount() int { return len(c.keys) }

// EdgeCount returns the number of consolidated edges.
func (c *ConsolidatedGraph) EdgeCount() int { return len(c.edges) }

// Consolidate collapses raw nodes that share a consolidation key into one
// logical node and merges their edges.
//
// For every raw edge whose endpoints consolidate to the same key the edge is
// dropped (intra-component references are not represented). All remaining
// edges are deduplicated on the (from, to) key pair. When several raw edges
// collapse onto the same pair with different version annotations the last
// one written wins; this lossy, order-dependent merge is stable because the
// input graph iterates in input order.
func Consolidate(g *depgraph.Graph, opts ConsolidateOptions) *ConsolidatedGraph {
	if opts.HostPrefix == "" {
		opts.HostPrefix = depgraph.DefaultHostPrefix
	}

	out := &ConsolidatedGraph{labels: make(map[string]depgraph.Label)}

	keyOf := make(map[string]string, g.NodeCount())
	for _, raw := range g.Nodes() {
		label := depgraph.Simplify(raw, opts.HostPrefix)
		key := label.ConsolidationKey()
		keyOf[raw] = key
		if _, seen := out.labels[key]; !seen {
			out.labels[key] = label
			out.keys = append(out.keys, key)
		}
	}

	type pair struct{ from, to string }
	index := make(map[pair]int)
	for _, e := range g.Edges() {
		from, to := keyOf[e.From], keyOf[e.To]
		if from == to {
			continue
		}
		annotation := ""
		if opts.ShowVersion {
			annotation = depgraph.Simplify(e.To, opts.HostPrefix).ShortVersion()
		}
		p := pair{from, to}
		if i, ok := index[p]; ok {
			out.edges[i].Annotation = annotation
			continue
		}
		index[p] = len(out.edges)
		out.edges = append(out.edges, ConsolidatedEdge{From: from, To: to, Annotation: annotation})
	}

	return out
}
