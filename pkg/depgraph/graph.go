package depgraph

// Edge is a directed dependency relation between two raw module identifiers.
// From depends on To.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph of raw module identifiers. Each node carries its
// normalized identifier (see [Normalize]) as metadata. Duplicate edges are
// collapsed; self-loops are allowed and preserved until consolidation.
//
// The zero value is not usable - use [New] or [Build].
// Graph is not safe for concurrent mutation, but a fully built graph may be
// read from multiple goroutines.
type Graph struct {
	order    []string          // raw IDs in first-seen order
	nodes    map[string]string // raw ID -> normalized ID
	edges    []Edge            // insertion order, deduplicated
	edgeSet  map[Edge]struct{}
	outgoing map[string][]string // raw ID -> children
	incoming map[string][]string // raw ID -> parents
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]string),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode registers a raw identifier, attaching its normalized form.
// Adding an already-known node is a no-op, so the first-seen position of a
// node is stable.
func (g *Graph) AddNode(raw string) {
	if _, ok := g.nodes[raw]; ok {
		return
	}
	g.nodes[raw] = Normalize(raw)
	g.order = append(g.order, raw)
}

// AddEdge adds the directed edge from -> to, registering both endpoints if
// they are not yet known. Duplicate edges are ignored, so repeated input
// lines cannot inflate the edge set.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	e := Edge{From: from, To: to}
	if _, ok := g.edgeSet[e]; ok {
		return
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
}

// Nodes returns the raw identifiers in first-seen order.
// The returned slice must not be modified.
func (g *Graph) Nodes() []string { return g.order }

// Normalized returns the normalized identifier recorded for a raw ID and
// whether the node exists.
func (g *Graph) Normalized(raw string) (string, bool) {
	n, ok := g.nodes[raw]
	return n, ok
}

// HasNode reports whether the raw identifier is present.
func (g *Graph) HasNode(raw string) bool {
	_, ok := g.nodes[raw]
	return ok
}

// HasEdge reports whether the directed edge from -> to is present.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Edges returns all edges in insertion order.
// The returned slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of edges leaving the node, in edge insertion
// order. The returned slice must not be modified.
func (g *Graph) Children(raw string) []string { return g.outgoing[raw] }

// Parents returns the sources of edges entering the node, in edge insertion
// order. The returned slice must not be modified.
func (g *Graph) Parents(raw string) []string { return g.incoming[raw] }

// InDegree returns the number of incoming edges.
func (g *Graph) InDegree(raw string) int { return len(g.incoming[raw]) }

// OutDegree returns the number of outgoing edges.
func (g *Graph) OutDegree(raw string) int { return len(g.outgoing[raw]) }

// Roots returns nodes with no incoming edges, in first-seen order.
// These are the BFS origins for depth computation.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	out := New()
	for _, id := range g.order {
		out.AddNode(id)
	}
	for _, e := range g.edges {
		out.AddEdge(e.From, e.To)
	}
	return out
}

// Subgraph returns a new graph containing only the nodes for which keep
// returns true, and the edges whose endpoints both survive. Node and edge
// order is inherited from the receiver.
func (g *Graph) Subgraph(keep func(raw string) bool) *Graph {
	out := New()
	for _, id := range g.order {
		if keep(id) {
			out.AddNode(id)
		}
	}
	for _, e := range g.edges {
		if out.HasNode(e.From) && out.HasNode(e.To) {
			out.AddEdge(e.From, e.To)
		}
	}
	return out
}

// Equal reports whether two graphs have the same node and edge sets in the
// same order.
func (g *Graph) Equal(other *Graph) bool {
	if g.NodeCount() != other.NodeCount() || g.EdgeCount() != other.EdgeCount() {
		return false
	}
	for i, id := range g.order {
		if other.order[i] != id {
			return false
		}
	}
	for i, e := range g.edges {
		if other.edges[i] != e {
			return false
		}
	}
	return true
}
