package transform

import "github.com/modviz/modviz/pkg/depgraph"

// Depths computes the minimum edge-count distance from any root to every
// reachable node. Roots are nodes with zero incoming edges; when the graph
// has none (it consists solely of cycles) every node is treated as a root
// with depth 0.
//
// The computation is a multi-source shortest-path search on an unweighted
// graph: a queue-based relaxation that lowers and re-enqueues a node
// whenever a shorter path to it is found through another parent. A single
// level-order pass would record the wrong depth for nodes first reached via
// a longer path.
//
// Nodes unreachable from any root do not appear in the result.
func Depths(g *depgraph.Graph) map[string]int {
	depths := make(map[string]int, g.NodeCount())

	roots := g.Roots()
	if len(roots) == 0 {
		roots = g.Nodes()
	}

	queue := make([]string, 0, len(roots))
	for _, r := range roots {
		depths[r] = 0
		queue = append(queue, r)
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range g.Children(node) {
			if d, seen := depths[child]; !seen || depths[node]+1 < d {
				depths[child] = depths[node] + 1
				queue = append(queue, child)
			}
		}
	}
	return depths
}

// FilterMaxDepth keeps only nodes whose depth (per [Depths]) is at most
// maxDepth, inducing the edge subset on the surviving nodes. Depths are
// always recomputed from the graph as given; no depth information crosses
// filtering boundaries.
func FilterMaxDepth(g *depgraph.Graph, maxDepth int) *depgraph.Graph {
	depths := Depths(g)
	return g.Subgraph(func(raw string) bool {
		d, ok := depths[raw]
		return ok && d <= maxDepth
	})
}
