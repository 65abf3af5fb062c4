package depgraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// commentMarker prefixes lines that are skipped during parsing.
const commentMarker = "#"

// Build reads an edge list from r and constructs the raw dependency graph.
//
// Each non-empty, non-comment line must contain exactly two whitespace
// separated tokens, "SOURCE TARGET", meaning SOURCE depends on TARGET.
// Lines violating this shape are skipped silently - the format tolerates
// noisy, hand-edited graph dumps by design. The only error Build can return
// is a read failure on r.
func Build(r io.Reader) (*Graph, error) {
	g := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		addLine(g, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}
	return g, nil
}

// BuildLines constructs a graph from pre-split input lines.
// It never fails: malformed lines are skipped, per the same leniency policy
// as [Build].
func BuildLines(lines []string) *Graph {
	g := New()
	for _, line := range lines {
		addLine(g, line)
	}
	return g
}

func addLine(g *Graph, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentMarker) {
		return
	}
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return
	}
	g.AddEdge(parts[0], parts[1])
}
