package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/depgraph/transform"
	"github.com/modviz/modviz/pkg/pipeline"
)

// newStatsCmd creates the stats command. It prints a summary of the
// filtered graph: node and edge counts, roots, and the depth distribution.
func newStatsCmd(configPath *string) *cobra.Command {
	var opts filterOpts

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize a dependency graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), *configPath, args[0], &opts)
		},
	}

	addFilterFlags(cmd, &opts)
	return cmd
}

func runStats(ctx context.Context, configPath, input string, opts *filterOpts) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	c, err := openCache(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	po := pipelineOptions(ctx, cfg, opts)
	result, err := pipeline.NewRunner(c, nil).Execute(ctx, data, po)
	if err != nil {
		return err
	}
	g := result.Graph

	fmt.Println(StyleTitle.Render("Graph Summary"))
	printKeyValue("Nodes", StyleNumber.Render(fmt.Sprintf("%d", g.NodeCount())))
	printKeyValue("Edges", StyleNumber.Render(fmt.Sprintf("%d", g.EdgeCount())))
	printKeyValue("Roots", StyleNumber.Render(fmt.Sprintf("%d", len(g.Roots()))))
	printKeyValue("Hash", StyleDim.Render(result.GraphHash))

	printDepthHistogram(g)

	for _, root := range g.Roots() {
		label := depgraph.Simplify(root, cfg.HostPrefix).Display("/")
		printDetail("root: %s", label)
	}
	return nil
}

// printDepthHistogram prints the number of nodes at each BFS depth.
func printDepthHistogram(g *depgraph.Graph) {
	depths := transform.Depths(g)
	if len(depths) == 0 {
		return
	}

	counts := map[int]int{}
	maxDepth := 0
	for _, d := range depths {
		counts[d]++
		if d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([]int, 0, len(counts))
	for d := range counts {
		levels = append(levels, d)
	}
	sort.Ints(levels)

	fmt.Println(StyleTitle.Render("Depth Distribution"))
	for _, d := range levels {
		printKeyValue(fmt.Sprintf("depth %d", d), StyleNumber.Render(fmt.Sprintf("%d", counts[d])))
	}
}
