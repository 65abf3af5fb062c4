package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/graphio"
	"github.com/modviz/modviz/pkg/pipeline"
)

// newFilterCmd creates the filter command. It runs the pipeline without
// rendering and emits the filtered graph as an edge list or JSON.
func newFilterCmd(configPath *string) *cobra.Command {
	var (
		opts   filterOpts
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "Filter a dependency graph and print the surviving edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.Context(), *configPath, args[0], &opts, output, asJSON)
		},
	}

	addFilterFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (default: stdout)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the graph as JSON instead of an edge list")

	return cmd
}

func runFilter(ctx context.Context, configPath, input string, opts *filterOpts, output string, asJSON bool) error {
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

	prog := newProgress(loggerFromContext(ctx))
	po := pipelineOptions(ctx, cfg, opts)
	result, err := pipeline.NewRunner(c, nil).Execute(ctx, data, po)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Filtered to %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount))

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if asJSON {
		return graphio.WriteJSON(result.Graph, out)
	}
	_, err = out.Write(edgeList(result.Graph))
	return err
}

// edgeList serializes the graph back into go mod graph format, one
// "from to" pair per line in edge insertion order.
func edgeList(g *depgraph.Graph) []byte {
	var buf bytes.Buffer
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "%s %s\n", e.From, e.To)
	}
	return buf.Bytes()
}
