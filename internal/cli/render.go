package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modviz/modviz/pkg/pipeline"
)

// filterOpts holds the pipeline flags shared by the render, filter, stats,
// and inspect commands.
type filterOpts struct {
	packages       []string // allow-prefixes; empty keeps everything
	hidePackages   []string // hide-prefixes
	maxDepth       int      // -1 disables depth filtering
	removeIsolated bool     // drop nodes without edges after filtering
	showVersion    bool     // include version segments in labels
	consolidate    bool     // merge nodes by project name
	noCache        bool     // bypass the configured cache backend
}

// addFilterFlags registers the shared pipeline flags on cmd.
func addFilterFlags(cmd *cobra.Command, opts *filterOpts) {
	cmd.Flags().StringSliceVarP(&opts.packages, "packages", "p", nil, "package prefix(es) to keep (default: all)")
	cmd.Flags().StringSliceVar(&opts.hidePackages, "hide-packages", nil, "package prefix(es) to hide")
	cmd.Flags().IntVarP(&opts.maxDepth, "max-depth", "d", pipeline.NoMaxDepth, "maximum dependency depth from the roots (-1: unlimited)")
	cmd.Flags().BoolVar(&opts.removeIsolated, "remove-isolated", false, "remove nodes left without edges")
	cmd.Flags().BoolVar(&opts.showVersion, "show-version", false, "show module versions in labels")
	cmd.Flags().BoolVar(&opts.consolidate, "consolidate", false, "merge module versions and subpackages by project")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")
}

// pipelineOptions combines command flags with the loaded config into
// pipeline options. Flags win over config values.
func pipelineOptions(ctx context.Context, cfg Config, opts *filterOpts) pipeline.Options {
	po := pipeline.DefaultOptions()
	po.AllowPrefixes = opts.packages
	if len(po.AllowPrefixes) == 0 {
		po.AllowPrefixes = cfg.Packages
	}
	po.AllowAll = len(po.AllowPrefixes) == 0
	po.HidePrefixes = opts.hidePackages
	if len(po.HidePrefixes) == 0 {
		po.HidePrefixes = cfg.HidePackages
	}
	po.MaxDepth = opts.maxDepth
	po.RemoveIsolated = opts.removeIsolated
	po.ShowVersion = opts.showVersion
	po.Consolidate = opts.consolidate
	po.HostPrefix = cfg.HostPrefix
	po.Logger = loggerFromContext(ctx)
	return po
}

// renderOpts holds the render command's flags.
type renderOpts struct {
	filterOpts
	output  string
	formats []string
	title   string
}

// newRenderCmd creates the render command. It runs the full pipeline over an
// edge list file and writes one output file per requested format.
func newRenderCmd(configPath *string) *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a dependency graph to one or more diagram formats",
		Long: `Render reads a go mod graph edge list ("-" for stdin), applies the
configured filters, and renders the result. Formats: dot, svg, png, html,
puml (PlantUML, implies --consolidate), mmd (Mermaid), json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), *configPath, args[0], &opts)
		},
	}

	addFilterFlags(cmd, &opts.filterOpts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, html, puml, mmd, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output ends in a
// known format extension, that extension is stripped. This is used when
// generating multiple files (e.g., graph.svg, graph.puml).
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender executes the pipeline and writes every requested artifact.
func runRender(ctx context.Context, configPath, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

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

	po := pipelineOptions(ctx, cfg, &opts.filterOpts)
	po.Formats = opts.formats
	po.Title = opts.title

	spin := startSpinner(ctx, "rendering")
	result, err := pipeline.NewRunner(c, nil).Execute(ctx, data, po)
	spin.Stop()
	if err != nil {
		return err
	}

	printGraphSummary(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.GraphHit)

	if len(opts.formats) == 1 {
		path := opts.output
		if path == "" {
			path = basePath("", input) + "." + opts.formats[0]
		}
		if err := writeArtifact(path, result.Artifacts[opts.formats[0]]); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// writeArtifact writes data to path ("-" for stdout).
func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}
