package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/modviz/modviz/pkg/cache"
	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/depgraph/transform"
	"github.com/modviz/modviz/pkg/errors"
	"github.com/modviz/modviz/pkg/graphio"
	"github.com/modviz/modviz/pkg/observability"
	"github.com/modviz/modviz/pkg/render"
	"github.com/modviz/modviz/pkg/render/dot"
	"github.com/modviz/modviz/pkg/render/mermaid"
	"github.com/modviz/modviz/pkg/render/plantuml"
	"github.com/modviz/modviz/pkg/render/webviz"
)

// Runner executes the pipeline with caching around the filtered graph and
// the rendered artifacts. It holds no per-execution state, so one Runner can
// serve concurrent requests with different options.
type Runner struct {
	Cache cache.Cache
	Keyer cache.Keyer
}

// NewRunner creates a runner. A nil cache disables caching (NullCache);
// a nil keyer uses the default keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{Cache: c, Keyer: keyer}
}

// Stats aggregates timing and size information for one execution.
type Stats struct {
	BuildTime  time.Duration
	RenderTime time.Duration
	NodeCount  int
	EdgeCount  int
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	GraphHit    bool
	ArtifactHit map[string]bool
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// Graph is the filtered graph.
	Graph *depgraph.Graph

	// Consolidated is set when consolidation ran.
	Consolidated *transform.ConsolidatedGraph

	// Artifacts maps format to rendered bytes, one entry per requested format.
	Artifacts map[string][]byte

	// GraphHash fingerprints the filtered graph, usable as an ETag.
	GraphHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Execute runs build -> filter -> (consolidate) -> render over the raw edge
// list input.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{ArtifactHit: make(map[string]bool)},
	}

	buildStart := time.Now()
	g, graphHit, err := r.filteredGraph(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.CacheInfo.GraphHit = graphHit
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	graphJSON, err := graphio.MarshalJSON(g)
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphJSON)

	opts.Logger.Info("filtered graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", graphHit,
		"duration", result.Stats.BuildTime)

	if opts.Consolidate {
		result.Consolidated = transform.Consolidate(g, transform.ConsolidateOptions{
			HostPrefix:  opts.HostPrefix,
			ShowVersion: opts.ShowVersion,
		})
		opts.Logger.Debug("consolidated graph",
			"keys", result.Consolidated.NodeCount(),
			"edges", result.Consolidated.EdgeCount())
	}

	if len(opts.Formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	for _, format := range opts.Formats {
		artifact, hit, err := r.renderFormat(ctx, result, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = artifact
		result.CacheInfo.ArtifactHit[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Transform applies the filter stages to an already-built graph in the fixed
// order: allow-prefix, hide-prefix, max-depth, isolated removal. It is the
// pure core of the pipeline, usable without a Runner.
func Transform(g *depgraph.Graph, opts Options) *depgraph.Graph {
	out := transform.FilterAllowedPrefixes(g, opts.AllowPrefixes, opts.AllowAll)
	out = transform.FilterHiddenPrefixes(out, opts.HidePrefixes)
	if opts.MaxDepth != NoMaxDepth {
		out = transform.FilterMaxDepth(out, opts.MaxDepth)
	}
	if opts.RemoveIsolated {
		out = transform.RemoveIsolated(out)
	}
	return out
}

// filteredGraph returns the filtered graph for the input, from cache when
// possible.
func (r *Runner) filteredGraph(ctx context.Context, input []byte, opts Options) (*depgraph.Graph, bool, error) {
	key := r.Keyer.GraphKey(cache.Hash(input), cache.GraphKeyOpts{
		AllowPrefixes: opts.AllowPrefixes,
		AllowAll:      opts.AllowAll,
		HidePrefixes:  opts.HidePrefixes,
		MaxDepth:      opts.MaxDepth,
		Isolated:      opts.RemoveIsolated,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := graphio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	buildStart := time.Now()
	raw, err := depgraph.Build(bytes.NewReader(input))
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "build graph")
	}
	observability.Pipeline().OnBuildComplete(ctx, raw.NodeCount(), raw.EdgeCount(), time.Since(buildStart))

	filterStart := time.Now()
	g := Transform(raw, opts)
	observability.Pipeline().OnFilterComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(filterStart))

	if data, err := graphio.MarshalJSON(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}
	return g, false, nil
}

// renderFormat renders one artifact, from cache when possible.
func (r *Runner) renderFormat(ctx context.Context, res *Result, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(res.GraphHash, cache.ArtifactKeyOpts{
		Format:      format,
		ShowVersion: opts.ShowVersion,
		Consolidate: opts.Consolidate,
		HostPrefix:  opts.HostPrefix,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	artifact, err := renderArtifact(ctx, res, format, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, artifact, DefaultCacheTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
	}
	return artifact, false, nil
}

func renderArtifact(ctx context.Context, res *Result, format string, opts Options) ([]byte, error) {
	ropts := render.Options{
		HostPrefix:  opts.HostPrefix,
		ShowVersion: opts.ShowVersion,
		Title:       opts.Title,
	}

	switch format {
	case FormatDOT:
		return []byte(dot.ToDOT(res.Graph, ropts)), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, dot.ToDOT(res.Graph, ropts))
	case FormatPNG:
		return dot.RenderPNG(ctx, dot.ToDOT(res.Graph, ropts))
	case FormatHTML:
		return webviz.ToHTML(res.Graph, ropts)
	case FormatPlantUML:
		if res.Consolidated == nil {
			return nil, errors.New(errors.ErrCodeInternal, "plantuml requires a consolidated graph")
		}
		return []byte(plantuml.ToPlantUML(res.Consolidated, ropts)), nil
	case FormatMermaid:
		return []byte(mermaid.ToMermaid(res.Graph, ropts)), nil
	case FormatJSON:
		return graphio.MarshalJSON(res.Graph)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format)
	}
}
