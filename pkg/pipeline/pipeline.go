// Package pipeline composes the modviz processing stages: build the raw
// graph from an edge list, apply the filter stages in their fixed order,
// optionally consolidate, and render the requested output formats.
//
// The pipeline is used by both the CLI and the HTTP API through [Runner],
// which adds caching and logging around the pure stages. Given identical
// inputs every stage produces identical output; the only statefulness lives
// in the cache.
//
// # Stage order
//
// Filters always run in the documented CLI order: allow-prefix, hide-prefix,
// max-depth, isolated removal. Stages whose options are unset pass the graph
// through unchanged.
package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/errors"
)

// Output formats.
const (
	FormatDOT      = "dot"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatHTML     = "html"
	FormatPlantUML = "puml"
	FormatMermaid  = "mmd"
	FormatJSON     = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:      true,
	FormatSVG:      true,
	FormatPNG:      true,
	FormatHTML:     true,
	FormatPlantUML: true,
	FormatMermaid:  true,
	FormatJSON:     true,
}

// NoMaxDepth disables depth filtering.
const NoMaxDepth = -1

// DefaultCacheTTL is how long cached graphs and artifacts live.
const DefaultCacheTTL = 0 // no expiration; the cache command can clear

// Options configures one pipeline execution.
// Construct with [DefaultOptions] and override fields as needed.
type Options struct {
	// AllowPrefixes keeps only modules under these prefixes. Empty means
	// "match everything".
	AllowPrefixes []string

	// AllowAll disables allow-prefix filtering. ValidateAndSetDefaults
	// derives it from AllowPrefixes; only [Transform] called directly
	// reads a caller-set value.
	AllowAll bool

	// HidePrefixes removes modules under these prefixes. Applied after the
	// allow filter.
	HidePrefixes []string

	// MaxDepth keeps only nodes within this distance of a root.
	// NoMaxDepth disables the stage. Zero is a valid bound (roots only).
	MaxDepth int

	// RemoveIsolated drops nodes without any edges after filtering.
	RemoveIsolated bool

	// Consolidate merges nodes sharing a consolidation key. Forced on for
	// the PlantUML format, which is defined over consolidated graphs.
	Consolidate bool

	// ShowVersion includes version fragments in labels and annotations.
	ShowVersion bool

	// HostPrefix is the hosting prefix stripped from labels.
	// Defaults to depgraph.DefaultHostPrefix.
	HostPrefix string

	// Title is an optional diagram heading.
	Title string

	// Formats lists the artifacts to render. Empty means no rendering
	// (filter-only executions).
	Formats []string

	// Refresh bypasses cache reads (writes still happen).
	Refresh bool

	// Logger receives progress events. Defaults to log.Default().
	Logger *log.Logger
}

// DefaultOptions returns options with allow-all filtering, no depth bound,
// and the default host prefix.
func DefaultOptions() Options {
	return Options{
		AllowAll:   true,
		MaxDepth:   NoMaxDepth,
		HostPrefix: depgraph.DefaultHostPrefix,
	}
}

// ValidateAndSetDefaults checks the options and fills defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.MaxDepth < NoMaxDepth {
		return errors.New(errors.ErrCodeInvalidDepth, "max depth must be >= 0 (or %d for unlimited), got %d", NoMaxDepth, o.MaxDepth)
	}
	// The allow-all sentinel is derived, not trusted: an empty prefix list
	// means "match everything" and a non-empty one always filters, so
	// callers starting from DefaultOptions cannot leave a stale sentinel
	// that bypasses their own prefixes.
	o.AllowAll = len(o.AllowPrefixes) == 0
	if o.HostPrefix == "" {
		o.HostPrefix = depgraph.DefaultHostPrefix
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if f == FormatPlantUML {
			o.Consolidate = true
		}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (supported: dot, svg, png, html, puml, mmd, json)", f)
		}
	}
	return nil
}
