// Package render provides the shared contract for modviz renderers.
//
// Renderers consume the core graph values produced by depgraph and its
// transform subpackage and are responsible for everything visual: colors,
// layout, markup emission, and output-format escaping. The core guarantees
// plain-text labels and nothing more.
//
// Concrete renderers live in the subpackages dot, webviz, plantuml, and
// mermaid.
package render

import "github.com/modviz/modviz/pkg/depgraph"

// Options are the rendering knobs shared by all output targets.
type Options struct {
	// HostPrefix is stripped when simplifying labels.
	// Defaults to depgraph.DefaultHostPrefix when empty.
	HostPrefix string

	// ShowVersion includes version fragments on node labels, tooltips, or
	// edge annotations, depending on the target format.
	ShowVersion bool

	// Title is an optional diagram heading. Targets without a title concept
	// ignore it.
	Title string
}

// Defaulted returns a copy of o with empty fields set to their defaults.
func (o Options) Defaulted() Options {
	if o.HostPrefix == "" {
		o.HostPrefix = depgraph.DefaultHostPrefix
	}
	return o
}
