// Package plantuml emits PlantUML component diagrams from consolidated
// dependency graphs.
//
// Each consolidated node becomes a component declaration and each
// consolidated edge a connection, optionally annotated with a short version
// fragment. Consolidation keys get a trailing underscore when used as
// PlantUML aliases so they cannot collide with reserved words of the
// diagram syntax.
package plantuml

import (
	"bytes"
	"fmt"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/depgraph/transform"
	"github.com/modviz/modviz/pkg/render"
)

// header lines emitted before the component declarations.
var header = []string{
	"skinparam componentStyle rectangle",
	"left to right direction",
	`legend "Naming scheme: Organisation | Project"`,
	"skinparam backgroundColor white",
	"skinparam ArrowFontSize 15",
	"skinparam ArrowFontBackgroundColor White",
}

// ToPlantUML renders a consolidated graph as a PlantUML component diagram.
func ToPlantUML(c *transform.ConsolidatedGraph, opts render.Options) string {
	var buf bytes.Buffer
	buf.WriteString("@startuml\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "title %s\n", opts.Title)
	}
	for _, line := range header {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')

	for _, key := range c.Keys() {
		label, _ := c.Label(key)
		fmt.Fprintf(&buf, "component \"%s\" as %s\n", displayLabel(label), alias(key))
	}

	buf.WriteByte('\n')
	for _, e := range c.Edges() {
		if e.Annotation != "" {
			fmt.Fprintf(&buf, "%s --> %s : %s\n", alias(e.From), alias(e.To), e.Annotation)
		} else {
			fmt.Fprintf(&buf, "%s --> %s\n", alias(e.From), alias(e.To))
		}
	}

	buf.WriteString("\n@enduml\n")
	return buf.String()
}

func displayLabel(l depgraph.Label) string {
	return l.Display(" | ")
}

// alias makes a consolidation key safe as a PlantUML identifier.
func alias(key string) string {
	return key + "_"
}
