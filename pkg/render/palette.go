package render

import "hash/fnv"

// DefaultPalette is the color set used for visual distinction of nodes.
// The colors are web color names understood by all output targets.
var DefaultPalette = []string{
	"tomato", "steelblue", "mediumseagreen", "goldenrod", "orchid",
	"darkorange", "teal", "slateblue", "indianred", "olivedrab",
	"cadetblue", "palevioletred", "darkkhaki", "cornflowerblue", "salmon",
}

// AssignColor deterministically picks a palette color for a name. Equal
// names always map to the same color within one palette, so a node keeps
// its color across renders and output formats.
//
// An empty palette falls back to [DefaultPalette].
func AssignColor(name string, palette []string) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return palette[h.Sum32()%uint32(len(palette))]
}
