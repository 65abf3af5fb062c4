package dot

import (
	"strings"
	"testing"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/render"
)

func TestToDOT(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/a/y@v1",
		"github.com/a/y@v1 github.com/b/z@v2",
	})

	out := ToDOT(g, render.Options{})

	if !strings.HasPrefix(out, "digraph dependencies {") {
		t.Error("output should open a digraph")
	}
	if !strings.Contains(out, `"github.com/a/x@v1" -> "github.com/a/y@v1";`) {
		t.Error("missing edge x -> y")
	}
	if !strings.Contains(out, `label="a\nx"`) {
		t.Errorf("node label should split org and project on a newline:\n%s", out)
	}
	if strings.Contains(out, "v1\\n") {
		t.Error("version must not appear without ShowVersion")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Error("output should close the digraph")
	}
}

func TestToDOTShowVersion(t *testing.T) {
	g := depgraph.BuildLines([]string{"github.com/a/x@v1.2.3 github.com/b/z@v2.0.0"})

	out := ToDOT(g, render.Options{ShowVersion: true})

	if !strings.Contains(out, `label="v1.2.3\na\nx"`) {
		t.Errorf("node label should be prefixed with version:\n%s", out)
	}
	if !strings.Contains(out, `[label="v2.0.0", fontsize=9]`) {
		t.Errorf("edge should carry target version annotation:\n%s", out)
	}
}

func TestToDOTTitle(t *testing.T) {
	g := depgraph.BuildLines([]string{"a b"})
	out := ToDOT(g, render.Options{Title: "My Graph"})
	if !strings.Contains(out, `label="My Graph"`) {
		t.Error("title should be emitted as a graph label")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	lines := []string{"a b", "b c", "a c"}
	out1 := ToDOT(depgraph.BuildLines(lines), render.Options{})
	out2 := ToDOT(depgraph.BuildLines(lines), render.Options{})
	if out1 != out2 {
		t.Error("DOT output should be reproducible")
	}
}
