package webviz

import (
	"strings"
	"testing"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/render"
)

func TestToHTML(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/a/y@v1",
	})

	out, err := ToHTML(g, render.Options{Title: "Test graph"})
	if err != nil {
		t.Fatalf("ToHTML error: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "<title>Test graph</title>") {
		t.Error("missing page title")
	}
	if !strings.Contains(html, "vis-network") {
		t.Error("page should load vis-network")
	}
	if !strings.Contains(html, `"id":"github.com/a/x@v1"`) {
		t.Error("node data missing")
	}
	if !strings.Contains(html, `"from":"github.com/a/x@v1"`) {
		t.Error("edge data missing")
	}
	if !strings.Contains(html, `a\nx`) {
		t.Error("node label should use newline-joined org/project")
	}
}

func TestToHTMLShowVersion(t *testing.T) {
	g := depgraph.BuildLines([]string{"github.com/a/x@v1.2.3 github.com/b/z@v2.0.0"})

	out, err := ToHTML(g, render.Options{ShowVersion: true})
	if err != nil {
		t.Fatalf("ToHTML error: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, `v1.2.3\na\nx`) {
		t.Error("node label should carry a version line")
	}
	if !strings.Contains(html, `"title":"v2.0.0"`) {
		t.Error("edge should carry a version tooltip")
	}
}

func TestToHTMLEmptyGraph(t *testing.T) {
	out, err := ToHTML(depgraph.New(), render.Options{})
	if err != nil {
		t.Fatalf("ToHTML error on empty graph: %v", err)
	}
	if !strings.Contains(string(out), "vis.DataSet([])") {
		t.Error("empty graph should render empty data sets, not fail")
	}
}
