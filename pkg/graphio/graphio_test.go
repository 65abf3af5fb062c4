package graphio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/modviz/modviz/pkg/depgraph"
)

func TestRoundTrip(t *testing.T) {
	g := depgraph.BuildLines([]string{
		"github.com/a/x@v1 github.com/a/y@v1",
		"github.com/a/y@v1 github.com/b/z@v2",
	})

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if !got.Equal(g) {
		t.Error("round-tripped graph should equal the original")
	}
}

func TestWriteJSONShape(t *testing.T) {
	g := depgraph.BuildLines([]string{"a.b c"})

	data, err := MarshalJSON(g)
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, `"id": "a.b"`) {
		t.Errorf("missing node id:\n%s", out)
	}
	if !strings.Contains(out, `"normalized": "a_b"`) {
		t.Errorf("missing normalized id:\n%s", out)
	}
	if !strings.Contains(out, `"from": "a.b"`) {
		t.Errorf("missing edge:\n%s", out)
	}
}

func TestReadJSONRecomputesNormalized(t *testing.T) {
	// A hand-edited file with a wrong normalized field must not poison the
	// graph.
	input := `{"nodes":[{"id":"a.b","normalized":"WRONG"}],"edges":[]}`
	g, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	norm, _ := g.Normalized("a.b")
	if norm != "a_b" {
		t.Errorf("Normalized = %q, want recomputed %q", norm, "a_b")
	}
}

func TestReadJSONInvalid(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("invalid JSON should return an error")
	}
}
