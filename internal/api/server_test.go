package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modviz/modviz/pkg/cache"
)

const sampleInput = "github.com/a/x@v1 github.com/a/y@v1\ngithub.com/a/y@v1 github.com/b/z@v2\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(cache.NewMemoryCache(64, 0), nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postRender(t *testing.T, ts *httptest.Server, req RenderRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/render: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestRenderDOT(t *testing.T) {
	ts := newTestServer(t)

	resp := postRender(t, ts, RenderRequest{Input: sampleInput, Format: "dot"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("response should contain a digraph, got:\n%s", data)
	}
	if resp.Header.Get("X-Artifact-ID") == "" {
		t.Error("X-Artifact-ID header missing")
	}
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q on first render, want MISS", got)
	}
}

func TestRenderCacheHit(t *testing.T) {
	ts := newTestServer(t)

	req := RenderRequest{Input: sampleInput, Format: "mmd"}
	first := postRender(t, ts, req)
	io.Copy(io.Discard, first.Body)

	second := postRender(t, ts, req)
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q on repeated render, want HIT", got)
	}
}

func TestRenderFilterOptions(t *testing.T) {
	ts := newTestServer(t)

	depth := 1
	resp := postRender(t, ts, RenderRequest{
		Input:    sampleInput,
		Format:   "json",
		MaxDepth: &depth,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var graph struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&graph); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(graph.Nodes) != 2 || len(graph.Edges) != 1 {
		t.Errorf("graph = %d nodes / %d edges, want 2 / 1", len(graph.Nodes), len(graph.Edges))
	}
}

func TestRenderAllowPackages(t *testing.T) {
	ts := newTestServer(t)

	resp := postRender(t, ts, RenderRequest{
		Input:    sampleInput,
		Format:   "json",
		Packages: []string{"github.com/a"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var graph struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&graph); err != nil {
		t.Fatalf("decode graph: %v", err)
	}

	for _, n := range graph.Nodes {
		if n.ID == "github.com/b/z@v2" {
			t.Error("node outside the packages filter survived")
		}
	}
	if len(graph.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(graph.Nodes))
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		req        RenderRequest
		wantStatus int
	}{
		{"empty input", RenderRequest{Format: "dot"}, http.StatusBadRequest},
		{"bad format", RenderRequest{Input: sampleInput, Format: "gif"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postRender(t, ts, tt.req)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Code == "" {
				t.Error("error response should carry a code")
			}
		})
	}
}

func TestRenderInvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp := postRender(t, ts, RenderRequest{Input: sampleInput, Format: "dot"})
	rendered, _ := io.ReadAll(resp.Body)
	id := resp.Header.Get("X-Artifact-ID")
	if id == "" {
		t.Fatal("X-Artifact-ID header missing")
	}

	got, err := http.Get(ts.URL + "/v1/artifacts/" + id)
	if err != nil {
		t.Fatalf("GET artifact: %v", err)
	}
	defer got.Body.Close()

	if got.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", got.StatusCode)
	}
	fetched, _ := io.ReadAll(got.Body)
	if !bytes.Equal(rendered, fetched) {
		t.Error("fetched artifact differs from the rendered response")
	}
}

// recordingCache wraps a Cache and remembers every key written to it.
type recordingCache struct {
	cache.Cache
	keys []string
}

func (c *recordingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.keys = append(c.keys, key)
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestRenderScopesPipelineKeys(t *testing.T) {
	rec := &recordingCache{Cache: cache.NewMemoryCache(64, 0)}
	ts := httptest.NewServer(New(rec, nil).Router())
	defer ts.Close()

	resp := postRender(t, ts, RenderRequest{Input: sampleInput, Format: "dot"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var scoped int
	for _, key := range rec.keys {
		switch {
		case strings.HasPrefix(key, "api:"):
			scoped++
		case strings.HasPrefix(key, "artifact:"):
			// id-addressed artifacts are shared, not scoped
		default:
			t.Errorf("pipeline key %q lacks the api: scope", key)
		}
	}
	if scoped == 0 {
		t.Error("no api-scoped pipeline keys were written")
	}
}

func TestArtifactNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/artifacts/00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("GET artifact: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestArtifactInvalidID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/artifacts/not-a-uuid")
	if err != nil {
		t.Fatalf("GET artifact: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
