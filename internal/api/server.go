// Package api exposes the rendering pipeline as an HTTP service.
//
// The server accepts go mod graph edge lists over POST /v1/render, runs the
// filter and render pipeline, and returns the artifact directly. Every
// rendered artifact is also stored in the cache under a fresh id and can be
// fetched again via GET /v1/artifacts/{id}.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/modviz/modviz/pkg/buildinfo"
	"github.com/modviz/modviz/pkg/cache"
	"github.com/modviz/modviz/pkg/errors"
	"github.com/modviz/modviz/pkg/pipeline"
)

// maxRequestBytes bounds the accepted request body size.
const maxRequestBytes = 16 << 20 // 16 MiB

// artifactTTL is how long stored artifacts stay fetchable. Backends with a
// cache-wide TTL, like the memory backend, apply their own lifetime instead.
const artifactTTL = 24 * time.Hour

// Server handles HTTP rendering requests.
type Server struct {
	runner *pipeline.Runner
	cache  cache.Cache
	logger *log.Logger
}

// New creates a server backed by the given cache. A nil cache disables both
// pipeline caching and artifact retrieval by id. Pipeline cache keys are
// scoped under "api:" so the server never collides with CLI entries sharing
// the same backend.
func New(c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "api:")),
		cache:  c,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/artifacts/{id}", s.handleArtifact)
	})
	return r
}

// RenderRequest is the POST /v1/render request body.
type RenderRequest struct {
	// Input is the raw edge-list text.
	Input string `json:"input"`

	// Format selects a single output format (default "svg").
	Format string `json:"format,omitempty"`

	Packages       []string `json:"packages,omitempty"`
	HidePackages   []string `json:"hide_packages,omitempty"`
	MaxDepth       *int     `json:"max_depth,omitempty"`
	RemoveIsolated bool     `json:"remove_isolated,omitempty"`
	ShowVersion    bool     `json:"show_version,omitempty"`
	Consolidate    bool     `json:"consolidate,omitempty"`
	HostPrefix     string   `json:"host_prefix,omitempty"`
	Title          string   `json:"title,omitempty"`
	Refresh        bool     `json:"refresh,omitempty"`
}

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatHTML:     "text/html; charset=utf-8",
	pipeline.FormatPlantUML: "text/plain; charset=utf-8",
	pipeline.FormatMermaid:  "text/markdown; charset=utf-8",
	pipeline.FormatJSON:     "application/json",
}

// handleRender runs the pipeline over the posted edge list and responds with
// the rendered artifact. The artifact is also stored under a fresh id
// returned in the X-Artifact-ID header.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	var req RenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Input == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "input must not be empty"))
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := pipeline.DefaultOptions()
	opts.AllowPrefixes = req.Packages
	opts.AllowAll = len(req.Packages) == 0
	opts.HidePrefixes = req.HidePackages
	if req.MaxDepth != nil {
		opts.MaxDepth = *req.MaxDepth
	}
	opts.RemoveIsolated = req.RemoveIsolated
	opts.ShowVersion = req.ShowVersion
	opts.Consolidate = req.Consolidate
	if req.HostPrefix != "" {
		opts.HostPrefix = req.HostPrefix
	}
	opts.Title = req.Title
	opts.Refresh = req.Refresh
	opts.Formats = []string{format}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), []byte(req.Input), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifact := result.Artifacts[format]

	id := uuid.NewString()
	if err := s.cache.Set(r.Context(), artifactKey(id), artifact, artifactTTL); err != nil {
		s.logger.Warn("store artifact", "id", id, "err", err)
	}

	cacheStatus := "MISS"
	if result.CacheInfo.ArtifactHit[format] {
		cacheStatus = "HIT"
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Artifact-ID", id)
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("ETag", `"`+result.GraphHash+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

// handleArtifact fetches a previously rendered artifact from the cache.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid artifact id %q", id))
		return
	}

	data, hit, err := s.cache.Get(r.Context(), artifactKey(id))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "fetch artifact"))
		return
	}
	if !hit {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeArtifactNotFound, cache.ErrCacheMiss, "artifact %s not found", id))
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleHealthz reports liveness and build information.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// artifactKey namespaces stored artifact ids in the cache.
func artifactKey(id string) string {
	return "artifact:" + id
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps an error to its HTTP status and writes the JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}

	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    code,
		Message: errors.UserMessage(err),
	})
}
