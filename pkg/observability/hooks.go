// Package observability provides hooks for instrumenting the modviz
// pipeline without coupling it to a metrics backend.
//
// Libraries emit events through the package-level accessors; applications
// register implementations at startup:
//
//	observability.SetPipelineHooks(&myHooks{})
//
// The default implementations are no-ops, so uninstrumented binaries pay a
// single interface call per event.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from pipeline execution.
type PipelineHooks interface {
	// OnBuildComplete fires after the edge list is parsed into a raw graph.
	OnBuildComplete(ctx context.Context, nodes, edges int, duration time.Duration)

	// OnFilterComplete fires after the filter stages ran.
	OnFilterComplete(ctx context.Context, nodes, edges int, duration time.Duration)

	// OnRenderComplete fires after artifact rendering, once per execution.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

type noopPipelineHooks struct{}

func (noopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration)       {}
func (noopPipelineHooks) OnFilterComplete(context.Context, int, int, time.Duration)      {}
func (noopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type noopCacheHooks struct{}

func (noopCacheHooks) OnCacheHit(context.Context, string)       {}
func (noopCacheHooks) OnCacheMiss(context.Context, string)      {}
func (noopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	mu            sync.RWMutex
	pipelineHooks PipelineHooks = noopPipelineHooks{}
	cacheHooks    CacheHooks    = noopCacheHooks{}
)

// SetPipelineHooks registers pipeline instrumentation. Passing nil restores
// the no-op implementation.
func SetPipelineHooks(h PipelineHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = noopPipelineHooks{}
	}
	pipelineHooks = h
}

// SetCacheHooks registers cache instrumentation. Passing nil restores the
// no-op implementation.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = noopCacheHooks{}
	}
	cacheHooks = h
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
