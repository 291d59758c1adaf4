// Package observability lets the CLI watch a run: row fetches, rendering,
// PDF conversion, cache lookups and Sheets API calls are reported to hooks
// that default to no-ops.
//
// Hooks are registered by main, not by libraries, so the libraries stay free
// of observability frameworks. [LogHooks] is the implementation the CLI
// registers with --verbose.
//
// # Usage
//
// Register hooks before a run:
//
//	observability.NewLogHooks(logger).Register()
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnFetchStart(ctx, rng)
//	// ... fetch rows ...
//	observability.Pipeline().OnFetchComplete(ctx, rng, len(rows), duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the print pipeline.
type PipelineHooks interface {
	// Fetch events, one pair per range read from the row source
	OnFetchStart(ctx context.Context, rng string)
	OnFetchComplete(ctx context.Context, rng string, rows int, duration time.Duration, err error)

	// Render events, one pair per program run
	OnRenderStart(ctx context.Context, program string, items int)
	OnRenderComplete(ctx context.Context, program string, pages int, duration time.Duration, err error)

	// Convert events, one pair per PDF
	OnConvertStart(ctx context.Context, engine string, pages int)
	OnConvertComplete(ctx context.Context, engine string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnFetchStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnFetchComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, int)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnConvertStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnConvertComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is the set of hooks in use. It is replaced as a whole, so a
// reader always sees one consistent set.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	current  atomic.Pointer[registry]
	updateMu sync.Mutex
)

func init() { Reset() }

// update applies fn to a copy of the registry and installs the copy.
func update(fn func(*registry)) {
	updateMu.Lock()
	defer updateMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
