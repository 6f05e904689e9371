// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through package-level hook registries; binaries
// decide what receives them. The defaults do nothing, so the comparison
// core never depends on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	    observability.SetCompareHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    observability.SetHTTPHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Compare().OnCompareStart(ctx, nameA, nameB)
//	// ... compare ...
//	observability.Compare().OnCompareComplete(ctx, nameA, nameB, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Compare Hooks
// =============================================================================

// CompareHooks receives events from the comparison runner.
type CompareHooks interface {
	// OnLoad fires after one input has been read and built.
	OnLoad(ctx context.Context, name, kind string, reticulations int, duration time.Duration, err error)

	// Compare events
	OnCompareStart(ctx context.Context, nameA, nameB string)
	OnCompareComplete(ctx context.Context, nameA, nameB string, duration time.Duration, err error)

	// OnEditDistance fires once per edit distance search. variant is
	// "network" or "multree".
	OnEditDistance(ctx context.Context, variant string, explored int, exact bool)
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

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records a served request. route is the matched pattern, not
	// the raw path.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCompareHooks is a no-op implementation of CompareHooks.
type NoopCompareHooks struct{}

func (NoopCompareHooks) OnLoad(context.Context, string, string, int, time.Duration, error) {}
func (NoopCompareHooks) OnCompareStart(context.Context, string, string)                   {}
func (NoopCompareHooks) OnCompareComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopCompareHooks) OnEditDistance(context.Context, string, int, bool) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	compareHooks CompareHooks = NoopCompareHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetCompareHooks registers custom comparison hooks.
// This should be called once at application startup.
func SetCompareHooks(h CompareHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compareHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Compare returns the registered comparison hooks.
func Compare() CompareHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compareHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	compareHooks = NoopCompareHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
