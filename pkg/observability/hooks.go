// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about width computations and table file loading.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnCalculateStart(ctx, columns, rows)
//	// ... compute widths ...
//	observability.Layout().OnCalculateComplete(ctx, width, overflow, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the width engine.
type LayoutHooks interface {
	// OnCalculateStart is called before the first stage of a computation.
	OnCalculateStart(ctx context.Context, columns, rows int)

	// OnStage is called after each fitting stage that ran, with the total
	// width it left.
	OnStage(ctx context.Context, stage string, width, target int)

	// OnCalculateComplete is called once per computation, also on failure.
	// overflow is the number of cells the result exceeds its target by.
	OnCalculateComplete(ctx context.Context, width, overflow int, duration time.Duration, err error)
}

// =============================================================================
// Load Hooks
// =============================================================================

// LoadHooks receives events from table file loading.
type LoadHooks interface {
	// OnLoad records one table file being decoded into a table.
	OnLoad(ctx context.Context, path string, columns, rows int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnCalculateStart(context.Context, int, int)                          {}
func (NoopLayoutHooks) OnStage(context.Context, string, int, int)                           {}
func (NoopLayoutHooks) OnCalculateComplete(context.Context, int, int, time.Duration, error) {}

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnLoad(context.Context, string, int, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	loadHooks   LoadHooks   = NoopLoadHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any computation.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetLoadHooks registers custom load hooks.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	loadHooks = NoopLoadHooks{}
}
