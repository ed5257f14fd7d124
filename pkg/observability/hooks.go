// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies to the tree store or the HTTP API. Consumers register hooks at
// startup to receive events about edits, history moves, and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [Metrics] is the bundled implementation; it records every event as a
// Prometheus metric.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := observability.NewMetrics(prometheus.DefaultRegisterer)
//	    observability.SetStoreHooks(m)
//	    observability.SetServerHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Store().OnEdit("cut", size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from tree stores.
type StoreHooks interface {
	// OnEdit records a structural edit (add, remove, promote, divide, cut,
	// load). size is the vertex count of the resulting tree, or of the
	// unchanged tree when err is non-nil.
	OnEdit(op string, size int, duration time.Duration, err error)

	// OnHistory records an undo or redo. moved is false when the history
	// was already at the boundary.
	OnHistory(op string, moved bool)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	// OnRequest records a handled request.
	OnRequest(ctx context.Context, route string, status int, duration time.Duration)

	// OnSessions records the number of live editing sessions.
	OnSessions(ctx context.Context, count int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnEdit(string, int, time.Duration, error) {}
func (NoopStoreHooks) OnHistory(string, bool)                   {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, int, time.Duration) {}
func (NoopServerHooks) OnSessions(context.Context, int)                       {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks  StoreHooks  = NoopStoreHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any edits.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetServerHooks registers custom server hooks.
// This should be called once at application startup before serving.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	serverHooks = NoopServerHooks{}
}
