// Package observability provides hooks for progress reporting and metrics.
//
// The manifest package emits events at the start and end of a scan and
// around every manifest rewrite. Consumers register hooks at startup to turn
// those events into log lines, counters or traces without the library taking
// a dependency on any backend.
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
//	    observability.SetRewriteHooks(&myRewriteHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Rewrite().OnRewriteStart(ctx, path)
//	// ... sort the manifest ...
//	observability.Rewrite().OnRewriteComplete(ctx, path, changed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from manifest discovery.
type ScanHooks interface {
	// OnScanStart records the start of a directory walk.
	OnScanStart(ctx context.Context, root string)

	// OnScanSkip records a path that could not be read and was skipped.
	OnScanSkip(ctx context.Context, path string, err error)

	// OnScanComplete records the end of a walk with the number of manifests found.
	OnScanComplete(ctx context.Context, root string, found int, duration time.Duration, err error)
}

// =============================================================================
// Rewrite Hooks
// =============================================================================

// RewriteHooks receives events from manifest rewrites.
type RewriteHooks interface {
	// OnRewriteStart records the start of processing one manifest.
	OnRewriteStart(ctx context.Context, path string)

	// OnRewriteComplete records the outcome for one manifest. changed reports
	// whether any table was reordered.
	OnRewriteComplete(ctx context.Context, path string, changed bool, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(context.Context, string)                              {}
func (NoopScanHooks) OnScanSkip(context.Context, string, error)                        {}
func (NoopScanHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}

// NoopRewriteHooks is a no-op implementation of RewriteHooks.
type NoopRewriteHooks struct{}

func (NoopRewriteHooks) OnRewriteStart(context.Context, string) {}
func (NoopRewriteHooks) OnRewriteComplete(context.Context, string, bool, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks    ScanHooks    = NoopScanHooks{}
	rewriteHooks RewriteHooks = NoopRewriteHooks{}
	hooksMu      sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scan.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetRewriteHooks registers custom rewrite hooks.
// This should be called once at application startup before any rewrite.
func SetRewriteHooks(h RewriteHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rewriteHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Rewrite returns the registered rewrite hooks.
func Rewrite() RewriteHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rewriteHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	rewriteHooks = NoopRewriteHooks{}
}
