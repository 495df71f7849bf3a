// Package observability provides hooks for progress reporting and metrics.
//
// The generation driver emits events at font, token and run boundaries.
// Consumers register hooks at startup (or per runner) to drive progress
// bars, collect counters, or forward to a metrics backend, without the
// core packages depending on any of them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGenerateHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generate().OnFontStart(ctx, "DejaVuSans", 0, 3)
//	// ... render tokens ...
//	observability.Generate().OnRunComplete(ctx, written, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generate Hooks
// =============================================================================

// GenerateHooks receives events from the dataset generation driver.
type GenerateHooks interface {
	// OnRunStart is called once tokens are segmented and fonts are loaded.
	// expected is the artifact count if no token turns out blank.
	OnRunStart(ctx context.Context, fonts, tokens, expected int)

	// OnFontStart is called before the first token of a font is rendered.
	OnFontStart(ctx context.Context, font string, index, total int)

	// OnTokenComplete is called after every (font, token) pair. A written
	// count of zero means the token rendered blank and was skipped.
	OnTokenComplete(ctx context.Context, font, kind string, written int, duration time.Duration)

	// OnRunComplete is called when the run ends, successfully or not.
	OnRunComplete(ctx context.Context, written int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerateHooks is a no-op implementation of GenerateHooks.
type NoopGenerateHooks struct{}

func (NoopGenerateHooks) OnRunStart(context.Context, int, int, int)                         {}
func (NoopGenerateHooks) OnFontStart(context.Context, string, int, int)                     {}
func (NoopGenerateHooks) OnTokenComplete(context.Context, string, string, int, time.Duration) {}
func (NoopGenerateHooks) OnRunComplete(context.Context, int, time.Duration, error)          {}

// =============================================================================
// Fan-out
// =============================================================================

// Multi returns hooks that forward every event to each of hs in order.
func Multi(hs ...GenerateHooks) GenerateHooks {
	return multiHooks(hs)
}

type multiHooks []GenerateHooks

func (m multiHooks) OnRunStart(ctx context.Context, fonts, tokens, expected int) {
	for _, h := range m {
		h.OnRunStart(ctx, fonts, tokens, expected)
	}
}

func (m multiHooks) OnFontStart(ctx context.Context, font string, index, total int) {
	for _, h := range m {
		h.OnFontStart(ctx, font, index, total)
	}
}

func (m multiHooks) OnTokenComplete(ctx context.Context, font, kind string, written int, d time.Duration) {
	for _, h := range m {
		h.OnTokenComplete(ctx, font, kind, written, d)
	}
}

func (m multiHooks) OnRunComplete(ctx context.Context, written int, d time.Duration, err error) {
	for _, h := range m {
		h.OnRunComplete(ctx, written, d, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generateHooks GenerateHooks = NoopGenerateHooks{}
	hooksMu       sync.RWMutex
)

// SetGenerateHooks registers custom generation hooks.
// This should be called once at application startup before any run starts.
func SetGenerateHooks(h GenerateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generateHooks = h
	}
}

// Generate returns the registered generation hooks.
func Generate() GenerateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generateHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generateHooks = NoopGenerateHooks{}
}
