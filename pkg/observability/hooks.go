// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about suite generation, canvas composition, image export
// and application state transitions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the core packages stay
// free of observability frameworks. The [prom] subpackage provides a
// Prometheus-backed implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New(prometheus.DefaultRegisterer)
//	    observability.SetGenerationHooks(m)
//	    observability.SetExportHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generation().OnGenerateStart(ctx, model, len(text))
//	// ... call the model ...
//	observability.Generation().OnGenerateComplete(ctx, model, len(s.Sheets), time.Since(start), err)
//
// [prom]: github.com/matzehuels/legalcanvas/pkg/observability/prom
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from the generation client.
type GenerationHooks interface {
	// OnGenerateStart records the start of one model call.
	OnGenerateStart(ctx context.Context, model string, inputLen int)

	// OnGenerateComplete records the outcome of one model call. sheets is
	// zero when err is non-nil.
	OnGenerateComplete(ctx context.Context, model string, sheets int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from canvas composition.
type RenderHooks interface {
	// OnCompose records one composed canvas.
	OnCompose(sheetType, layout string, nodes int, duration time.Duration)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from image export.
type ExportHooks interface {
	// OnExportStart records the start of a rasterization.
	OnExportStart(ctx context.Context, rasterizer string)

	// OnExportComplete records the outcome of a rasterization.
	OnExportComplete(ctx context.Context, rasterizer string, size int, duration time.Duration, err error)

	// OnExportRejected records an export refused because another was in flight.
	OnExportRejected(ctx context.Context, rasterizer string)
}

// =============================================================================
// State Hooks
// =============================================================================

// StateHooks receives application phase transitions.
type StateHooks interface {
	// OnTransition records a phase change. It is not called for actions that
	// leave the phase unchanged.
	OnTransition(from, to string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnGenerateStart(context.Context, string, int) {}
func (NoopGenerationHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnCompose(string, string, int, time.Duration) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string)                               {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {}
func (NoopExportHooks) OnExportRejected(context.Context, string)                            {}

// NoopStateHooks is a no-op implementation of StateHooks.
type NoopStateHooks struct{}

func (NoopStateHooks) OnTransition(string, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	renderHooks     RenderHooks     = NoopRenderHooks{}
	exportHooks     ExportHooks     = NoopExportHooks{}
	stateHooks      StateHooks      = NoopStateHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup before any generation.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetStateHooks registers custom state hooks.
func SetStateHooks(h StateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stateHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// State returns the registered state hooks.
func State() StateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stateHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generationHooks = NoopGenerationHooks{}
	renderHooks = NoopRenderHooks{}
	exportHooks = NoopExportHooks{}
	stateHooks = NoopStateHooks{}
}
