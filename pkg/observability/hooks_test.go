package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Generation hooks
	g := NoopGenerationHooks{}
	g.OnGenerateStart(ctx, "gemini-3-pro-preview", 1024)
	g.OnGenerateComplete(ctx, "gemini-3-pro-preview", 3, time.Second, nil)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnCompose("logic-flow", "logic-flow", 4, time.Millisecond)

	// Export hooks
	e := NoopExportHooks{}
	e.OnExportStart(ctx, "rsvg")
	e.OnExportComplete(ctx, "rsvg", 2048, time.Second, nil)
	e.OnExportRejected(ctx, "rsvg")

	// State hooks
	s := NoopStateHooks{}
	s.OnTransition("idle", "generating")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Generation() should return NoopGenerationHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := State().(NoopStateHooks); !ok {
		t.Error("State() should return NoopStateHooks by default")
	}

	// Set custom hooks
	customGen := &testGenerationHooks{}
	SetGenerationHooks(customGen)
	if Generation() != customGen {
		t.Error("SetGenerationHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	customState := &testStateHooks{}
	SetStateHooks(customState)
	if State() != customState {
		t.Error("SetStateHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Reset() should restore NoopGenerationHooks")
	}
	if _, ok := State().(NoopStateHooks); !ok {
		t.Error("Reset() should restore NoopStateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testExportHooks{}
	SetExportHooks(custom)

	// Setting nil should be ignored
	SetExportHooks(nil)

	if Export() != custom {
		t.Error("SetExportHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testGenerationHooks struct{ NoopGenerationHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testExportHooks struct{ NoopExportHooks }
type testStateHooks struct{ NoopStateHooks }
