package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/legalcanvas/pkg/observability"
)

func TestGenerationMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnGenerateComplete(ctx, "model", 3, time.Second, nil)
	m.OnGenerateComplete(ctx, "model", 0, time.Second, errors.New("boom"))

	if got := testutil.ToFloat64(m.generations.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok generations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.generations.WithLabelValues("error")); got != 1 {
		t.Errorf("failed generations = %v, want 1", got)
	}
}

func TestComposeBoundsSheetTypes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.OnCompose("risk-heatmap", "heatmap", 2, time.Millisecond)
	m.OnCompose("org-chart", "logic-flow", 2, time.Millisecond)

	if got := testutil.ToFloat64(m.composes.WithLabelValues("risk-heatmap", "heatmap")); got != 1 {
		t.Errorf("risk-heatmap composes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.composes.WithLabelValues("other", "logic-flow")); got != 1 {
		t.Errorf("other composes = %v, want 1", got)
	}
}

func TestExportMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnExportComplete(ctx, "rsvg", 4096, time.Second, nil)
	m.OnExportRejected(ctx, "rsvg")

	if got := testutil.ToFloat64(m.exports.WithLabelValues("rsvg", "ok")); got != 1 {
		t.Errorf("ok exports = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.exports.WithLabelValues("rsvg", "busy")); got != 1 {
		t.Errorf("busy exports = %v, want 1", got)
	}
}

func TestPhaseGauge(t *testing.T) {
	m := New(prometheus.NewRegistry())

	if got := testutil.ToFloat64(m.phase.WithLabelValues("idle")); got != 1 {
		t.Errorf("initial idle = %v, want 1", got)
	}

	m.OnTransition("idle", "generating")
	if got := testutil.ToFloat64(m.phase.WithLabelValues("generating")); got != 1 {
		t.Errorf("generating = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.phase.WithLabelValues("idle")); got != 0 {
		t.Errorf("idle = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("idle", "generating")); got != 1 {
		t.Errorf("transitions = %v, want 1", got)
	}
}

func TestInstall(t *testing.T) {
	defer observability.Reset()

	m := New(prometheus.NewRegistry())
	m.Install()

	if observability.Generation() != m || observability.Export() != m {
		t.Error("Install() should register the metrics as hooks")
	}
}
