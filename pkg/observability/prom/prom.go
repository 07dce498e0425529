// Package prom implements the observability hooks with Prometheus collectors.
//
//	reg := prometheus.NewRegistry()
//	m := prom.New(reg)
//	m.Install()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

const namespace = "legalcanvas"

// Metrics holds the collectors fed by the hooks. It implements every hook
// interface of the observability package.
type Metrics struct {
	generations       *prometheus.CounterVec
	generationSeconds prometheus.Histogram
	suiteSheets       prometheus.Histogram
	composes          *prometheus.CounterVec
	composeSeconds    *prometheus.HistogramVec
	exports           *prometheus.CounterVec
	exportSeconds     *prometheus.HistogramVec
	exportBytes       prometheus.Histogram
	transitions       *prometheus.CounterVec
	phase             *prometheus.GaugeVec
}

var (
	_ observability.GenerationHooks = (*Metrics)(nil)
	_ observability.RenderHooks     = (*Metrics)(nil)
	_ observability.ExportHooks     = (*Metrics)(nil)
	_ observability.StateHooks      = (*Metrics)(nil)
)

// Phases reported by the phase gauge.
var phases = []string{"idle", "generating", "ready", "failed"}

// New creates the collectors and registers them with reg.
// It panics if any collector is already registered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation attempts by result.",
		}, []string{"result"}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of model calls.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
		}),
		suiteSheets: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "suite_sheets",
			Help:      "Number of sheets per generated suite.",
			Buckets:   prometheus.LinearBuckets(0, 2, 8),
		}),
		composes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "canvas_composes_total",
			Help:      "Composed canvases by sheet type and layout.",
		}, []string{"sheet_type", "layout"}),
		composeSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "canvas_compose_duration_seconds",
			Help:      "Duration of canvas composition.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}, []string{"layout"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Image exports by rasterizer and result.",
		}, []string{"rasterizer", "result"}),
		exportSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Duration of rasterization.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"rasterizer"}),
		exportBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_bytes",
			Help:      "Size of exported PNG images.",
			Buckets:   prometheus.ExponentialBuckets(64<<10, 2, 8),
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Application phase transitions.",
		}, []string{"from", "to"}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase",
			Help:      "Current application phase (1 for the active phase).",
		}, []string{"phase"}),
	}

	reg.MustRegister(
		m.generations, m.generationSeconds, m.suiteSheets,
		m.composes, m.composeSeconds,
		m.exports, m.exportSeconds, m.exportBytes,
		m.transitions, m.phase,
	)
	m.setPhase("idle")
	return m
}

// Install registers m for every hook category.
func (m *Metrics) Install() {
	observability.SetGenerationHooks(m)
	observability.SetRenderHooks(m)
	observability.SetExportHooks(m)
	observability.SetStateHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnGenerateStart(context.Context, string, int) {}

func (m *Metrics) OnGenerateComplete(_ context.Context, _ string, sheets int, d time.Duration, err error) {
	m.generations.WithLabelValues(result(err)).Inc()
	m.generationSeconds.Observe(d.Seconds())
	if err == nil {
		m.suiteSheets.Observe(float64(sheets))
	}
}

// OnCompose records a composition. Undeclared sheet types are counted as
// "other" to keep label cardinality bounded.
func (m *Metrics) OnCompose(sheetType, layout string, _ int, d time.Duration) {
	if !suite.SheetType(sheetType).Known() {
		sheetType = "other"
	}
	m.composes.WithLabelValues(sheetType, layout).Inc()
	m.composeSeconds.WithLabelValues(layout).Observe(d.Seconds())
}

func (m *Metrics) OnExportStart(context.Context, string) {}

func (m *Metrics) OnExportComplete(_ context.Context, rasterizer string, size int, d time.Duration, err error) {
	m.exports.WithLabelValues(rasterizer, result(err)).Inc()
	m.exportSeconds.WithLabelValues(rasterizer).Observe(d.Seconds())
	if err == nil {
		m.exportBytes.Observe(float64(size))
	}
}

func (m *Metrics) OnExportRejected(_ context.Context, rasterizer string) {
	m.exports.WithLabelValues(rasterizer, "busy").Inc()
}

func (m *Metrics) OnTransition(from, to string) {
	m.transitions.WithLabelValues(from, to).Inc()
	m.setPhase(to)
}

func (m *Metrics) setPhase(current string) {
	for _, p := range phases {
		v := 0.0
		if p == current {
			v = 1
		}
		m.phase.WithLabelValues(p).Set(v)
	}
}
