package shell

import (
	"context"
	stderrors "errors"
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/generate"
	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

const clause = "Clause 1: Late payment incurs 10% penalty."

func latePayment() *suite.Suite {
	return &suite.Suite{
		ProjectName: "Services Agreement",
		Sheets: []suite.Sheet{
			{
				ID: "s1", Title: "Late Payment", Type: suite.TypeLogicFlow, Explanation: "...",
				Data: suite.Data{
					Nodes: []suite.Node{
						{ID: "n1", Label: "Payment Due", Type: suite.NodeCondition},
						{ID: "n2", Label: "10% Penalty", Type: suite.NodePenalty},
					},
					Connections: []suite.Connection{{From: "n1", To: "n2", Label: "if unpaid"}},
				},
			},
			{ID: "s2", Title: "Risks", Type: suite.TypeRiskHeatmap},
		},
	}
}

func quiet() Option { return WithLogger(log.New(io.Discard)) }

type fakeRasterizer struct{ err error }

func (fakeRasterizer) Name() string { return "fake" }

func (f fakeRasterizer) Rasterize(context.Context, []byte, export.Options) ([]byte, error) {
	return []byte("png"), f.err
}

// =============================================================================
// Reduce
// =============================================================================

func TestReduceSubmit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Phase
	}{
		{"text", clause, Generating},
		{"empty", "", Idle},
		{"blank", " \n\t ", Idle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(Reduce(State{}, EditInput{Text: tt.input}), Submit{})
			if s.Phase() != tt.want {
				t.Errorf("Phase() = %v, want %v", s.Phase(), tt.want)
			}
		})
	}
}

func TestReduceSubmitClearsPriorResult(t *testing.T) {
	ready := Reduce(Reduce(Reduce(State{}, EditInput{Text: clause}), Submit{}), Succeeded{Suite: latePayment()})
	next := Reduce(ready, Submit{})
	if next.Phase() != Generating || next.Suite() != nil || next.Message() != "" {
		t.Errorf("resubmit from Ready = %+v", next)
	}
	if _, ok := next.ActiveSheetID(); ok {
		t.Error("resubmit should clear the active sheet")
	}

	failed := Reduce(Reduce(Reduce(State{}, EditInput{Text: clause}), Submit{}), FailedWith{Message: "boom"})
	next = Reduce(failed, Submit{})
	if next.Phase() != Generating || next.Message() != "" {
		t.Errorf("resubmit from Failed = %+v", next)
	}
	if next.Input() != clause {
		t.Errorf("Input() = %q, want it kept", next.Input())
	}
}

func TestReduceIllegalActions(t *testing.T) {
	idle := Reduce(State{}, EditInput{Text: clause})
	generating := Reduce(idle, Submit{})
	ready := Reduce(generating, Succeeded{Suite: latePayment()})

	tests := []struct {
		name string
		from State
		act  Action
	}{
		{"succeed while idle", idle, Succeeded{Suite: latePayment()}},
		{"fail while idle", idle, FailedWith{Message: "x"}},
		{"select while idle", idle, SelectSheet{ID: "s1"}},
		{"submit while generating", generating, Submit{}},
		{"select while generating", generating, SelectSheet{ID: "s1"}},
		{"nil suite", generating, Succeeded{}},
		{"fail while ready", ready, FailedWith{Message: "x"}},
		{"succeed while ready", ready, Succeeded{Suite: &suite.Suite{}}},
		{"unknown sheet", ready, SelectSheet{ID: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(tt.from, tt.act); !reflect.DeepEqual(got, tt.from) {
				t.Errorf("Reduce() = %+v, want unchanged %+v", got, tt.from)
			}
		})
	}
}

func TestReduceEmptySuite(t *testing.T) {
	s := Reduce(Reduce(Reduce(State{}, EditInput{Text: clause}), Submit{}), Succeeded{Suite: &suite.Suite{ProjectName: "p"}})
	if s.Phase() != Ready {
		t.Fatalf("Phase() = %v, want ready", s.Phase())
	}
	if id, ok := s.ActiveSheetID(); ok {
		t.Errorf("ActiveSheetID() = %q, want none", id)
	}
}

func TestReduceEditInputAnyPhase(t *testing.T) {
	generating := Reduce(Reduce(State{}, EditInput{Text: clause}), Submit{})
	s := Reduce(generating, EditInput{Text: "new text"})
	if s.Phase() != Generating || s.Input() != "new text" {
		t.Errorf("EditInput while generating = %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{Idle: "idle", Generating: "generating", Ready: "ready", Failed: "failed", Phase(9): "unknown"} {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}

// =============================================================================
// Shell
// =============================================================================

func TestSubmitIsSynchronous(t *testing.T) {
	release := make(chan struct{})
	gen := generate.Func(func(ctx context.Context, _ string) (*suite.Suite, error) {
		<-release
		return latePayment(), nil
	})
	sh := New(gen, quiet())

	run, err := sh.Submit(clause)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	st := sh.Snapshot()
	if !st.Processing() || st.CanSubmit() {
		t.Errorf("after Submit: Processing=%v CanSubmit=%v, want true/false", st.Processing(), st.CanSubmit())
	}
	if _, err := sh.Submit(clause); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("second Submit() error = %v, want BUSY", err)
	}

	done := make(chan error, 1)
	go func() { done <- run(context.Background()) }()
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if sh.Snapshot().Phase() != Ready {
		t.Errorf("Phase() = %v, want ready", sh.Snapshot().Phase())
	}
}

func TestSubmitBlank(t *testing.T) {
	called := false
	sh := New(generate.Func(func(context.Context, string) (*suite.Suite, error) {
		called = true
		return latePayment(), nil
	}), quiet())

	if _, err := sh.Submit("   "); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Submit(blank) error = %v, want INVALID_INPUT", err)
	}
	if sh.Snapshot().Phase() != Idle || called {
		t.Error("blank submit should not start a generation")
	}
}

func TestGenerateScenario(t *testing.T) {
	sh := New(generate.Static{Suite: latePayment()}, quiet())

	st, err := sh.Generate(context.Background(), clause)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if st.Phase() != Ready {
		t.Fatalf("Phase() = %v, want ready", st.Phase())
	}
	if id, _ := st.ActiveSheetID(); id != "s1" {
		t.Errorf("ActiveSheetID() = %q, want s1", id)
	}

	surf := sh.Canvas()
	if surf == nil || surf.SheetID() != "s1" {
		t.Fatalf("Canvas() = %v, want surface for s1", surf)
	}
	if sh.Canvas() != surf {
		t.Error("Canvas() should reuse the surface of the active sheet")
	}
}

func TestGenerateEmptySuite(t *testing.T) {
	sh := New(generate.Static{Suite: &suite.Suite{ProjectName: "p", Sheets: []suite.Sheet{}}}, quiet())

	st, err := sh.Generate(context.Background(), clause)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, ok := st.ActiveSheetID(); ok {
		t.Error("empty suite should leave no active sheet")
	}
	if sh.Canvas() != nil {
		t.Error("Canvas() should be nil for an empty suite")
	}
}

func TestGenerateFailure(t *testing.T) {
	sh := New(generate.Static{Err: stderrors.New("503 from upstream")}, quiet())

	st, err := sh.Generate(context.Background(), clause)
	if !errors.Is(err, errors.ErrCodeGeneration) {
		t.Fatalf("Generate() error = %v, want GENERATION_FAILED", err)
	}
	if st.Phase() != Failed || st.Suite() != nil {
		t.Errorf("state = %+v, want Failed without suite", st)
	}
	if st.Message() != errors.MsgGeneration {
		t.Errorf("Message() = %q, want fixed message", st.Message())
	}

	// A plain error from a custom generator is reported the same way.
	sh = New(generate.Func(func(context.Context, string) (*suite.Suite, error) {
		return nil, stderrors.New("raw")
	}), quiet())
	st, _ = sh.Generate(context.Background(), clause)
	if st.Message() != errors.MsgGeneration {
		t.Errorf("Message() = %q, want fixed message", st.Message())
	}
}

func TestSelect(t *testing.T) {
	sh := New(generate.Static{Suite: latePayment()}, quiet())
	if _, err := sh.Generate(context.Background(), clause); err != nil {
		t.Fatal(err)
	}

	before := sh.Snapshot()
	if got := sh.Select("s1"); !reflect.DeepEqual(got, before) {
		t.Errorf("selecting the active sheet changed state: %+v", got)
	}

	st := sh.Select("s2")
	if id, _ := st.ActiveSheetID(); id != "s2" {
		t.Errorf("ActiveSheetID() = %q, want s2", id)
	}
	if st.Suite() != before.Suite() || st.Phase() != Ready {
		t.Error("selection should only change the active sheet")
	}
	if sheet, ok := sh.ActiveSheet(); !ok || sheet.Title != "Risks" {
		t.Errorf("ActiveSheet() = %+v, %v", sheet, ok)
	}
	if surf := sh.Canvas(); surf.SheetID() != "s2" {
		t.Errorf("Canvas().SheetID() = %q, want s2", surf.SheetID())
	}
}

func TestExportLeavesStateUnchanged(t *testing.T) {
	sh := New(generate.Static{Suite: latePayment()}, quiet(),
		WithExporter(export.New(fakeRasterizer{}, export.WithLogger(log.New(io.Discard)))))
	if _, err := sh.Generate(context.Background(), clause); err != nil {
		t.Fatal(err)
	}
	before := sh.Snapshot()

	img, err := sh.Export(context.Background())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if img.Filename != "we-law-explicacion-late-payment.png" {
		t.Errorf("Filename = %q", img.Filename)
	}
	if !reflect.DeepEqual(sh.Snapshot(), before) {
		t.Error("export changed state")
	}
}

func TestExportWithoutCanvas(t *testing.T) {
	sh := New(generate.Static{Suite: latePayment()}, quiet(),
		WithExporter(export.New(fakeRasterizer{}, export.WithLogger(log.New(io.Discard)))))
	before := sh.Snapshot()

	_, err := sh.Export(context.Background())
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Fatalf("Export() error = %v, want EXPORT_FAILED", err)
	}
	if sh.Exporting() {
		t.Error("busy flag should be cleared")
	}
	if !reflect.DeepEqual(sh.Snapshot(), before) {
		t.Error("failed export changed state")
	}
}

func TestExportFailureKeepsReady(t *testing.T) {
	sh := New(generate.Static{Suite: latePayment()}, quiet(),
		WithExporter(export.New(fakeRasterizer{err: stderrors.New("crash")}, export.WithLogger(log.New(io.Discard)))))
	if _, err := sh.Generate(context.Background(), clause); err != nil {
		t.Fatal(err)
	}
	if _, err := sh.Export(context.Background()); !errors.Is(err, errors.ErrCodeExport) {
		t.Errorf("Export() error = %v, want EXPORT_FAILED", err)
	}
	if sh.Snapshot().Phase() != Ready {
		t.Error("export failure should keep the Ready state")
	}
}

func TestExportWithoutExporter(t *testing.T) {
	sh := New(generate.Static{Suite: latePayment()}, quiet())
	if _, err := sh.Export(context.Background()); !errors.Is(err, errors.ErrCodeExport) {
		t.Errorf("Export() error = %v, want EXPORT_FAILED", err)
	}
}

type recordingStateHooks struct {
	observability.NoopStateHooks
	mu   sync.Mutex
	seen []string
}

func (r *recordingStateHooks) OnTransition(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, from+">"+to)
}

func TestTransitionHooks(t *testing.T) {
	rec := &recordingStateHooks{}
	observability.SetStateHooks(rec)
	t.Cleanup(observability.Reset)

	sh := New(generate.Static{Suite: latePayment()}, quiet())
	sh.EditInput("draft")
	if _, err := sh.Generate(context.Background(), clause); err != nil {
		t.Fatal(err)
	}
	sh.Select("s2")

	want := []string{"idle>generating", "generating>ready"}
	if !reflect.DeepEqual(rec.seen, want) {
		t.Errorf("transitions = %v, want %v", rec.seen, want)
	}
}
