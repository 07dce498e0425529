// Package shell holds the application state machine and the component that
// drives it.
//
// [Reduce] is the transition function over [State]; [Shell] owns the single
// state value and runs the two suspending operations, generation and export,
// against it. A Shell is shared by every front end in the process (web UI,
// CLI, TUI) and is safe for concurrent use.
//
// Submitting moves the state to Generating synchronously, before the model is
// contacted, so a second submit is refused while the first is in flight.
// Export never modifies the state.
package shell

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/generate"
	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/render/canvas"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// Run awaits a generation started by [Shell.Submit] and applies its outcome.
type Run func(ctx context.Context) error

// Shell drives [State] through generation, selection and export.
type Shell struct {
	gen      generate.Generator
	composer *canvas.Composer
	exporter *export.Exporter
	logger   *log.Logger

	mu      sync.Mutex
	state   State
	attempt string
}

// Option configures a Shell.
type Option func(*Shell)

// WithComposer sets the canvas composer. The default composes at the
// default canvas width.
func WithComposer(c *canvas.Composer) Option { return func(s *Shell) { s.composer = c } }

// WithExporter sets the image exporter. Without one, Export always fails.
func WithExporter(e *export.Exporter) Option { return func(s *Shell) { s.exporter = e } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(s *Shell) { s.logger = l } }

// New returns a Shell in the Idle phase.
func New(gen generate.Generator, opts ...Option) *Shell {
	s := &Shell{gen: gen, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.composer == nil {
		s.composer = canvas.NewComposer()
	}
	return s
}

// dispatch applies a under the lock held by the caller.
func (s *Shell) dispatch(a Action) State {
	from := s.state.phase
	s.state = Reduce(s.state, a)
	if to := s.state.phase; to != from {
		observability.State().OnTransition(from.String(), to.String())
		s.logger.Debug("phase changed", "from", from, "to", to)
	}
	return s.state
}

// Snapshot returns a copy of the current state.
func (s *Shell) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// EditInput stores text as the current input without submitting it.
func (s *Shell) EditInput(text string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(EditInput{Text: text})
}

// =============================================================================
// Generation
// =============================================================================

// Submit records text as the input and, when it is not blank and no
// generation is running, moves to Generating before returning. The returned
// Run performs the model call; until it returns, further submits fail with
// BUSY.
func (s *Shell) Submit(text string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.phase == Generating {
		return nil, errors.New(errors.ErrCodeBusy, "a generation is already in progress")
	}
	s.dispatch(EditInput{Text: text})
	if s.dispatch(Submit{}).phase != Generating {
		return nil, errors.New(errors.ErrCodeInvalidInput, "contract text is empty")
	}

	attempt := uuid.NewString()
	s.attempt = attempt
	s.composer.Reset()
	s.logger.Info("generation started", "attempt", attempt, "chars", len(text))

	return func(ctx context.Context) error {
		return s.run(ctx, attempt, text)
	}, nil
}

func (s *Shell) run(ctx context.Context, attempt, text string) error {
	start := time.Now()
	result, err := s.gen.Generate(ctx, text)
	elapsed := time.Since(start).Round(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempt != attempt {
		s.logger.Warn("discarding stale generation result", "attempt", attempt)
		return nil
	}
	if err == nil && result == nil {
		err = errors.New(errors.ErrCodeInvalidSuite, "generator returned no suite")
	}
	if err != nil {
		if !errors.Is(err, errors.ErrCodeGeneration) {
			err = errors.Generation(err)
		}
		s.dispatch(FailedWith{Message: errors.MsgGeneration})
		s.logger.Error("generation failed", "attempt", attempt, "elapsed", elapsed, "error", err)
		return err
	}

	s.dispatch(Succeeded{Suite: result})
	s.logger.Info("generation complete", "attempt", attempt, "project", result.ProjectName, "sheets", len(result.Sheets), "elapsed", elapsed)
	return nil
}

// Generate submits text and waits for the result. The returned state is the
// one reached by this attempt (Ready or Failed) unless the submit itself was
// refused.
func (s *Shell) Generate(ctx context.Context, text string) (State, error) {
	run, err := s.Submit(text)
	if err != nil {
		return s.Snapshot(), err
	}
	err = run(ctx)
	return s.Snapshot(), err
}

// =============================================================================
// Selection and canvas
// =============================================================================

// Select makes the sheet with id active. Unknown ids and selection outside
// the Ready phase leave the state unchanged.
func (s *Shell) Select(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(SelectSheet{ID: id})
}

// ActiveSheet returns a copy of the active sheet.
func (s *Shell) ActiveSheet() (suite.Sheet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSheet()
}

func (s *Shell) activeSheet() (suite.Sheet, bool) {
	id, ok := s.state.ActiveSheetID()
	if !ok {
		return suite.Sheet{}, false
	}
	sh, ok := s.state.suite.Sheet(id)
	if !ok {
		return suite.Sheet{}, false
	}
	return *sh, true
}

// Canvas returns the surface of the active sheet, composing it when the
// current surface belongs to a different sheet. It returns nil when no sheet
// is active.
func (s *Shell) Canvas() *canvas.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.activeSheet()
	if !ok {
		s.composer.Reset()
		return nil
	}
	if cur := s.composer.Current(); cur != nil && cur.SheetID() == sh.ID {
		return cur
	}
	return s.composer.Compose(sh)
}

// =============================================================================
// Export
// =============================================================================

// Exporting reports whether an export is in flight.
func (s *Shell) Exporting() bool {
	return s.exporter != nil && s.exporter.Busy()
}

// Export rasterizes the active sheet's canvas. Failures are EXPORT_FAILED
// (or BUSY while another export runs) and leave the state untouched.
func (s *Shell) Export(ctx context.Context) (export.Image, error) {
	if s.exporter == nil {
		return export.Image{}, errors.Export(errors.New(errors.ErrCodeInternal, "no exporter configured"))
	}
	img, err := s.exporter.Export(ctx, s.Canvas())
	if err != nil {
		s.logger.Error("export failed", "error", err)
		return export.Image{}, err
	}
	s.logger.Info("exported canvas", "file", img.Filename, "bytes", len(img.PNG))
	return img, nil
}
