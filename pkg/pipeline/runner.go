package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// Runner executes batch renders. It holds no per-run state, so one Runner
// can serve concurrent runs.
type Runner struct {
	Rasterizer export.Rasterizer
	Logger     *log.Logger
}

// NewRunner creates a runner. r may be nil when png output is never
// requested. If logger is nil, the default logger is used.
func NewRunner(r export.Rasterizer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Rasterizer: r, Logger: logger}
}

// Execute renders the selected sheets of s in parallel.
func (r *Runner) Execute(ctx context.Context, s *suite.Suite, opts Options) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no suite to render")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	sheets, err := selectSheets(s, opts.Sheets)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{Project: s.ProjectName, Sheets: make([]SheetResult, len(sheets))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, sh := range sheets {
		g.Go(func() error {
			sheetStart := time.Now()
			artifacts, err := RenderSheet(gctx, s.ProjectName, sh, r.Rasterizer, opts)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", sh.ID, err)
			}
			result.Sheets[i] = SheetResult{SheetID: sh.ID, Title: sh.Title, Artifacts: artifacts}
			opts.Logger.Debug("rendered sheet", "id", sh.ID, "formats", opts.Formats, "duration", time.Since(sheetStart))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Stats.SheetCount = len(sheets)
	for _, sr := range result.Sheets {
		for _, data := range sr.Artifacts {
			result.Stats.Bytes += len(data)
		}
	}
	result.Stats.Duration = time.Since(start)

	r.Logger.Info("rendered suite",
		"project", s.ProjectName,
		"sheets", result.Stats.SheetCount,
		"formats", opts.Formats,
		"duration", result.Stats.Duration)

	return result, nil
}

// selectSheets returns the sheets named by ids in suite order, or all sheets
// when ids is empty. Duplicate sheet ids resolve to the first match.
func selectSheets(s *suite.Suite, ids []string) ([]suite.Sheet, error) {
	if len(ids) == 0 {
		return s.Sheets, nil
	}
	out := make([]suite.Sheet, 0, len(ids))
	for _, id := range ids {
		sh, ok := s.Sheet(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "sheet %q not found", id)
		}
		out = append(out, *sh)
	}
	return out, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Output files
// =============================================================================

// FileName returns the output name for one artifact of the sheet at index i
// (zero-based), e.g. "01-we-law-explicacion-late-payment.svg". The index keeps
// names unique when titles repeat.
func FileName(i int, title, format string) string {
	stem := strings.TrimSuffix(export.Filename(title), ".png")
	stem = strings.NewReplacer("/", "-", `\`, "-").Replace(stem)
	switch format {
	case FormatGraph:
		return fmt.Sprintf("%02d-%s.graph.svg", i+1, stem)
	default:
		return fmt.Sprintf("%02d-%s.%s", i+1, stem, format)
	}
}

// Write stores every artifact of res in dir and returns the written paths in
// sheet order.
func Write(dir string, res *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for i, sr := range res.Sheets {
		for _, format := range []string{FormatSVG, FormatPNG, FormatGraph, FormatJSON} {
			data, ok := sr.Artifacts[format]
			if !ok {
				continue
			}
			path := filepath.Join(dir, FileName(i, sr.Title, format))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}
