// Package export rasterizes a composed canvas to a PNG image.
//
// An [Exporter] takes the current [canvas.Surface] and hands its SVG document
// to a [Rasterizer]: either [RSVG] (librsvg's rsvg-convert) or [Rod]
// (headless Chromium). Images are produced at a 2.5x pixel ratio on an
// opaque white background and named by [Filename].
//
// At most one export runs at a time per Exporter; a second request while one
// is in flight fails with a BUSY error. Export never touches application
// state, so a failure leaves the canvas and the suite as they were.
package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/render/canvas"
)

// Export defaults.
const (
	DefaultPixelRatio = 2.5
	DefaultBackground = "#ffffff"

	filenamePrefix = "we-law-explicacion-"
	filenameExt    = ".png"
)

// ErrBusy is returned when an export is requested while another is running.
var ErrBusy = errors.New(errors.ErrCodeBusy, "an export is already in progress")

// Options controls rasterization.
type Options struct {
	PixelRatio float64 // Device pixels per CSS pixel
	Background string  // Opaque background colour
	Width      float64 // Document width in CSS pixels
	Height     float64 // Document height in CSS pixels
	Root       string  // Id of the element to capture
}

// DefaultOptions returns the 2.5x, white-background export options.
func DefaultOptions() Options {
	return Options{PixelRatio: DefaultPixelRatio, Background: DefaultBackground}
}

// Rasterizer converts an SVG document to PNG bytes.
type Rasterizer interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	Rasterize(ctx context.Context, svg []byte, opts Options) ([]byte, error)
}

// Image is an exported PNG and its download filename.
type Image struct {
	Filename string
	PNG      []byte
}

// Exporter runs exports one at a time. It is safe for concurrent use.
type Exporter struct {
	r      Rasterizer
	opts   Options
	logger *log.Logger
	busy   atomic.Bool
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithOptions overrides the pixel ratio and background.
func WithOptions(o Options) ExporterOption { return func(e *Exporter) { e.opts = o } }

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l *log.Logger) ExporterOption { return func(e *Exporter) { e.logger = l } }

// New returns an Exporter backed by r.
func New(r Rasterizer, opts ...ExporterOption) *Exporter {
	e := &Exporter{r: r, opts: DefaultOptions(), logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Busy reports whether an export is in flight.
func (e *Exporter) Busy() bool { return e.busy.Load() }

// Backend returns the rasterizer name.
func (e *Exporter) Backend() string { return e.r.Name() }

// Export rasterizes s. A nil surface means no canvas is mounted and fails
// with an EXPORT_FAILED error; a concurrent call fails with [ErrBusy]. The
// busy flag is cleared on every return path.
func (e *Exporter) Export(ctx context.Context, s *canvas.Surface) (Image, error) {
	if !e.busy.CompareAndSwap(false, true) {
		observability.Export().OnExportRejected(ctx, e.r.Name())
		return Image{}, ErrBusy
	}
	defer e.busy.Store(false)

	if s == nil {
		err := errors.Export(errors.New(errors.ErrCodeNotFound, "canvas root %q is not mounted", canvas.RootID))
		e.logger.Error("export failed", "error", err.Cause)
		return Image{}, err
	}

	opts := e.opts
	opts.Width, opts.Height = s.Size()
	opts.Root = s.RootID()

	observability.Export().OnExportStart(ctx, e.r.Name())
	start := time.Now()
	png, err := e.r.Rasterize(ctx, s.SVG(), opts)
	observability.Export().OnExportComplete(ctx, e.r.Name(), len(png), time.Since(start), err)
	if err != nil {
		e.logger.Error("export failed", "rasterizer", e.r.Name(), "sheet", s.SheetID(), "error", err)
		return Image{}, errors.Export(err)
	}

	e.logger.Debug("exported canvas", "sheet", s.SheetID(), "bytes", len(png), "elapsed", time.Since(start).Round(time.Millisecond))
	return Image{Filename: Filename(s.Title()), PNG: png}, nil
}

// Filename returns the download name for a sheet title: the title trimmed,
// lower-cased and with whitespace runs (Unicode spaces included) replaced by "-".
func Filename(title string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	return filenamePrefix + slug + filenameExt
}

var pathSeparators = strings.NewReplacer("/", "-", `\`, "-")

// Save writes img into dir, creating dir if needed, and returns the path.
// Path separators in the filename are replaced so the file stays in dir.
func Save(dir string, img Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, pathSeparators.Replace(img.Filename))
	if err := os.WriteFile(path, img.PNG, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Rasterizer names accepted by [NewRasterizer].
const (
	BackendRSVG = "rsvg"
	BackendRod  = "rod"
)

// NewRasterizer returns the backend registered under name. bin overrides the
// backend's executable. An empty name selects rsvg.
func NewRasterizer(name, bin string) (Rasterizer, error) {
	switch strings.ToLower(name) {
	case "", BackendRSVG:
		return RSVG{Bin: bin}, nil
	case BackendRod:
		return Rod{Bin: bin}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown rasterizer %q (want %s or %s)", name, BackendRSVG, BackendRod)
	}
}
