// Package pipeline renders every sheet of a suite to files in one pass.
//
// The web UI composes one canvas at a time for the selected sheet. The batch
// pipeline used by the render command instead renders all sheets
// concurrently and collects the artifacts per sheet:
//
//   - svg: the composed canvas
//   - png: the canvas rasterized at the export pixel ratio
//   - graph: the connection graph as SVG (Graphviz)
//   - json: the sheet in the suite wire format
//
// # Usage
//
//	runner := pipeline.NewRunner(rasterizer, logger)
//	result, err := runner.Execute(ctx, s, pipeline.Options{Formats: []string{"svg", "png"}})
//	paths, err := pipeline.Write(dir, result)
//
// Sheets are rendered in parallel, bounded by Options.Concurrency. The first
// failing sheet cancels the rest and its error is returned.
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/render/sheet"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultWidth is the default canvas width in pixels.
const DefaultWidth = sheet.DefaultWidth

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatGraph = "graph"
	FormatJSON  = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatGraph: true,
	FormatJSON:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a batch render.
type Options struct {
	// Formats lists the artifacts to produce per sheet. Defaults to svg.
	Formats []string `json:"formats,omitempty"`

	// Width is the canvas width. Defaults to DefaultWidth.
	Width float64 `json:"width,omitempty"`

	// Detailed adds node details to connection graphs.
	Detailed bool `json:"detailed,omitempty"`

	// Sheets restricts the run to these sheet ids. Empty means all sheets.
	Sheets []string `json:"sheets,omitempty"`

	// Concurrency bounds parallel sheet renders. Defaults to GOMAXPROCS.
	Concurrency int `json:"concurrency,omitempty"`

	// Logger receives per-sheet progress. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run, in suite order.
type Result struct {
	Project string
	Sheets  []SheetResult
	Stats   Stats
}

// SheetResult holds the artifacts of one sheet keyed by format.
type SheetResult struct {
	SheetID   string
	Title     string
	Artifacts map[string][]byte
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SheetCount int
	Bytes      int
	Duration   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, graph, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the formats and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
