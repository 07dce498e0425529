package canvas

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/render/sheet"
	"github.com/matzehuels/legalcanvas/pkg/render/styles"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// RootID is the id of every canvas root element.
const RootID = "legal-design-canvas"

// MinHeight is the minimum canvas height; short bodies are padded.
const MinHeight = 900.0

// =============================================================================
// Surface
// =============================================================================

// Surface is a composed canvas: a complete SVG document for one sheet.
// It is immutable once built.
type Surface struct {
	sheetID string
	title   string
	width   float64
	height  float64
	svg     []byte
}

// RootID returns the id of the surface's root element.
func (s *Surface) RootID() string { return RootID }

// SheetID returns the id of the sheet the surface was composed from.
func (s *Surface) SheetID() string { return s.sheetID }

// Title returns the title of the sheet the surface was composed from.
func (s *Surface) Title() string { return s.title }

// Size returns the surface dimensions in CSS pixels.
func (s *Surface) Size() (width, height float64) { return s.width, s.height }

// SVG returns a copy of the surface document.
func (s *Surface) SVG() []byte { return bytes.Clone(s.svg) }

// =============================================================================
// Build
// =============================================================================

// Option configures canvas composition.
type Option func(*config)

type config struct {
	width float64
}

// WithWidth sets the canvas width in CSS pixels. Non-positive values select
// [sheet.DefaultWidth].
func WithWidth(w float64) Option { return func(c *config) { c.width = w } }

func newConfig(opts ...Option) config {
	c := config{width: sheet.DefaultWidth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Build composes the canvas for s without touching any composer state.
func Build(s suite.Sheet, opts ...Option) *Surface {
	cfg := newConfig(opts...)
	start := time.Now()

	body := sheet.Render(s, cfg.width)
	w := body.Width

	var hdr bytes.Buffer
	headerH := writeHeader(&hdr, s, w)

	footerH := footerHeight()
	h := max(MinHeight, headerH+body.Height+footerH)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		RootID, w, h, w, h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(s.Title))
	writeDefs(&buf, w, h)
	styles.Rect(&buf, 0.5, 0.5, w-1, h-1, canvasRadius, styles.White, styles.Slate50)
	buf.Write(hdr.Bytes())

	styles.Group(&buf, "canvas-body", 0, headerH)
	body.WriteSVG(&buf)
	buf.WriteString("  </g>\n")

	writeFooter(&buf, w, h-footerH)
	buf.WriteString("</svg>\n")

	observability.Render().OnCompose(string(s.Type), body.Layout.String(), len(s.Data.Nodes), time.Since(start))

	return &Surface{
		sheetID: s.ID,
		title:   s.Title,
		width:   w,
		height:  h,
		svg:     buf.Bytes(),
	}
}

// =============================================================================
// Composer
// =============================================================================

// Composer owns the single current canvas. It is safe for concurrent use.
type Composer struct {
	opts []Option

	mu      sync.RWMutex
	current *Surface
}

// NewComposer returns a composer without a current canvas.
func NewComposer(opts ...Option) *Composer {
	return &Composer{opts: opts}
}

// Compose builds the canvas for s and makes it the current surface,
// replacing any previous one.
func (c *Composer) Compose(s suite.Sheet) *Surface {
	surf := Build(s, c.opts...)
	c.mu.Lock()
	c.current = surf
	c.mu.Unlock()
	return surf
}

// Current returns the current surface, or nil if none is mounted.
func (c *Composer) Current() *Surface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Reset unmounts the current surface.
func (c *Composer) Reset() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
