package canvas

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/legalcanvas/pkg/render/styles"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// Static chrome text.
const (
	BrandMark       = "W"
	SheetCaption    = "Visual Mechanics Sheet"
	ProtocolCaption = "We Law Protocol v5.2"
	ContextHeading  = "Legal architecture context"
	FooterLine      = "We Law Visual Explanation Engine • Pro Version 2025"
	FooterDots      = 5
)

const (
	canvasRadius = 80.0
	pad          = 64.0

	brandSize     = 64.0
	brandFontSize = 40.0
	captionSize   = 12.0
	protocolSize  = 10.0
	badgeSize     = 11.0
	badgeSpacing  = 2.2
	badgeHeight   = 40.0

	titleSize    = 56.0
	titleGap     = 48.0
	panelGap     = 40.0
	panelPad     = 40.0
	headingSize  = 10.0
	explainSize  = 18.0
	footerSize   = 11.0
	footerDotR   = 3.0
	footerDotGap = 14.0
)

func writeDefs(buf *bytes.Buffer, w, h float64) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <linearGradient id="header-fade" x1="0" y1="0" x2="0" y2="1">` + "\n")
	fmt.Fprintf(buf, `      <stop offset="0" stop-color="%s"/>`+"\n", styles.Slate50)
	fmt.Fprintf(buf, `      <stop offset="1" stop-color="%s"/>`+"\n", styles.White)
	buf.WriteString("    </linearGradient>\n")
	fmt.Fprintf(buf, `    <clipPath id="canvas-clip"><rect x="0" y="0" width="%.1f" height="%.1f" rx="%.1f"/></clipPath>`+"\n",
		w, h, canvasRadius)
	buf.WriteString("  </defs>\n")
}

// writeHeader draws the header chrome and returns its height.
func writeHeader(buf *bytes.Buffer, s suite.Sheet, w float64) float64 {
	innerW := w - 2*pad
	titleLines := styles.Wrap(s.Title, innerW, titleSize)
	explainLines := styles.Wrap(`"`+s.Explanation+`"`, innerW-2*panelPad, explainSize)

	titleY := pad + brandSize + titleGap
	panelY := titleY + styles.LinesHeight(len(titleLines), titleSize) + panelGap
	panelH := 2*panelPad + styles.LinesHeight(1, headingSize) + 16 + styles.LinesHeight(len(explainLines), explainSize)
	h := panelY + panelH + pad

	buf.WriteString(`  <g clip-path="url(#canvas-clip)">` + "\n")
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="url(#header-fade)"/>`+"\n", w, h)
	buf.WriteString("  </g>\n")

	// Brand row
	styles.Rect(buf, pad, pad, brandSize, brandSize, 24, styles.Slate950, "")
	styles.Text(buf, pad+brandSize/2, pad+brandSize/2+brandFontSize*0.35, BrandMark, styles.Font{
		Family: styles.FontSerif, Size: brandFontSize, Fill: styles.White, Anchor: "middle", Italic: true,
	})
	capX := pad + brandSize + 20
	styles.Text(buf, capX, pad+26, SheetCaption, styles.Font{
		Size: captionSize, Weight: 900, Fill: styles.Slate400, Upper: true, Spacing: 6,
	})
	styles.Text(buf, capX, pad+48, ProtocolCaption, styles.Font{
		Size: protocolSize, Weight: 900, Fill: styles.Indigo600, Upper: true, Spacing: 1.5,
	})

	// Type badge
	label := s.Type.Label()
	bw := spacedWidth(label, badgeSize, badgeSpacing) + 64
	bx := w - pad - bw
	by := pad + (brandSize-badgeHeight)/2
	styles.Rect(buf, bx, by, bw, badgeHeight, badgeHeight/2, styles.Slate950, "")
	styles.Text(buf, bx+bw/2, by+badgeHeight/2+badgeSize*0.35, label, styles.Font{
		Size: badgeSize, Weight: 900, Fill: styles.White, Anchor: "middle", Upper: true, Spacing: badgeSpacing,
	})

	// Title
	styles.Lines(buf, pad, titleY, titleLines, styles.Font{
		Family: styles.FontSerif, Size: titleSize, Weight: 700, Spacing: -1,
	})

	// Explanation panel
	styles.Rect(buf, pad, panelY, innerW, panelH, 48, styles.White, styles.Slate100)
	styles.Rect(buf, pad, panelY+24, 6, panelH-48, 3, styles.Indigo600, "")
	y := styles.Lines(buf, pad+panelPad, panelY+panelPad, []string{ContextHeading}, styles.Font{
		Size: headingSize, Weight: 900, Fill: styles.Indigo600, Upper: true, Spacing: 1.5,
	}) + 16
	styles.Lines(buf, pad+panelPad, y, explainLines, styles.Font{
		Size: explainSize, Weight: 500, Fill: styles.Slate500, Italic: true,
	})

	styles.Line(buf, 0, h, w, h, styles.Slate100)
	return h
}

func footerHeight() float64 {
	return 2*pad + 2*footerDotR + 32 + styles.LinesHeight(1, footerSize)
}

// writeFooter draws the footer with its top edge at y.
func writeFooter(buf *bytes.Buffer, w, y float64) {
	styles.Line(buf, 0, y, w, y, styles.Slate50)

	cy := y + pad + footerDotR
	x0 := w/2 - footerDotGap*float64(FooterDots-1)/2
	for i := range FooterDots {
		fmt.Fprintf(buf, `  <circle class="footer-dot" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			x0+float64(i)*footerDotGap, cy, footerDotR, styles.Slate200)
	}

	// Letter spacing shrinks on narrow canvases so the line stays inside.
	n := float64(utf8.RuneCountInString(FooterLine))
	spacing := min(6.6, max(0, (w-2*pad-styles.TextWidth(FooterLine, footerSize))/n))
	styles.Lines(buf, w/2, cy+footerDotR+32, []string{FooterLine}, styles.Font{
		Size: footerSize, Weight: 900, Fill: styles.Slate300, Anchor: "middle", Upper: true, Spacing: spacing,
	})
}

func spacedWidth(s string, size, spacing float64) float64 {
	return styles.TextWidth(s, size) + spacing*float64(utf8.RuneCountInString(s))
}
