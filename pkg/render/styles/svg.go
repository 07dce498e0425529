package styles

import (
	"bytes"
	"fmt"
	"strings"
)

// Font describes how a run of text is drawn.
type Font struct {
	Family  string  // Defaults to FontSans
	Size    float64 // Pixels
	Weight  int     // CSS weight; 0 means normal
	Fill    string  // Defaults to Slate900
	Anchor  string  // start, middle or end; defaults to start
	Italic  bool
	Upper   bool    // Render in upper case
	Spacing float64 // Letter spacing in pixels
}

func (f Font) attrs() string {
	family := f.Family
	if family == "" {
		family = FontSans
	}
	fill := f.Fill
	if fill == "" {
		fill = Slate900
	}

	var b strings.Builder
	fmt.Fprintf(&b, `font-family="%s" font-size="%.1f" fill="%s"`, family, f.Size, fill)
	if f.Weight != 0 {
		fmt.Fprintf(&b, ` font-weight="%d"`, f.Weight)
	}
	if f.Anchor != "" && f.Anchor != "start" {
		fmt.Fprintf(&b, ` text-anchor="%s"`, f.Anchor)
	}
	if f.Italic {
		b.WriteString(` font-style="italic"`)
	}
	if f.Spacing != 0 {
		fmt.Fprintf(&b, ` letter-spacing="%.1f"`, f.Spacing)
	}
	return b.String()
}

func (f Font) text(s string) string {
	if f.Upper {
		s = strings.ToUpper(s)
	}
	return EscapeXML(s)
}

// Text writes a single line of text with its baseline at y.
func Text(buf *bytes.Buffer, x, y float64, s string, f Font) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" %s>%s</text>`+"\n", x, y, f.attrs(), f.text(s))
}

// Lines writes one text element per line, starting with the first baseline
// at y and advancing by the font's line height. It returns the y just below
// the last line.
func Lines(buf *bytes.Buffer, x, y float64, lines []string, f Font) float64 {
	step := f.Size * LineHeight
	for i, l := range lines {
		Text(buf, x, y+float64(i)*step+f.Size, l, f)
	}
	return y + float64(len(lines))*step
}

// LinesHeight is the vertical space [Lines] uses for n lines.
func LinesHeight(n int, size float64) float64 {
	return float64(n) * size * LineHeight
}

// Rect writes a rounded rectangle. An empty stroke omits the outline.
func Rect(buf *bytes.Buffer, x, y, w, h, rx float64, fill, stroke string) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"`, x, y, w, h, rx, fill)
	if stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="1"`, stroke)
	}
	buf.WriteString("/>\n")
}

// Circle writes a circle. An empty stroke omits the outline.
func Circle(buf *bytes.Buffer, cx, cy, r float64, fill, stroke string) {
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"`, cx, cy, r, fill)
	if stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="2"`, stroke)
	}
	buf.WriteString("/>\n")
}

// Line writes a straight line segment.
func Line(buf *bytes.Buffer, x1, y1, x2, y2 float64, stroke string) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		x1, y1, x2, y2, stroke)
}

// Pill writes a badge sized to its text with the left edge at x and the top
// at y. It returns the pill's width.
func Pill(buf *bytes.Buffer, x, y float64, label string, b Badge, size float64) float64 {
	padX := size * 0.8
	h := size * 2
	w := TextWidth(label, size) + 2*padX
	Rect(buf, x, y, w, h, h/2, b.Fill, b.Stroke)
	Text(buf, x+padX, y+h/2+size*0.35, label, Font{Size: size, Weight: 800, Fill: b.Text, Upper: true})
	return w
}

// PillHeight is the height [Pill] uses at the given font size.
func PillHeight(size float64) float64 { return size * 2 }

// Arrow writes a right-pointing arrow glyph centred on (cx, cy).
func Arrow(buf *bytes.Buffer, cx, cy, size float64, stroke string) {
	h := size / 2
	fmt.Fprintf(buf, `  <path d="M%.1f %.1f L%.1f %.1f M%.1f %.1f L%.1f %.1f L%.1f %.1f" fill="none" stroke="%s" stroke-width="3" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
		cx-h, cy, cx+h, cy,
		cx, cy-h, cx+h, cy, cx, cy+h,
		stroke)
}

// Group opens a translated group; the caller must write "  </g>\n".
func Group(buf *bytes.Buffer, id string, dx, dy float64) {
	if id != "" {
		fmt.Fprintf(buf, `  <g id="%s" transform="translate(%.1f %.1f)">`+"\n", EscapeXML(id), dx, dy)
		return
	}
	fmt.Fprintf(buf, `  <g transform="translate(%.1f %.1f)">`+"\n", dx, dy)
}
