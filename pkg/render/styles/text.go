package styles

import (
	"bytes"
	"encoding/xml"
	"strings"
	"unicode/utf8"
)

// charWidthRatio approximates the average glyph advance of the sans stack
// relative to its font size.
const charWidthRatio = 0.55

// LineHeight is the default line spacing multiplier.
const LineHeight = 1.45

// TextWidth estimates the rendered width of s at the given font size.
func TextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * charWidthRatio
}

// MaxChars returns how many glyphs of the given size fit into width.
// It never returns less than one.
func MaxChars(width, size float64) int {
	if size <= 0 {
		return 1
	}
	return max(1, int(width/(size*charWidthRatio)))
}

// Wrap breaks s into lines that fit width at the given font size.
// Whitespace runs collapse to single spaces; words longer than a line are
// split. An empty or blank s yields no lines.
func Wrap(s string, width, size float64) []string {
	limit := MaxChars(width, size)

	var lines []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}

	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > limit {
			flush()
			lines = append(lines, string(w[:limit]))
			w = w[limit:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= limit:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			flush()
			cur = append(cur, w...)
		}
	}
	flush()
	return lines
}

// Truncate shortens s to fit width, marking the cut with "..".
func Truncate(s string, width, size float64) string {
	limit := max(3, MaxChars(width, size))
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-2]) + ".."
}

// EscapeXML escapes s for use as SVG text or attribute content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
