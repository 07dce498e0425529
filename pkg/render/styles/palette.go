// Package styles holds the drawing primitives shared by the sheet and canvas
// renderers: the colour palette, SVG element writers and text measurement.
package styles

import "strings"

// Palette. Values follow the slate/indigo scale used throughout the canvas.
const (
	White = "#ffffff"

	Slate50  = "#f8fafc"
	Slate100 = "#f1f5f9"
	Slate200 = "#e2e8f0"
	Slate300 = "#cbd5e1"
	Slate400 = "#94a3b8"
	Slate500 = "#64748b"
	Slate600 = "#475569"
	Slate700 = "#334155"
	Slate800 = "#1e293b"
	Slate900 = "#0f172a"
	Slate950 = "#020617"

	Indigo50  = "#eef2ff"
	Indigo100 = "#e0e7ff"
	Indigo200 = "#c7d2fe"
	Indigo400 = "#818cf8"
	Indigo500 = "#6366f1"
	Indigo600 = "#4f46e5"
	Indigo700 = "#4338ca"

	Amber50  = "#fffbeb"
	Amber100 = "#fef3c7"
	Amber200 = "#fde68a"
	Amber700 = "#b45309"

	Blue100 = "#dbeafe"
	Blue200 = "#bfdbfe"
	Blue700 = "#1d4ed8"

	Red50  = "#fef2f2"
	Red100 = "#fee2e2"
	Red200 = "#fecaca"
	Red500 = "#ef4444"
	Red700 = "#b91c1c"

	Green50  = "#f0fdf4"
	Green100 = "#dcfce7"
	Green200 = "#bbf7d0"
	Green700 = "#15803d"
)

// Font stacks.
const (
	FontSans  = "Inter, Helvetica, Arial, sans-serif"
	FontSerif = "Georgia, 'Times New Roman', serif"
)

// Badge is the fill, outline and text colour of a small labelled pill.
type Badge struct {
	Fill   string
	Stroke string
	Text   string
}

// Neutral is the badge used for unrecognised node types.
var Neutral = Badge{Fill: Slate100, Stroke: Slate200, Text: Slate500}

var nodeBadges = map[string]Badge{
	"trigger":   {Fill: Indigo100, Stroke: Indigo200, Text: Indigo700},
	"condition": {Fill: Amber100, Stroke: Amber200, Text: Amber700},
	"action":    {Fill: Blue100, Stroke: Blue200, Text: Blue700},
	"penalty":   {Fill: Red100, Stroke: Red200, Text: Red700},
	"result":    {Fill: Green100, Stroke: Green200, Text: Green700},
}

// NodeBadge returns the badge colours for a node type. Matching is
// case-insensitive; unknown kinds get [Neutral].
func NodeBadge(kind string) Badge {
	if b, ok := nodeBadges[strings.ToLower(kind)]; ok {
		return b
	}
	return Neutral
}
