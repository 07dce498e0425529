package sheet

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/legalcanvas/pkg/render/styles"
)

const connectionsHeading = "Logical connections and interdependencies"

// SVG returns the body as a standalone SVG document on a white background.
func (b Body) SVG() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		b.Width, b.Height, b.Width, b.Height)
	styles.Rect(&buf, 0, 0, b.Width, b.Height, 0, styles.White, "")
	b.WriteSVG(&buf)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteSVG draws the body with its origin at the current user-space origin.
func (b Body) WriteSVG(buf *bytes.Buffer) {
	switch b.Layout {
	case LayoutHeatmap:
		for _, c := range b.Cards {
			drawHeatCard(buf, c)
		}
	case LayoutResponsibility:
		for _, c := range b.Cards {
			drawRoleCard(buf, c)
		}
	default:
		for _, c := range b.Cards {
			drawFlowCard(buf, c)
		}
		for _, cn := range b.Connectors {
			styles.Circle(buf, cn.X, cn.Y, connectorRadius, styles.White, styles.Slate100)
			styles.Arrow(buf, cn.X, cn.Y, 12, styles.Indigo500)
		}
		if b.Connections != nil {
			drawConnections(buf, b.Connections)
		}
	}
}

// =============================================================================
// Logic flow
// =============================================================================

var (
	tagBadge  = styles.Badge{Fill: styles.Slate50, Text: styles.Slate400}
	roleBadge = styles.Badge{Fill: styles.Slate50, Text: styles.Slate400}
)

func drawFlowCard(buf *bytes.Buffer, c Card) {
	styles.Rect(buf, c.X, c.Y, c.W, c.H, flowRadius, styles.White, styles.Slate100)

	x := c.X + flowCardPad
	y := c.Y + flowCardPad
	textW := c.W - 2*flowCardPad

	if c.Kind != "" || c.Role != "" {
		if c.Kind != "" {
			styles.Pill(buf, x, y, c.Kind, c.Badge, flowBadgeSize)
		}
		if c.Role != "" {
			role := styles.Truncate(c.Role, textW/2, flowBadgeSize)
			w := styles.TextWidth(role, flowBadgeSize) + 1.6*flowBadgeSize
			styles.Pill(buf, c.X+c.W-flowCardPad-w, y, role, roleBadge, flowBadgeSize)
		}
		y += styles.PillHeight(flowBadgeSize) + 12
	}

	y = styles.Lines(buf, x, y, c.Title, styles.Font{Size: flowTitleSize, Weight: 700}) + 8
	y = styles.Lines(buf, x, y, c.Detail, styles.Font{Size: flowDetailSize, Fill: styles.Slate500})

	if len(c.Tags) > 0 {
		drawTags(buf, x, y+16, textW, c.Tags, tagBadge, flowTagSize)
	}
}

// drawTags lays tags left to right, dropping those that would overflow.
func drawTags(buf *bytes.Buffer, x, y, width float64, tags []string, b styles.Badge, size float64) {
	right := x + width
	for _, t := range tags {
		w := styles.TextWidth(t, size) + 1.6*size
		if x+w > right {
			return
		}
		x += styles.Pill(buf, x, y, t, b, size) + 4
	}
}

func drawConnections(buf *bytes.Buffer, blk *ConnectionsBlock) {
	styles.Rect(buf, blk.X, blk.Y, blk.W, blk.H, 48, styles.Slate900, "")
	styles.Text(buf, blk.X+connPad, blk.Y+connPad+connHeadingSize, connectionsHeading, styles.Font{
		Size: connHeadingSize, Weight: 900, Fill: styles.Indigo400, Upper: true, Spacing: 3.6,
	})

	left := blk.X + connPad
	right := blk.X + blk.W - connPad
	for _, r := range blk.Rows {
		fmt.Fprintf(buf, "  <g class=\"connection\"><title>%s</title>\n", styles.EscapeXML(r.Text()))
		drawConnectionRow(buf, r, left, right, blk.Y+r.Y)
		buf.WriteString("  </g>\n")
	}
}

func drawConnectionRow(buf *bytes.Buffer, r ConnectionRow, left, right, y float64) {
	half := (right - left) / 2
	from := styles.Truncate(r.From, half*0.6, connTextSize)
	to := styles.Truncate(r.To, half*0.6, connTextSize)
	styles.Text(buf, left, y, from, styles.Font{Size: connTextSize, Weight: 700, Fill: styles.Slate300})
	styles.Text(buf, right, y, to, styles.Font{Size: connTextSize, Weight: 700, Fill: styles.Indigo400, Anchor: "end"})

	lineY := y - connTextSize*0.35
	x1 := left + styles.TextWidth(from, connTextSize) + 16
	x2 := right - styles.TextWidth(to, connTextSize) - 16
	if x2 <= x1 {
		return
	}
	styles.Line(buf, x1, lineY, x2, lineY, styles.Slate700)

	label := styles.Truncate(r.Label, x2-x1-32, connLabelSize)
	if label == "" {
		return
	}
	lw := styles.TextWidth(label, connLabelSize) + 32
	mid := (x1 + x2) / 2
	styles.Rect(buf, mid-lw/2, lineY-connLabelSize, lw, 2*connLabelSize, connLabelSize, styles.Slate800, styles.Slate700)
	styles.Text(buf, mid, lineY+connLabelSize*0.35, label, styles.Font{
		Size: connLabelSize, Weight: 700, Fill: labelColor(r.Positive), Anchor: "middle", Italic: true,
	})
}

func labelColor(positive *bool) string {
	switch {
	case positive == nil:
		return styles.White
	case *positive:
		return styles.Green200
	default:
		return styles.Red200
	}
}

// =============================================================================
// Heatmap
// =============================================================================

type tonePalette struct {
	fill, stroke string
	badge        styles.Badge
}

var tones = map[Tone]tonePalette{
	ToneHigh:   {fill: styles.Red50, stroke: styles.Red200, badge: styles.Badge{Fill: styles.Red200, Text: styles.Red700}},
	ToneMedium: {fill: styles.Amber50, stroke: styles.Amber200, badge: styles.Badge{Fill: styles.Slate200, Text: styles.Slate600}},
	ToneLow:    {fill: styles.Green50, stroke: styles.Green200, badge: styles.Badge{Fill: styles.Slate200, Text: styles.Slate600}},
}

var heatTagBadge = styles.Badge{Fill: styles.White, Stroke: styles.Slate200, Text: styles.Slate700}

func drawHeatCard(buf *bytes.Buffer, c Card) {
	p := tones[c.Tone]
	styles.Rect(buf, c.X, c.Y, c.W, c.H, heatRadius, p.fill, p.stroke)

	x := c.X + heatCardPad
	y := c.Y + heatCardPad
	textW := c.W - 2*heatCardPad

	styles.Pill(buf, x, y, "Risk "+c.Tone.String(), p.badge, heatBadgeSize)
	if c.Attention {
		cy := y + styles.PillHeight(heatBadgeSize)/2
		styles.Circle(buf, c.X+c.W-heatCardPad-4, cy, 8, styles.Red100, "")
		styles.Circle(buf, c.X+c.W-heatCardPad-4, cy, 4, styles.Red500, "")
	}
	y += styles.PillHeight(heatBadgeSize) + 24

	y = styles.Lines(buf, x, y, c.Title, styles.Font{Family: styles.FontSerif, Size: heatTitleSize, Weight: 700}) + 16
	y = styles.Lines(buf, x, y, c.Detail, styles.Font{Size: heatDetailSize, Fill: styles.Slate600, Italic: true})

	if len(c.Tags) > 0 {
		drawTags(buf, x, y+24, textW, c.Tags, heatTagBadge, heatTagSize)
	}
}

// =============================================================================
// Responsibility
// =============================================================================

func drawRoleCard(buf *bytes.Buffer, c Card) {
	styles.Rect(buf, c.X, c.Y, c.W, c.H, roleRadius, styles.White, styles.Slate100)

	cx := c.X + roleRowPad + roleAvatarD/2
	cy := c.Y + c.H/2
	styles.Circle(buf, cx, cy, roleAvatarD/2, styles.Indigo50, styles.Indigo100)
	styles.Text(buf, cx, cy+roleAvatarSize*0.35, c.Avatar, styles.Font{
		Size: roleAvatarSize, Weight: 900, Fill: styles.Indigo600, Anchor: "middle",
	})

	tx := c.X + roleRowPad + roleAvatarD + roleInnerGap
	textW := c.W - 2*roleRowPad - roleAvatarD - 2*roleInnerGap - rolePanelW
	y := c.Y + (c.H-roleTextHeight(c))/2

	caption := styles.Truncate(c.Caption, textW, roleCaptionSize)
	y = styles.Lines(buf, tx, y, []string{caption}, styles.Font{
		Size: roleCaptionSize, Weight: 900, Fill: styles.Indigo400, Upper: true, Spacing: 2,
	})
	if rule := tx + styles.TextWidth(caption, roleCaptionSize)*1.3 + 12; rule < tx+textW {
		styles.Line(buf, rule, y-roleCaptionSize*0.7, tx+textW, y-roleCaptionSize*0.7, styles.Slate100)
	}
	y += 8
	y = styles.Lines(buf, tx, y, c.Title, styles.Font{Size: roleTitleSize, Weight: 700}) + 8
	styles.Lines(buf, tx, y, c.Detail, styles.Font{Size: roleDetailSize, Fill: styles.Slate500, Italic: true})

	ph := rolePanelHeight(c)
	px := c.X + c.W - roleRowPad - rolePanelW
	py := c.Y + (c.H-ph)/2
	mid := px + rolePanelW/2
	styles.Rect(buf, px, py, rolePanelW, ph, 32, styles.Slate50, styles.Slate100)
	y = styles.Lines(buf, mid, py+rolePanelPad, []string{"Deliverable"}, styles.Font{
		Size: 9, Weight: 900, Fill: styles.Slate400, Anchor: "middle", Upper: true,
	}) + 8
	styles.Lines(buf, mid, y, c.Deliverable, styles.Font{
		Size: roleValueSize, Weight: 700, Fill: styles.Slate800, Anchor: "middle",
	})
}
