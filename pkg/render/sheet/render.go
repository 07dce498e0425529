package sheet

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/legalcanvas/pkg/render/styles"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

const (
	// DefaultWidth is used when Render is given a non-positive width.
	DefaultWidth = 1200.0
	// MinWidth is the narrowest body Render lays out.
	MinWidth = 480.0

	padding = 32.0

	defaultAvatar      = "U"
	defaultCaption     = "Owner"
	defaultDeliverable = "Legal Validation"
)

// Font sizes shared by layout and drawing.
const (
	flowBadgeSize  = 9.0
	flowTitleSize  = 16.0
	flowDetailSize = 12.0
	flowTagSize    = 8.0

	heatBadgeSize  = 10.0
	heatTitleSize  = 24.0
	heatDetailSize = 14.0
	heatTagSize    = 9.0

	roleAvatarSize  = 24.0
	roleCaptionSize = 10.0
	roleTitleSize   = 20.0
	roleDetailSize  = 14.0
	roleValueSize   = 12.0

	connHeadingSize = 12.0
	connTextSize    = 14.0
	connLabelSize   = 10.0
)

// Render lays out the body of s at the given width. It never fails: a sheet
// without nodes yields a body without cards.
func Render(s suite.Sheet, width float64) Body {
	if width <= 0 {
		width = DefaultWidth
	}
	width = max(width, MinWidth)

	switch LayoutFor(s.Type) {
	case LayoutHeatmap:
		return renderHeatmap(s, width)
	case LayoutResponsibility:
		return renderResponsibility(s, width)
	default:
		return renderLogicFlow(s, width)
	}
}

// =============================================================================
// Logic flow
// =============================================================================

const (
	flowColumns = 3
	flowGap     = 32.0
	flowCardPad = 24.0
	flowRadius  = 24.0

	connectorRadius = 16.0
	connMarginTop   = 64.0
	connPad         = 32.0
	connRowHeight   = 36.0
)

func renderLogicFlow(s suite.Sheet, width float64) Body {
	b := Body{Layout: LayoutLogicFlow, Width: width}
	cardW := (width - 2*padding - (flowColumns-1)*flowGap) / flowColumns
	textW := cardW - 2*flowCardPad

	for _, n := range s.Data.Nodes {
		c := Card{
			NodeID: n.ID,
			W:      cardW,
			Title:  styles.Wrap(n.Label, textW, flowTitleSize),
			Detail: styles.Wrap(n.Detail, textW, flowDetailSize),
			Tags:   n.Tags,
			Kind:   string(n.Type),
			Badge:  styles.NodeBadge(string(n.Type)),
			Role:   n.Role,
		}
		c.H = flowCardHeight(c)
		b.Cards = append(b.Cards, c)
	}

	y := placeGrid(b.Cards, flowColumns, padding, flowGap)

	for i := 0; i+1 < len(b.Cards); i++ {
		c := b.Cards[i]
		b.Connectors = append(b.Connectors, Connector{
			From: i,
			To:   i + 1,
			X:    c.X + c.W + flowGap/2,
			Y:    c.Y + c.H/2,
		})
	}

	if s.Data.Connections != nil {
		if len(b.Cards) > 0 {
			y += connMarginTop
		}
		b.Connections = connectionsBlock(s, padding, y, width-2*padding)
		y += b.Connections.H
	}

	b.Height = y + padding
	return b
}

func flowCardHeight(c Card) float64 {
	h := 2 * flowCardPad
	if c.Kind != "" || c.Role != "" {
		h += styles.PillHeight(flowBadgeSize) + 12
	}
	h += styles.LinesHeight(len(c.Title), flowTitleSize) + 8
	h += styles.LinesHeight(len(c.Detail), flowDetailSize)
	if len(c.Tags) > 0 {
		h += 16 + styles.PillHeight(flowTagSize)
	}
	return h
}

func connectionsBlock(s suite.Sheet, x, y, w float64) *ConnectionsBlock {
	blk := &ConnectionsBlock{X: x, Y: y, W: w, Rows: make([]ConnectionRow, 0, len(s.Data.Connections))}
	rowY := connPad + styles.LinesHeight(1, connHeadingSize) + 24
	for _, c := range s.Data.Connections {
		rowY += connRowHeight
		blk.Rows = append(blk.Rows, ConnectionRow{
			From:     endpoint(s, c.From),
			To:       endpoint(s, c.To),
			Label:    c.Label,
			Positive: c.IsPositive,
			Y:        rowY - connRowHeight/2 + connTextSize*0.35,
		})
	}
	blk.H = rowY + connPad
	return blk
}

// endpoint resolves a connection endpoint to the label of the node it names.
// Ids that match no node, or a node without a label, display verbatim.
func endpoint(s suite.Sheet, id string) string {
	if n, ok := s.Node(id); ok && n.Label != "" {
		return n.Label
	}
	return id
}

// =============================================================================
// Heatmap
// =============================================================================

const (
	heatColumns = 2
	heatGap     = 32.0
	heatCardPad = 40.0
	heatRadius  = 48.0
)

// ToneFor grades an impact value. Only "high" and "medium" are recognised;
// every other value, including empty, is low.
func ToneFor(impact suite.Impact) Tone {
	switch impact {
	case suite.ImpactHigh:
		return ToneHigh
	case suite.ImpactMedium:
		return ToneMedium
	default:
		return ToneLow
	}
}

func renderHeatmap(s suite.Sheet, width float64) Body {
	b := Body{Layout: LayoutHeatmap, Width: width}
	cardW := (width - 2*padding - (heatColumns-1)*heatGap) / heatColumns
	textW := cardW - 2*heatCardPad

	for _, n := range s.Data.Nodes {
		tone := ToneFor(n.Impact)
		c := Card{
			NodeID:    n.ID,
			W:         cardW,
			Title:     styles.Wrap(n.Label, textW, heatTitleSize),
			Detail:    styles.Wrap(n.Detail, textW, heatDetailSize),
			Tags:      n.Tags,
			Tone:      tone,
			Attention: tone == ToneHigh,
		}
		c.H = heatCardHeight(c)
		b.Cards = append(b.Cards, c)
	}

	y := placeGrid(b.Cards, heatColumns, padding, heatGap)
	b.Height = y + padding
	return b
}

func heatCardHeight(c Card) float64 {
	h := 2 * heatCardPad
	h += styles.PillHeight(heatBadgeSize) + 24
	h += styles.LinesHeight(len(c.Title), heatTitleSize) + 16
	h += styles.LinesHeight(len(c.Detail), heatDetailSize)
	if len(c.Tags) > 0 {
		h += 24 + styles.PillHeight(heatTagSize)
	}
	return h
}

// =============================================================================
// Responsibility
// =============================================================================

const (
	roleGap        = 24.0
	roleRowPad     = 32.0
	roleRadius     = 48.0
	roleAvatarD    = 80.0
	roleInnerGap   = 24.0
	rolePanelW     = 200.0
	rolePanelPad   = 24.0
	rolePanelInner = rolePanelW - 2*rolePanelPad
)

// Avatar returns the avatar initial for a role: its first character
// upper-cased, or "U" when the role is blank.
func Avatar(role string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(role))
	if size == 0 || r == utf8.RuneError {
		return defaultAvatar
	}
	return string(unicode.ToUpper(r))
}

func renderResponsibility(s suite.Sheet, width float64) Body {
	b := Body{Layout: LayoutResponsibility, Width: width}
	rowW := width - 2*padding
	textW := rowW - 2*roleRowPad - roleAvatarD - 2*roleInnerGap - rolePanelW

	y := padding
	for i, n := range s.Data.Nodes {
		if i > 0 {
			y += roleGap
		}
		caption := n.Role
		if strings.TrimSpace(caption) == "" {
			caption = defaultCaption
		}
		value := n.Value
		if strings.TrimSpace(value) == "" {
			value = defaultDeliverable
		}
		c := Card{
			NodeID:      n.ID,
			X:           padding,
			Y:           y,
			W:           rowW,
			Title:       styles.Wrap(n.Label, textW, roleTitleSize),
			Detail:      styles.Wrap(n.Detail, textW, roleDetailSize),
			Avatar:      Avatar(n.Role),
			Caption:     caption,
			Deliverable: styles.Wrap(value, rolePanelInner, roleValueSize),
		}
		c.H = roleCardHeight(c)
		b.Cards = append(b.Cards, c)
		y += c.H
	}

	b.Height = y + padding
	return b
}

func roleTextHeight(c Card) float64 {
	return styles.LinesHeight(1, roleCaptionSize) + 8 +
		styles.LinesHeight(len(c.Title), roleTitleSize) + 8 +
		styles.LinesHeight(len(c.Detail), roleDetailSize)
}

func rolePanelHeight(c Card) float64 {
	return 2*rolePanelPad + styles.LinesHeight(1, 9) + 8 +
		styles.LinesHeight(len(c.Deliverable), roleValueSize)
}

func roleCardHeight(c Card) float64 {
	return 2*roleRowPad + max(roleAvatarD, roleTextHeight(c), rolePanelHeight(c))
}

// =============================================================================
// Grid placement
// =============================================================================

// placeGrid positions cards row by row, stretching every card in a row to
// the row's tallest card. It returns the y just below the last row, or the
// top y when there are no cards.
func placeGrid(cards []Card, cols int, top, gap float64) float64 {
	y := top
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		rowH := 0.0
		for i := start; i < end; i++ {
			rowH = max(rowH, cards[i].H)
		}
		for i := start; i < end; i++ {
			col := float64(i - start)
			cards[i].X = padding + col*(cards[i].W+gap)
			cards[i].Y = y
			cards[i].H = rowH
		}
		y += rowH
		if end < len(cards) {
			y += gap
		}
	}
	return y
}
