package sheet

import "github.com/matzehuels/legalcanvas/pkg/render/styles"

// Body is the positioned visual tree of one sheet's diagram area.
// Coordinates are relative to the body's top-left corner.
type Body struct {
	Layout      Layout
	Width       float64
	Height      float64
	Cards       []Card
	Connectors  []Connector
	Connections *ConnectionsBlock // nil when the sheet declares no connections
}

// Card is one node drawn as a panel. Which optional fields are populated
// depends on the body's layout.
type Card struct {
	NodeID     string
	X, Y, W, H float64

	Title  []string // Wrapped label
	Detail []string // Wrapped detail
	Tags   []string

	// Logic flow
	Kind  string       // Node type as given; empty hides the badge
	Badge styles.Badge // Colours for Kind
	Role  string       // Role chip; empty hides it

	// Heatmap
	Tone      Tone
	Attention bool

	// Responsibility
	Avatar      string
	Caption     string
	Deliverable []string // Wrapped deliverable text
}

// Tone is the severity colouring of a heatmap card.
type Tone int

const (
	ToneLow Tone = iota
	ToneMedium
	ToneHigh
)

func (t Tone) String() string {
	switch t {
	case ToneHigh:
		return "high"
	case ToneMedium:
		return "medium"
	default:
		return "low"
	}
}

// Connector is the arrow glyph drawn between two consecutive logic-flow
// cards, centred on (X, Y).
type Connector struct {
	From, To int // Card indices
	X, Y     float64
}

// ConnectionsBlock lists a sheet's connections below the card grid.
type ConnectionsBlock struct {
	X, Y, W, H float64
	Rows       []ConnectionRow
}

// ConnectionRow is one "from -label-> to" line. From and To hold the
// resolved display text of each endpoint.
type ConnectionRow struct {
	From     string
	To       string
	Label    string
	Positive *bool
	Y        float64 // Baseline, relative to the block
}

// Text returns the row as plain text: "from —label→ to".
func (r ConnectionRow) Text() string {
	return r.From + " —" + r.Label + "→ " + r.To
}
