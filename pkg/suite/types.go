package suite

import "strings"

// =============================================================================
// Enumerations
// =============================================================================

// SheetType is the discriminant that selects a sheet's layout.
// Values outside the declared set are preserved as-is.
type SheetType string

// Declared sheet types.
const (
	TypeLogicFlow            SheetType = "logic-flow"
	TypeResponsibilityMatrix SheetType = "responsibility-matrix"
	TypeFinancialMechanics   SheetType = "financial-mechanics"
	TypeRiskHeatmap          SheetType = "risk-heatmap"
	TypeTimeline             SheetType = "timeline"
)

// SheetTypes lists the declared sheet types in schema order.
var SheetTypes = []SheetType{
	TypeLogicFlow,
	TypeResponsibilityMatrix,
	TypeFinancialMechanics,
	TypeRiskHeatmap,
	TypeTimeline,
}

// Known reports whether t is one of the declared sheet types.
func (t SheetType) Known() bool {
	for _, k := range SheetTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Label returns the badge text for t: the first hyphen becomes a space
// ("logic-flow" -> "logic flow").
func (t SheetType) Label() string {
	return strings.Replace(string(t), "-", " ", 1)
}

// NodeType classifies a node's role in a decision chain.
type NodeType string

// Declared node types.
const (
	NodeTrigger   NodeType = "trigger"
	NodeAction    NodeType = "action"
	NodeCondition NodeType = "condition"
	NodeResult    NodeType = "result"
	NodePenalty   NodeType = "penalty"
)

// Impact grades a risk item.
type Impact string

// Declared impact levels.
const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// =============================================================================
// Suite
// =============================================================================

// Suite is the full decomposition result for one submitted contract.
type Suite struct {
	ProjectName string  `json:"projectName"`
	Sheets      []Sheet `json:"sheets"`
}

// Sheet returns the first sheet with the given id.
// Duplicate ids are tolerated; the first match wins.
func (s *Suite) Sheet(id string) (*Sheet, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Sheets {
		if s.Sheets[i].ID == id {
			return &s.Sheets[i], true
		}
	}
	return nil, false
}

// FirstSheetID returns the id of the first sheet, or "" for an empty suite.
func (s *Suite) FirstSheetID() string {
	if s == nil || len(s.Sheets) == 0 {
		return ""
	}
	return s.Sheets[0].ID
}

// DuplicateIDs returns sheet ids that occur more than once, in order of
// their second occurrence.
func (s *Suite) DuplicateIDs() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]int, len(s.Sheets))
	var dups []string
	for _, sh := range s.Sheets {
		seen[sh.ID]++
		if seen[sh.ID] == 2 {
			dups = append(dups, sh.ID)
		}
	}
	return dups
}

// =============================================================================
// Sheet
// =============================================================================

// Sheet is one visual explanation unit with a declared diagram type.
type Sheet struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        SheetType `json:"type"`
	Explanation string    `json:"explanation"`
	Data        Data      `json:"data"`
}

// Node returns the first node in the sheet with the given id.
func (s *Sheet) Node(id string) (*Node, bool) {
	for i := range s.Data.Nodes {
		if s.Data.Nodes[i].ID == id {
			return &s.Data.Nodes[i], true
		}
	}
	return nil, false
}

// Data holds a sheet's diagram content.
// A nil Connections slice means the sheet declares no connections; it
// round-trips through JSON as null.
type Data struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Node is one visual unit within a sheet: a clause, an actor or a risk item.
// Only ID, Label and Detail are expected; every other field may be empty.
type Node struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Detail string   `json:"detail"`
	Type   NodeType `json:"type,omitempty"`
	Role   string   `json:"role,omitempty"`
	Impact Impact   `json:"impact,omitempty"`
	Value  string   `json:"value,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Connection is a labelled directed relationship between two node ids.
type Connection struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Label      string `json:"label"`
	IsPositive *bool  `json:"isPositive,omitempty"`
}
