package sheet

import "github.com/matzehuels/legalcanvas/pkg/suite"

// Layout identifies one of the body layouts.
type Layout int

const (
	LayoutLogicFlow Layout = iota
	LayoutHeatmap
	LayoutResponsibility
)

func (l Layout) String() string {
	switch l {
	case LayoutHeatmap:
		return "heatmap"
	case LayoutResponsibility:
		return "responsibility"
	default:
		return "logic-flow"
	}
}

// LayoutFor returns the layout used to draw sheets of type t.
// Types without a dedicated layout, declared or not, fall back to
// [LayoutLogicFlow].
func LayoutFor(t suite.SheetType) Layout {
	switch t {
	case suite.TypeRiskHeatmap:
		return LayoutHeatmap
	case suite.TypeResponsibilityMatrix:
		return LayoutResponsibility
	default:
		return LayoutLogicFlow
	}
}
