// Package sheet lays out the diagram body of a single sheet.
//
// # Dispatch
//
// Every sheet type maps to exactly one [Layout] through [LayoutFor], which is
// the only place the mapping lives:
//
//	logic-flow             -> LayoutLogicFlow
//	risk-heatmap           -> LayoutHeatmap
//	responsibility-matrix  -> LayoutResponsibility
//	anything else          -> LayoutLogicFlow
//
// financial-mechanics and timeline are declared sheet types without a
// dedicated layout; they share the logic-flow fallback with unknown types.
//
// # Rendering
//
// [Render] is pure: it turns a sheet and a target width into a positioned
// [Body] (cards, connector glyphs, and an optional connections block) and
// never fails. Missing or empty node lists yield an empty body; absent
// optional node fields fall back to fixed defaults:
//
//   - impact: anything but "high" or "medium" is drawn as low
//   - role: avatar "U", caption "Owner"
//   - value: deliverable "Legal Validation"
//
// [Body.WriteSVG] draws the body into an SVG buffer with its origin at the
// top-left corner, so callers can place it inside a larger document.
package sheet
