// Package render groups the drawing code for legal sheets.
//
// # Overview
//
// Rendering is split into layers, each a subpackage:
//
//   - [styles]: palette, fonts, text measurement and SVG primitives
//   - [sheet]: layout dispatch by sheet type and the positioned body tree
//   - [canvas]: the exportable surface (header, body, footer)
//   - [nodelink]: connection graphs drawn with Graphviz
//
// The layers only depend downwards: canvas uses sheet, sheet uses styles.
//
//	body := sheet.Render(s, 1200)
//	surface := canvas.Build(s, canvas.WithWidth(1200))
//	svg := surface.SVG()
//
// Raster output lives outside this tree, in the export package, which only
// depends on [canvas.Surface].
//
// [styles]: github.com/matzehuels/legalcanvas/pkg/render/styles
// [sheet]: github.com/matzehuels/legalcanvas/pkg/render/sheet
// [canvas]: github.com/matzehuels/legalcanvas/pkg/render/canvas
// [nodelink]: github.com/matzehuels/legalcanvas/pkg/render/nodelink
// [canvas.Surface]: github.com/matzehuels/legalcanvas/pkg/render/canvas#Surface
package render
