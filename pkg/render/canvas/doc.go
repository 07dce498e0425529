// Package canvas composes the exportable canvas for one sheet.
//
// A canvas wraps a sheet body (see the sheet package) in fixed chrome:
//
//   - a header with the brand mark, the "Visual Mechanics Sheet" caption, the
//     protocol caption, a type badge, the sheet title and the quoted
//     explanation
//   - the dispatched diagram body
//   - a footer with five decorative dots and the product line
//
// The result is a [Surface]: an SVG document whose root element carries the
// fixed id [RootID]. Export works from a Surface alone, never from the sheet.
//
// A [Composer] holds at most one current surface. Composing a sheet replaces
// the previous surface wholesale, so exactly one canvas exists at a time.
// [Build] is the stateless form used for batch rendering.
package canvas
