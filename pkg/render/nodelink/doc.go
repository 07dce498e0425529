// Package nodelink renders the connections of a sheet as a node-link diagram.
//
// The canvas shows connections as a list of "from —label→ to" rows. This
// package draws the same relationships as a directed graph using Graphviz,
// which is useful for sheets with many cross-references. It is served at
// /sheets/{id}/graph.svg and written by the batch render command.
//
//	dot := nodelink.ToDOT(sheet, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nodes are rounded boxes filled with their node-type badge colours.
// Connection endpoints that name no node are drawn as dashed plain-text
// nodes carrying the raw identifier, the same fallback the canvas uses.
// Edges are green for positive and red for negative connections.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; PNG output goes through an export rasterizer.
package nodelink
