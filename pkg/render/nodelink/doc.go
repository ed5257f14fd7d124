// Package nodelink renders trees as node-link diagrams.
//
// # Overview
//
// This package produces Graphviz drawings of a tree: every vertex is a small
// circle and every parent-child link an undirected edge. Edge colour tells
// the slot apart, so a unary vertex is distinguishable from a binary vertex
// with one leaf child even without labels.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: label vertices with their path and arity
//   - Direction: Graphviz rankdir, "TB" by default
//   - Marks: fill colours keyed by vertex path
//
// # Vertex Identifiers
//
// DOT node names are derived from vertex paths ([VertexID]): "root" for the
// root and "v" followed by the digit string otherwise, so "v10" is the left
// child of the root's right child.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
