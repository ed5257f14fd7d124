// Package render provides output formats for tree diagrams.
//
// # Overview
//
// Trees are drawn by two subpackages:
//
//   - [nodelink] lays a tree out as a Graphviz diagram (DOT, then SVG)
//   - [text] prints the canonical text form with colour by depth
//
// This package holds what they share: the [Format] names accepted on the
// command line and over HTTP, and conversion of SVG into other formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/fractal/pkg/render/nodelink
// [text]: github.com/matzehuels/fractal/pkg/render/text
package render
