package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fractal/pkg/render"
	"github.com/matzehuels/fractal/pkg/tree"
)

// Edge colours by the slot the child occupies.
const (
	ColorUnary = "#4A9DF8" // only child of a unary vertex
	ColorLeft  = "#F5A623" // left child of a binary vertex
	ColorRight = "#E5484D" // right child of a binary vertex
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels every vertex with its path and arity.
	// When false, vertices are unlabelled dots.
	Detailed bool

	// Direction is the Graphviz rankdir. Empty means "TB" (root on top);
	// "BT" grows the tree upward.
	Direction string

	// Marks fills the vertices at the given paths (digit strings, "" for
	// the root) with a colour.
	Marks map[string]string
}

// VertexID returns the DOT node identifier used for the vertex at p.
func VertexID(p tree.Path) string {
	if p.IsRoot() {
		return "root"
	}
	return "v" + p.String()
}

// ToDOT converts a tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Vertices are emitted in pre-order. Each edge is coloured by the slot its
// child fills: [ColorUnary], [ColorLeft], or [ColorRight].
func ToDOT(t tree.Tree, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.3, fontsize=10, label=\"\"];\n")
	buf.WriteString("  edge [arrowhead=none, penwidth=2];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	var edges []string
	tree.Walk(t, func(p tree.Path, v tree.Tree) bool {
		attrs := fmtAttrs(p, v, opts)
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q [%s];\n", VertexID(p), strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q;\n", VertexID(p))
		}
		if !p.IsRoot() {
			edges = append(edges, fmt.Sprintf("  %q -> %q [color=%q];\n",
				VertexID(p.Parent()), VertexID(p), edgeColor(t, p)))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p tree.Path, v tree.Tree) string {
	name := p.String()
	if p.IsRoot() {
		name = "root"
	}
	return fmt.Sprintf("%s\n%d", name, v.Arity())
}

func fmtAttrs(p tree.Path, v tree.Tree, opts Options) []string {
	var attrs []string
	if opts.Detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", fmtLabel(p, v)), "fixedsize=false", "shape=ellipse")
	}
	if c, ok := opts.Marks[p.String()]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	return attrs
}

// edgeColor picks the colour of the edge into the vertex at p, which must
// not be the root.
func edgeColor(root tree.Tree, p tree.Path) string {
	parent, err := tree.Resolve(root, p.Parent())
	if err == nil && parent.Arity() == 1 {
		return ColorUnary
	}
	if p.Last() == tree.BranchRight {
		return ColorRight
	}
	return ColorLeft
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Render produces the diagram of t in the requested format.
// DOT output needs no external tools; PDF and PNG need rsvg-convert.
func Render(ctx context.Context, t tree.Tree, f render.Format, opts Options) ([]byte, error) {
	dot := ToDOT(t, opts)
	switch f {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return RenderSVG(ctx, dot)
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, 2.0)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
