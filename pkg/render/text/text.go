// Package text renders trees as styled terminal text.
//
// [Colorize] prints the canonical form with every delimiter coloured by the
// depth of the vertex it belongs to, so matching brackets share a colour.
// [Outline] lists the vertices one per line, indented by depth, and is what
// the interactive editor moves its cursor over.
package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/fractal/pkg/tree"
)

// DepthColors cycle by vertex depth, starting at the root.
var DepthColors = []string{"#D6D848", "#CC76D1", "#4A9DF8"}

// MarkColors are handed out to marks in order, wrapping around.
var MarkColors = []string{"#FF6B6B", "#4ECDC4", "#FFA94D", "#845EF7", "#51CF66", "#F06595"}

// MarkColor returns the colour for the i-th mark.
func MarkColor(i int) string {
	if i < 0 {
		i = -i
	}
	return MarkColors[i%len(MarkColors)]
}

// Options configures text rendering.
type Options struct {
	// Palette overrides DepthColors when non-empty.
	Palette []string

	// Marks colours the vertices at the given paths (digit strings, "" for
	// the root). A marked leaf takes the mark colour; a marked inner vertex
	// has its delimiters drawn in it.
	Marks map[string]string

	// Renderer is the lipgloss renderer to style with. Nil uses the default
	// renderer, which detects the colour support of standard output.
	Renderer *lipgloss.Renderer
}

func (o Options) palette() []string {
	if len(o.Palette) > 0 {
		return o.Palette
	}
	return DepthColors
}

func (o Options) style(color string) lipgloss.Style {
	if o.Renderer != nil {
		return o.Renderer.NewStyle().Foreground(lipgloss.Color(color))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Colorize returns the canonical text of t with colour by depth.
// With colour disabled it equals tree.Format(t). Like the algebra, it panics
// on a malformed tree.
func Colorize(t tree.Tree, opts Options) string {
	var b strings.Builder
	colorize(&b, t, nil, opts)
	return b.String()
}

func colorize(b *strings.Builder, t tree.Tree, at tree.Path, opts Options) {
	pal := opts.palette()
	color := pal[len(at)%len(pal)]
	if c, ok := opts.Marks[at.String()]; ok {
		color = c
	}
	st := opts.style(color)

	switch n := t.(type) {
	case tree.Leaf:
		b.WriteString(st.Render("0"))
	case tree.Unary:
		b.WriteString(st.Render("("))
		colorize(b, n.Child, at.Child(tree.BranchLeft), opts)
		b.WriteString(st.Render(")"))
	case tree.Binary:
		b.WriteString(st.Render("["))
		colorize(b, n.Left, at.Child(tree.BranchLeft), opts)
		b.WriteString(st.Render(","))
		colorize(b, n.Right, at.Child(tree.BranchRight), opts)
		b.WriteString(st.Render("]"))
	default:
		panic(tree.Validate(t))
	}
}

// Line is one vertex in an [Outline].
type Line struct {
	Path  tree.Path
	Depth int
	Tree  tree.Tree
}

// Kind names the vertex shape.
func (l Line) Kind() string {
	switch l.Tree.Arity() {
	case 0:
		return "leaf"
	case 1:
		return "unary"
	default:
		return "binary"
	}
}

// Name is the path digits, or "root".
func (l Line) Name() string {
	if l.Path.IsRoot() {
		return "root"
	}
	return l.Path.String()
}

// String renders the line as indented plain text.
func (l Line) String() string {
	return fmt.Sprintf("%s%s %s", strings.Repeat("  ", l.Depth), l.Name(), l.Kind())
}

// Outline lists the vertices of t in pre-order. Paths are copies and may be
// kept.
func Outline(t tree.Tree) []Line {
	var lines []Line
	tree.Walk(t, func(p tree.Path, v tree.Tree) bool {
		lines = append(lines, Line{Path: append(tree.Path(nil), p...), Depth: len(p), Tree: v})
		return true
	})
	return lines
}
