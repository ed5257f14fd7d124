package tree

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/fractal/pkg/errors"
)

// MaxParseDepth bounds the nesting accepted by [Parse].
const MaxParseDepth = 1 << 14

// Format returns the canonical text form of t: "0" for a leaf, "(c)" for a
// unary vertex and "[l,r]" for a binary vertex.
func Format(t Tree) string {
	var b strings.Builder
	writeCanonical(&b, t)
	return b.String()
}

func writeCanonical(b *strings.Builder, t Tree) {
	switch n := t.(type) {
	case Leaf:
		b.WriteByte('0')
	case Unary:
		b.WriteByte('(')
		writeCanonical(b, n.Child)
		b.WriteByte(')')
	case Binary:
		b.WriteByte('[')
		writeCanonical(b, n.Left)
		b.WriteByte(',')
		writeCanonical(b, n.Right)
		b.WriteByte(']')
	default:
		panic(violation(t))
	}
}

// FormatJSON returns t as nested JSON arrays, one array per vertex holding
// its children: "[]" for a leaf, "[[]]" for a unary vertex over a leaf.
func FormatJSON(t Tree) string {
	var b strings.Builder
	writeJSON(&b, t)
	return b.String()
}

func writeJSON(b *strings.Builder, t Tree) {
	b.WriteByte('[')
	for i, c := range Children(t) {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSON(b, c)
	}
	b.WriteByte(']')
}

// MarshalJSON encodes a leaf as an empty JSON array.
func (t Leaf) MarshalJSON() ([]byte, error) { return []byte(FormatJSON(t)), nil }

// MarshalJSON encodes a unary vertex as a one-element JSON array.
func (t Unary) MarshalJSON() ([]byte, error) { return []byte(FormatJSON(t)), nil }

// MarshalJSON encodes a binary vertex as a two-element JSON array.
func (t Binary) MarshalJSON() ([]byte, error) { return []byte(FormatJSON(t)), nil }

// Parse reads a tree from text.
//
// Two notations are accepted, and may be mixed:
//
//	canonical:  0   (0)    [0,(0)]
//	JSON:       []  [[]]   [[],[[]]]
//
// A vertex is either the leaf marker "0" or a delimited list of children
// written with "(...)" or "[...]"; the closing delimiter must match the
// opening one. The number of children decides the shape, so an empty list
// is a leaf. Whitespace (newlines included) is ignored.
//
// Empty input, unbalanced or mismatched delimiters, stray characters,
// trailing input, and lists with three or more children fail with code
// PARSE_FAILURE.
func Parse(text string) (Tree, error) {
	if err := errors.ValidateTreeText(text); err != nil {
		return nil, err
	}
	p := &parser{src: text}
	t, err := p.tree(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q after end of tree", p.src[p.pos])
	}
	return t, nil
}

// MustParse is like [Parse] but panics on error.
// It is intended for constant trees in tests and examples.
func MustParse(text string) Tree {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) tree(depth int) (Tree, error) {
	if depth > MaxParseDepth {
		return nil, p.errorf("tree nested deeper than %d levels", MaxParseDepth)
	}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}
	switch open := p.src[p.pos]; open {
	case '0':
		p.pos++
		return Leaf{}, nil
	case '(', '[':
		p.pos++
		kids, err := p.children(depth, closer(open))
		if err != nil {
			return nil, err
		}
		switch len(kids) {
		case 0:
			return Leaf{}, nil
		case 1:
			return Unary{Child: kids[0]}, nil
		default:
			return Binary{Left: kids[0], Right: kids[1]}, nil
		}
	default:
		return nil, p.errorf("unexpected %q, want '0', '(' or '['", p.src[p.pos])
	}
}

// children reads a comma separated list up to and including the end byte.
func (p *parser) children(depth int, end byte) ([]Tree, error) {
	start := p.pos - 1
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == end {
		p.pos++
		return nil, nil
	}
	var kids []Tree
	for {
		if len(kids) == 2 {
			return nil, errors.New(errors.ErrCodeParseFailure,
				"vertex at offset %d has more than two children", start)
		}
		kid, err := p.tree(depth + 1)
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("missing %q for vertex opened at offset %d", end, start)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case end:
			p.pos++
			return kids, nil
		default:
			return nil, p.errorf("unexpected %q, want ',' or %q", p.src[p.pos], end)
		}
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeParseFailure, "%s (offset %d)", fmt.Sprintf(format, args...), p.pos)
}

func closer(open byte) byte {
	if open == '(' {
		return ')'
	}
	return ']'
}
