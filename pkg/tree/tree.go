package tree

import (
	"github.com/matzehuels/fractal/pkg/errors"
)

// Tree is a fractal tree vertex together with everything below it.
//
// The interface is sealed: the only implementations are [Leaf], [Unary] and
// [Binary]. All three are comparable value types, so a Tree can be used as a
// map key and copied freely.
type Tree interface {
	// Arity returns the number of children: 0, 1 or 2.
	Arity() int
	// String returns the canonical text form (see [Format]).
	String() string

	sealed()
}

// Leaf is a vertex with no children.
type Leaf struct{}

// Unary is a vertex with a single child.
type Unary struct {
	Child Tree
}

// Binary is a vertex with an ordered pair of children.
type Binary struct {
	Left  Tree
	Right Tree
}

func (Leaf) Arity() int   { return 0 }
func (Unary) Arity() int  { return 1 }
func (Binary) Arity() int { return 2 }

func (t Leaf) String() string   { return Format(t) }
func (t Unary) String() string  { return Format(t) }
func (t Binary) String() string { return Format(t) }

func (Leaf) sealed()   {}
func (Unary) sealed()  {}
func (Binary) sealed() {}

// NewUnary returns a unary vertex above child.
func NewUnary(child Tree) Tree { return Unary{Child: child} }

// NewBinary returns a binary vertex above left and right.
func NewBinary(left, right Tree) Tree { return Binary{Left: left, Right: right} }

// IsLeaf reports whether t is a [Leaf].
func IsLeaf(t Tree) bool {
	_, ok := t.(Leaf)
	return ok
}

// Children returns the children of t in branch-digit order.
// The returned slice is freshly allocated.
func Children(t Tree) []Tree {
	switch n := t.(type) {
	case Leaf:
		return nil
	case Unary:
		return []Tree{n.Child}
	case Binary:
		return []Tree{n.Left, n.Right}
	default:
		panic(violation(t))
	}
}

// Validate walks t and reports the first vertex that is not one of the three
// shapes. The error carries code STRUCTURAL_VIOLATION and names the path of
// the offending vertex.
func Validate(t Tree) error {
	return validate(t, nil)
}

func validate(t Tree, at Path) error {
	switch n := t.(type) {
	case Leaf:
		return nil
	case Unary:
		return validate(n.Child, append(at, BranchLeft))
	case Binary:
		if err := validate(n.Left, append(at, BranchLeft)); err != nil {
			return err
		}
		return validate(n.Right, append(at, BranchRight))
	default:
		return errors.New(errors.ErrCodeStructuralViolation, "invalid vertex %T at path %q", t, at.String())
	}
}

// violation builds the error value the algebra panics with on a malformed tree.
func violation(t Tree) *errors.Error {
	return errors.New(errors.ErrCodeStructuralViolation, "vertex of type %T is not a leaf, unary or binary vertex", t)
}

// Equal reports whether a and b have the same shape.
func Equal(a, b Tree) bool {
	switch x := a.(type) {
	case Leaf:
		_, ok := must(b).(Leaf)
		return ok
	case Unary:
		y, ok := must(b).(Unary)
		return ok && Equal(x.Child, y.Child)
	case Binary:
		y, ok := must(b).(Binary)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		panic(violation(a))
	}
}

// must returns t unchanged, panicking if it is not a valid vertex shape.
func must(t Tree) Tree {
	switch t.(type) {
	case Leaf, Unary, Binary:
		return t
	default:
		panic(violation(t))
	}
}

// Clone returns a deep copy of t that shares no structure with it.
func Clone(t Tree) Tree {
	switch n := t.(type) {
	case Leaf:
		return Leaf{}
	case Unary:
		return Unary{Child: Clone(n.Child)}
	case Binary:
		return Binary{Left: Clone(n.Left), Right: Clone(n.Right)}
	default:
		panic(violation(t))
	}
}

// Size returns the number of vertices in t, the root included.
func Size(t Tree) int {
	switch n := t.(type) {
	case Leaf:
		return 1
	case Unary:
		return Size(n.Child) + 1
	case Binary:
		return Size(n.Left) + Size(n.Right) + 1
	default:
		panic(violation(t))
	}
}

// Walk visits every vertex of t in pre-order (a vertex, then its children
// from digit 0 upward), passing the vertex path and subtree to fn. If fn
// returns false the children of that vertex are skipped.
//
// The path passed to fn is only valid for the duration of the call.
func Walk(t Tree, fn func(Path, Tree) bool) {
	walk(t, make(Path, 0, MaxDepth(t)), fn)
}

func walk(t Tree, at Path, fn func(Path, Tree) bool) {
	if !fn(at, t) {
		return
	}
	for i, c := range Children(t) {
		walk(c, append(at, Branch(i)), fn)
	}
}
