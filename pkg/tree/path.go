package tree

import (
	"strings"

	"github.com/matzehuels/fractal/pkg/errors"
)

// Branch is a single child selection: 0 for the only or left child, 1 for
// the right child of a binary vertex.
type Branch uint8

const (
	// BranchLeft selects the child of a unary vertex or the left child of a
	// binary vertex.
	BranchLeft Branch = 0
	// BranchRight selects the right child of a binary vertex.
	BranchRight Branch = 1
)

// Path locates a vertex by the branches taken from the root.
// The empty (or nil) path is the root.
type Path []Branch

// ParsePath converts a digit string such as "01" into a Path.
// The empty string is the root path. Any character other than '0' or '1'
// is rejected with code INVALID_PATH.
func ParsePath(s string) (Path, error) {
	if err := errors.ValidatePathText(s); err != nil {
		return nil, err
	}
	p := make(Path, len(s))
	for i := range len(s) {
		p[i] = Branch(s[i] - '0')
	}
	return p, nil
}

// MustParsePath is like [ParsePath] but panics on error.
// It is intended for constant paths in tests and examples.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the digit-string form of p.
func (p Path) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, d := range p {
		b.WriteByte('0' + byte(d))
	}
	return b.String()
}

// IsRoot reports whether p addresses the root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Parent returns the path of the parent vertex. The root has no parent and
// returns itself.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final branch of p. It panics on the root path.
func (p Path) Last() Branch {
	return p[len(p)-1]
}

// Child returns a new path extending p by b. The receiver is not modified.
func (p Path) Child(b Branch) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, b)
}

// Resolve returns the subtree of t at path p.
//
// Each step must select an existing child: digit 0 needs a unary or binary
// vertex and digit 1 needs a binary vertex. A path that continues past a
// leaf, or picks a missing child, fails with code INVALID_PATH.
func Resolve(t Tree, p Path) (Tree, error) {
	cur := t
	for i, d := range p {
		next, ok := child(cur, d)
		if !ok {
			return nil, invalidPath(cur, p, i)
		}
		cur = next
	}
	must(cur)
	return cur, nil
}

// Replace returns a copy of t in which the subtree at p is sub. Vertices off
// the path are shared with t. The root path returns sub itself.
func Replace(t Tree, p Path, sub Tree) (Tree, error) {
	return replace(t, p, 0, sub)
}

func replace(t Tree, p Path, i int, sub Tree) (Tree, error) {
	if i == len(p) {
		return sub, nil
	}
	next, ok := child(t, p[i])
	if !ok {
		return nil, invalidPath(t, p, i)
	}
	c, err := replace(next, p, i+1, sub)
	if err != nil {
		return nil, err
	}
	switch n := t.(type) {
	case Unary:
		return Unary{Child: c}, nil
	case Binary:
		if p[i] == BranchLeft {
			return Binary{Left: c, Right: n.Right}, nil
		}
		return Binary{Left: n.Left, Right: c}, nil
	default:
		panic(violation(t))
	}
}

// child returns the child of t selected by b.
func child(t Tree, b Branch) (Tree, bool) {
	switch n := t.(type) {
	case Leaf:
		return nil, false
	case Unary:
		if b != BranchLeft {
			return nil, false
		}
		return n.Child, true
	case Binary:
		switch b {
		case BranchLeft:
			return n.Left, true
		case BranchRight:
			return n.Right, true
		}
		return nil, false
	default:
		panic(violation(t))
	}
}

func invalidPath(at Tree, p Path, i int) error {
	return errors.New(errors.ErrCodeInvalidPath,
		"path %q: no child %d below %q (vertex of arity %d)", p.String(), p[i], p[:i].String(), at.Arity())
}
