package store

import (
	"fmt"
	"time"

	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/observability"
	"github.com/matzehuels/fractal/pkg/tree"
)

// EditOption adjusts a single edit.
type EditOption func(*editConfig)

type editConfig struct {
	record bool
}

// NoRecord applies an edit without appending a history snapshot. It is used
// when replaying state that is already in the history.
func NoRecord() EditOption {
	return func(c *editConfig) { c.record = false }
}

// Add grows the vertex at p by one child: a leaf becomes (0) and a unary
// vertex (c) becomes [c,0]. A binary vertex collapses back to a leaf, so
// repeated adds at one path cycle 0, (0), [0,0], 0.
func (s *Store) Add(p tree.Path, opts ...EditOption) error {
	return s.apply("add", opts, func(t tree.Tree) (tree.Tree, error) {
		target, err := tree.Resolve(t, p)
		if err != nil {
			return nil, err
		}
		return tree.Replace(t, p, grow(target))
	})
}

func grow(t tree.Tree) tree.Tree {
	switch n := t.(type) {
	case tree.Leaf:
		return tree.Unary{Child: tree.Leaf{}}
	case tree.Unary:
		return tree.Binary{Left: n.Child, Right: tree.Leaf{}}
	default:
		return tree.Leaf{}
	}
}

// Remove deletes the child slot that p points at, together with its subtree.
// A binary parent keeps its other child as a unary vertex and a unary parent
// becomes a leaf. The root cannot be removed.
func (s *Store) Remove(p tree.Path, opts ...EditOption) error {
	return s.apply("remove", opts, func(t tree.Tree) (tree.Tree, error) {
		if p.IsRoot() {
			return nil, errors.New(errors.ErrCodeInvalidPath, "cannot remove the root")
		}
		if _, err := tree.Resolve(t, p); err != nil {
			return nil, err
		}
		parent := p.Parent()
		pt, err := tree.Resolve(t, parent)
		if err != nil {
			return nil, err
		}
		var shrunk tree.Tree
		switch n := pt.(type) {
		case tree.Unary:
			shrunk = tree.Leaf{}
		case tree.Binary:
			keep := n.Right
			if p.Last() == tree.BranchRight {
				keep = n.Left
			}
			shrunk = tree.Unary{Child: keep}
		default:
			return nil, errors.New(errors.ErrCodeInvalidPath, "path %q: parent has no children", p.String())
		}
		return tree.Replace(t, parent, shrunk)
	})
}

// Promote replaces the whole tree with its subtree at p.
func (s *Store) Promote(p tree.Path, opts ...EditOption) error {
	return s.apply("promote", opts, func(t tree.Tree) (tree.Tree, error) {
		return tree.Resolve(t, p)
	})
}

// DivideAll replaces the tree with its division.
func (s *Store) DivideAll(opts ...EditOption) error {
	return s.apply("divide", opts, func(t tree.Tree) (tree.Tree, error) {
		return tree.Divide(t), nil
	})
}

// CutAll replaces the tree with its cut. The stored result shares no
// vertices with the previous tree.
func (s *Store) CutAll(opts ...EditOption) error {
	return s.apply("cut", opts, func(t tree.Tree) (tree.Tree, error) {
		return tree.Clone(tree.Cut(t)), nil
	})
}

// Load replaces the tree with one parsed from text in canonical or
// nested-array form. Text that does not parse fails with PARSE_FAILURE.
func (s *Store) Load(text string, opts ...EditOption) error {
	return s.apply("load", opts, func(tree.Tree) (tree.Tree, error) {
		return tree.Parse(text)
	})
}

// apply computes the next tree with fn and commits it only if fn succeeds
// and the result is well formed. Structural violations raised by the
// algebra are returned as errors.
func (s *Store) apply(op string, opts []EditOption, fn func(tree.Tree) (tree.Tree, error)) (err error) {
	cfg := editConfig{record: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = recovered(op, r)
		}
		if err != nil {
			s.logger.Debug("edit rejected", "op", op, "err", err)
		}
		observability.Store().OnEdit(op, size(s.tree), time.Since(start), err)
	}()

	next, err := fn(s.tree)
	if err != nil {
		return err
	}
	if err := tree.Validate(next); err != nil {
		return err
	}

	s.tree = next
	if cfg.record {
		s.Record()
	}
	s.logger.Debug("edit", "op", op, "tree", tree.Format(next), "index", s.index)
	return nil
}

// size is tree.Size for well-formed trees and 0 otherwise.
func size(t tree.Tree) int {
	if tree.Validate(t) != nil {
		return 0
	}
	return tree.Size(t)
}

func recovered(op string, r any) error {
	switch v := r.(type) {
	case *errors.Error:
		return v
	case error:
		return errors.Wrap(errors.ErrCodeInternal, v, "%s", op)
	default:
		return errors.New(errors.ErrCodeInternal, "%s: %s", op, fmt.Sprint(v))
	}
}
