// Package tree provides the algebra of fractal trees: rooted trees whose
// vertices have zero, one, or two ordered children.
//
// # Overview
//
// A [Tree] is one of three shapes:
//
//   - [Leaf]: no children
//   - [Unary]: a single child, reached through branch digit 0
//   - [Binary]: a left and a right child, reached through digits 0 and 1
//
// Trees are immutable values. Every function in this package either inspects
// a tree or builds a new one; results may share untouched subtrees with their
// inputs, which is safe because nothing ever mutates a node in place. Use
// [Equal] for comparisons and [Clone] when a structurally independent copy is
// required.
//
// # Text Form
//
// Trees have a canonical text form used for display, history snapshots and
// copy/paste:
//
//	0        Leaf
//	(t)      Unary(t)
//	[l,r]    Binary(l, r)
//
// [Parse] reads the canonical form and the nested-array JSON form ([], [[]],
// [[],[]]) produced by [FormatJSON]. Anything that would produce a node with
// three or more children is rejected.
//
// # Transforms
//
// [Cut] is the doubling transform: a unary vertex becomes binary by pairing
// the cut child with the original child, and a binary vertex rebuilds itself
// from its right child alone. [Divide] is the contraction transform: it
// removes leaves, visiting the right child of a binary vertex before the left.
// Both asymmetries are deliberate and must be kept as they are; the fractal
// classification depends on them.
//
// # Classification
//
// [Rank] is defined when every pair of siblings sits at the same structural
// depth. [IsSemiFractal] compares the subtree collections found one level
// below each rank, and [IsFractal] additionally requires the tree to be a
// fixed point of [Cut]. [Classify] bundles all of these for display.
//
// # Paths
//
// A [Path] addresses a vertex by the branch digits taken from the root; the
// empty path is the root itself. [Resolve] follows a path and [Replace]
// rebuilds a tree with the subtree at a path swapped out.
//
// # Structural Violations
//
// A nil [Tree], whether passed directly or nested as a child, is not a valid
// shape. [Validate] reports it as an error with code STRUCTURAL_VIOLATION.
// The algebra functions panic with the same *errors.Error when they meet
// one mid-traversal; callers that accept trees from outside should validate
// first.
package tree
