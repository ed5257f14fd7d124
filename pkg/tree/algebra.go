package tree

// Rank returns the balanced depth of t and whether it is defined.
//
// A leaf has rank 0. A unary vertex has the rank of its child plus one. A
// binary vertex has rank r+1 when both children have the same rank r; when
// the children disagree, or either is unranked, the rank is undefined and
// Rank returns (0, false).
//
// Whenever the rank is defined, rank+1 equals [MaxDepth].
func Rank(t Tree) (int, bool) {
	switch n := t.(type) {
	case Leaf:
		return 0, true
	case Unary:
		r, ok := Rank(n.Child)
		if !ok {
			return 0, false
		}
		return r + 1, true
	case Binary:
		left, lok := Rank(n.Left)
		right, rok := Rank(n.Right)
		if !lok || !rok || left != right {
			return 0, false
		}
		return left + 1, true
	default:
		panic(violation(t))
	}
}

// MaxDepth returns the number of vertices on the longest root-to-leaf path.
// A single leaf has depth 1.
func MaxDepth(t Tree) int {
	switch n := t.(type) {
	case Leaf:
		return 1
	case Unary:
		return MaxDepth(n.Child) + 1
	case Binary:
		return max(MaxDepth(n.Left), MaxDepth(n.Right)) + 1
	default:
		panic(violation(t))
	}
}

// Divide contracts t by removing its leaves, working right child first.
//
//   - A leaf is unchanged.
//   - A unary vertex over a leaf becomes a leaf; otherwise its child is divided.
//   - For a binary vertex the right child is examined first. A leaf on the
//     right makes the whole vertex collapse to a leaf, the left branch going
//     with it. Otherwise the right child is divided, and then the left: a
//     leaf on the left is dropped, leaving a unary vertex over the divided
//     right child.
func Divide(t Tree) Tree {
	switch n := t.(type) {
	case Leaf:
		return n
	case Unary:
		if IsLeaf(must(n.Child)) {
			return Leaf{}
		}
		return Unary{Child: Divide(n.Child)}
	case Binary:
		if IsLeaf(must(n.Right)) {
			return Leaf{}
		}
		right := Divide(n.Right)
		if IsLeaf(must(n.Left)) {
			return Unary{Child: right}
		}
		return Binary{Left: Divide(n.Left), Right: right}
	default:
		panic(violation(t))
	}
}

// Cut applies the doubling transform to t.
//
//   - Cut(Leaf) = Leaf
//   - Cut(Unary(c)) = Binary(Cut(c), c)
//   - Cut(Binary(l, r)) = Binary(Cut(r), r)
//
// Only the right child of a binary vertex takes part; the left child is
// discarded. The original child appears verbatim as the right child of the
// result, so the result shares structure with t.
func Cut(t Tree) Tree {
	switch n := t.(type) {
	case Leaf:
		return n
	case Unary:
		return Binary{Left: Cut(n.Child), Right: n.Child}
	case Binary:
		return Binary{Left: Cut(n.Right), Right: n.Right}
	default:
		panic(violation(t))
	}
}

// RankNSubtrees collects the subtrees found n levels below the root of t,
// ordered left to right.
//
// At the first level only the last child counts: a unary vertex contributes
// its child and a binary vertex its right child. Deeper levels recurse into
// every child, left results first. A leaf contributes nothing, and n < 1
// yields nil.
func RankNSubtrees(t Tree, n int) []Tree {
	if n < 1 {
		return nil
	}
	return appendRankN(nil, t, n)
}

func appendRankN(dst []Tree, t Tree, n int) []Tree {
	switch v := t.(type) {
	case Leaf:
		return dst
	case Unary:
		if n == 1 {
			return append(dst, v.Child)
		}
		return appendRankN(dst, v.Child, n-1)
	case Binary:
		if n == 1 {
			return append(dst, v.Right)
		}
		dst = appendRankN(dst, v.Left, n-1)
		return appendRankN(dst, v.Right, n-1)
	default:
		panic(violation(t))
	}
}

// IsSemiFractal reports whether, at every level, the subtrees returned by
// [RankNSubtrees] are identical. A level that mixes leaves with non-leaves,
// or holds two different shapes, disqualifies the tree. The scan stops at
// the first empty level, which always exists for a finite tree.
func IsSemiFractal(t Tree) bool {
	for i := 1; ; i++ {
		trees := RankNSubtrees(t, i)
		if len(trees) == 0 {
			return true
		}
		if mixesLeaves(trees) {
			return false
		}
		first := trees[0]
		for _, other := range trees[1:] {
			if !Equal(first, other) {
				return false
			}
		}
	}
}

func mixesLeaves(trees []Tree) bool {
	var leaves int
	for _, t := range trees {
		if IsLeaf(must(t)) {
			leaves++
		}
	}
	return leaves > 0 && leaves < len(trees)
}

// IsCutFixedPoint reports whether t is unchanged by [Cut].
func IsCutFixedPoint(t Tree) bool {
	return Equal(t, Cut(t))
}

// IsFractal reports whether t is semi-fractal and a fixed point of [Cut].
func IsFractal(t Tree) bool {
	return IsSemiFractal(t) && IsCutFixedPoint(t)
}
