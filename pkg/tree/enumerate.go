package tree

import "iter"

// Enumerate yields every tree whose [Rank] is exactly n, in a fixed order:
// first a unary vertex over each rank n-1 tree, then a binary vertex over
// each ordered pair of rank n-1 trees. Rank 0 yields a single leaf; a
// negative rank yields nothing.
//
// The count grows doubly exponentially (1, 2, 6, 42, 1806, ...), so callers
// should stop early or stay at small ranks.
func Enumerate(n int) iter.Seq[Tree] {
	return func(yield func(Tree) bool) {
		if n < 0 {
			return
		}
		enumerate(n, yield)
	}
}

func enumerate(n int, yield func(Tree) bool) bool {
	if n == 0 {
		return yield(Leaf{})
	}
	for sub := range Enumerate(n - 1) {
		if !yield(Unary{Child: sub}) {
			return false
		}
	}
	for left := range Enumerate(n - 1) {
		for right := range Enumerate(n - 1) {
			if !yield(Binary{Left: left, Right: right}) {
				return false
			}
		}
	}
	return true
}

// CountRank returns how many trees [Enumerate] yields for rank n.
// The result overflows int beyond rank 6.
func CountRank(n int) int {
	if n < 0 {
		return 0
	}
	c := 1
	for range n {
		c += c * c
	}
	return c
}
