package tree_test

import (
	"fmt"

	"github.com/matzehuels/fractal/pkg/tree"
)

func ExampleParse() {
	// Both the canonical and the nested-array notation are accepted
	a := tree.MustParse("[0,(0)]")
	b := tree.MustParse("[[],[[]]]")

	fmt.Println(a, b, tree.Equal(a, b))
	fmt.Println(tree.FormatJSON(a))
	// Output:
	// [0,(0)] [0,(0)] true
	// [[],[[]]]
}

func ExampleCut() {
	t := tree.NewUnary(tree.Leaf{})

	once := tree.Cut(t)
	twice := tree.Cut(once)

	fmt.Println(t, "->", once, "->", twice)
	// Output:
	// (0) -> [0,0] -> [0,0]
}

func ExampleDivide() {
	t := tree.MustParse("[[0,0],[0,[0,0]]]")
	fmt.Println(tree.Divide(t))
	// Output:
	// [0,(0)]
}

func ExampleRank() {
	for _, text := range []string{"[[0,0],[0,0]]", "[0,[0,0]]"} {
		r, ok := tree.Rank(tree.MustParse(text))
		fmt.Println(text, r, ok)
	}
	// Output:
	// [[0,0],[0,0]] 2 true
	// [0,[0,0]] 0 false
}

func ExampleRankNSubtrees() {
	t := tree.MustParse("[[0,(0)],[(0),0]]")
	fmt.Println(tree.RankNSubtrees(t, 1))
	fmt.Println(tree.RankNSubtrees(t, 2))
	// Output:
	// [[(0),0]]
	// [(0) 0]
}

func ExampleClassify() {
	c := tree.Classify(tree.MustParse("[[0,0],[0,0]]"))
	fmt.Println("rank:", c.Rank, c.Ranked)
	fmt.Println("semi-fractal:", c.SemiFractal)
	fmt.Println("C(W)=W:", c.CutFixedPoint)
	fmt.Println("fractal:", c.Fractal)
	// Output:
	// rank: 2 true
	// semi-fractal: true
	// C(W)=W: true
	// fractal: true
}

func ExampleResolve() {
	t := tree.MustParse("[(0),[0,(0)]]")
	sub, err := tree.Resolve(t, tree.MustParsePath("11"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sub)

	_, err = tree.Resolve(t, tree.MustParsePath("01"))
	fmt.Println(err != nil)
	// Output:
	// (0)
	// true
}

func ExampleEnumerate() {
	for t := range tree.Enumerate(1) {
		fmt.Println(t, tree.IsFractal(t))
	}
	// Output:
	// (0) false
	// [0,0] true
}
