package tree

// Classification summarizes the measurements and predicates of a tree.
// It is what every front end shows next to the tree itself.
type Classification struct {
	Text          string `json:"text"`            // canonical form
	JSON          string `json:"json"`            // nested-array form
	Rank          int    `json:"rank"`            // valid only when Ranked
	Ranked        bool   `json:"ranked"`          // whether Rank is defined
	MaxDepth      int    `json:"max_depth"`       // vertices on the longest path
	Size          int    `json:"size"`            // vertex count
	SemiFractal   bool   `json:"semi_fractal"`    // IsSemiFractal
	CutFixedPoint bool   `json:"cut_fixed_point"` // C(W) = W
	Fractal       bool   `json:"fractal"`         // IsFractal
}

// Classify computes the [Classification] of t.
func Classify(t Tree) Classification {
	rank, ranked := Rank(t)
	semi := IsSemiFractal(t)
	fixed := IsCutFixedPoint(t)
	return Classification{
		Text:          Format(t),
		JSON:          FormatJSON(t),
		Rank:          rank,
		Ranked:        ranked,
		MaxDepth:      MaxDepth(t),
		Size:          Size(t),
		SemiFractal:   semi,
		CutFixedPoint: fixed,
		Fractal:       semi && fixed,
	}
}
