package tree

import "testing"

func TestEnumerate(t *testing.T) {
	var got []string
	for tr := range Enumerate(2) {
		got = append(got, tr.String())
	}

	want := []string{
		"((0))", "([0,0])",
		"[(0),(0)]", "[(0),[0,0]]", "[[0,0],(0)]", "[[0,0],[0,0]]",
	}
	if len(got) != len(want) {
		t.Fatalf("Enumerate(2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Enumerate(2)[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEnumerateRanks(t *testing.T) {
	for n := range 4 {
		var count int
		for tr := range Enumerate(n) {
			count++
			if r, ok := Rank(tr); !ok || r != n {
				t.Errorf("Enumerate(%d) yielded %s with rank %d, %v", n, tr, r, ok)
			}
		}
		if count != CountRank(n) {
			t.Errorf("Enumerate(%d) yielded %d trees, want %d", n, count, CountRank(n))
		}
	}
}

func TestEnumerateStopsEarly(t *testing.T) {
	var count int
	for range Enumerate(4) {
		count++
		if count == 10 {
			break
		}
	}
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}

func TestEnumerateNegative(t *testing.T) {
	for tr := range Enumerate(-1) {
		t.Errorf("Enumerate(-1) yielded %s", tr)
	}
	if CountRank(-1) != 0 {
		t.Errorf("CountRank(-1) = %d, want 0", CountRank(-1))
	}
}

func TestFractalsPerRank(t *testing.T) {
	want := []int{1, 1, 2}
	for n, w := range want {
		var count int
		for tr := range Enumerate(n) {
			if IsFractal(tr) {
				count++
			}
		}
		if count != w {
			t.Errorf("rank %d: %d fractals, want %d", n, count, w)
		}
	}
}

func TestCutFixedPointShape(t *testing.T) {
	for n := 1; n < 4; n++ {
		for tr := range Enumerate(n) {
			if !IsCutFixedPoint(tr) {
				continue
			}
			b, ok := tr.(Binary)
			if !ok || !Equal(b.Left, Cut(b.Right)) {
				t.Errorf("%s is a cut fixed point but not of the form [C(r),r]", tr)
			}
		}
	}
}
