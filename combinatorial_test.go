// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import (
	"math/big"
	"testing"
)

// subsetsOfSize builds, via repeated Insert homomorphisms over an empty
// seed and binary union, the family of every k-subset of {0, ..., n-1}. It
// exercises Union, Insert and MakeNode together on inputs large enough
// to force several rehashes of the node unique table.
func subsetsOfSize(f *Factory[int], n, k int) Node[int] {
	if k == 0 {
		return f.One()
	}
	if k > n {
		return f.Zero()
	}
	var choose func(start, remaining int) Node[int]
	choose = func(start, remaining int) Node[int] {
		if remaining == 0 {
			return f.One()
		}
		if n-start < remaining {
			return f.Zero()
		}
		withStart := f.Insert(start).Apply(choose(start+1, remaining-1))
		without := choose(start+1, remaining)
		return f.Union(withStart, without)
	}
	return choose(0, k)
}

func binomial(n, k int) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(k))
}

func TestSubsetsOfSizeMatchesBinomialCoefficient(t *testing.T) {
	f := newTestFactory()
	for n := 0; n <= 8; n++ {
		for k := 0; k <= n; k++ {
			got := subsetsOfSize(f, n, k)
			want := binomial(n, k)
			if new(big.Int).SetUint64(got.Count()).Cmp(want) != 0 {
				t.Fatalf("subsetsOfSize(%d,%d): count %d, want %s", n, k, got.Count(), want)
			}
		}
	}
}

// TestSubsetsIteratorMatchesCount checks that enumerating a nontrivial
// family yields exactly Count() distinct sets, each of the expected size.
func TestSubsetsIteratorMatchesCount(t *testing.T) {
	f := newTestFactory()
	n, k := 6, 3
	fam := subsetsOfSize(f, n, k)
	seen := 0
	for set := range fam.All() {
		seen++
		if len(set) != k {
			t.Fatalf("member set has %d elements, want %d: %v", len(set), k, set)
		}
	}
	if uint64(seen) != fam.Count() {
		t.Fatalf("iterated %d sets, Count() reports %d", seen, fam.Count())
	}
}

// TestMilnerStyleCoveringFixedPoint computes the transitive closure of a
// "can extend by one more resource" relation via FixedPoint, starting from
// a seed family, and checks the result against a hand-computed reachable
// set.
func TestMilnerStyleCoveringFixedPoint(t *testing.T) {
	f := newTestFactory()
	seed := f.Make([]int{0})
	// grow: add resource 1 to every set not containing it, then resource 2.
	grow := f.UnionOf(f.Identity(), f.Insert(1), f.Insert(2))
	closure := f.FixedPointOf(grow)
	got := closure.Apply(seed)
	want := f.Make([]int{0}, []int{0, 1}, []int{0, 2}, []int{0, 1, 2})
	if got != want {
		t.Fatalf("FixedPoint covering: expected %s, got %s", want.Description(), got.Description())
	}
}
