// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/vecio/sfdd"
)

func newFactory() *sfdd.Factory[int] {
	return sfdd.New(func(a, b int) bool { return a < b }, func(a int) uint64 { return uint64(a) })
}

// TestInsertRemoveFilter checks Insert, Remove, and Filter against a small
// worked family each.
func TestInsertRemoveFilter(t *testing.T) {
	f := newFactory()

	insertGot := f.Insert(4).Apply(f.Make([]int{1, 2}))
	qt.Assert(t, qt.Equals(insertGot, f.Make([]int{1, 2, 4})))

	removeGot := f.Remove(2).Apply(f.Make([]int{1, 2}, []int{2, 3}))
	qt.Assert(t, qt.Equals(removeGot, f.Make([]int{1}, []int{3})))

	filterGot := f.Filter(2).Apply(f.Make([]int{1, 2}, []int{1, 3}))
	qt.Assert(t, qt.Equals(filterGot, f.Make([]int{1, 2})))
}

// TestUniquingOfHomomorphisms checks that structurally-equal
// Insert/Remove/Filter/Dive instances are the same reference.
func TestUniquingOfHomomorphisms(t *testing.T) {
	f := newFactory()
	qt.Assert(t, qt.Equals(f.Insert(1, 2), f.Insert(2, 1)))
	qt.Assert(t, qt.Equals(f.Remove(3), f.Remove(3)))
	qt.Assert(t, qt.Equals(f.Filter(1), f.Filter(1)))
	qt.Assert(t, qt.Equals(f.Dive(1, f.Insert(2)), f.Dive(1, f.Insert(2))))
	qt.Assert(t, qt.Equals(f.Identity(), f.Identity()))
}

// TestDiveIsNoOpBelowTarget checks that Dive leaves a family untouched when
// wrapping a homomorphism that is itself a no-op on an absent key (Remove),
// and its target key never appears at or below the family's root.
func TestDiveIsNoOpBelowTarget(t *testing.T) {
	f := newFactory()
	y := f.Make([]int{5, 6})
	got := f.Dive(9, f.Remove(1)).Apply(y)
	qt.Assert(t, qt.Equals(got, y))
}

// TestDiveAppliesInsertPastTarget checks that Dive still runs an Insert once
// the walk passes the target key without finding it, since Insert must
// build structure through the terminal rather than no-op like Remove/Filter.
func TestDiveAppliesInsertPastTarget(t *testing.T) {
	f := newFactory()
	y := f.Make([]int{1})
	got := f.Dive(3, f.Insert(3)).Apply(y)
	qt.Assert(t, qt.Equals(got, f.Make([]int{1, 3})))
}

// TestInductiveRebuildsFamily applies an Inductive that recurses into both
// branches with itself and keeps ⊤, which must rebuild the input family
// unchanged, to double-check the framework's plumbing of user-supplied
// recursion.
func TestInductiveRebuildsFamily(t *testing.T) {
	f := newFactory()
	fam := f.Make([]int{1, 2}, []int{1}, []int{2})

	var rebuild sfdd.Homomorphism[int]
	rebuild = f.Inductive(f.One(), func(self sfdd.Homomorphism[int], y sfdd.Node[int]) (sfdd.Homomorphism[int], sfdd.Homomorphism[int]) {
		return self, self
	})
	got := rebuild.Apply(fam)
	qt.Assert(t, qt.Equals(got, fam))
}

// TestOptimizePreservesSemantics checks that optimizing a Composition of
// two Inserts does not change what it computes.
func TestOptimizePreservesSemantics(t *testing.T) {
	f := newFactory()
	phi := f.ComposeOf(f.Insert(5), f.Insert(3))
	y := f.Make([]int{1})

	opt := f.Optimize(phi)
	qt.Assert(t, qt.Equals(opt.Apply(y), phi.Apply(y)))
	qt.Assert(t, qt.Equals(opt.Apply(y), f.Make([]int{1, 3, 5})))
}
