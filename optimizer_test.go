// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import "testing"

// TestOptimizeComposeShape checks that optimize(Insert([5]) . Insert([3]))
// has shape Dive(3, Composition(Insert([3]), Insert([5]))).
func TestOptimizeComposeShape(t *testing.T) {
	f := newTestFactory()
	phi := f.ComposeOf(f.Insert(5), f.Insert(3))
	opt := f.Optimize(phi)

	dive, ok := opt.(*diveHom[int])
	if !ok {
		t.Fatalf("expected optimized form to be a Dive, got %T", opt)
	}
	if dive.key != 3 {
		t.Fatalf("expected Dive target 3, got %d", dive.key)
	}
	compose, ok := dive.phi.(*composeHom[int])
	if !ok {
		t.Fatalf("expected Dive body to be a Composition, got %T", dive.phi)
	}
	if len(compose.terms) != 2 {
		t.Fatalf("expected 2 composed terms, got %d", len(compose.terms))
	}
	first, ok := compose.terms[0].(*insertHom[int])
	if !ok || len(first.keys) != 1 || first.keys[0] != 3 {
		t.Fatalf("expected first term Insert([3]), got %#v", compose.terms[0])
	}
	second, ok := compose.terms[1].(*insertHom[int])
	if !ok || len(second.keys) != 1 || second.keys[0] != 5 {
		t.Fatalf("expected second term Insert([5]), got %#v", compose.terms[1])
	}

	y := f.Make([]int{1})
	if opt.Apply(y) != phi.Apply(y) {
		t.Fatalf("optimize changed semantics")
	}
}

// TestOptimizeIdempotent checks that optimize is idempotent on its output.
func TestOptimizeIdempotent(t *testing.T) {
	f := newTestFactory()
	phi := f.ComposeOf(f.Insert(5, 6), f.Remove(1, 2))
	once := f.Optimize(phi)
	twice := f.Optimize(once)
	if twice != once {
		t.Fatalf("optimize is not idempotent: re-optimizing produced a different homomorphism")
	}
	y := f.Make([]int{1, 3})
	if once.Apply(y) != twice.Apply(y) {
		t.Fatalf("optimize is not idempotent: %v != %v", once.Apply(y).Description(), twice.Apply(y).Description())
	}
}

// TestOptimizeMultiKeyRun checks rule 4: Insert/Remove/Filter with |K| >= 2
// becomes Dive(min K, Composition(...)).
func TestOptimizeMultiKeyRun(t *testing.T) {
	f := newTestFactory()
	phi := f.Insert(5, 3, 4)
	opt := f.Optimize(phi)
	dive, ok := opt.(*diveHom[int])
	if !ok {
		t.Fatalf("expected Dive, got %T", opt)
	}
	if dive.key != 3 {
		t.Fatalf("expected Dive target 3, got %d", dive.key)
	}
	y := f.Make([]int{1})
	if opt.Apply(y) != phi.Apply(y) {
		t.Fatalf("optimize changed semantics")
	}
}

// TestOptimizeMixedInsertRemoveRun checks that a contiguous run mixing
// Insert and Remove terms is Dive-wrapped as a single run, not split at the
// point where the term kind changes.
func TestOptimizeMixedInsertRemoveRun(t *testing.T) {
	f := newTestFactory()
	phi := f.ComposeOf(f.Insert(5), f.Remove(3))
	opt := f.Optimize(phi)

	dive, ok := opt.(*diveHom[int])
	if !ok {
		t.Fatalf("expected optimized form to be a Dive, got %T", opt)
	}
	if dive.key != 3 {
		t.Fatalf("expected Dive target 3, got %d", dive.key)
	}
	compose, ok := dive.phi.(*composeHom[int])
	if !ok {
		t.Fatalf("expected Dive body to be a Composition, got %T", dive.phi)
	}
	if len(compose.terms) != 2 {
		t.Fatalf("expected 2 composed terms, got %d", len(compose.terms))
	}
	if _, ok := compose.terms[0].(*removeHom[int]); !ok {
		t.Fatalf("expected first term to be Remove(3), got %#v", compose.terms[0])
	}
	if _, ok := compose.terms[1].(*insertHom[int]); !ok {
		t.Fatalf("expected second term to be Insert(5), got %#v", compose.terms[1])
	}

	y := f.Make([]int{3, 4})
	if opt.Apply(y) != phi.Apply(y) {
		t.Fatalf("optimize changed semantics: %v != %v", opt.Apply(y).Description(), phi.Apply(y).Description())
	}
}

// TestOptimizeFixedPointChaining checks rule 3's chained-fixpoint rewrite
// on a union-with-identity body.
func TestOptimizeFixedPointChaining(t *testing.T) {
	f := newTestFactory()
	body := f.UnionOf(f.Identity(), f.Insert(1), f.Insert(2))
	phi := f.FixedPointOf(body)
	opt := f.Optimize(phi)

	y := f.Make([]int{0})
	if opt.Apply(y) != phi.Apply(y) {
		t.Fatalf("optimize changed semantics: %v != %v", opt.Apply(y).Description(), phi.Apply(y).Description())
	}
}
