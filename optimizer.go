// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

// Optimize applies a single-pass rewrite optimize(φ) → φ' with ⟦φ'⟧ = ⟦φ⟧.
// It is pure: inputs are never mutated, only new homomorphism instances
// (uniqued as usual) are produced. Inductive instances are opaque and pass
// through unchanged; the optimizer treats them as a black box.
func (f *Factory[K]) Optimize(phi Homomorphism[K]) Homomorphism[K] {
	switch h := phi.(type) {
	case *identityHom[K]:
		return h
	case *constHom[K]:
		return h
	case *unionHom[K]:
		return f.optimizeNary(h.terms, f.UnionOf)
	case *interHom[K]:
		return f.optimizeNary(h.terms, f.IntersectionOf)
	case *composeHom[K]:
		return f.optimizeCompose(h.terms)
	case *fixedPointHom[K]:
		return f.optimizeFix(h.body)
	case *insertHom[K]:
		return f.optimizeRun(h.keys, func(ks []K) Homomorphism[K] { return f.Insert(ks...) })
	case *removeHom[K]:
		return f.optimizeRun(h.keys, func(ks []K) Homomorphism[K] { return f.Remove(ks...) })
	case *filterHom[K]:
		return f.optimizeRun(h.keys, func(ks []K) Homomorphism[K] { return f.Filter(ks...) })
	case *diveHom[K]:
		inner := f.Optimize(h.phi)
		// Dive(k, Dive(k, φ)) computes the same as Dive(k, φ); keep the
		// single wrapper so that re-optimizing an optimized tree is stable.
		if d, ok := inner.(*diveHom[K]); ok && f.equalKey(d.key, h.key) {
			return d
		}
		return f.Dive(h.key, inner)
	case *inductiveHom[K]:
		return h
	default:
		fatalf("Optimize: unrecognized homomorphism kind")
		return nil
	}
}

// optimizeNary implements rule 1: optimize each child, then wrap the
// rebuilt combinator in Dive(minKey, _) when a minKey is defined.
func (f *Factory[K]) optimizeNary(terms []Homomorphism[K], rebuild func(...Homomorphism[K]) Homomorphism[K]) Homomorphism[K] {
	optimized := make([]Homomorphism[K], len(terms))
	for i, t := range terms {
		optimized[i] = f.Optimize(t)
	}
	combined := rebuild(optimized...)
	if k, ok := combined.minKey(f); ok {
		return f.Dive(k, combined)
	}
	return combined
}

// optimizeCompose implements rule 2: optimize each child, flatten nested
// Compositions, then wrap maximal contiguous Insert/Remove runs of length
// >= 2 in a Dive sorted by minKey.
func (f *Factory[K]) optimizeCompose(terms []Homomorphism[K]) Homomorphism[K] {
	optimized := make([]Homomorphism[K], 0, len(terms))
	for _, t := range terms {
		o := f.Optimize(t)
		if nested, ok := o.(*composeHom[K]); ok {
			optimized = append(optimized, nested.terms...)
		} else {
			optimized = append(optimized, o)
		}
	}

	result := make([]Homomorphism[K], 0, len(optimized))
	i := 0
	for i < len(optimized) {
		if !isInsertOrRemove[K](optimized[i]) {
			result = append(result, optimized[i])
			i++
			continue
		}
		j := i + 1
		for j < len(optimized) && isInsertOrRemove[K](optimized[j]) {
			j++
		}
		run := optimized[i:j]
		if len(run) >= 2 {
			result = append(result, f.diveSortedRun(run))
		} else {
			result = append(result, run...)
		}
		i = j
	}
	if len(result) == 1 {
		return result[0]
	}
	return f.ComposeOf(result...)
}

// isInsertOrRemove reports whether h is an Insert or a Remove, the two kinds
// eligible to join a contiguous run for Dive-wrapping (rule 2 mixes Insert
// and Remove freely within one run; insertionSortByMinKey's stable sort
// keeps a run's relative order intact for any elements that tie on minKey).
func isInsertOrRemove[K any](h Homomorphism[K]) bool {
	switch h.(type) {
	case *insertHom[K], *removeHom[K]:
		return true
	default:
		return false
	}
}

// diveSortedRun sorts a run of Insert/Remove homomorphisms by
// minKey ascending and wraps the sorted composition in a Dive targeting the
// smallest minKey of the run.
func (f *Factory[K]) diveSortedRun(run []Homomorphism[K]) Homomorphism[K] {
	sorted := append([]Homomorphism[K](nil), run...)
	insertionSortByMinKey(f, sorted)
	minK, ok := sorted[0].minKey(f)
	if !ok {
		fatalf("diveSortedRun: run member has no minKey")
	}
	return f.Dive(minK, f.ComposeOf(sorted...))
}

func insertionSortByMinKey[K any](f *Factory[K], hs []Homomorphism[K]) {
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0; j-- {
			kj, _ := hs[j].minKey(f)
			kjPrev, _ := hs[j-1].minKey(f)
			if f.less(kj, kjPrev) {
				hs[j], hs[j-1] = hs[j-1], hs[j]
			} else {
				break
			}
		}
	}
}

// optimizeFix implements rule 3: optimize the body; if it is a Union
// containing Identity, replace fix(⋃ᵢ φᵢ ∪ id) by chained independent
// fixpoints composed left to right.
func (f *Factory[K]) optimizeFix(body Homomorphism[K]) Homomorphism[K] {
	optBody := f.Optimize(body)
	union, ok := unwrapDiveUnion[K](optBody)
	if !ok {
		return f.FixedPointOf(optBody)
	}
	hasIdentity := false
	rest := make([]Homomorphism[K], 0, len(union.terms))
	for _, t := range union.terms {
		if _, isID := t.(*identityHom[K]); isID {
			hasIdentity = true
			continue
		}
		rest = append(rest, t)
	}
	if !hasIdentity || len(rest) == 0 {
		return f.FixedPointOf(optBody)
	}
	chained := make([]Homomorphism[K], len(rest))
	for i, phi := range rest {
		chained[i] = f.FixedPointOf(f.UnionOf(phi, f.Identity()))
	}
	if len(chained) == 1 {
		return chained[0]
	}
	return f.ComposeOf(chained...)
}

// unwrapDiveUnion recognizes both a bare Union and the Dive(minKey, Union)
// shape that rule 1 may have already produced.
func unwrapDiveUnion[K any](h Homomorphism[K]) (*unionHom[K], bool) {
	switch v := h.(type) {
	case *unionHom[K]:
		return v, true
	case *diveHom[K]:
		if u, ok := v.phi.(*unionHom[K]); ok {
			return u, true
		}
	}
	return nil, false
}

// optimizeRun implements rule 4: Insert(K)/Remove(K)/Filter(K) with |K| >= 2
// becomes Dive(min K, Composition(op([kᵢ]) ascending)).
func (f *Factory[K]) optimizeRun(keys []K, single func([]K) Homomorphism[K]) Homomorphism[K] {
	if len(keys) < 2 {
		return single(keys)
	}
	terms := make([]Homomorphism[K], len(keys))
	for i, k := range keys {
		terms[i] = single([]K{k})
	}
	return f.Dive(keys[0], f.ComposeOf(terms...))
}
