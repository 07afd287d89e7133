// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import "github.com/google/uuid"

// Homomorphism is a structure-respecting function on nodes. Every concrete
// kind — the combinators in this file and the SFDD-specific ones in
// homomorphisms.go — implements this small capability set: a tagged variant
// with a virtual application hook, expressed as a Go interface.
type Homomorphism[K any] interface {
	// Apply computes φ(y), consulting and populating the per-instance
	// application cache.
	Apply(y Node[K]) Node[K]

	// structEqual reports whether h is the same homomorphism as other under
	// each kind's own uniquing rule (sorted key list, or (key, φ), or
	// identity for opaque callables).
	structEqual(other Homomorphism[K]) bool

	// structHash returns a hash consistent with structEqual.
	structHash() uint64

	// minKey returns the smallest key φ can possibly act on; ok is false
	// when undefined.
	minKey(f *Factory[K]) (key K, ok bool)

	rawApply(y Node[K]) Node[K]
}

// homBase factors the per-instance application cache shared by every
// homomorphism kind, so each concrete kind only needs to implement
// rawApply.
type homBase[K any] struct {
	f     *Factory[K]
	cache map[Node[K]]Node[K]
}

func newHomBase[K any](f *Factory[K]) homBase[K] {
	return homBase[K]{f: f, cache: make(map[Node[K]]Node[K])}
}

// applyCached runs raw through the per-instance cache: application must be
// memoized per-instance, since the same homomorphism can be applied to the
// same node many times across a larger composition.
func applyCached[K any](h Homomorphism[K], base *homBase[K], y Node[K]) Node[K] {
	if res, ok := base.cache[y]; ok {
		return res
	}
	res := h.rawApply(y)
	base.cache[y] = res
	return res
}

// homTables groups the per-kind weak unique tables that jointly realize a
// second unique table for homomorphisms, parallel to the node unique table.
// Go generics cannot parameterize one weakTable instance over several
// distinct concrete homomorphism struct types, so uniquing is split one
// table per kind; see DESIGN.md for the rationale.
type homTables[K any] struct {
	f *Factory[K]

	insertTable *weakTable[insertHom[K]]
	removeTable *weakTable[removeHom[K]]
	filterTable *weakTable[filterHom[K]]
	diveTable   *weakTable[diveHom[K]]

	unionTable   *weakTable[unionHom[K]]
	interTable   *weakTable[interHom[K]]
	composeTable *weakTable[composeHom[K]]
	fixTable     *weakTable[fixedPointHom[K]]
	constTable   *weakTable[constHom[K]]

	identity *identityHom[K]
}

func (h *homTables[K]) init(f *Factory[K], cfg *configs) {
	h.f = f
	h.insertTable = newWeakTable[insertHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.removeTable = newWeakTable[removeHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.filterTable = newWeakTable[filterHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.diveTable = newWeakTable[diveHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.unionTable = newWeakTable[unionHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.interTable = newWeakTable[interHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.composeTable = newWeakTable[composeHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.fixTable = newWeakTable[fixedPointHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.constTable = newWeakTable[constHom[K]](cfg.homsize, cfg.cacheratio, cfg.maxtablesize)
	h.identity = &identityHom[K]{homBase: newHomBase(f)}
}

// ****************************************************************************
// Identity, Constant.

type identityHom[K any] struct{ homBase[K] }

// Identity returns the homomorphism φ(y) = y.
func (f *Factory[K]) Identity() Homomorphism[K] { return f.homs.identity }

func (h *identityHom[K]) Apply(y Node[K]) Node[K] { return y }
func (h *identityHom[K]) rawApply(y Node[K]) Node[K] { return y }
func (h *identityHom[K]) structEqual(other Homomorphism[K]) bool {
	_, ok := other.(*identityHom[K])
	return ok
}
func (h *identityHom[K]) structHash() uint64             { return mix(seedHash(), 0x1dee7) }
func (h *identityHom[K]) minKey(f *Factory[K]) (K, bool) { var z K; return z, false }

type constHom[K any] struct {
	homBase[K]
	c Node[K]
}

// Constant returns the homomorphism φ(y) = c for every y.
func (f *Factory[K]) Constant(c Node[K]) Homomorphism[K] {
	h := f.homs.uniqueConst(&constHom[K]{homBase: newHomBase(f), c: c})
	return h
}

func (h *homTables[K]) uniqueConst(cand *constHom[K]) *constHom[K] {
	hh := mix(seedHash(), ptrHash(cand.c))
	res, _ := h.constTable.insertUnique(hh, cand, func(o *constHom[K]) bool { return o.c == cand.c })
	return res
}

func (h *constHom[K]) Apply(y Node[K]) Node[K]    { return applyCached[K](h, &h.homBase, y) }
func (h *constHom[K]) rawApply(Node[K]) Node[K]   { return h.c }
func (h *constHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*constHom[K])
	return ok && other.c == h.c
}
func (h *constHom[K]) structHash() uint64 { return mix(seedHash(), ptrHash(h.c)) }
func (h *constHom[K]) minKey(f *Factory[K]) (K, bool) {
	if h.c.IsTerminal() {
		var z K
		return z, false
	}
	return h.c.Key(), true
}

// ****************************************************************************
// Union, Intersection: n-ary combinators over homomorphisms.

type unionHom[K any] struct {
	homBase[K]
	terms []Homomorphism[K]
}

// UnionOf returns the homomorphism φ(y) = ⋃ᵢ termsᵢ(y).
func (f *Factory[K]) UnionOf(terms ...Homomorphism[K]) Homomorphism[K] {
	if len(terms) == 0 {
		fatalf(errEmptyOperands.Error())
	}
	return f.homs.uniqueUnion(&unionHom[K]{homBase: newHomBase(f), terms: terms})
}

func (h *homTables[K]) uniqueUnion(cand *unionHom[K]) *unionHom[K] {
	hh := homSliceHash(cand.terms)
	res, _ := h.unionTable.insertUnique(hh, cand, func(o *unionHom[K]) bool {
		return homSliceEqual[K](o.terms, cand.terms)
	})
	return res
}

func (h *unionHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }
func (h *unionHom[K]) rawApply(y Node[K]) Node[K] {
	results := make([]Node[K], len(h.terms))
	for i, t := range h.terms {
		results[i] = t.Apply(y)
	}
	return h.f.UnionAll(results...)
}
func (h *unionHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*unionHom[K])
	return ok && homSliceEqual[K](other.terms, h.terms)
}
func (h *unionHom[K]) structHash() uint64 { return homSliceHash(h.terms) }
func (h *unionHom[K]) minKey(f *Factory[K]) (K, bool) {
	return minKeyOfChildren(f, h.terms)
}

type interHom[K any] struct {
	homBase[K]
	terms []Homomorphism[K]
}

// IntersectionOf returns the homomorphism φ(y) = ⋂ᵢ termsᵢ(y).
func (f *Factory[K]) IntersectionOf(terms ...Homomorphism[K]) Homomorphism[K] {
	if len(terms) == 0 {
		fatalf(errEmptyOperands.Error())
	}
	return f.homs.uniqueInter(&interHom[K]{homBase: newHomBase(f), terms: terms})
}

func (h *homTables[K]) uniqueInter(cand *interHom[K]) *interHom[K] {
	hh := mix(homSliceHash(cand.terms), 0xca7)
	res, _ := h.interTable.insertUnique(hh, cand, func(o *interHom[K]) bool {
		return homSliceEqual[K](o.terms, cand.terms)
	})
	return res
}

func (h *interHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }
func (h *interHom[K]) rawApply(y Node[K]) Node[K] {
	acc := h.terms[0].Apply(y)
	for _, t := range h.terms[1:] {
		acc = h.f.Intersection(acc, t.Apply(y))
	}
	return acc
}
func (h *interHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*interHom[K])
	return ok && homSliceEqual[K](other.terms, h.terms)
}
func (h *interHom[K]) structHash() uint64 { return mix(homSliceHash(h.terms), 0xca7) }
func (h *interHom[K]) minKey(f *Factory[K]) (K, bool) {
	return minKeyOfChildren(f, h.terms)
}

// ****************************************************************************
// Composition.

type composeHom[K any] struct {
	homBase[K]
	terms []Homomorphism[K] // applied left to right: terms[n-1](...terms[0](y)...)
}

// ComposeOf returns the homomorphism applying terms left to right: for
// y, it computes termsₙ(…(terms₁(y))…).
func (f *Factory[K]) ComposeOf(terms ...Homomorphism[K]) Homomorphism[K] {
	if len(terms) == 0 {
		fatalf(errEmptyOperands.Error())
	}
	return f.homs.uniqueCompose(&composeHom[K]{homBase: newHomBase(f), terms: terms})
}

func (h *homTables[K]) uniqueCompose(cand *composeHom[K]) *composeHom[K] {
	hh := mix(homSliceHashOrdered(cand.terms), 0xc0517e)
	res, _ := h.composeTable.insertUnique(hh, cand, func(o *composeHom[K]) bool {
		return homSliceEqualOrdered[K](o.terms, cand.terms)
	})
	return res
}

func (h *composeHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }
func (h *composeHom[K]) rawApply(y Node[K]) Node[K] {
	acc := y
	for _, t := range h.terms {
		acc = t.Apply(acc)
	}
	return acc
}
func (h *composeHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*composeHom[K])
	return ok && homSliceEqualOrdered[K](other.terms, h.terms)
}
func (h *composeHom[K]) structHash() uint64 { return mix(homSliceHashOrdered(h.terms), 0xc0517e) }
func (h *composeHom[K]) minKey(f *Factory[K]) (K, bool) {
	return minKeyOfChildren(f, h.terms)
}

// ****************************************************************************
// FixedPoint.

type fixedPointHom[K any] struct {
	homBase[K]
	body Homomorphism[K]
}

// FixedPointOf returns the homomorphism that iterates body until node
// identity stabilizes. body must be monotone; non-termination on a
// non-monotone body is caller error.
func (f *Factory[K]) FixedPointOf(body Homomorphism[K]) Homomorphism[K] {
	return f.homs.uniqueFix(&fixedPointHom[K]{homBase: newHomBase(f), body: body})
}

func (h *homTables[K]) uniqueFix(cand *fixedPointHom[K]) *fixedPointHom[K] {
	hh := mix(cand.body.structHash(), 0xf19ed)
	res, _ := h.fixTable.insertUnique(hh, cand, func(o *fixedPointHom[K]) bool {
		return o.body.structEqual(cand.body)
	})
	return res
}

func (h *fixedPointHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }
func (h *fixedPointHom[K]) rawApply(y Node[K]) Node[K] {
	cur := y
	for {
		next := h.body.Apply(cur)
		if next == cur {
			return cur
		}
		cur = next
	}
}
func (h *fixedPointHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*fixedPointHom[K])
	return ok && other.body.structEqual(h.body)
}
func (h *fixedPointHom[K]) structHash() uint64 { return mix(h.body.structHash(), 0xf19ed) }
func (h *fixedPointHom[K]) minKey(f *Factory[K]) (K, bool) {
	return h.body.minKey(f)
}

// ****************************************************************************
// helpers shared by the n-ary and ordered combinators above.

func homSliceHash[K any](hs []Homomorphism[K]) uint64 {
	raw := make([]uint64, len(hs))
	for i, h := range hs {
		raw[i] = h.structHash()
	}
	return unorderedSet(raw)
}

func homSliceEqual[K any](a, b []Homomorphism[K]) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ha := range a {
		found := false
		for j, hb := range b {
			if !used[j] && ha.structEqual(hb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func homSliceHashOrdered[K any](hs []Homomorphism[K]) uint64 {
	acc := seedHash()
	for _, h := range hs {
		acc = mix(acc, h.structHash())
	}
	return acc
}

func homSliceEqualOrdered[K any](a, b []Homomorphism[K]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].structEqual(b[i]) {
			return false
		}
	}
	return true
}

func minKeyOfChildren[K any](f *Factory[K], children []Homomorphism[K]) (K, bool) {
	var best K
	found := false
	for _, c := range children {
		k, ok := c.minKey(f)
		if !ok {
			var z K
			return z, false
		}
		if !found || f.less(k, best) {
			best = k
			found = true
		}
	}
	return best, found
}

// nextDebugID mints a unique identifier for opaque Inductive instances
// (homomorphisms.go), stored in their debugID field. It plays no part in
// equality or hashing, which are identity-only for Inductive; no method of
// this package prints it.
func nextDebugID() string {
	return uuid.NewString()
}
