// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import "sort"

// This file holds the SFDD-specific homomorphisms: Insert, Remove, Filter,
// Dive, Inductive. Insert, Remove, and Filter sort their key list ascending
// once at construction time rather than re-deriving it on every apply.

func sortedDedupKeys[K any](f *Factory[K], keys []K) []K {
	sorted := append([]K(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return f.less(sorted[i], sorted[j]) })
	out := sorted[:0]
	for i, k := range sorted {
		if i > 0 && f.equalKey(out[len(out)-1], k) {
			continue
		}
		out = append(out, k)
	}
	return out
}

func keysHash[K any](f *Factory[K], keys []K) uint64 {
	acc := seedHash()
	for _, k := range keys {
		acc = mix(acc, f.hashKey(k))
	}
	return mix(acc, uint64(len(keys)))
}

func keysEqual[K any](f *Factory[K], a, b []K) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !f.equalKey(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ****************************************************************************
// Insert(K): ensures every member set contains all of K.

type insertHom[K any] struct {
	homBase[K]
	keys []K
}

// Insert returns the homomorphism ensuring every member set of the family
// contains every key in keys.
func (f *Factory[K]) Insert(keys ...K) Homomorphism[K] {
	sorted := sortedDedupKeys(f, keys)
	return f.homs.uniqueInsert(&insertHom[K]{homBase: newHomBase(f), keys: sorted})
}

func (h *homTables[K]) uniqueInsert(cand *insertHom[K]) *insertHom[K] {
	hh := mix(keysHash(cand.f, cand.keys), 0x1257)
	res, _ := h.insertTable.insertUnique(hh, cand, func(o *insertHom[K]) bool {
		return keysEqual(cand.f, o.keys, cand.keys)
	})
	return res
}

func (h *insertHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }

func (h *insertHom[K]) rawApply(y Node[K]) Node[K] {
	f := h.f
	if y == f.zero || len(h.keys) == 0 {
		return y
	}
	k0 := h.keys[0]
	rest := h.keys[1:]
	if y.IsOne() {
		return f.MakeNode(k0, f.Insert(rest...).Apply(f.one), f.zero)
	}
	switch {
	case f.less(y.key, k0):
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	case f.equalKey(y.key, k0):
		merged := f.Union(y.take, y.skip)
		return f.MakeNode(y.key, f.Insert(rest...).Apply(merged), f.zero)
	default: // y.key > k0
		return f.MakeNode(k0, f.Insert(rest...).Apply(y), f.zero)
	}
}

func (h *insertHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*insertHom[K])
	return ok && keysEqual(h.f, other.keys, h.keys)
}
func (h *insertHom[K]) structHash() uint64 { return mix(keysHash(h.f, h.keys), 0x1257) }
func (h *insertHom[K]) minKey(f *Factory[K]) (K, bool) {
	if len(h.keys) == 0 {
		var z K
		return z, false
	}
	return h.keys[0], true
}

// ****************************************************************************
// Remove(K): ensures no member set contains any key in K.

type removeHom[K any] struct {
	homBase[K]
	keys []K
}

// Remove returns the homomorphism dropping every key in keys from every
// member set of the family.
func (f *Factory[K]) Remove(keys ...K) Homomorphism[K] {
	sorted := sortedDedupKeys(f, keys)
	return f.homs.uniqueRemove(&removeHom[K]{homBase: newHomBase(f), keys: sorted})
}

func (h *homTables[K]) uniqueRemove(cand *removeHom[K]) *removeHom[K] {
	hh := mix(keysHash(cand.f, cand.keys), 0x2e40e)
	res, _ := h.removeTable.insertUnique(hh, cand, func(o *removeHom[K]) bool {
		return keysEqual(cand.f, o.keys, cand.keys)
	})
	return res
}

func (h *removeHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }

func (h *removeHom[K]) rawApply(y Node[K]) Node[K] {
	f := h.f
	if y.IsTerminal() || len(h.keys) == 0 {
		return y
	}
	k0 := h.keys[0]
	rest := h.keys[1:]
	switch {
	case f.less(y.key, k0):
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	case f.equalKey(y.key, k0):
		return f.Remove(rest...).Apply(f.Union(y.skip, y.take))
	default: // y.key > k0
		return f.Remove(rest...).Apply(y)
	}
}

func (h *removeHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*removeHom[K])
	return ok && keysEqual(h.f, other.keys, h.keys)
}
func (h *removeHom[K]) structHash() uint64 { return mix(keysHash(h.f, h.keys), 0x2e40e) }
func (h *removeHom[K]) minKey(f *Factory[K]) (K, bool) {
	if len(h.keys) == 0 {
		var z K
		return z, false
	}
	return h.keys[0], true
}

// ****************************************************************************
// Filter(K): retains only member sets containing every key in K.

type filterHom[K any] struct {
	homBase[K]
	keys []K
}

// Filter returns the homomorphism keeping only member sets that contain
// every key in keys.
func (f *Factory[K]) Filter(keys ...K) Homomorphism[K] {
	sorted := sortedDedupKeys(f, keys)
	return f.homs.uniqueFilter(&filterHom[K]{homBase: newHomBase(f), keys: sorted})
}

func (h *homTables[K]) uniqueFilter(cand *filterHom[K]) *filterHom[K] {
	hh := mix(keysHash(cand.f, cand.keys), 0xf117e2)
	res, _ := h.filterTable.insertUnique(hh, cand, func(o *filterHom[K]) bool {
		return keysEqual(cand.f, o.keys, cand.keys)
	})
	return res
}

func (h *filterHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }

func (h *filterHom[K]) rawApply(y Node[K]) Node[K] {
	f := h.f
	if len(h.keys) == 0 {
		return y
	}
	if y.IsTerminal() {
		return f.zero
	}
	k0 := h.keys[0]
	rest := h.keys[1:]
	switch {
	case f.less(y.key, k0):
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	case f.equalKey(y.key, k0):
		return f.MakeNode(y.key, f.Filter(rest...).Apply(y.take), f.zero)
	default: // y.key > k0
		return f.zero
	}
}

func (h *filterHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*filterHom[K])
	return ok && keysEqual(h.f, other.keys, h.keys)
}
func (h *filterHom[K]) structHash() uint64 { return mix(keysHash(h.f, h.keys), 0xf117e2) }
func (h *filterHom[K]) minKey(f *Factory[K]) (K, bool) {
	if len(h.keys) == 0 {
		var z K
		return z, false
	}
	return h.keys[0], true
}

// ****************************************************************************
// Dive(k, φ): applies φ only at the level whose root key equals k.

type diveHom[K any] struct {
	homBase[K]
	key K
	phi Homomorphism[K]
}

// Dive returns the homomorphism that leaves every level above key untouched,
// recursing past it unmodified, and hands the node off to phi as soon as the
// walk reaches key or passes it without finding it (including at a
// terminal). Whether that handoff is itself a no-op is up to phi: Remove and
// Filter are no-ops on an absent key, Insert is not, since it must still
// build structure through ⊤.
func (f *Factory[K]) Dive(key K, phi Homomorphism[K]) Homomorphism[K] {
	return f.homs.uniqueDive(&diveHom[K]{homBase: newHomBase(f), key: key, phi: phi})
}

func (h *homTables[K]) uniqueDive(cand *diveHom[K]) *diveHom[K] {
	hh := mix(mix(cand.f.hashKey(cand.key), cand.phi.structHash()), 0xd19e)
	res, _ := h.diveTable.insertUnique(hh, cand, func(o *diveHom[K]) bool {
		return cand.f.equalKey(o.key, cand.key) && o.phi.structEqual(cand.phi)
	})
	return res
}

func (h *diveHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }

func (h *diveHom[K]) rawApply(y Node[K]) Node[K] {
	f := h.f
	if !y.IsTerminal() && f.less(y.key, h.key) {
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	}
	return h.phi.Apply(y)
}

func (h *diveHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*diveHom[K])
	return ok && h.f.equalKey(other.key, h.key) && other.phi.structEqual(h.phi)
}
func (h *diveHom[K]) structHash() uint64 {
	return mix(mix(h.f.hashKey(h.key), h.phi.structHash()), 0xd19e)
}
func (h *diveHom[K]) minKey(f *Factory[K]) (K, bool) { return h.phi.minKey(f) }

// ****************************************************************************
// Inductive: a user-supplied recursion scheme, opaque to the optimizer.

// InductiveFn computes, for an internal node y under an Inductive
// homomorphism self, the pair of homomorphisms to apply to y's take and skip
// branches respectively.
type InductiveFn[K any] func(self Homomorphism[K], y Node[K]) (take Homomorphism[K], skip Homomorphism[K])

type inductiveHom[K any] struct {
	homBase[K]
	substitute Node[K] // nil: use One at the accepting terminal
	fn         InductiveFn[K]
	debugID    string
}

// Inductive returns a homomorphism driven by fn: at an internal node y, fn
// is invoked to obtain (φ_take, φ_skip), and the result is
// make_node(y.key, φ_take.Apply(y.take), φ_skip.Apply(y.skip)). At ⊤ it
// returns substitute if non-nil, else ⊤; at ⊥ it returns ⊥.
//
// Because fn is an opaque Go closure, two Inductive instances are equal only
// if they are the same object; Optimize never rewrites through an
// Inductive.
func (f *Factory[K]) Inductive(substitute Node[K], fn InductiveFn[K]) Homomorphism[K] {
	if fn == nil {
		fatalf(errNilFn.Error())
	}
	return &inductiveHom[K]{homBase: newHomBase(f), substitute: substitute, fn: fn, debugID: nextDebugID()}
}

func (h *inductiveHom[K]) Apply(y Node[K]) Node[K] { return applyCached[K](h, &h.homBase, y) }

func (h *inductiveHom[K]) rawApply(y Node[K]) Node[K] {
	f := h.f
	if y == f.zero {
		return f.zero
	}
	if y.IsOne() {
		if h.substitute != nil {
			return h.substitute
		}
		return f.one
	}
	take, skip := h.fn(h, y)
	return f.MakeNode(y.key, take.Apply(y.take), skip.Apply(y.skip))
}

func (h *inductiveHom[K]) structEqual(o Homomorphism[K]) bool {
	other, ok := o.(*inductiveHom[K])
	return ok && other == h
}
func (h *inductiveHom[K]) structHash() uint64 { return ptrHash(h) }
func (h *inductiveHom[K]) minKey(f *Factory[K]) (K, bool) {
	var z K
	return z, false
}
