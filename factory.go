// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import "sort"

// Factory mints and canonicalizes SFDD nodes over a key domain K. All nodes
// produced by one Factory belong to the same logical island and must not be
// mixed with nodes from another Factory.
type Factory[K any] struct {
	less    func(a, b K) bool
	hashKey func(a K) uint64

	zero *node[K] // the rejecting terminal, denotes {}
	one  *node[K] // the accepting terminal, denotes {∅}

	table *weakTable[node[K]]
	cfg   *configs

	unionCache   *pairCache[K]
	interCache   *pairCache[K]
	symdiffCache *pairCache[K]
	subCache     *pairCache[K]
	naryCache    map[uint64][]naryEntry[K]

	homs homTables[K]

	produced uint64 // total number of internal nodes ever minted
}

// New creates a Factory for key type K. less must be a strict total order;
// value equality is derived as !less(a,b) && !less(b,a). hashKey must agree
// with less-derived equality: equal keys must hash equal.
func New[K any](less func(a, b K) bool, hashKey func(a K) uint64, opts ...Option) *Factory[K] {
	if less == nil || hashKey == nil {
		fatalf("New requires non-nil less and hashKey functions")
	}
	cfg := makeconfigs()
	for _, opt := range opts {
		opt(cfg)
	}
	f := &Factory[K]{
		less:    less,
		hashKey: hashKey,
		cfg:     cfg,
	}
	f.zero = &node[K]{f: f, count: 0}
	f.one = &node[K]{f: f, count: 1}
	f.table = newWeakTable[node[K]](cfg.tablesize, cfg.cacheratio, cfg.maxtablesize)
	f.unionCache = newPairCache[K](cfg.cachesize)
	f.interCache = newPairCache[K](cfg.cachesize)
	f.symdiffCache = newPairCache[K](cfg.cachesize)
	f.subCache = newPairCache[K](cfg.cachesize)
	f.naryCache = make(map[uint64][]naryEntry[K])
	f.homs.init(f, cfg)
	return f
}

// Zero returns the rejecting terminal, the empty family {}.
func (f *Factory[K]) Zero() Node[K] { return f.zero }

// One returns the accepting terminal, the family {∅} containing only the
// empty set.
func (f *Factory[K]) One() Node[K] { return f.one }

// equalKey derives value equality from the caller-supplied strict order.
func (f *Factory[K]) equalKey(a, b K) bool {
	return !f.less(a, b) && !f.less(b, a)
}

// MakeNode is the only way to mint an internal node. If take is Zero the
// call collapses to skip. Otherwise it enforces strict key ordering along
// take/skip and returns the canonical survivor for (key, take, skip) from
// the weak unique table.
func (f *Factory[K]) MakeNode(key K, take, skip Node[K]) Node[K] {
	if take == f.zero {
		return skip
	}
	assertOrderingf[K](take.IsTerminal() || f.less(key, take.key),
		"ordering violation: key does not precede take.key in MakeNode")
	assertOrderingf[K](skip.IsTerminal() || f.less(key, skip.key),
		"ordering violation: key does not precede skip.key in MakeNode")

	count := take.count + skip.count
	h := mix(triple(f.hashKey(key), ptrHash(take), ptrHash(skip)), count)
	candidate := &node[K]{f: f, key: key, take: take, skip: skip, count: count, hash: h}
	canonical, inserted := f.table.insertUnique(h, candidate, func(o *node[K]) bool {
		return o.take == take && o.skip == skip && f.equalKey(o.key, key)
	})
	if inserted {
		f.produced++
	}
	return canonical
}

// Make builds the family ⋃ᵢ ⟦sequences[i]⟧ from a sequence of finite sets.
// An empty sub-sequence contributes the singleton family {∅} (One); each
// non-empty sub-sequence is built bottom-up over its keys sorted ascending,
// so its smallest key ends up at the root of its chain.
func (f *Factory[K]) Make(sequences ...[]K) Node[K] {
	result := f.zero
	for _, seq := range sequences {
		result = f.Union(result, f.makeChain(seq))
	}
	return result
}

// makeChain builds the singleton family {seq} as a straight-line chain of
// nodes, each with a Zero skip branch.
func (f *Factory[K]) makeChain(seq []K) Node[K] {
	if len(seq) == 0 {
		return f.one
	}
	sorted := append([]K(nil), seq...)
	sort.Slice(sorted, func(i, j int) bool { return f.less(sorted[i], sorted[j]) })

	n := f.one
	for i := len(sorted) - 1; i >= 0; i-- {
		if i < len(sorted)-1 && f.equalKey(sorted[i], sorted[i+1]) {
			continue // duplicate key in the input set, keep a single occurrence
		}
		n = f.MakeNode(sorted[i], n, f.zero)
	}
	return n
}

// Stats reports the live size of the node unique table and the hit/miss
// counters of the unique table and the four set-algebra caches.
func (f *Factory[K]) Stats() string {
	return statsString(f)
}
