// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import "weak"

// weakTable is a hash bucket array of weakly-held entries. It is generic so
// that the same implementation backs both the node unique table
// (Factory.table) and the per-kind homomorphism unique tables (homTables).
//
// An entry does not keep its value alive: we store a weak.Pointer, so once
// nothing else in the program references a candidate, the ordinary garbage
// collector is free to reclaim it and the entry simply stops resolving on
// the next lookup. This piggybacks on the host garbage collector for
// external references, using the standard library's weak package (see
// DESIGN.md).
type weakTable[T any] struct {
	buckets    [][]weakEntry[T]
	live       int // overestimate count: incremented on insert, never eagerly decremented
	loadFactor float64
	maxSize    int // 0: unbounded

	hit  int
	miss int
}

type weakEntry[T any] struct {
	hash uint64
	ptr  weak.Pointer[T]
}

func newWeakTable[T any](size int, loadFactor float64, maxSize int) *weakTable[T] {
	if size < _MINTABLESIZE {
		size = _MINTABLESIZE
	}
	if loadFactor <= 0 {
		loadFactor = _LOADFACTOR
	}
	return &weakTable[T]{
		buckets:    make([][]weakEntry[T], primeGTE(size)),
		loadFactor: loadFactor,
		maxSize:    maxSize,
	}
}

func (t *weakTable[T]) bucketIndex(hash uint64) int {
	return int(hash % uint64(len(t.buckets)))
}

// lookup scans the bucket for hash, skipping dead (collected) slots, and
// returns the first live candidate for which eq holds.
func (t *weakTable[T]) lookup(hash uint64, eq func(*T) bool) *T {
	bucket := t.buckets[t.bucketIndex(hash)]
	for _, e := range bucket {
		if e.hash != hash {
			continue
		}
		if v := e.ptr.Value(); v != nil && eq(v) {
			return v
		}
	}
	return nil
}

// insertUnique returns the canonical representative for candidate: an
// existing live entry equal to it under eq, or candidate itself after
// recording it.
func (t *weakTable[T]) insertUnique(hash uint64, candidate *T, eq func(*T) bool) (canonical *T, inserted bool) {
	if existing := t.lookup(hash, eq); existing != nil {
		t.hit++
		return existing, false
	}
	t.miss++
	t.maybeGrow()
	idx := t.bucketIndex(hash)
	t.buckets[idx] = append(t.buckets[idx], weakEntry[T]{hash: hash, ptr: weak.Make(candidate)})
	t.live++
	return candidate, true
}

func (t *weakTable[T]) maybeGrow() {
	if float64(t.live) < t.loadFactor*float64(len(t.buckets)) {
		return
	}
	newSize := len(t.buckets) * 2
	if t.maxSize > 0 {
		if len(t.buckets) >= t.maxSize {
			return
		}
		if newSize > t.maxSize {
			newSize = t.maxSize
		}
	}
	t.rehash(primeGTE(newSize))
}

// rehash discards dead slots and redistributes the live ones over a bucket
// array of the given size.
func (t *weakTable[T]) rehash(size int) {
	old := t.buckets
	t.buckets = make([][]weakEntry[T], size)
	t.live = 0
	for _, bucket := range old {
		for _, e := range bucket {
			if e.ptr.Value() == nil {
				continue
			}
			idx := t.bucketIndex(e.hash)
			t.buckets[idx] = append(t.buckets[idx], e)
			t.live++
		}
	}
}

// size returns the number of live entries actually present, by scanning
// every bucket. It is O(capacity) and meant for statistics/debugging only.
func (t *weakTable[T]) size() int {
	n := 0
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			if e.ptr.Value() != nil {
				n++
			}
		}
	}
	return n
}
