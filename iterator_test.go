// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import (
	"sort"
	"strconv"
	"testing"
)

func collectSets(n Node[int]) [][]int {
	var out [][]int
	for set := range n.All() {
		sorted := append([]int(nil), set...)
		sort.Ints(sorted)
		out = append(out, sorted)
	}
	return out
}

func TestIteratorYieldsEachMemberOnce(t *testing.T) {
	f := newTestFactory()
	n := f.Make([]int{1, 2}, []int{1}, []int{})
	got := collectSets(n)
	want := map[string]bool{"[]": true, "[1]": true, "[1 2]": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d member sets, got %d: %v", len(want), len(got), got)
	}
	for _, s := range got {
		key := "["
		for i, v := range s {
			if i > 0 {
				key += " "
			}
			key += strconv.Itoa(v)
		}
		key += "]"
		if !want[key] {
			t.Fatalf("unexpected member set %v", s)
		}
	}
}

func TestIteratorIsRestartable(t *testing.T) {
	f := newTestFactory()
	n := f.Make([]int{1, 2}, []int{3})
	first := collectSets(n)
	second := collectSets(n)
	if len(first) != len(second) {
		t.Fatalf("restarted iteration produced a different count: %d vs %d", len(first), len(second))
	}
}

func TestCursorMatchesCount(t *testing.T) {
	f := newTestFactory()
	n := f.Make([]int{1}, []int{2}, []int{1, 2}, []int{})
	c := n.Cursor()
	count := 0
	for {
		if _, ok := c.Next(); !ok {
			break
		}
		count++
	}
	if uint64(count) != n.Count() {
		t.Fatalf("cursor produced %d sets, Count() reports %d", count, n.Count())
	}
}
