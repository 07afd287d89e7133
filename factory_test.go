// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import (
	"strings"
	"testing"
)

func TestMakeNodeCollapsesZeroTake(t *testing.T) {
	f := newTestFactory()
	if got := f.MakeNode(1, f.Zero(), f.Zero()); got != f.Zero() {
		t.Fatalf("MakeNode with take=Zero: expected Zero, got %v", got)
	}
}

func TestMakeNodeRejectsOrderingViolation(t *testing.T) {
	f := newTestFactory()
	child := f.MakeNode(5, f.One(), f.Zero())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on an ordering violation")
		}
	}()
	f.MakeNode(9, child, f.Zero()) // 9 does not precede child.key (5)
}

func TestTerminalAccessorsPanic(t *testing.T) {
	f := newTestFactory()
	for _, call := range []func(){
		func() { f.Zero().Key() },
		func() { f.Zero().Take() },
		func() { f.One().Skip() },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected a panic calling an internal-only accessor on a terminal")
				}
			}()
			call()
		}()
	}
}

func TestFactoryOptions(t *testing.T) {
	f := New(func(a, b int) bool { return a < b }, func(a int) uint64 { return uint64(a) },
		WithTableSize(200), WithCacheSize(500), WithLoadFactor(0.5), WithMaxTableSize(1000))
	n := f.Make([]int{1, 2, 3})
	if n.Count() != 1 {
		t.Fatalf("expected count 1, got %d", n.Count())
	}
}

func TestStatsReportsCounters(t *testing.T) {
	f := newTestFactory()
	f.Make([]int{1, 2}, []int{1})
	s := f.Stats()
	if !strings.Contains(s, "Produced:") || !strings.Contains(s, "Live nodes:") {
		t.Fatalf("Stats output missing expected fields: %s", s)
	}
}
