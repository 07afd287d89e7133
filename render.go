// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/kr/pretty"
)

// Description returns a one-line textual rendering of the family denoted by
// n, e.g. "{{1,2},{1}}". Terminals render as the empty family or the
// singleton-empty-set family.
func (n Node[K]) Description() string {
	if n.IsZero() {
		return "{}"
	}
	sets := make([]string, 0, n.count)
	for set := range n.All() {
		parts := make([]string, len(set))
		for i, k := range set {
			parts[i] = fmt.Sprint(k)
		}
		sets = append(sets, "{"+strings.Join(parts, ",")+"}")
	}
	sort.Strings(sets)
	return "{" + strings.Join(sets, ",") + "}"
}

// DebugString returns a multi-line, tabular rendering of n's DAG, one row
// per reachable internal node (the terminals get no row of their own and
// appear only as ⊥ and ⊤ in the take and skip columns), using kr/pretty to
// render the key column so arbitrary K values stay readable. This never
// touches disk: the engine has no persistence surface.
func (n Node[K]) DebugString() string {
	var buf strings.Builder
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "node\tkey\ttake\tskip\tcount")

	seen := make(map[Node[K]]int)
	order := make([]Node[K], 0)
	var mark func(m Node[K])
	mark = func(m Node[K]) {
		if _, ok := seen[m]; ok {
			return
		}
		seen[m] = len(order)
		order = append(order, m)
		if !m.IsTerminal() {
			mark(m.take)
			mark(m.skip)
		}
	}
	mark(n)

	label := func(m Node[K]) string {
		switch {
		case m.IsZero():
			return "⊥"
		case m.IsOne():
			return "⊤"
		default:
			return fmt.Sprintf("n%d", seen[m])
		}
	}
	for _, m := range order {
		if m.IsTerminal() {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			label(m), pretty.Sprint(m.key), label(m.take), label(m.skip), m.count)
	}
	tw.Flush()
	return buf.String()
}

// statsString reports the live size and hit/miss counters of the node
// unique table and the four set-algebra caches.
func statsString[K any](f *Factory[K]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produced:      %d\n", f.produced)
	fmt.Fprintf(&b, "Live nodes:    %d\n", f.table.size())
	fmt.Fprintf(&b, "Table hit/miss: %d/%d\n", f.table.hit, f.table.miss)
	fmt.Fprintf(&b, "Union cache:    %d/%d\n", f.unionCache.hit, f.unionCache.miss)
	fmt.Fprintf(&b, "Inter cache:    %d/%d\n", f.interCache.hit, f.interCache.miss)
	fmt.Fprintf(&b, "SymDiff cache:  %d/%d\n", f.symdiffCache.hit, f.symdiffCache.miss)
	fmt.Fprintf(&b, "Sub cache:      %d/%d", f.subCache.hit, f.subCache.miss)
	return b.String()
}
