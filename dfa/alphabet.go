package dfa

import (
	"sort"

	"github.com/regauto/regauto/charset"
	"github.com/regauto/regauto/nfa"
)

// Partition computes the alphabet partition of an NFA: the coarsest set of
// disjoint code-point ranges covering the automaton's window such that any
// two code points inside one range are indistinguishable to every NFA
// transition.
//
// Every transition set contributes its range starts and one-past-ends as
// boundary points; consecutive boundary points pair into partition ranges.
func Partition(n *nfa.NFA) []charset.Range {
	min, max := n.Bounds()

	points := make(map[rune]struct{})
	points[min] = struct{}{}
	points[max+1] = struct{}{}
	for id := 0; id < n.NumStates(); id++ {
		for _, tr := range n.State(nfa.StateID(id)).Transitions() {
			for _, rg := range tr.Set.Ranges() {
				points[rg.Lo] = struct{}{}
				points[rg.Hi+1] = struct{}{}
			}
		}
	}

	sorted := make([]rune, 0, len(points))
	for p := range points {
		if p >= min && p <= max+1 {
			sorted = append(sorted, p)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ranges := make([]charset.Range, 0, len(sorted)-1)
	for i := 0; i+1 < len(sorted); i++ {
		ranges = append(ranges, charset.Range{Lo: sorted[i], Hi: sorted[i+1] - 1})
	}
	return ranges
}
