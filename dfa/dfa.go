// Package dfa turns an NFA into a deterministic automaton by subset
// construction over an alphabet partition, and minimizes the result with
// Hopcroft partition refinement. Both passes respect a state ceiling and an
// optional work budget.
package dfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/regauto/regauto/charset"
)

// StateID identifies a DFA state.
type StateID uint32

// InvalidState marks the absence of a transition: the automaton rejects.
const InvalidState StateID = 0xFFFFFFFF

// denseLimit is the code-point range covered by each state's direct lookup
// table; transitions above it go through binary search.
const denseLimit = 0x80

// Range is a transition labeled by an inclusive code-point interval.
type Range struct {
	Lo, Hi rune
	Target StateID
}

// State is a single DFA state. Its ranges are sorted, disjoint, and cover
// the automaton's whole code-point window, using InvalidState targets for
// rejecting intervals.
type State struct {
	id     StateID
	accept bool

	// dense is a direct code-point lookup table for the low window
	// [min(0,..), denseLimit); ranges answers everything else.
	dense  []StateID
	ranges []Range
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Accept reports whether the state is accepting.
func (s *State) Accept() bool { return s.accept }

// Ranges returns the state's transition intervals. The slice must not be
// modified.
func (s *State) Ranges() []Range { return s.ranges }

// Next returns the target state for one code point, or InvalidState when
// the automaton rejects it.
func (s *State) Next(r rune) StateID {
	if r >= 0 && int(r) < len(s.dense) {
		return s.dense[r]
	}
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Hi >= r })
	if i < len(s.ranges) && s.ranges[i].Lo <= r && r <= s.ranges[i].Hi {
		return s.ranges[i].Target
	}
	return InvalidState
}

// DFA is an immutable deterministic finite automaton.
type DFA struct {
	states    []State
	start     StateID
	partition []charset.Range

	min, max rune
}

// Start returns the start state ID.
func (d *DFA) Start() StateID { return d.start }

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return len(d.states) }

// State returns the state with the given ID, or nil when out of range.
func (d *DFA) State(id StateID) *State {
	if int(id) >= len(d.states) {
		return nil
	}
	return &d.states[id]
}

// Partition returns the alphabet partition this DFA was built over.
func (d *DFA) Partition() []charset.Range { return d.partition }

// Bounds returns the code-point window of the automaton's alphabet.
func (d *DFA) Bounds() (min, max rune) { return d.min, d.max }

// Accepts reports whether the automaton accepts the whole input string.
func (d *DFA) Accepts(input string) bool {
	cur := d.start
	for _, r := range input {
		cur = d.states[cur].Next(r)
		if cur == InvalidState {
			return false
		}
	}
	return d.states[cur].accept
}

// NumTransitions returns the count of non-rejecting transition intervals.
func (d *DFA) NumTransitions() int {
	total := 0
	for i := range d.states {
		for _, rg := range d.states[i].ranges {
			if rg.Target != InvalidState {
				total++
			}
		}
	}
	return total
}

// String renders the automaton one state per line, for debugging.
func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA(start=%d, states=%d)\n", d.start, len(d.states))
	for i := range d.states {
		s := &d.states[i]
		mark := " "
		if s.accept {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s%4d:", mark, s.id)
		for _, rg := range s.ranges {
			if rg.Target == InvalidState {
				continue
			}
			fmt.Fprintf(&b, " [%U-%U]->%d", rg.Lo, rg.Hi, rg.Target)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// buildDense fills a state's direct lookup table from its sorted ranges.
func buildDense(ranges []Range, max rune) []StateID {
	limit := rune(denseLimit)
	if max+1 < limit {
		limit = max + 1
	}
	if limit <= 0 {
		return nil
	}
	dense := make([]StateID, limit)
	for i := range dense {
		dense[i] = InvalidState
	}
	for _, rg := range ranges {
		if rg.Lo >= limit {
			break
		}
		hi := rg.Hi
		if hi >= limit {
			hi = limit - 1
		}
		for r := rg.Lo; r <= hi; r++ {
			dense[r] = rg.Target
		}
	}
	return dense
}

// mergeRanges collapses adjacent intervals with equal targets. The input
// must be sorted and disjoint.
func mergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	out := ranges[:1]
	for _, rg := range ranges[1:] {
		last := &out[len(out)-1]
		if rg.Target == last.Target && rg.Lo == last.Hi+1 {
			last.Hi = rg.Hi
			continue
		}
		out = append(out, rg)
	}
	return out
}
