// Package nfa compiles a parsed pattern into a Thompson NFA over Unicode
// code points. States carry code-point-set transitions and epsilon edges;
// construction is guarded by a state ceiling and an optional work budget so
// adversarial patterns abort instead of exploding.
package nfa

import (
	"fmt"
	"strings"

	"github.com/regauto/regauto/charset"
)

// StateID uniquely identifies an NFA state. IDs are dense: a compiled NFA
// with n states uses IDs 0..n-1.
type StateID uint32

// InvalidState is the uninitialized/absent state ID.
const InvalidState StateID = 0xFFFFFFFF

// Transition is a labeled edge: the automaton moves to Target on any code
// point contained in Set.
type Transition struct {
	Set    charset.Set
	Target StateID
}

// State is a single NFA state. Values are immutable once the NFA is built.
type State struct {
	id          StateID
	transitions []Transition
	epsilons    []StateID
	accept      bool
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Transitions returns the labeled edges leaving this state. The returned
// slice must not be modified.
func (s *State) Transitions() []Transition { return s.transitions }

// Epsilons returns the targets reachable without consuming input. The
// returned slice must not be modified.
func (s *State) Epsilons() []StateID { return s.epsilons }

// Accept reports whether this is an accepting state.
func (s *State) Accept() bool { return s.accept }

// NFA is an immutable nondeterministic finite automaton. Build one with a
// Builder or via Compile.
type NFA struct {
	states []State
	start  StateID

	min, max rune
}

// Start returns the start state ID.
func (n *NFA) Start() StateID { return n.start }

// NumStates returns the number of states.
func (n *NFA) NumStates() int { return len(n.states) }

// State returns the state with the given ID, or nil when out of range.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Bounds returns the code-point window this NFA was compiled for.
func (n *NFA) Bounds() (min, max rune) { return n.min, n.max }

// NumTransitions returns the total labeled-edge count across all states.
func (n *NFA) NumTransitions() int {
	total := 0
	for i := range n.states {
		total += len(n.states[i].transitions)
	}
	return total
}

// String renders the automaton state by state, one line per state. Intended
// for debugging and tests, not serialization.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA(start=%d, states=%d)\n", n.start, len(n.states))
	for i := range n.states {
		s := &n.states[i]
		mark := " "
		if s.accept {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s%4d:", mark, s.id)
		for _, t := range s.transitions {
			fmt.Fprintf(&b, " %s->%d", t.Set, t.Target)
		}
		for _, e := range s.epsilons {
			fmt.Fprintf(&b, " eps->%d", e)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
