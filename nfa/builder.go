package nfa

import (
	"github.com/regauto/regauto/budget"
	"github.com/regauto/regauto/charset"
)

// Builder constructs an NFA incrementally. States live in a single growable
// slice and are referenced by dense index, so the cyclic graphs produced by
// unbounded quantifiers need no pointer bookkeeping.
//
// Every state allocation is checked against the configured ceiling and
// charged to the work budget, failing with *budget.LimitError when either
// is exhausted. A failed builder must be discarded; Build is never reached
// with a partially valid state set.
type Builder struct {
	states    []State
	maxStates int
	budget    *budget.Budget

	min, max rune
}

// NewBuilder creates a builder for the given code-point window. maxStates
// bounds the number of states (0 means unlimited); b may be nil for
// unbudgeted construction.
func NewBuilder(min, max rune, maxStates int, b *budget.Budget) *Builder {
	return &Builder{maxStates: maxStates, budget: b, min: min, max: max}
}

// AddState allocates a new state and returns its ID.
func (b *Builder) AddState() (StateID, error) {
	if b.maxStates > 0 && len(b.states) >= b.maxStates {
		return InvalidState, &budget.LimitError{
			Op:       "nfa states",
			Limit:    int64(b.maxStates),
			Consumed: int64(len(b.states) + 1),
		}
	}
	if err := b.budget.Consume(1); err != nil {
		return InvalidState, err
	}
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id})
	return id, nil
}

// AddTransition adds a labeled edge from one state to another. Empty sets
// are dropped: an edge no code point can take is no edge at all.
func (b *Builder) AddTransition(from StateID, set charset.Set, to StateID) error {
	if set.IsEmpty() {
		return nil
	}
	if err := b.budget.Consume(1); err != nil {
		return err
	}
	s := &b.states[from]
	s.transitions = append(s.transitions, Transition{Set: set, Target: to})
	return nil
}

// AddEpsilon adds an unlabeled edge from one state to another.
func (b *Builder) AddEpsilon(from, to StateID) error {
	if err := b.budget.Consume(1); err != nil {
		return err
	}
	s := &b.states[from]
	s.epsilons = append(s.epsilons, to)
	return nil
}

// SetAccept marks or unmarks a state as accepting.
func (b *Builder) SetAccept(id StateID, accept bool) {
	b.states[id].accept = accept
}

// NumStates returns the number of states allocated so far.
func (b *Builder) NumStates() int { return len(b.states) }

// Build freezes the builder into an immutable NFA with the given start
// state. The builder must not be used afterwards.
func (b *Builder) Build(start StateID) *NFA {
	n := &NFA{states: b.states, start: start, min: b.min, max: b.max}
	b.budget.UpdateStats(n.NumStates(), n.NumTransitions(), 0)
	b.states = nil
	return n
}
