// Package budget provides a cooperative work-limiting counter shared by the
// automaton construction stages.
//
// A Budget is threaded through NFA building, determinization, and
// minimization. Each stage calls Consume at its well-defined checkpoints
// (state allocations, transitions processed, predecessor-set computations)
// and aborts with a *LimitError once the configured ceiling is crossed.
// A nil *Budget disables all bounding, for trusted callers.
package budget

import "fmt"

// Budget counts work performed by one named operation against an optional
// hard ceiling. It is not safe for concurrent use; each compilation owns its
// own budget.
type Budget struct {
	op       string
	limit    int64
	consumed int64
	stats    Stats
}

// Stats is a progress snapshot recorded by the consuming stage for
// amortized-cost estimation.
type Stats struct {
	States       int
	Transitions  int
	AlphabetSize int
}

// New creates a budget for the named operation. A limit of zero or below
// means unlimited: work is counted but never aborts.
func New(op string, limit int64) *Budget {
	return &Budget{op: op, limit: limit}
}

// Consume adds n units of work. It returns a *LimitError naming the
// operation once the ceiling is crossed. Calling Consume on a nil budget is
// a no-op.
func (b *Budget) Consume(n int64) error {
	if b == nil {
		return nil
	}
	b.consumed += n
	if b.limit > 0 && b.consumed > b.limit {
		return &LimitError{Op: b.op, Limit: b.limit, Consumed: b.consumed}
	}
	return nil
}

// UpdateStats records a progress snapshot. No-op on a nil budget.
func (b *Budget) UpdateStats(states, transitions, alphabetSize int) {
	if b == nil {
		return
	}
	b.stats = Stats{States: states, Transitions: transitions, AlphabetSize: alphabetSize}
}

// Op returns the operation name, or "" for a nil budget.
func (b *Budget) Op() string {
	if b == nil {
		return ""
	}
	return b.op
}

// Consumed returns the total work counted so far.
func (b *Budget) Consumed() int64 {
	if b == nil {
		return 0
	}
	return b.consumed
}

// Stats returns the last recorded progress snapshot.
func (b *Budget) Stats() Stats {
	if b == nil {
		return Stats{}
	}
	return b.stats
}

// LimitError reports that a construction stage exceeded its configured
// ceiling. It is always recoverable by the caller: reject the pattern, raise
// the ceiling, or fall back to a non-automaton strategy. No partially built
// automaton is ever observable on this path.
type LimitError struct {
	// Op names the stage that ran out of budget, e.g. "nfa" or "determinize".
	Op string

	// Limit is the configured ceiling.
	Limit int64

	// Consumed is the work counted when the ceiling was crossed.
	Consumed int64
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: work budget exceeded (limit %d, consumed %d)", e.Op, e.Limit, e.Consumed)
}

// Is matches any other *LimitError, so callers can test the error class with
// errors.Is without knowing the stage or ceiling.
func (e *LimitError) Is(target error) bool {
	_, ok := target.(*LimitError)
	return ok
}
