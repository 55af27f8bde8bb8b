package dfa

import (
	"github.com/regauto/regauto/budget"
)

// Minimize computes the canonical minimal DFA with Hopcroft partition
// refinement. The input is returned unchanged when it has at most one
// state; otherwise a new DFA is built and the input is left untouched.
// Repeated minimization is idempotent.
//
// The transition function is totalized with a virtual dead state during
// refinement; states indistinguishable from it are dropped from the
// output, their incoming transitions becoming rejecting intervals.
func Minimize(d *DFA, b *budget.Budget) (*DFA, error) {
	n := d.NumStates()
	if n <= 1 {
		return d, nil
	}
	part := d.partition
	k := len(part)

	// Virtual dead state index n totalizes the transition function.
	dead := n
	trans := func(s, pi int) int {
		if s == dead {
			return dead
		}
		t := d.states[s].Next(part[pi].Lo)
		if t == InvalidState {
			return dead
		}
		return int(t)
	}

	var accepting, rest []int
	for s := 0; s < n; s++ {
		if d.states[s].accept {
			accepting = append(accepting, s)
		} else {
			rest = append(rest, s)
		}
	}
	rest = append(rest, dead)

	if len(accepting) == 0 {
		// The language is empty; everything collapses into rejection.
		return emptyDFA(d), nil
	}

	// blocks holds the current partition; blockOf maps states (including
	// the virtual dead state) to their block.
	blocks := [][]int{accepting, rest}
	blockOf := make([]int, n+1)
	for _, s := range accepting {
		blockOf[s] = 0
	}
	for _, s := range rest {
		blockOf[s] = 1
	}

	// Inverse transition index: inv[pi][target] lists source states.
	inv := make([][][]int, k)
	for pi := 0; pi < k; pi++ {
		inv[pi] = make([][]int, n+1)
		for s := 0; s <= n; s++ {
			t := trans(s, pi)
			inv[pi][t] = append(inv[pi][t], s)
		}
	}

	// Seed with the smaller initial block.
	queued := []bool{false, false}
	var worklist []int
	seed := 0
	if len(rest) < len(accepting) {
		seed = 1
	}
	worklist = append(worklist, seed)
	queued[seed] = true

	inPred := make([]bool, n+1)
	for len(worklist) > 0 {
		bi := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		queued[bi] = false
		splitter := append([]int(nil), blocks[bi]...)

		for pi := 0; pi < k; pi++ {
			// Predecessors reaching the splitter block on this symbol.
			var pred []int
			for _, s := range splitter {
				pred = append(pred, inv[pi][s]...)
			}
			if len(pred) == 0 {
				continue
			}
			if err := b.Consume(int64(len(pred))); err != nil {
				return nil, err
			}
			for _, s := range pred {
				inPred[s] = true
			}

			// Find blocks the predecessor set splits.
			touched := make(map[int]bool)
			for _, s := range pred {
				touched[blockOf[s]] = true
			}
			for ci := range touched {
				var in, out []int
				for _, s := range blocks[ci] {
					if inPred[s] {
						in = append(in, s)
					} else {
						out = append(out, s)
					}
				}
				if len(in) == 0 || len(out) == 0 {
					continue
				}
				blocks[ci] = out
				ni := len(blocks)
				blocks = append(blocks, in)
				queued = append(queued, false)
				for _, s := range in {
					blockOf[s] = ni
				}

				// Queued parents re-enqueue the new half; otherwise the
				// smaller half bounds total work.
				enq := ni
				if !queued[ci] && len(out) < len(in) {
					enq = ci
				}
				if !queued[enq] {
					queued[enq] = true
					worklist = append(worklist, enq)
				}
			}

			for _, s := range pred {
				inPred[s] = false
			}
		}
	}

	if blockOf[d.start] == blockOf[dead] {
		// The start state cannot reach an accepting state.
		return emptyDFA(d), nil
	}
	return assemble(d, blocks, blockOf, dead, b)
}

// assemble maps partition blocks to minimized states, dropping the block of
// the virtual dead state.
func assemble(d *DFA, blocks [][]int, blockOf []int, dead int, b *budget.Budget) (*DFA, error) {
	deadBlock := blockOf[dead]

	newID := make([]StateID, len(blocks))
	var order []int
	// The start state's block becomes state 0; the rest follow in block
	// order for a deterministic layout.
	startBlock := blockOf[d.start]
	newID[startBlock] = 0
	order = append(order, startBlock)
	for ci := range blocks {
		if ci == startBlock || ci == deadBlock {
			continue
		}
		newID[ci] = StateID(len(order))
		order = append(order, ci)
	}

	_, max := d.Bounds()
	states := make([]State, 0, len(order))
	for i, ci := range order {
		rep := blocks[ci][0]
		src := &d.states[rep]

		ranges := make([]Range, 0, len(d.partition))
		for _, pr := range d.partition {
			t := src.Next(pr.Lo)
			target := InvalidState
			if t != InvalidState && blockOf[int(t)] != deadBlock {
				target = newID[blockOf[int(t)]]
			}
			ranges = append(ranges, Range{Lo: pr.Lo, Hi: pr.Hi, Target: target})
		}
		if err := b.Consume(int64(len(ranges))); err != nil {
			return nil, err
		}
		merged := mergeRanges(ranges)
		states = append(states, State{
			id:     StateID(i),
			accept: src.accept,
			ranges: merged,
			dense:  buildDense(merged, max),
		})
	}

	out := &DFA{states: states, start: 0, partition: d.partition, min: d.min, max: d.max}
	b.UpdateStats(out.NumStates(), out.NumTransitions(), len(d.partition))
	return out, nil
}

// emptyDFA is the single-state automaton rejecting every string, over the
// same window and partition as the input.
func emptyDFA(d *DFA) *DFA {
	_, max := d.Bounds()
	ranges := make([]Range, 0, len(d.partition))
	for _, pr := range d.partition {
		ranges = append(ranges, Range{Lo: pr.Lo, Hi: pr.Hi, Target: InvalidState})
	}
	merged := mergeRanges(ranges)
	states := []State{{id: 0, ranges: merged, dense: buildDense(merged, max)}}
	return &DFA{states: states, start: 0, partition: d.partition, min: d.min, max: d.max}
}
