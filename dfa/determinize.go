package dfa

import (
	"encoding/binary"
	"sort"

	"github.com/regauto/regauto/budget"
	"github.com/regauto/regauto/charset"
	"github.com/regauto/regauto/internal/sparse"
	"github.com/regauto/regauto/nfa"
)

// mover computes, for one alphabet-partition range, the set of NFA states
// reachable from a subset. The two implementations are behaviorally
// identical and selected by Config.Strategy.
type mover interface {
	move(subset []nfa.StateID, pi int, rep rune, dst *sparse.Set)
}

// scanMover answers each move by scanning every transition of every subset
// member and testing the range representative for membership.
type scanMover struct {
	n *nfa.NFA
}

func (m *scanMover) move(subset []nfa.StateID, _ int, rep rune, dst *sparse.Set) {
	for _, id := range subset {
		for _, tr := range m.n.State(id).Transitions() {
			if tr.Set.Contains(rep) {
				dst.Insert(uint32(tr.Target))
			}
		}
	}
}

// moveEntry maps one alphabet-partition index to one transition target.
type moveEntry struct {
	pi     int32
	target nfa.StateID
}

// indexedMover precomputes, per NFA state, a partition-index→target table
// sorted for binary search, trading setup cost for cheaper moves in the
// subset-construction loop.
type indexedMover struct {
	entries [][]moveEntry
}

func newIndexedMover(n *nfa.NFA, part []charset.Range) *indexedMover {
	m := &indexedMover{entries: make([][]moveEntry, n.NumStates())}
	for id := 0; id < n.NumStates(); id++ {
		var entries []moveEntry
		for _, tr := range n.State(nfa.StateID(id)).Transitions() {
			for _, rg := range tr.Set.Ranges() {
				// Set-range boundaries are partition boundaries, so the
				// covered partition indexes form a contiguous run.
				pi := sort.Search(len(part), func(i int) bool { return part[i].Lo >= rg.Lo })
				for pi < len(part) && part[pi].Hi <= rg.Hi {
					entries = append(entries, moveEntry{pi: int32(pi), target: tr.Target})
					pi++
				}
			}
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].pi < entries[j].pi })
		m.entries[id] = entries
	}
	return m
}

func (m *indexedMover) move(subset []nfa.StateID, pi int, _ rune, dst *sparse.Set) {
	for _, id := range subset {
		entries := m.entries[id]
		i := sort.Search(len(entries), func(i int) bool { return entries[i].pi >= int32(pi) })
		for ; i < len(entries) && entries[i].pi == int32(pi); i++ {
			dst.Insert(uint32(entries[i].target))
		}
	}
}

// subsetKey canonically encodes a sorted NFA-state subset for
// deduplication, four bytes per ID.
func subsetKey(ids []nfa.StateID) string {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(id))
	}
	return string(buf)
}

// epsilonClosure expands the set in place across epsilon edges and returns
// the sorted member IDs.
func epsilonClosure(n *nfa.NFA, set *sparse.Set) []nfa.StateID {
	for i := 0; i < set.Len(); i++ {
		id := nfa.StateID(set.Values()[i])
		for _, e := range n.State(id).Epsilons() {
			set.Insert(uint32(e))
		}
	}
	ids := make([]nfa.StateID, set.Len())
	for i, v := range set.Values() {
		ids[i] = nfa.StateID(v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Determinize builds a DFA from an NFA by breadth-first subset construction
// over the NFA's alphabet partition. It fails with *budget.LimitError when
// the discovered state count would exceed cfg.MaxStates, when more than
// cfg.MaxTransitions (state, range) pairs have been processed, or when the
// budget runs out. Every state's ranges cover the whole code-point window,
// with InvalidState marking rejecting intervals.
func Determinize(n *nfa.NFA, cfg Config) (*DFA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	part := Partition(n)
	min, max := n.Bounds()

	var m mover
	switch cfg.Strategy {
	case StrategyIndexed:
		m = newIndexedMover(n, part)
	default:
		m = &scanMover{n: n}
	}

	scratch := sparse.New(n.NumStates())
	scratch.Insert(uint32(n.Start()))
	subsets := [][]nfa.StateID{epsilonClosure(n, scratch)}
	ids := map[string]StateID{subsetKey(subsets[0]): 0}

	var states []State
	processed := 0
	for qi := 0; qi < len(subsets); qi++ {
		subset := subsets[qi]
		ranges := make([]Range, 0, len(part))
		for pi, pr := range part {
			processed++
			if cfg.MaxTransitions > 0 && processed > cfg.MaxTransitions {
				return nil, &budget.LimitError{
					Op:       "dfa transitions",
					Limit:    int64(cfg.MaxTransitions),
					Consumed: int64(processed),
				}
			}
			if err := cfg.Budget.Consume(1); err != nil {
				return nil, err
			}

			scratch.Clear()
			m.move(subset, pi, pr.Lo, scratch)
			if scratch.IsEmpty() {
				ranges = append(ranges, Range{Lo: pr.Lo, Hi: pr.Hi, Target: InvalidState})
				continue
			}
			target := epsilonClosure(n, scratch)
			key := subsetKey(target)
			id, ok := ids[key]
			if !ok {
				if cfg.MaxStates > 0 && len(subsets) >= cfg.MaxStates {
					return nil, &budget.LimitError{
						Op:       "dfa states",
						Limit:    int64(cfg.MaxStates),
						Consumed: int64(len(subsets) + 1),
					}
				}
				id = StateID(len(subsets))
				ids[key] = id
				subsets = append(subsets, target)
			}
			ranges = append(ranges, Range{Lo: pr.Lo, Hi: pr.Hi, Target: id})
		}

		merged := mergeRanges(ranges)
		states = append(states, State{
			id:     StateID(qi),
			accept: anyAccept(n, subset),
			ranges: merged,
			dense:  buildDense(merged, max),
		})
	}

	cfg.Budget.UpdateStats(len(states), processed, len(part))
	return &DFA{states: states, start: 0, partition: part, min: min, max: max}, nil
}

func anyAccept(n *nfa.NFA, subset []nfa.StateID) bool {
	for _, id := range subset {
		if n.State(id).Accept() {
			return true
		}
	}
	return false
}
