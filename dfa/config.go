package dfa

import (
	"fmt"

	"github.com/regauto/regauto/budget"
)

// Strategy selects the determinization algorithm. Both produce identical
// automata; they differ only in how the per-range move set is computed.
type Strategy uint8

const (
	// StrategyScan recomputes each move set by scanning every NFA
	// transition of the current subset.
	StrategyScan Strategy = iota

	// StrategyIndexed precomputes a per-NFA-state table mapping alphabet
	// partition indexes to targets, answered by binary search.
	StrategyIndexed
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyScan:
		return "scan"
	case StrategyIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("Strategy(%d)", s)
	}
}

// MinAlgorithm selects the minimization algorithm.
type MinAlgorithm uint8

// MinimizeHopcroft is worklist-based partition refinement, the only
// implemented algorithm.
const MinimizeHopcroft MinAlgorithm = iota

// String returns the algorithm name.
func (a MinAlgorithm) String() string {
	if a == MinimizeHopcroft {
		return "hopcroft"
	}
	return fmt.Sprintf("MinAlgorithm(%d)", a)
}

// Config controls determinization.
type Config struct {
	// MaxStates aborts construction once the discovered DFA state count
	// would exceed it. 0 means unlimited.
	MaxStates int

	// MaxTransitions aborts once more than this many (state, range) pairs
	// have been processed. 0 means unlimited.
	MaxTransitions int

	// Strategy selects the move-set computation.
	Strategy Strategy

	// Budget, when non-nil, is charged for closures and transitions.
	Budget *budget.Budget
}

// DefaultConfig returns the default determinization configuration.
func DefaultConfig() Config {
	return Config{MaxStates: 10000, Strategy: StrategyIndexed}
}

// Validate checks the configuration for nonsense values.
func (c Config) Validate() error {
	if c.MaxStates < 0 {
		return fmt.Errorf("dfa: MaxStates must not be negative, got %d", c.MaxStates)
	}
	if c.MaxTransitions < 0 {
		return fmt.Errorf("dfa: MaxTransitions must not be negative, got %d", c.MaxTransitions)
	}
	if c.Strategy > StrategyIndexed {
		return fmt.Errorf("dfa: unknown strategy %d", c.Strategy)
	}
	return nil
}
