package dfa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/regauto/regauto/budget"
	"github.com/regauto/regauto/charset"
	"github.com/regauto/regauto/nfa"
	"github.com/regauto/regauto/syntax"
)

func compileNFA(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	re, err := syntax.Parse(pattern)
	require.NoError(t, err)
	n, err := nfa.Compile(re, nfa.DefaultConfig())
	require.NoError(t, err)
	return n
}

func determinize(t *testing.T, pattern string, strategy Strategy) *DFA {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Strategy = strategy
	d, err := Determinize(compileNFA(t, pattern), cfg)
	require.NoError(t, err)
	return d
}

func TestDeterminizeMembership(t *testing.T) {
	tests := []struct {
		pattern string
		yes     []string
		no      []string
	}{
		{"/abc/", []string{"abc"}, []string{"", "ab", "abcd"}},
		{"/a|bc/", []string{"a", "bc"}, []string{"b", "abc"}},
		{"/a*b/", []string{"b", "aab"}, []string{"", "a", "ba"}},
		{"/(ab)+/", []string{"ab", "abab"}, []string{"", "a", "aba"}},
		{"/[0-9]+/", []string{"7", "2024"}, []string{"", "7a"}},
		{"/[^x]*/", []string{"", "abc"}, []string{"x", "axb"}},
		{`/\w{2,3}/`, []string{"ab", "a_9"}, []string{"a", "abcd"}},
		{"/a.c/s", []string{"abc", "a\nc"}, []string{"ac"}},
		{`/[α-ω]+/`, []string{"αβγ", "ω"}, []string{"", "a", "αz"}},
	}
	for _, strategy := range []Strategy{StrategyScan, StrategyIndexed} {
		for _, tt := range tests {
			t.Run(strategy.String()+"/"+tt.pattern, func(t *testing.T) {
				d := determinize(t, tt.pattern, strategy)
				for _, s := range tt.yes {
					require.True(t, d.Accepts(s), "should accept %q", s)
				}
				for _, s := range tt.no {
					require.False(t, d.Accepts(s), "should reject %q", s)
				}
			})
		}
	}
}

func TestStrategiesProduceIdenticalAutomata(t *testing.T) {
	patterns := []string{"/a(b|c)*d/", `/\d+(\.\d+)?/`, "/(x|y|z){2,4}/"}
	inputs := []string{"", "ad", "abcd", "3.14", "3.", "xy", "xyzx", "xyzxy"}
	for _, pattern := range patterns {
		scan := determinize(t, pattern, StrategyScan)
		indexed := determinize(t, pattern, StrategyIndexed)
		require.Equal(t, scan.NumStates(), indexed.NumStates(), "pattern %s", pattern)
		for _, in := range inputs {
			require.Equal(t, scan.Accepts(in), indexed.Accepts(in),
				"pattern %s input %q", pattern, in)
		}
	}
}

// Every state's transition intervals must cover the code-point window
// exactly once: no gap, no overlap.
func TestDeterminizeTotality(t *testing.T) {
	for _, pattern := range []string{"/a/", "/[b-y]+|z/", `/\p{L}\d*/`} {
		d := determinize(t, pattern, StrategyIndexed)
		min, max := d.Bounds()
		for i := 0; i < d.NumStates(); i++ {
			expect := min
			for _, rg := range d.State(StateID(i)).Ranges() {
				require.Equal(t, expect, rg.Lo, "gap or overlap in state %d of %s", i, pattern)
				expect = rg.Hi + 1
			}
			require.Equal(t, max+1, expect, "coverage short in state %d of %s", i, pattern)
		}
	}
}

func TestPartitionRanges(t *testing.T) {
	n := compileNFA(t, "/[a-c]x/")
	part := Partition(n)

	min, max := n.Bounds()
	expect := min
	for _, rg := range part {
		require.Equal(t, expect, rg.Lo)
		expect = rg.Hi + 1
	}
	require.Equal(t, max+1, expect)
	require.Equal(t, []charset.Range{
		{Lo: 0, Hi: 'a' - 1},
		{Lo: 'a', Hi: 'c'},
		{Lo: 'c' + 1, Hi: 'x' - 1},
		{Lo: 'x', Hi: 'x'},
		{Lo: 'x' + 1, Hi: charset.MaxCodePoint},
	}, part)
}

func TestDeterminizeStateCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStates = 3
	_, err := Determinize(compileNFA(t, "/(a|b)*a(a|b)(a|b)(a|b)/"), cfg)
	var lerr *budget.LimitError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, "dfa states", lerr.Op)
}

func TestDeterminizeTransitionCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTransitions = 2
	_, err := Determinize(compileNFA(t, "/abc/"), cfg)
	var lerr *budget.LimitError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, "dfa transitions", lerr.Op)
}

func TestDeterminizeBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = budget.New("determinize", 4)
	_, err := Determinize(compileNFA(t, "/ab*c/"), cfg)
	var lerr *budget.LimitError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, "determinize", lerr.Op)
}

func TestDeterminizeBudgetStats(t *testing.T) {
	b := budget.New("determinize", 0)
	cfg := DefaultConfig()
	cfg.Budget = b
	d, err := Determinize(compileNFA(t, "/ab/"), cfg)
	require.NoError(t, err)
	require.Equal(t, d.NumStates(), b.Stats().States)
	require.Equal(t, len(d.Partition()), b.Stats().AlphabetSize)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.Error(t, Config{MaxStates: -1}.Validate())
	require.Error(t, Config{MaxTransitions: -1}.Validate())
	require.Error(t, Config{Strategy: Strategy(9)}.Validate())
}

func minimize(t *testing.T, d *DFA) *DFA {
	t.Helper()
	m, err := Minimize(d, nil)
	require.NoError(t, err)
	return m
}

func TestMinimizeDigits(t *testing.T) {
	// [0-9]+ minimizes to two states: a non-accepting start and an
	// accepting state looping on digits.
	m := minimize(t, determinize(t, "/[0-9]+/", StrategyIndexed))
	require.Equal(t, 2, m.NumStates())

	start := m.State(m.Start())
	require.False(t, start.Accept())
	acc := m.State(start.Next('5'))
	require.True(t, acc.Accept())
	require.Equal(t, acc.ID(), acc.Next('0'))
	require.Equal(t, InvalidState, acc.Next('x'))
	require.True(t, m.Accepts("0123456789"))
	require.False(t, m.Accepts(""))
}

func TestMinimizePreservesLanguage(t *testing.T) {
	patterns := []string{"/a(b|c)*/", `/\d{1,3}(\.\d{1,3}){3}/`, "/(0|1(01*0)*1)*/"}
	inputs := []string{
		"", "a", "ab", "acbc", "1.2.3.4", "10.0.0.255", "1.2.3",
		"0", "11", "110", "1001", "101",
	}
	for _, pattern := range patterns {
		d := determinize(t, pattern, StrategyIndexed)
		m := minimize(t, d)
		require.LessOrEqual(t, m.NumStates(), d.NumStates())
		for _, in := range inputs {
			require.Equal(t, d.Accepts(in), m.Accepts(in),
				"pattern %s input %q", pattern, in)
		}
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	for _, pattern := range []string{"/a{2,5}/", "/(ab|ac)*/", `/x[0-9a-f]+/`} {
		m1 := minimize(t, determinize(t, pattern, StrategyIndexed))
		m2 := minimize(t, m1)
		require.Equal(t, m1.NumStates(), m2.NumStates(), "pattern %s", pattern)
		for _, in := range []string{"", "a", "aa", "ab", "abac", "x1f", "xg"} {
			require.Equal(t, m1.Accepts(in), m2.Accepts(in))
		}
	}
}

func TestMinimizeMergesEquivalentStates(t *testing.T) {
	// ab|ac splits after 'a' during subset construction but the two
	// followers accept the same residual language.
	d := determinize(t, "/ab|ac|db|dc/", StrategyScan)
	m := minimize(t, d)
	require.Less(t, m.NumStates(), d.NumStates())
}

func TestMinimizeEmptyLanguage(t *testing.T) {
	m := minimize(t, determinize(t, "/a(*FAIL)/", StrategyIndexed))
	require.Equal(t, 1, m.NumStates())
	require.False(t, m.Accepts(""))
	require.False(t, m.Accepts("a"))
}

func TestMinimizeSingleStateUnchanged(t *testing.T) {
	d := determinize(t, "/x*/", StrategyIndexed)
	m := minimize(t, d)
	if d.NumStates() <= 1 {
		require.Same(t, d, m)
	}
	require.True(t, m.Accepts("xxx"))
}

func TestMinimizeBudget(t *testing.T) {
	d := determinize(t, "/(a|b)c(d|e)/", StrategyIndexed)
	_, err := Minimize(d, budget.New("minimize", 1))
	var lerr *budget.LimitError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, "minimize", lerr.Op)
}

func TestMinimizeTotality(t *testing.T) {
	m := minimize(t, determinize(t, "/[ac]x|b/", StrategyIndexed))
	min, max := m.Bounds()
	for i := 0; i < m.NumStates(); i++ {
		expect := min
		for _, rg := range m.State(StateID(i)).Ranges() {
			require.Equal(t, expect, rg.Lo)
			expect = rg.Hi + 1
		}
		require.Equal(t, max+1, expect)
	}
}

func TestDenseAndRangeLookupAgree(t *testing.T) {
	d := determinize(t, `/[a-p]+[β-δ]?/`, StrategyIndexed)
	for i := 0; i < d.NumStates(); i++ {
		s := d.State(StateID(i))
		for _, r := range []rune{0, 'a', 'p', 'q', 'β', 'δ', 'ε', charset.MaxCodePoint} {
			var viaRanges StateID = InvalidState
			for _, rg := range s.Ranges() {
				if rg.Lo <= r && r <= rg.Hi {
					viaRanges = rg.Target
					break
				}
			}
			require.Equal(t, viaRanges, s.Next(r), "state %d rune %U", i, r)
		}
	}
}
