package regauto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/regauto/regauto/budget"
	"github.com/regauto/regauto/dfa"
	"github.com/regauto/regauto/nfa"
	"github.com/regauto/regauto/syntax"
)

func TestCompileAndMatch(t *testing.T) {
	tests := []struct {
		pattern string
		yes     []string
		no      []string
	}{
		{"/[0-9]+/", []string{"0", "2024"}, []string{"", "12a"}},
		{"/foo|bar/", []string{"foo", "bar"}, []string{"", "xfoo", "fooo"}},
		{"/a(b|c)*d/", []string{"ad", "abcbd"}, []string{"a", "abc"}},
		{"/ab/i", []string{"ab", "AB"}, []string{"a"}},
		{`/\w+@\w+/`, []string{"user@host"}, []string{"user@", "@host"}},
		{"#x{2,3}#", []string{"xx", "xxx"}, []string{"x", "xxxx"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)
			for _, s := range tt.yes {
				require.True(t, p.Matches(s), "should match %q", s)
			}
			for _, s := range tt.no {
				require.False(t, p.Matches(s), "should not match %q", s)
			}
		})
	}
}

func TestCompileDigitsMinimalDFA(t *testing.T) {
	p, err := Compile("/[0-9]+/")
	require.NoError(t, err)
	require.Equal(t, 2, p.DFA().NumStates())
}

func TestCompileParseErrors(t *testing.T) {
	for _, pattern := range []string{"/a{3,1}/", "/(a/", "/a/q", "/[z-a]/"} {
		_, err := Compile(pattern)
		require.Error(t, err, "pattern %s", pattern)
		var serr *syntax.Error
		require.ErrorAs(t, err, &serr, "pattern %s", pattern)
	}
}

func TestCompileUnsupportedConstructs(t *testing.T) {
	for _, pattern := range []string{`/(a)\1/`, "/(?=a)b/", `/a\bb/`} {
		_, err := Compile(pattern)
		var uerr *nfa.UnsupportedError
		require.ErrorAs(t, err, &uerr, "pattern %s", pattern)
	}
}

func TestCompileStateCeiling(t *testing.T) {
	cfg := DefaultConfig().WithMaxStates(10)
	_, err := CompileWithConfig("/a{1,50}/", cfg)
	var lerr *budget.LimitError
	require.ErrorAs(t, err, &lerr)

	p, err := Compile("/a{1,50}/")
	require.NoError(t, err)
	require.True(t, p.Matches("aaa"))
	require.False(t, p.Matches(""))
}

func TestCompileWorkLimit(t *testing.T) {
	cfg := DefaultConfig().WithWorkLimit(10)
	_, err := CompileWithConfig("/(a|b)+c/", cfg)
	var lerr *budget.LimitError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, "compile", lerr.Op)
}

func TestConfigSettersCopy(t *testing.T) {
	base := DefaultConfig()
	modified := base.WithMaxStates(1).WithWorkLimit(2).
		WithStrategy(dfa.StrategyScan).WithMinimize(false)
	require.Equal(t, 10000, base.MaxNFAStates)
	require.True(t, base.MinimizeDFA)
	require.Equal(t, 1, modified.MaxNFAStates)
	require.Equal(t, 1, modified.MaxDFAStates)
	require.Equal(t, int64(2), modified.WorkLimit)
	require.Equal(t, dfa.StrategyScan, modified.Determinization)
	require.False(t, modified.MinimizeDFA)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.MaxNFAStates = -1
	require.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.MaxCodePoint = 0x110000
	require.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.WorkLimit = -5
	require.Error(t, bad.Validate())
}

func TestMinimizeToggle(t *testing.T) {
	on, err := Compile("/ab|ac|db|dc/")
	require.NoError(t, err)
	off, err := CompileWithConfig("/ab|ac|db|dc/", DefaultConfig().WithMinimize(false))
	require.NoError(t, err)
	require.LessOrEqual(t, on.DFA().NumStates(), off.DFA().NumStates())
	for _, in := range []string{"ab", "dc", "ad", ""} {
		require.Equal(t, on.Matches(in), off.Matches(in))
	}
}

func TestStrategiesAgreeThroughFacade(t *testing.T) {
	scan, err := CompileWithConfig(`/\d+(ms|s|m)/`, DefaultConfig().WithStrategy(dfa.StrategyScan))
	require.NoError(t, err)
	indexed, err := CompileWithConfig(`/\d+(ms|s|m)/`, DefaultConfig().WithStrategy(dfa.StrategyIndexed))
	require.NoError(t, err)
	for _, in := range []string{"10ms", "5s", "3m", "ms", "10"} {
		require.Equal(t, scan.Matches(in), indexed.Matches(in))
	}
}

func TestMustCompile(t *testing.T) {
	require.NotNil(t, MustCompile("/a/"))
	require.Panics(t, func() { MustCompile("/(a/") })
}

func TestPatternAccessors(t *testing.T) {
	p := MustCompile("/(a)(?<x>b)/")
	require.Equal(t, "/(a)(?<x>b)/", p.Source())
	require.NotNil(t, p.AST())
	require.NotNil(t, p.NFA())
	require.NotNil(t, p.DFA())

	groups := p.Groups()
	require.Equal(t, 2, groups.MaxIndex)
	require.Equal(t, []int{2}, groups.Names["x"])

	stats, consumed := p.Stats()
	require.Positive(t, stats.States)
	require.Positive(t, consumed)
}

func TestAsciiWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCodePoint = 0x7F
	p, err := CompileWithConfig("/[a-z]+/", cfg)
	require.NoError(t, err)
	require.True(t, p.Matches("abc"))
	_, max := p.DFA().Bounds()
	require.Equal(t, rune(0x7F), max)
}

func TestPrefilterWiring(t *testing.T) {
	p := MustCompile("/foo|bar|baz/")
	require.NotNil(t, p.prefilter)
	require.False(t, p.Matches("quux"))
	require.True(t, p.Matches("baz"))

	// Inexact patterns compile without a prefilter.
	q := MustCompile("/fo+/")
	require.Nil(t, q.prefilter)
	require.True(t, q.Matches("fooo"))
}
