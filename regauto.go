// Package regauto compiles PCRE-dialect patterns into finite automata for
// language-membership testing and automaton analysis.
//
// The pipeline is lexer → parser → AST → Thompson NFA → subset-construction
// DFA → optional Hopcroft minimization, every stage bounded by explicit
// state ceilings and a shared work budget so hostile patterns abort instead
// of exhausting memory. Constructs that regular languages cannot express
// (backreferences, lookarounds, subroutine calls) parse fine but fail NFA
// compilation with a typed error.
//
//	p, err := regauto.Compile(`/[0-9]+/`)
//	if err != nil {
//		...
//	}
//	p.Matches("2024") // true
package regauto

import (
	"fmt"

	"github.com/regauto/regauto/budget"
	"github.com/regauto/regauto/charset"
	"github.com/regauto/regauto/dfa"
	"github.com/regauto/regauto/literal"
	"github.com/regauto/regauto/nfa"
	"github.com/regauto/regauto/syntax"
)

// Config bounds and tunes pattern compilation. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// MaxNFAStates caps Thompson construction, the defense against
	// quantifier unrolling like a{1,100000}. 0 means unlimited.
	MaxNFAStates int

	// MaxDFAStates caps subset construction. 0 means unlimited.
	MaxDFAStates int

	// MaxTransitions caps the (state, alphabet-range) pairs processed
	// during determinization. 0 means unlimited.
	MaxTransitions int

	// WorkLimit is the shared budget ceiling across all stages, counting
	// state allocations, edges, and refinement steps. 0 means unlimited.
	WorkLimit int64

	// MinimizeDFA runs Hopcroft minimization after determinization.
	MinimizeDFA bool

	// Determinization selects the subset-construction strategy.
	Determinization dfa.Strategy

	// Minimization selects the minimization algorithm.
	Minimization dfa.MinAlgorithm

	// MaxCodePoint is the upper bound of the automaton alphabet. Lowering
	// it (e.g. to 0x7F) shrinks alphabet partitions for ASCII-only use.
	MaxCodePoint rune
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		MaxNFAStates:    10000,
		MaxDFAStates:    10000,
		MaxTransitions:  1000000,
		MinimizeDFA:     true,
		Determinization: dfa.StrategyIndexed,
		Minimization:    dfa.MinimizeHopcroft,
		MaxCodePoint:    charset.MaxCodePoint,
	}
}

// Validate reports nonsense configuration values.
func (c Config) Validate() error {
	if c.MaxNFAStates < 0 || c.MaxDFAStates < 0 || c.MaxTransitions < 0 {
		return fmt.Errorf("regauto: state and transition ceilings must not be negative")
	}
	if c.WorkLimit < 0 {
		return fmt.Errorf("regauto: WorkLimit must not be negative, got %d", c.WorkLimit)
	}
	if c.MaxCodePoint < charset.MinCodePoint || c.MaxCodePoint > charset.MaxCodePoint {
		return fmt.Errorf("regauto: MaxCodePoint %#x outside the Unicode range", c.MaxCodePoint)
	}
	if c.Determinization > dfa.StrategyIndexed {
		return fmt.Errorf("regauto: unknown determinization strategy %d", c.Determinization)
	}
	if c.Minimization != dfa.MinimizeHopcroft {
		return fmt.Errorf("regauto: unknown minimization algorithm %d", c.Minimization)
	}
	return nil
}

// WithMaxStates returns a copy with both NFA and DFA state ceilings set.
func (c Config) WithMaxStates(n int) Config {
	c.MaxNFAStates = n
	c.MaxDFAStates = n
	return c
}

// WithWorkLimit returns a copy with the shared budget ceiling set.
func (c Config) WithWorkLimit(n int64) Config {
	c.WorkLimit = n
	return c
}

// WithStrategy returns a copy with the determinization strategy set.
func (c Config) WithStrategy(s dfa.Strategy) Config {
	c.Determinization = s
	return c
}

// WithMinimize returns a copy with minimization toggled.
func (c Config) WithMinimize(on bool) Config {
	c.MinimizeDFA = on
	return c
}

// Pattern is a compiled pattern. It is immutable and safe for concurrent
// use.
type Pattern struct {
	source    string
	ast       *syntax.Regex
	nfa       *nfa.NFA
	dfa       *dfa.DFA
	prefilter *literal.Matcher
	stats     budget.Stats
	consumed  int64
}

// Compile compiles a delimited pattern (e.g. "/[a-z]+/i") with the default
// configuration.
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is Compile that panics on error, for package-level pattern
// variables.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("regauto: MustCompile(%q): %v", pattern, err))
	}
	return p
}

// CompileWithConfig runs the whole pipeline under the given configuration.
// Errors are *syntax.Error for malformed patterns, *nfa.UnsupportedError
// for non-regular constructs, and *budget.LimitError when a ceiling or the
// work budget is exceeded; no partially built pattern is ever returned.
func CompileWithConfig(pattern string, cfg Config) (*Pattern, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ast, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}

	b := budget.New("compile", cfg.WorkLimit)
	n, err := nfa.Compile(ast, nfa.Config{
		MaxStates: cfg.MaxNFAStates,
		MinRune:   charset.MinCodePoint,
		MaxRune:   cfg.MaxCodePoint,
		Budget:    b,
	})
	if err != nil {
		return nil, err
	}

	d, err := dfa.Determinize(n, dfa.Config{
		MaxStates:      cfg.MaxDFAStates,
		MaxTransitions: cfg.MaxTransitions,
		Strategy:       cfg.Determinization,
		Budget:         b,
	})
	if err != nil {
		return nil, err
	}
	if cfg.MinimizeDFA {
		d, err = dfa.Minimize(d, b)
		if err != nil {
			return nil, err
		}
	}

	p := &Pattern{
		source:   pattern,
		ast:      ast,
		nfa:      n,
		dfa:      d,
		stats:    b.Stats(),
		consumed: b.Consumed(),
	}
	if set := literal.Extract(ast); set.Exact {
		if m, err := literal.NewMatcher(set); err == nil {
			p.prefilter = m
		}
	}
	return p, nil
}

// Matches reports whether the whole input is in the pattern's language.
func (p *Pattern) Matches(input string) bool {
	if p.prefilter != nil && !p.prefilter.MightMatch(input) {
		return false
	}
	return p.dfa.Accepts(input)
}

// Source returns the pattern string the Pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// AST returns the parsed pattern tree.
func (p *Pattern) AST() *syntax.Regex { return p.ast }

// NFA returns the Thompson automaton.
func (p *Pattern) NFA() *nfa.NFA { return p.nfa }

// DFA returns the deterministic automaton, minimized when the
// configuration asked for it.
func (p *Pattern) DFA() *dfa.DFA { return p.dfa }

// Groups returns the pattern's capture-group numbering.
func (p *Pattern) Groups() syntax.GroupNumbering {
	return syntax.Numbering(p.ast)
}

// Stats returns the last construction-progress snapshot and the total work
// consumed across all stages.
func (p *Pattern) Stats() (budget.Stats, int64) {
	return p.stats, p.consumed
}
