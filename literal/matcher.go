package literal

import (
	"errors"

	"github.com/coregx/ahocorasick"
)

// ErrNoLiterals is returned when a matcher is requested for an empty or
// inexact literal set.
var ErrNoLiterals = errors.New("literal: no exact literals to match")

// Matcher is a multi-pattern substring prefilter over a pattern's literal
// alternatives. When the underlying set is exact, an input that contains
// none of the alternatives as a substring cannot match the pattern, so a
// negative answer here skips the automaton entirely.
type Matcher struct {
	auto *ahocorasick.Automaton
	lits []string
}

// NewMatcher builds a prefilter from an exact literal set.
func NewMatcher(set Set) (*Matcher, error) {
	if !set.Exact || len(set.Strings) == 0 {
		return nil, ErrNoLiterals
	}
	b := ahocorasick.NewBuilder()
	for _, lit := range set.Strings {
		b.AddPattern([]byte(lit))
	}
	auto, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Matcher{auto: auto, lits: set.Strings}, nil
}

// MightMatch reports whether any literal alternative occurs in the input.
// A false result is definitive rejection; a true result still requires the
// automaton to confirm a whole-string match.
func (m *Matcher) MightMatch(input string) bool {
	return m.auto.IsMatch([]byte(input))
}

// Literals returns the alternatives the matcher was built from.
func (m *Matcher) Literals() []string {
	return m.lits
}
