// Package literal extracts the literal alternatives of a parsed pattern
// and builds a multi-pattern substring prefilter over them, so callers can
// reject most non-matching inputs without running an automaton.
package literal

import (
	"strings"

	"github.com/regauto/regauto/syntax"
)

// Extraction limits. Cross products of alternations grow fast; extraction
// gives up rather than ballooning.
const (
	maxAlternatives = 64
	maxLength       = 64
)

// Set is the literal-alternative summary of a pattern.
type Set struct {
	// Strings are literal strings derivable from the pattern.
	Strings []string

	// Exact reports whether the pattern matches exactly Strings and
	// nothing else. When false the set is unusable for filtering and
	// Strings is nil.
	Exact bool
}

// Extract computes the literal alternatives of a pattern. It succeeds only
// for patterns built entirely from literals, sequences, alternations, and
// transparent groups; anything else (classes, quantifiers, anchors) yields
// an inexact, empty set.
func Extract(re *syntax.Regex) Set {
	if re == nil || re.Expr == nil || re.Flags != "" {
		return Set{}
	}
	lits, ok := extract(re.Expr)
	if !ok {
		return Set{}
	}
	return Set{Strings: lits, Exact: true}
}

func extract(n syntax.Node) ([]string, bool) {
	switch v := n.(type) {
	case *syntax.Literal:
		return []string{string(v.Ch)}, true

	case *syntax.Sequence:
		acc := []string{""}
		for _, item := range v.Items {
			lits, ok := extract(item)
			if !ok {
				return nil, false
			}
			var next []string
			for _, a := range acc {
				for _, lit := range lits {
					s := a + lit
					if len(s) > maxLength {
						return nil, false
					}
					next = append(next, s)
				}
			}
			if len(next) > maxAlternatives {
				return nil, false
			}
			acc = next
		}
		return acc, true

	case *syntax.Alternation:
		var acc []string
		for _, alt := range v.Alts {
			lits, ok := extract(alt)
			if !ok {
				return nil, false
			}
			acc = append(acc, lits...)
			if len(acc) > maxAlternatives {
				return nil, false
			}
		}
		return acc, true

	case *syntax.Group:
		switch v.Kind {
		case syntax.GroupCapture, syntax.GroupNamed, syntax.GroupNonCapture,
			syntax.GroupAtomic, syntax.GroupBranchReset:
			return extract(v.Expr)
		}
		return nil, false

	default:
		return nil, false
	}
}

// CommonPrefix returns the longest prefix shared by every alternative, ""
// when the set is inexact or empty.
func (s Set) CommonPrefix() string {
	if !s.Exact || len(s.Strings) == 0 {
		return ""
	}
	prefix := s.Strings[0]
	for _, lit := range s.Strings[1:] {
		for !strings.HasPrefix(lit, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
		if prefix == "" {
			break
		}
	}
	return prefix
}
