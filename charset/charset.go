// Package charset provides an immutable interval-set representation of
// Unicode code point sets.
//
// A Set is a sorted list of non-overlapping, non-adjacent [Lo, Hi] code point
// ranges bounded by a [min, max] window. Every constructor and algebraic
// operation returns a fully normalized Set; no operation ever mutates an
// operand. Sets are the transition labels used throughout NFA and DFA
// construction, so normalization is an invariant the automata code relies on.
package charset

import (
	"fmt"
	"sort"
	"strings"
)

// Code point bounds used when no explicit window is given.
const (
	MinCodePoint rune = 0
	MaxCodePoint rune = 0x10FFFF
)

// Range is an inclusive code point interval [Lo, Hi].
type Range struct {
	Lo rune
	Hi rune
}

// Contains returns true if r lies inside the range.
func (rg Range) Contains(r rune) bool {
	return r >= rg.Lo && r <= rg.Hi
}

// Len returns the number of code points covered by the range.
func (rg Range) Len() int {
	return int(rg.Hi-rg.Lo) + 1
}

// Set is an immutable, normalized set of code points.
//
// The zero value is the empty set over the default [MinCodePoint, MaxCodePoint]
// window. The min/max window matters for Complement and for bounds
// reconciliation between two operands of a binary operation.
type Set struct {
	ranges []Range
	min    rune
	max    rune
}

// New builds a normalized set over the [min, max] window from the given
// ranges. Ranges are sorted, overlapping or adjacent ranges merged, and
// ranges lying entirely outside the window dropped. Ranges straddling a
// window edge are clipped to it.
func New(min, max rune, ranges ...Range) Set {
	return Set{ranges: normalize(ranges, min, max), min: min, max: max}
}

// FromRange builds a single-range set over the default window.
func FromRange(lo, hi rune) Set {
	return New(MinCodePoint, MaxCodePoint, Range{Lo: lo, Hi: hi})
}

// FromRunes builds a set containing exactly the given code points.
func FromRunes(runes ...rune) Set {
	rs := make([]Range, 0, len(runes))
	for _, r := range runes {
		rs = append(rs, Range{Lo: r, Hi: r})
	}
	return New(MinCodePoint, MaxCodePoint, rs...)
}

// Empty returns the empty set over the default window.
func Empty() Set {
	return Set{min: MinCodePoint, max: MaxCodePoint}
}

// Full returns the set covering the entire default window.
func Full() Set {
	return FromRange(MinCodePoint, MaxCodePoint)
}

// normalize sorts, clips to [min, max], and merges overlapping or adjacent
// ranges. Invalid ranges (Lo > Hi) and ranges fully outside the window are
// dropped.
func normalize(ranges []Range, min, max rune) []Range {
	rs := make([]Range, 0, len(ranges))
	for _, rg := range ranges {
		if rg.Lo > rg.Hi || rg.Hi < min || rg.Lo > max {
			continue
		}
		if rg.Lo < min {
			rg.Lo = min
		}
		if rg.Hi > max {
			rg.Hi = max
		}
		rs = append(rs, rg)
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Lo != rs[j].Lo {
			return rs[i].Lo < rs[j].Lo
		}
		return rs[i].Hi < rs[j].Hi
	})

	out := rs[:0]
	for _, rg := range rs {
		if n := len(out); n > 0 && rg.Lo <= out[n-1].Hi+1 {
			if rg.Hi > out[n-1].Hi {
				out[n-1].Hi = rg.Hi
			}
			continue
		}
		out = append(out, rg)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Min returns the lower bound of the set's window.
func (s Set) Min() rune { return s.min }

// Max returns the upper bound of the set's window.
// The zero value reports the default window.
func (s Set) Max() rune {
	if s.min == 0 && s.max == 0 {
		return MaxCodePoint
	}
	return s.max
}

// IsEmpty returns true if the set contains no code points.
func (s Set) IsEmpty() bool { return len(s.ranges) == 0 }

// Len returns the number of ranges in the set.
func (s Set) Len() int { return len(s.ranges) }

// Size returns the total number of code points in the set.
func (s Set) Size() int {
	total := 0
	for _, rg := range s.ranges {
		total += rg.Len()
	}
	return total
}

// Ranges returns a copy of the normalized range list.
func (s Set) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Range returns the i-th range without copying the whole list.
func (s Set) Range(i int) Range { return s.ranges[i] }

// Contains reports whether the code point is a member of the set.
// Lookup is a binary search over the range list.
func (s Set) Contains(r rune) bool {
	lo, hi := 0, len(s.ranges)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r < s.ranges[mid].Lo:
			hi = mid
		case r > s.ranges[mid].Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Sample returns an arbitrary member of the set, or false if it is empty.
func (s Set) Sample() (rune, bool) {
	if len(s.ranges) == 0 {
		return 0, false
	}
	return s.ranges[0].Lo, true
}

// reconcile widens both operands' windows to the wider of the two before a
// binary operation combines them.
func reconcile(a, b Set) (rune, rune) {
	min, max := a.Min(), a.Max()
	if m := b.Min(); m < min {
		min = m
	}
	if m := b.Max(); m > max {
		max = m
	}
	return min, max
}

// Union returns a new set containing every code point in either operand.
func (s Set) Union(o Set) Set {
	min, max := reconcile(s, o)
	merged := make([]Range, 0, len(s.ranges)+len(o.ranges))
	merged = append(merged, s.ranges...)
	merged = append(merged, o.ranges...)
	return New(min, max, merged...)
}

// Intersect returns a new set containing the code points in both operands.
// Intersecting with an empty set yields the empty set.
func (s Set) Intersect(o Set) Set {
	min, max := reconcile(s, o)
	var out []Range
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		a, b := s.ranges[i], o.ranges[j]
		lo, hi := a.Lo, a.Hi
		if b.Lo > lo {
			lo = b.Lo
		}
		if b.Hi < hi {
			hi = b.Hi
		}
		if lo <= hi {
			out = append(out, Range{Lo: lo, Hi: hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return New(min, max, out...)
}

// Subtract returns a new set containing the code points of s that are not in
// o. The walk advances a cursor through each source range past every
// overlapping subtrahend range, emitting the uncovered remainder. Subtracting
// an empty set returns a copy of s clamped to the reconciled window.
func (s Set) Subtract(o Set) Set {
	min, max := reconcile(s, o)
	if len(o.ranges) == 0 {
		return New(min, max, s.ranges...)
	}

	var out []Range
	j := 0
	for _, rg := range s.ranges {
		cursor := rg.Lo
		for j < len(o.ranges) && o.ranges[j].Hi < cursor {
			j++
		}
		k := j
		for k < len(o.ranges) && o.ranges[k].Lo <= rg.Hi {
			sub := o.ranges[k]
			if sub.Lo > cursor {
				out = append(out, Range{Lo: cursor, Hi: sub.Lo - 1})
			}
			if sub.Hi+1 > cursor {
				cursor = sub.Hi + 1
			}
			k++
		}
		if cursor <= rg.Hi {
			out = append(out, Range{Lo: cursor, Hi: rg.Hi})
		}
	}
	return New(min, max, out...)
}

// Complement returns a new set containing every code point of the window
// that is not in s, filling the gaps between consecutive ranges and the
// window edges.
func (s Set) Complement() Set {
	min, max := s.Min(), s.Max()
	var out []Range
	next := min
	for _, rg := range s.ranges {
		if rg.Lo > next {
			out = append(out, Range{Lo: next, Hi: rg.Lo - 1})
		}
		next = rg.Hi + 1
	}
	if next <= max {
		out = append(out, Range{Lo: next, Hi: max})
	}
	return New(min, max, out...)
}

// Equal reports whether both sets contain exactly the same code points.
// The window bounds are not part of the comparison.
func (s Set) Equal(o Set) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != o.ranges[i] {
			return false
		}
	}
	return true
}

// String returns a compact representation like "[a-z0-9_]" for debugging.
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, rg := range s.ranges {
		if i > 0 {
			b.WriteByte(' ')
		}
		if rg.Lo == rg.Hi {
			fmt.Fprintf(&b, "%#U", rg.Lo)
		} else {
			fmt.Fprintf(&b, "%#U-%#U", rg.Lo, rg.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}
