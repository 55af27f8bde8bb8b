package nfa

import (
	"unicode"

	"github.com/regauto/regauto/charset"
	"github.com/regauto/regauto/syntax"
)

// Code-point groups for the \h, \v and \R escapes, per the PCRE definitions.
var (
	horizontalSpace = []rune{
		0x09, 0x20, 0xA0, 0x1680,
		0x2000, 0x2001, 0x2002, 0x2003, 0x2004, 0x2005, 0x2006, 0x2007,
		0x2008, 0x2009, 0x200A, 0x202F, 0x205F, 0x3000,
	}
	verticalSpace = []rune{0x0A, 0x0B, 0x0C, 0x0D, 0x85, 0x2028, 0x2029}
)

// set builds a normalized set over the compilation window.
func (c *compiler) set(ranges ...charset.Range) charset.Set {
	return charset.New(c.min, c.max, ranges...)
}

func (c *compiler) runeSet(runes ...rune) charset.Set {
	ranges := make([]charset.Range, len(runes))
	for i, r := range runes {
		ranges[i] = charset.Range{Lo: r, Hi: r}
	}
	return c.set(ranges...)
}

// window is the set of every code point in the compilation window.
func (c *compiler) window() charset.Set {
	return c.set(charset.Range{Lo: c.min, Hi: c.max})
}

// literalSet is the set matched by a single literal code point, widened to
// its simple case-folding orbit under the 'i' flag.
func (c *compiler) literalSet(r rune) charset.Set {
	if !c.foldCase {
		return c.runeSet(r)
	}
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return c.runeSet(orbit...)
}

// typeSet resolves a character-type escape letter (\d, \S, ...) into a set.
// \R and \N never reach here; they compile structurally.
func (c *compiler) typeSet(ch rune) charset.Set {
	switch ch {
	case 'd':
		return c.set(charset.Range{Lo: '0', Hi: '9'})
	case 'D':
		return c.typeSet('d').Complement()
	case 's':
		return c.runeSet('\t', '\n', '\v', '\f', '\r', ' ')
	case 'S':
		return c.typeSet('s').Complement()
	case 'w':
		return c.set(
			charset.Range{Lo: '0', Hi: '9'},
			charset.Range{Lo: 'A', Hi: 'Z'},
			charset.Range{Lo: '_', Hi: '_'},
			charset.Range{Lo: 'a', Hi: 'z'},
		)
	case 'W':
		return c.typeSet('w').Complement()
	case 'h':
		return c.runeSet(horizontalSpace...)
	case 'H':
		return c.typeSet('h').Complement()
	case 'v':
		return c.runeSet(verticalSpace...)
	case 'V':
		return c.typeSet('v').Complement()
	default:
		return charset.Empty()
	}
}

// propSet resolves a \p{Name} escape against the Unicode category and
// script tables.
func (c *compiler) propSet(name string, negated bool, pos int) (charset.Set, error) {
	rt, ok := unicode.Categories[name]
	if !ok {
		rt, ok = unicode.Scripts[name]
	}
	if !ok {
		return charset.Set{}, &PropertyError{Name: name, Pos: pos}
	}
	s := c.tableSet(rt)
	if negated {
		s = s.Complement()
	}
	return s, nil
}

// tableSet converts a unicode.RangeTable into a set over the compilation
// window. Strided table rows expand to one range per step.
func (c *compiler) tableSet(rt *unicode.RangeTable) charset.Set {
	var ranges []charset.Range
	for _, r := range rt.R16 {
		if r.Stride == 1 {
			ranges = append(ranges, charset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for cp := rune(r.Lo); cp <= rune(r.Hi); cp += rune(r.Stride) {
			ranges = append(ranges, charset.Range{Lo: cp, Hi: cp})
		}
	}
	for _, r := range rt.R32 {
		if r.Stride == 1 {
			ranges = append(ranges, charset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for cp := rune(r.Lo); cp <= rune(r.Hi); cp += rune(r.Stride) {
			ranges = append(ranges, charset.Range{Lo: cp, Hi: cp})
		}
	}
	return c.set(ranges...)
}

// posixSet resolves a [:name:] class. Names were validated during lexing.
func (c *compiler) posixSet(name string, negated bool) charset.Set {
	var s charset.Set
	switch name {
	case "alnum":
		s = c.set(
			charset.Range{Lo: '0', Hi: '9'},
			charset.Range{Lo: 'A', Hi: 'Z'},
			charset.Range{Lo: 'a', Hi: 'z'},
		)
	case "alpha":
		s = c.set(charset.Range{Lo: 'A', Hi: 'Z'}, charset.Range{Lo: 'a', Hi: 'z'})
	case "ascii":
		s = c.set(charset.Range{Lo: 0, Hi: 0x7F})
	case "blank":
		s = c.runeSet('\t', ' ')
	case "cntrl":
		s = c.set(charset.Range{Lo: 0, Hi: 0x1F}, charset.Range{Lo: 0x7F, Hi: 0x7F})
	case "digit":
		s = c.set(charset.Range{Lo: '0', Hi: '9'})
	case "graph":
		s = c.set(charset.Range{Lo: '!', Hi: '~'})
	case "lower":
		s = c.set(charset.Range{Lo: 'a', Hi: 'z'})
	case "print":
		s = c.set(charset.Range{Lo: ' ', Hi: '~'})
	case "punct":
		s = c.set(
			charset.Range{Lo: '!', Hi: '/'},
			charset.Range{Lo: ':', Hi: '@'},
			charset.Range{Lo: '[', Hi: '`'},
			charset.Range{Lo: '{', Hi: '~'},
		)
	case "space":
		s = c.runeSet('\t', '\n', '\v', '\f', '\r', ' ')
	case "upper":
		s = c.set(charset.Range{Lo: 'A', Hi: 'Z'})
	case "word":
		s = c.typeSet('w')
	case "xdigit":
		s = c.set(
			charset.Range{Lo: '0', Hi: '9'},
			charset.Range{Lo: 'A', Hi: 'F'},
			charset.Range{Lo: 'a', Hi: 'f'},
		)
	default:
		s = charset.Empty()
	}
	if negated {
		s = s.Complement()
	}
	return s
}

// classSet resolves a whole character class into a single set: items are
// unioned, then negation complements within the compilation window.
func (c *compiler) classSet(cc *syntax.CharClass) (charset.Set, error) {
	acc := c.set()
	for _, item := range cc.Items {
		switch v := item.(type) {
		case *syntax.Literal:
			acc = acc.Union(c.literalSet(v.Ch))
		case *syntax.ClassRange:
			acc = acc.Union(c.set(charset.Range{Lo: v.Lo.Ch, Hi: v.Hi.Ch}))
		case *syntax.CharType:
			acc = acc.Union(c.typeSet(v.Ch))
		case *syntax.UnicodeProp:
			s, err := c.propSet(v.Name, v.Negated, v.Span.Start)
			if err != nil {
				return charset.Set{}, err
			}
			acc = acc.Union(s)
		case *syntax.PosixClass:
			acc = acc.Union(c.posixSet(v.Name, v.Negated))
		}
	}
	if cc.Negated {
		acc = acc.Complement()
	}
	return acc, nil
}
