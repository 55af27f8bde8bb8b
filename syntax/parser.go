package syntax

import (
	"strings"
)

// flagAllowList is the set of recognized pattern modifiers, both as the
// trailing flag string and inside (?flags) / (?flags:...) constructs.
const flagAllowList = "imsxADSUXJun"

// Parse parses a delimited pattern string into its AST. It fails with a
// positioned *Error on the first lexical or structural problem.
func Parse(input string) (*Regex, error) {
	re, errs := parse(input)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return re, nil
}

// ParseTolerant parses best-effort: instead of stopping at the first
// problem it records every error it can recover from and returns the
// partial AST alongside the collected errors. The AST is nil only when the
// delimiters themselves are unusable.
func ParseTolerant(input string) (*Regex, []*Error) {
	return parse(input)
}

func parse(input string) (*Regex, []*Error) {
	delim, body, base, flags, err := SplitDelimiters(input)
	if err != nil {
		return nil, []*Error{err.(*Error)}
	}

	p := &parser{nextCapture: 1}
	p.validateFlags(flags, base+len(body)+1)

	toks, err := NewLexer(body, base).Tokenize()
	if err != nil {
		p.errs = append(p.errs, err.(*Error))
		end := base + len(body)
		toks = append(toks, Token{Kind: TokenEOF, Pos: end, End: end})
	}
	p.toks = toks

	expr := p.parseAlternation()
	if p.cur().Kind == TokenGroupClose {
		p.fail(p.cur().Pos, "unmatched closing parenthesis")
	}

	re := &Regex{
		Span:  Span{Start: 0, End: len(input)},
		Delim: delim,
		Flags: flags,
		Expr:  expr,
	}
	return re, p.errs
}

// parser consumes the token stream, accumulating recoverable errors so the
// same machinery serves both strict and tolerant parsing.
type parser struct {
	toks []Token
	pos  int
	errs []*Error

	nextCapture int
}

func (p *parser) cur() Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(off int) Token {
	if p.pos+off >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+off]
}

func (p *parser) next() Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) fail(pos int, format string, args ...any) {
	p.errs = append(p.errs, parseErr(pos, format, args...))
}

// validateFlags checks every modifier character against the allow-list.
// Inline flag strings may carry a single '-' separating set from unset.
func (p *parser) validateFlags(flags string, pos int) {
	if strings.Count(flags, "-") > 1 {
		p.fail(pos, "malformed modifier string %q", flags)
		return
	}
	for _, r := range flags {
		if r == '-' {
			continue
		}
		if !strings.ContainsRune(flagAllowList, r) {
			p.fail(pos, "unknown modifier '%c'", r)
		}
	}
}

// parseAlternation parses sequence ('|' sequence)*. It stops before a
// closing parenthesis or EOF without consuming it. A single alternative is
// returned directly, without an Alternation wrapper.
func (p *parser) parseAlternation() Node {
	start := p.cur().Pos
	alts := []Node{p.parseSequence()}
	for p.cur().Kind == TokenAlternate {
		p.next()
		alts = append(alts, p.parseSequence())
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return &Alternation{
		Span: Span{Start: start, End: alts[len(alts)-1].Pos().End},
		Alts: alts,
	}
}

// parseSequence parses quantifiedAtom* up to an alternation bar, group
// close, or EOF. A single item is returned directly.
func (p *parser) parseSequence() Node {
	start := p.cur().Pos
	var items []Node
	for {
		switch p.cur().Kind {
		case TokenEOF, TokenAlternate, TokenGroupClose:
			if len(items) == 1 {
				return items[0]
			}
			end := start
			if len(items) > 0 {
				end = items[len(items)-1].Pos().End
			}
			return &Sequence{Span: Span{Start: start, End: end}, Items: items}
		}
		if item := p.parseQuantified(); item != nil {
			items = append(items, item)
		}
	}
}

// parseQuantified parses an atom with an optional quantifier, enforcing
// that quantifiers have a repeatable target and a sane {m,n} range.
func (p *parser) parseQuantified() Node {
	atom := p.parseAtom()
	if p.cur().Kind != TokenQuantifier {
		return atom
	}
	q := p.next()

	if atom == nil {
		return nil
	}
	switch n := atom.(type) {
	case *Anchor:
		p.fail(q.Pos, "quantifier %s may not follow an anchor", q.Quant)
		return atom
	case *Group:
		if n.Kind.IsLookaround() {
			p.fail(q.Pos, "quantifier %s may not follow a zero-width assertion", q.Quant)
			return atom
		}
	case *Verb:
		p.fail(q.Pos, "quantifier %s may not follow a verb", q.Quant)
		return atom
	}
	if q.Quant.Max >= 0 && q.Quant.Min > q.Quant.Max {
		p.fail(q.Pos, "invalid quantifier range {%d,%d}: minimum exceeds maximum",
			q.Quant.Min, q.Quant.Max)
		return atom
	}

	wrapped := &Quantifier{
		Span: Span{Start: atom.Pos().Start, End: q.End},
		Min:  q.Quant.Min,
		Max:  q.Quant.Max,
		Mode: q.Quant.Mode,
		Expr: atom,
	}
	if p.cur().Kind == TokenQuantifier {
		dup := p.next()
		p.fail(dup.Pos, "quantifier %s follows another quantifier", dup.Quant)
	}
	return wrapped
}

// parseAtom parses a single grammar atom. It returns nil after recording an
// error for tokens that cannot begin an atom, consuming the offender so the
// tolerant mode makes progress.
func (p *parser) parseAtom() Node {
	t := p.next()
	span := Span{Start: t.Pos, End: t.End}

	switch t.Kind {
	case TokenLiteral:
		return &Literal{Span: span, Ch: t.Ch, Escaped: t.Escaped}
	case TokenCharType:
		return &CharType{Span: span, Ch: t.Ch}
	case TokenDot:
		return &Dot{Span: span}
	case TokenAnchor:
		return &Anchor{Span: span, Kind: t.Anchor}
	case TokenClassOpen:
		return p.parseClass(t)
	case TokenGroupOpen:
		return p.parseGroup(t)
	case TokenBackref:
		return &Backref{Span: span, Index: t.Index, Name: t.Name}
	case TokenSubroutine:
		return &Subroutine{Span: span, Index: t.Index, Name: t.Name}
	case TokenUnicodeProp:
		return &UnicodeProp{Span: span, Name: t.Name, Negated: t.Negated}
	case TokenPosixClass:
		return &PosixClass{Span: span, Name: t.Name, Negated: t.Negated}
	case TokenVerb:
		return &Verb{Span: span, Kind: t.Verb, Arg: t.Name}
	case TokenFlags:
		p.validateFlags(t.Name, t.Pos)
		return &Group{Span: span, Kind: GroupFlags, Flags: t.Name}
	case TokenQuantifier:
		p.fail(t.Pos, "quantifier %s has nothing to repeat", t.Quant)
		return nil
	default:
		p.fail(t.Pos, "unexpected token %s", t.Kind)
		return nil
	}
}

// parseClass parses the items of a character class after its consumed open
// token. A range requires unescaped '-' between two literal endpoints; a
// hyphen adjacent to any non-literal item is itself a literal.
func (p *parser) parseClass(open Token) Node {
	var items []Node
	for {
		switch p.cur().Kind {
		case TokenClassClose:
			close := p.next()
			return &CharClass{
				Span:    Span{Start: open.Pos, End: close.End},
				Negated: open.Negated,
				Items:   items,
			}
		case TokenEOF:
			p.fail(open.Pos, "unterminated character class")
			return &CharClass{
				Span:    Span{Start: open.Pos, End: p.cur().End},
				Negated: open.Negated,
				Items:   items,
			}
		}

		item := p.parseClassItem()
		if item == nil {
			continue
		}

		hy := p.cur()
		if hy.Kind == TokenLiteral && hy.Ch == '-' && !hy.Escaped &&
			p.peekAt(1).Kind != TokenClassClose && p.peekAt(1).Kind != TokenEOF {
			lo, loOK := item.(*Literal)
			hiTok := p.peekAt(1)
			if loOK && hiTok.Kind == TokenLiteral {
				p.next() // '-'
				p.next() // hi
				hi := &Literal{Span: Span{Start: hiTok.Pos, End: hiTok.End}, Ch: hiTok.Ch, Escaped: hiTok.Escaped}
				if lo.Ch > hi.Ch {
					p.fail(hy.Pos, "invalid character class range %q-%q (out of order)", lo.Ch, hi.Ch)
					continue
				}
				items = append(items, &ClassRange{
					Span: Span{Start: lo.Span.Start, End: hi.Span.End},
					Lo:   lo,
					Hi:   hi,
				})
				continue
			}
			// A hyphen next to a non-literal endpoint is a plain literal;
			// consume it here so it cannot anchor a later range.
			p.next()
			items = append(items, item,
				&Literal{Span: Span{Start: hy.Pos, End: hy.End}, Ch: '-'})
			continue
		}

		items = append(items, item)
	}
}

func (p *parser) parseClassItem() Node {
	t := p.next()
	span := Span{Start: t.Pos, End: t.End}
	switch t.Kind {
	case TokenLiteral:
		return &Literal{Span: span, Ch: t.Ch, Escaped: t.Escaped}
	case TokenCharType:
		return &CharType{Span: span, Ch: t.Ch}
	case TokenUnicodeProp:
		return &UnicodeProp{Span: span, Name: t.Name, Negated: t.Negated}
	case TokenPosixClass:
		return &PosixClass{Span: span, Name: t.Name, Negated: t.Negated}
	default:
		p.fail(t.Pos, "unexpected %s in character class", t.Kind)
		return nil
	}
}

// parseGroup parses a group body after its consumed open token, assigning
// capture indexes as groups are opened.
func (p *parser) parseGroup(open Token) Node {
	g := &Group{
		Span:  Span{Start: open.Pos, End: open.End},
		Kind:  open.Group.Kind,
		Name:  open.Group.Name,
		Flags: open.Group.Flags,
		Cond:  open.Group.Cond,
	}

	switch g.Kind {
	case GroupCapture, GroupNamed:
		g.Index = p.nextCapture
		p.nextCapture++
	case GroupFlags:
		p.validateFlags(g.Flags, open.Pos)
	}

	switch g.Kind {
	case GroupBranchReset:
		g.Expr = p.parseBranchReset(open)
	case GroupCond:
		g.Expr = p.parseCondBody(open, g.Cond)
	default:
		g.Expr = p.parseAlternation()
	}

	if p.cur().Kind != TokenGroupClose {
		p.fail(open.Pos, "missing closing parenthesis for group")
		g.Span.End = p.cur().End
		return g
	}
	close := p.next()
	g.Span.End = close.End
	return g
}

// parseBranchReset parses (?|...) alternatives, giving every alternative
// the same starting capture index. The group counter afterwards reflects
// the alternative with the most captures.
func (p *parser) parseBranchReset(open Token) Node {
	save := p.nextCapture
	max := save

	start := p.cur().Pos
	alts := []Node{p.parseSequence()}
	if p.nextCapture > max {
		max = p.nextCapture
	}
	for p.cur().Kind == TokenAlternate {
		p.next()
		p.nextCapture = save
		alts = append(alts, p.parseSequence())
		if p.nextCapture > max {
			max = p.nextCapture
		}
	}
	p.nextCapture = max

	if len(alts) == 1 {
		return alts[0]
	}
	return &Alternation{
		Span: Span{Start: start, End: alts[len(alts)-1].Pos().End},
		Alts: alts,
	}
}

// parseCondBody parses the yes/no branches of a conditional group and
// validates the condition shape: a group reference, a lookaround assertion
// opening the body, or (DEFINE).
func (p *parser) parseCondBody(open Token, cond Cond) Node {
	body := p.parseAlternation()

	branches := 1
	if alt, ok := body.(*Alternation); ok {
		branches = len(alt.Alts)
	}

	switch cond.Kind {
	case CondAssertion:
		if !startsWithLookaround(body) {
			p.fail(open.Pos, "conditional group condition must be a lookaround assertion")
		}
	case CondDefine:
		if branches > 1 {
			p.fail(open.Pos, "(DEFINE) group may not contain alternatives")
		}
	case CondGroup:
		if cond.Index == 0 {
			p.fail(open.Pos, "conditional group references group 0")
		}
	}
	if branches > 2 {
		p.fail(open.Pos, "conditional group contains more than two branches")
	}
	return body
}

// startsWithLookaround reports whether the first atom of the first
// alternative is a lookaround group.
func startsWithLookaround(body Node) bool {
	n := body
	if alt, ok := n.(*Alternation); ok {
		if len(alt.Alts) == 0 {
			return false
		}
		n = alt.Alts[0]
	}
	if seq, ok := n.(*Sequence); ok {
		if len(seq.Items) == 0 {
			return false
		}
		n = seq.Items[0]
	}
	g, ok := n.(*Group)
	return ok && g.Kind.IsLookaround()
}
