package nfa

import (
	"fmt"
	"strings"

	"github.com/regauto/regauto/budget"
	"github.com/regauto/regauto/charset"
	"github.com/regauto/regauto/syntax"
)

// Config controls AST-to-NFA compilation.
type Config struct {
	// MaxStates bounds the number of NFA states, 0 for unlimited. This is
	// the primary defense against quantifier unrolling blowup, e.g.
	// a{1,100000}.
	MaxStates int

	// MinRune and MaxRune define the code-point window of the automaton's
	// alphabet.
	MinRune rune
	MaxRune rune

	// Budget, when non-nil, charges every state and edge allocation and
	// aborts compilation once exhausted.
	Budget *budget.Budget
}

// DefaultConfig returns the default compilation configuration: the full
// Unicode window and a generous state ceiling.
func DefaultConfig() Config {
	return Config{
		MaxStates: 100000,
		MinRune:   charset.MinCodePoint,
		MaxRune:   charset.MaxCodePoint,
	}
}

// fragment is a partial automaton with a single entry and a single exit,
// stitched together by epsilon edges.
type fragment struct {
	start StateID
	end   StateID
}

type compiler struct {
	b        *Builder
	min, max rune

	dotAll   bool // 's' flag: dot matches newline
	foldCase bool // 'i' flag: literals match their case-folding orbit
}

// Compile transforms a parsed pattern into a Thompson NFA. Constructs with
// no regular-language equivalent (backreferences, lookarounds, subroutine
// calls, word boundaries, conditionals) fail with *UnsupportedError;
// exceeding cfg.MaxStates or the budget fails with *budget.LimitError.
func Compile(re *syntax.Regex, cfg Config) (*NFA, error) {
	if cfg.MaxRune == 0 {
		cfg.MaxRune = charset.MaxCodePoint
	}
	c := &compiler{
		b:        NewBuilder(cfg.MinRune, cfg.MaxRune, cfg.MaxStates, cfg.Budget),
		min:      cfg.MinRune,
		max:      cfg.MaxRune,
		dotAll:   strings.ContainsRune(re.Flags, 's'),
		foldCase: strings.ContainsRune(re.Flags, 'i'),
	}
	f, err := c.compile(re.Expr)
	if err != nil {
		return nil, err
	}
	c.b.SetAccept(f.end, true)
	return c.b.Build(f.start), nil
}

// newFrag allocates an unconnected two-state fragment.
func (c *compiler) newFrag() (fragment, error) {
	s, err := c.b.AddState()
	if err != nil {
		return fragment{}, err
	}
	e, err := c.b.AddState()
	if err != nil {
		return fragment{}, err
	}
	return fragment{start: s, end: e}, nil
}

// setFrag builds a fragment consuming exactly one code point from set.
func (c *compiler) setFrag(set charset.Set) (fragment, error) {
	f, err := c.newFrag()
	if err != nil {
		return fragment{}, err
	}
	if err := c.b.AddTransition(f.start, set, f.end); err != nil {
		return fragment{}, err
	}
	return f, nil
}

// epsilonFrag builds a fragment consuming nothing.
func (c *compiler) epsilonFrag() (fragment, error) {
	f, err := c.newFrag()
	if err != nil {
		return fragment{}, err
	}
	if err := c.b.AddEpsilon(f.start, f.end); err != nil {
		return fragment{}, err
	}
	return f, nil
}

// chain joins fragments in sequence with epsilon edges.
func (c *compiler) chain(frags []fragment) (fragment, error) {
	for i := 0; i+1 < len(frags); i++ {
		if err := c.b.AddEpsilon(frags[i].end, frags[i+1].start); err != nil {
			return fragment{}, err
		}
	}
	return fragment{start: frags[0].start, end: frags[len(frags)-1].end}, nil
}

func (c *compiler) compile(n syntax.Node) (fragment, error) {
	switch v := n.(type) {
	case *syntax.Literal:
		return c.setFrag(c.literalSet(v.Ch))

	case *syntax.CharType:
		switch v.Ch {
		case 'R':
			return c.compileAnyNewline()
		case 'N':
			return c.setFrag(c.window().Subtract(c.runeSet('\n')))
		default:
			return c.setFrag(c.typeSet(v.Ch))
		}

	case *syntax.Dot:
		if c.dotAll {
			return c.setFrag(c.window())
		}
		return c.setFrag(c.window().Subtract(c.runeSet('\n')))

	case *syntax.Anchor:
		switch v.Kind {
		case syntax.AnchorWordBoundary, syntax.AnchorNoWordBoundary, syntax.AnchorMatchStart:
			return fragment{}, &UnsupportedError{Construct: v.Kind.String(), Pos: v.Span.Start}
		}
		// Position anchors are zero-width for language membership.
		return c.epsilonFrag()

	case *syntax.CharClass:
		set, err := c.classSet(v)
		if err != nil {
			return fragment{}, err
		}
		return c.setFrag(set)

	case *syntax.UnicodeProp:
		set, err := c.propSet(v.Name, v.Negated, v.Span.Start)
		if err != nil {
			return fragment{}, err
		}
		return c.setFrag(set)

	case *syntax.PosixClass:
		return c.setFrag(c.posixSet(v.Name, v.Negated))

	case *syntax.Group:
		return c.compileGroup(v)

	case *syntax.Quantifier:
		return c.compileQuant(v)

	case *syntax.Alternation:
		return c.compileAlternation(v.Alts)

	case *syntax.Sequence:
		if len(v.Items) == 0 {
			return c.epsilonFrag()
		}
		frags := make([]fragment, 0, len(v.Items))
		for _, item := range v.Items {
			f, err := c.compile(item)
			if err != nil {
				return fragment{}, err
			}
			frags = append(frags, f)
		}
		return c.chain(frags)

	case *syntax.Backref:
		return fragment{}, &UnsupportedError{Construct: "backreference", Pos: v.Span.Start}

	case *syntax.Subroutine:
		return fragment{}, &UnsupportedError{Construct: "subroutine call", Pos: v.Span.Start}

	case *syntax.Verb:
		return c.compileVerb(v)

	default:
		return fragment{}, fmt.Errorf("nfa: unhandled node %T", n)
	}
}

func (c *compiler) compileAlternation(alts []syntax.Node) (fragment, error) {
	outer, err := c.newFrag()
	if err != nil {
		return fragment{}, err
	}
	for _, alt := range alts {
		f, err := c.compile(alt)
		if err != nil {
			return fragment{}, err
		}
		if err := c.b.AddEpsilon(outer.start, f.start); err != nil {
			return fragment{}, err
		}
		if err := c.b.AddEpsilon(f.end, outer.end); err != nil {
			return fragment{}, err
		}
	}
	return outer, nil
}

func (c *compiler) compileGroup(g *syntax.Group) (fragment, error) {
	if g.Kind.IsLookaround() {
		return fragment{}, &UnsupportedError{Construct: g.Kind.String(), Pos: g.Span.Start}
	}
	switch g.Kind {
	case syntax.GroupCond:
		return fragment{}, &UnsupportedError{Construct: "conditional group", Pos: g.Span.Start}

	case syntax.GroupFlags:
		if g.Expr == nil {
			// A bare (?flags) applies to the rest of the pattern.
			c.applyFlags(g.Flags)
			return c.epsilonFrag()
		}
		savedDotAll, savedFold := c.dotAll, c.foldCase
		c.applyFlags(g.Flags)
		f, err := c.compile(g.Expr)
		c.dotAll, c.foldCase = savedDotAll, savedFold
		return f, err
	}
	// Capturing, named, non-capturing, atomic, and branch-reset groups are
	// all transparent for language membership.
	return c.compile(g.Expr)
}

// applyFlags toggles the modifiers in an inline flag string: characters
// before any '-' are set, those after it cleared.
func (c *compiler) applyFlags(flags string) {
	on := true
	for _, r := range flags {
		switch {
		case r == '-':
			on = false
		case r == 's':
			c.dotAll = on
		case r == 'i':
			c.foldCase = on
		}
	}
}

// compileQuant unrolls bounded repetition into Min mandatory copies
// followed by Max-Min optional copies, and realizes unbounded repetition
// with an epsilon back-edge cycle. Lazy and possessive modes accept the
// same language as greedy and compile identically.
func (c *compiler) compileQuant(q *syntax.Quantifier) (fragment, error) {
	var frags []fragment
	for i := 0; i < q.Min; i++ {
		f, err := c.compile(q.Expr)
		if err != nil {
			return fragment{}, err
		}
		frags = append(frags, f)
	}

	if q.Max < 0 {
		star, err := c.compileStar(q.Expr)
		if err != nil {
			return fragment{}, err
		}
		frags = append(frags, star)
	} else {
		for i := q.Min; i < q.Max; i++ {
			f, err := c.compile(q.Expr)
			if err != nil {
				return fragment{}, err
			}
			// Skip edge turns this copy into an optional one.
			if err := c.b.AddEpsilon(f.start, f.end); err != nil {
				return fragment{}, err
			}
			frags = append(frags, f)
		}
	}

	if len(frags) == 0 {
		return c.epsilonFrag() // a{0}
	}
	return c.chain(frags)
}

// compileStar wraps the expression in a Kleene-star cycle: skip edge for
// zero iterations, back edge for repetition.
func (c *compiler) compileStar(expr syntax.Node) (fragment, error) {
	outer, err := c.newFrag()
	if err != nil {
		return fragment{}, err
	}
	f, err := c.compile(expr)
	if err != nil {
		return fragment{}, err
	}
	for _, edge := range [][2]StateID{
		{outer.start, f.start},
		{outer.start, outer.end},
		{f.end, f.start},
		{f.end, outer.end},
	} {
		if err := c.b.AddEpsilon(edge[0], edge[1]); err != nil {
			return fragment{}, err
		}
	}
	return outer, nil
}

// compileAnyNewline builds \R: a two code point \r\n branch alternated with
// the single vertical-space code points.
func (c *compiler) compileAnyNewline() (fragment, error) {
	f, err := c.newFrag()
	if err != nil {
		return fragment{}, err
	}
	mid, err := c.b.AddState()
	if err != nil {
		return fragment{}, err
	}
	if err := c.b.AddTransition(f.start, c.runeSet('\r'), mid); err != nil {
		return fragment{}, err
	}
	if err := c.b.AddTransition(mid, c.runeSet('\n'), f.end); err != nil {
		return fragment{}, err
	}
	if err := c.b.AddTransition(f.start, c.runeSet(verticalSpace...), f.end); err != nil {
		return fragment{}, err
	}
	return f, nil
}

// compileVerb realizes control verbs in membership terms: (*FAIL) is a
// dead end, (*ACCEPT) accepts immediately, and the newline/encoding
// convention verbs are zero-width.
func (c *compiler) compileVerb(v *syntax.Verb) (fragment, error) {
	switch v.Kind {
	case syntax.VerbFail:
		// No edge between start and end: nothing gets through.
		return c.newFrag()
	case syntax.VerbAccept:
		f, err := c.epsilonFrag()
		if err != nil {
			return fragment{}, err
		}
		c.b.SetAccept(f.start, true)
		return f, nil
	default:
		return c.epsilonFrag()
	}
}
