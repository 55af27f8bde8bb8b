package syntax

// Span is a half-open [Start, End) byte range into the original input.
type Span struct {
	Start int
	End   int
}

// Node is the closed set of AST node kinds produced by the parser. Every
// node carries its source span. The set is sealed: only types in this
// package implement it, and Walk's type switch is exhaustive over them.
type Node interface {
	// Pos returns the node's source span.
	Pos() Span

	node()
}

// Delim describes the pattern delimiter pair. For a repeated-character
// delimiter like /.../, Open and Close are equal.
type Delim struct {
	Open  rune
	Close rune
}

// Regex is the root node: delimiter, trailing flags, and the pattern
// subtree. Expr is nil for an empty pattern.
type Regex struct {
	Span  Span
	Delim Delim
	Flags string
	Expr  Node
}

// Literal is a single literal code point. Escaped control escapes (\t, \n,
// \e, ...) arrive here already resolved to their character value.
type Literal struct {
	Span    Span
	Ch      rune
	Escaped bool
}

// CharType is a character-type escape; Ch is the identifying letter
// ('d', 'D', 's', 'S', 'w', 'W', 'h', 'H', 'v', 'V', 'R', 'N').
type CharType struct {
	Span Span
	Ch   rune
}

// Dot is the '.' metacharacter.
type Dot struct {
	Span Span
}

// Anchor is a zero-width position assertion.
type Anchor struct {
	Span Span
	Kind AnchorKind
}

// CharClass is a bracket expression. Items holds Literal, ClassRange,
// CharType, UnicodeProp, and PosixClass nodes.
type CharClass struct {
	Span    Span
	Negated bool
	Items   []Node
}

// ClassRange is a lo-hi range between two literal code points inside a
// character class. The parser guarantees Lo.Ch <= Hi.Ch.
type ClassRange struct {
	Span Span
	Lo   *Literal
	Hi   *Literal
}

// Group is any parenthesized construct. Index is the capture number for
// capturing and named groups (0 for the rest), Name the group name for
// GroupNamed, Flags the modifier string for GroupFlags, and Cond the
// condition for GroupCond. Expr is nil for an empty group.
type Group struct {
	Span  Span
	Kind  GroupKind
	Index int
	Name  string
	Flags string
	Cond  Cond
	Expr  Node
}

// Quantifier is a repetition of its subexpression. Max == -1 means
// unbounded.
type Quantifier struct {
	Span Span
	Min  int
	Max  int
	Mode QuantMode
	Expr Node
}

// Alternation is two or more '|'-separated branches.
type Alternation struct {
	Span Span
	Alts []Node
}

// Sequence is the concatenation of its items.
type Sequence struct {
	Span  Span
	Items []Node
}

// Backref references a capture group by number or name. Exactly one of
// Index/Name is set; a negative Index is a relative reference like \g{-1}.
type Backref struct {
	Span  Span
	Index int
	Name  string
}

// Subroutine is a call to a capture group's subpattern: (?1), (?&name),
// (?P>name), \g<1>. Index 0 with an empty name is whole-pattern recursion.
type Subroutine struct {
	Span  Span
	Index int
	Name  string
}

// UnicodeProp is a \p{...} or \P{...} property escape.
type UnicodeProp struct {
	Span    Span
	Name    string
	Negated bool
}

// PosixClass is a [:name:] class inside a bracket expression.
type PosixClass struct {
	Span    Span
	Name    string
	Negated bool
}

// Verb is a PCRE control verb such as (*FAIL) or (*MARK:name).
type Verb struct {
	Span Span
	Kind VerbKind
	Arg  string
}

func (n *Regex) Pos() Span       { return n.Span }
func (n *Literal) Pos() Span     { return n.Span }
func (n *CharType) Pos() Span    { return n.Span }
func (n *Dot) Pos() Span         { return n.Span }
func (n *Anchor) Pos() Span      { return n.Span }
func (n *CharClass) Pos() Span   { return n.Span }
func (n *ClassRange) Pos() Span  { return n.Span }
func (n *Group) Pos() Span       { return n.Span }
func (n *Quantifier) Pos() Span  { return n.Span }
func (n *Alternation) Pos() Span { return n.Span }
func (n *Sequence) Pos() Span    { return n.Span }
func (n *Backref) Pos() Span     { return n.Span }
func (n *Subroutine) Pos() Span  { return n.Span }
func (n *UnicodeProp) Pos() Span { return n.Span }
func (n *PosixClass) Pos() Span  { return n.Span }
func (n *Verb) Pos() Span        { return n.Span }

func (*Regex) node()       {}
func (*Literal) node()     {}
func (*CharType) node()    {}
func (*Dot) node()         {}
func (*Anchor) node()      {}
func (*CharClass) node()   {}
func (*ClassRange) node()  {}
func (*Group) node()       {}
func (*Quantifier) node()  {}
func (*Alternation) node() {}
func (*Sequence) node()    {}
func (*Backref) node()     {}
func (*Subroutine) node()  {}
func (*UnicodeProp) node() {}
func (*PosixClass) node()  {}
func (*Verb) node()        {}

// Walk visits n and its children in source order. If visit returns false for
// a node, its children are skipped. A nil node is a no-op.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch v := n.(type) {
	case *Regex:
		Walk(v.Expr, visit)
	case *CharClass:
		for _, item := range v.Items {
			Walk(item, visit)
		}
	case *ClassRange:
		Walk(v.Lo, visit)
		Walk(v.Hi, visit)
	case *Group:
		Walk(v.Expr, visit)
	case *Quantifier:
		Walk(v.Expr, visit)
	case *Alternation:
		for _, alt := range v.Alts {
			Walk(alt, visit)
		}
	case *Sequence:
		for _, item := range v.Items {
			Walk(item, visit)
		}
	case *Literal, *CharType, *Dot, *Anchor, *Backref, *Subroutine,
		*UnicodeProp, *PosixClass, *Verb:
		// Leaves.
	}
}
