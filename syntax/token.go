package syntax

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind uint8

const (
	// TokenEOF marks the end of the pattern body.
	TokenEOF TokenKind = iota

	// TokenLiteral is a single literal code point. Control escapes like \t
	// are resolved to their literal value during lexing, so the parser only
	// ever sees the resulting code point.
	TokenLiteral

	// TokenCharType is a character-type escape: \d \D \s \S \w \W \h \H \v \V \R \N.
	TokenCharType

	// TokenDot is the '.' metacharacter.
	TokenDot

	// TokenAnchor is a zero-width position assertion: ^ $ \A \z \Z \b \B \G.
	TokenAnchor

	// TokenAlternate is the '|' alternation operator.
	TokenAlternate

	// TokenGroupOpen opens any group variant; details are in the Group field.
	TokenGroupOpen

	// TokenGroupClose is ')'.
	TokenGroupClose

	// TokenClassOpen is '[' or '[^'.
	TokenClassOpen

	// TokenClassClose is ']' inside a character class.
	TokenClassClose

	// TokenQuantifier is * + ? or a brace form like {2,5}; details in Quant.
	TokenQuantifier

	// TokenBackref is a backreference, numeric (\1, \g{2}) or named
	// (\k<name>, (?P=name)).
	TokenBackref

	// TokenSubroutine is a subroutine call: (?1), (?&name), (?P>name), \g<1>.
	TokenSubroutine

	// TokenUnicodeProp is a Unicode property escape: \p{L}, \P{Greek}, \pL.
	TokenUnicodeProp

	// TokenPosixClass is a POSIX class like [:alpha:] inside a character class.
	TokenPosixClass

	// TokenVerb is a PCRE control verb like (*FAIL) or (*MARK:x).
	TokenVerb

	// TokenFlags is a standalone inline flag setting like (?i) or (?i-m).
	TokenFlags
)

// String returns the token kind name for diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenLiteral:
		return "Literal"
	case TokenCharType:
		return "CharType"
	case TokenDot:
		return "Dot"
	case TokenAnchor:
		return "Anchor"
	case TokenAlternate:
		return "Alternate"
	case TokenGroupOpen:
		return "GroupOpen"
	case TokenGroupClose:
		return "GroupClose"
	case TokenClassOpen:
		return "ClassOpen"
	case TokenClassClose:
		return "ClassClose"
	case TokenQuantifier:
		return "Quantifier"
	case TokenBackref:
		return "Backref"
	case TokenSubroutine:
		return "Subroutine"
	case TokenUnicodeProp:
		return "UnicodeProp"
	case TokenPosixClass:
		return "PosixClass"
	case TokenVerb:
		return "Verb"
	case TokenFlags:
		return "Flags"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// QuantMode distinguishes greedy, lazy and possessive quantifiers.
type QuantMode uint8

const (
	QuantGreedy QuantMode = iota
	QuantLazy
	QuantPossessive
)

// String returns the mode name.
func (m QuantMode) String() string {
	switch m {
	case QuantGreedy:
		return "greedy"
	case QuantLazy:
		return "lazy"
	case QuantPossessive:
		return "possessive"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Quant is a repetition specification. Max == -1 means unbounded.
type Quant struct {
	Min  int
	Max  int
	Mode QuantMode
}

// String renders the quantifier in its source spelling.
func (q Quant) String() string {
	var s string
	switch {
	case q.Min == 0 && q.Max == -1:
		s = "*"
	case q.Min == 1 && q.Max == -1:
		s = "+"
	case q.Min == 0 && q.Max == 1:
		s = "?"
	case q.Max == -1:
		s = fmt.Sprintf("{%d,}", q.Min)
	case q.Min == q.Max:
		s = fmt.Sprintf("{%d}", q.Min)
	default:
		s = fmt.Sprintf("{%d,%d}", q.Min, q.Max)
	}
	switch q.Mode {
	case QuantLazy:
		s += "?"
	case QuantPossessive:
		s += "+"
	}
	return s
}

// AnchorKind identifies a zero-width position assertion.
type AnchorKind uint8

const (
	AnchorLineStart      AnchorKind = iota // ^
	AnchorLineEnd                          // $
	AnchorTextStart                        // \A
	AnchorTextEnd                          // \z
	AnchorTextEndNL                        // \Z
	AnchorWordBoundary                     // \b
	AnchorNoWordBoundary                   // \B
	AnchorMatchStart                       // \G
)

// String returns the source spelling of the anchor.
func (k AnchorKind) String() string {
	switch k {
	case AnchorLineStart:
		return "^"
	case AnchorLineEnd:
		return "$"
	case AnchorTextStart:
		return `\A`
	case AnchorTextEnd:
		return `\z`
	case AnchorTextEndNL:
		return `\Z`
	case AnchorWordBoundary:
		return `\b`
	case AnchorNoWordBoundary:
		return `\B`
	case AnchorMatchStart:
		return `\G`
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// GroupKind identifies which group variant a '(' opened.
type GroupKind uint8

const (
	GroupCapture       GroupKind = iota // (...)
	GroupNonCapture                     // (?:...)
	GroupNamed                          // (?<name>...), (?'name'...), (?P<name>...)
	GroupLookahead                      // (?=...)
	GroupNegLookahead                   // (?!...)
	GroupLookbehind                     // (?<=...)
	GroupNegLookbehind                  // (?<!...)
	GroupAtomic                         // (?>...)
	GroupBranchReset                    // (?|...)
	GroupCond                           // (?(cond)...)
	GroupFlags                          // (?i:...), (?i-m:...)
)

// String returns the group kind name.
func (k GroupKind) String() string {
	switch k {
	case GroupCapture:
		return "capture"
	case GroupNonCapture:
		return "non-capture"
	case GroupNamed:
		return "named"
	case GroupLookahead:
		return "lookahead"
	case GroupNegLookahead:
		return "negative-lookahead"
	case GroupLookbehind:
		return "lookbehind"
	case GroupNegLookbehind:
		return "negative-lookbehind"
	case GroupAtomic:
		return "atomic"
	case GroupBranchReset:
		return "branch-reset"
	case GroupCond:
		return "conditional"
	case GroupFlags:
		return "flags"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// IsLookaround reports whether the group kind is one of the four lookaround
// assertions.
func (k GroupKind) IsLookaround() bool {
	switch k {
	case GroupLookahead, GroupNegLookahead, GroupLookbehind, GroupNegLookbehind:
		return true
	default:
		return false
	}
}

// CondKind classifies the condition of a conditional group.
type CondKind uint8

const (
	CondNone      CondKind = iota
	CondGroup              // (?(1)...), numeric capture reference
	CondName               // (?(<name>)...), (?('name')...), (?(name)...)
	CondDefine             // (?(DEFINE)...)
	CondAssertion          // (?(?=...)...), condition is a lookaround
)

// Cond is the condition attached to a conditional group token.
type Cond struct {
	Kind  CondKind
	Index int
	Name  string
}

// GroupOpen carries the details of a group-open token.
type GroupOpen struct {
	Kind  GroupKind
	Name  string
	Flags string
	Cond  Cond
}

// VerbKind identifies a PCRE control verb.
type VerbKind uint8

const (
	VerbFail       VerbKind = iota // (*FAIL), (*F)
	VerbAccept                     // (*ACCEPT)
	VerbMark                       // (*MARK:name), (*:name)
	VerbCR                         // (*CR)
	VerbLF                         // (*LF)
	VerbCRLF                       // (*CRLF)
	VerbAnyCRLF                    // (*ANYCRLF)
	VerbAnyNewline                 // (*ANY)
	VerbBsrAnyCRLF                 // (*BSR_ANYCRLF)
	VerbBsrUnicode                 // (*BSR_UNICODE)
	VerbUTF                        // (*UTF), (*UTF8)
	VerbUCP                        // (*UCP)
	VerbNotEmpty                   // (*NOTEMPTY)
)

// String returns the canonical verb spelling.
func (k VerbKind) String() string {
	switch k {
	case VerbFail:
		return "FAIL"
	case VerbAccept:
		return "ACCEPT"
	case VerbMark:
		return "MARK"
	case VerbCR:
		return "CR"
	case VerbLF:
		return "LF"
	case VerbCRLF:
		return "CRLF"
	case VerbAnyCRLF:
		return "ANYCRLF"
	case VerbAnyNewline:
		return "ANY"
	case VerbBsrAnyCRLF:
		return "BSR_ANYCRLF"
	case VerbBsrUnicode:
		return "BSR_UNICODE"
	case VerbUTF:
		return "UTF"
	case VerbUCP:
		return "UCP"
	case VerbNotEmpty:
		return "NOTEMPTY"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// verbNames maps verb spellings as they appear in the pattern to their kind.
var verbNames = map[string]VerbKind{
	"FAIL":        VerbFail,
	"F":           VerbFail,
	"ACCEPT":      VerbAccept,
	"MARK":        VerbMark,
	"CR":          VerbCR,
	"LF":          VerbLF,
	"CRLF":        VerbCRLF,
	"ANYCRLF":     VerbAnyCRLF,
	"ANY":         VerbAnyNewline,
	"BSR_ANYCRLF": VerbBsrAnyCRLF,
	"BSR_UNICODE": VerbBsrUnicode,
	"UTF":         VerbUTF,
	"UTF8":        VerbUTF,
	"UCP":         VerbUCP,
	"NOTEMPTY":    VerbNotEmpty,
}

// Token is a position-tagged lexical unit of the pattern body. Pos and End
// are byte offsets into the full input string (including the delimiter), so
// error messages and AST spans line up with what the caller passed in.
type Token struct {
	Kind TokenKind
	Pos  int
	End  int

	// Ch is the resolved code point for TokenLiteral, or the identifying
	// letter for TokenCharType.
	Ch rune

	// Escaped is set on literals produced by a backslash escape. The parser
	// uses it to keep an escaped '-' from acting as a class range operator.
	Escaped bool

	// Negated is set on '[^' class opens and on negated POSIX classes.
	Negated bool

	// Index is the capture number for numeric backrefs and subroutine calls.
	Index int

	// Name holds group, backref and subroutine names, POSIX class names,
	// Unicode property names, verb arguments, and inline flag strings.
	Name string

	Anchor AnchorKind
	Verb   VerbKind
	Quant  Quant
	Group  GroupOpen
}

// String returns a compact description of the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenLiteral:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Ch)
	case TokenCharType:
		return fmt.Sprintf("%s(\\%c)", t.Kind, t.Ch)
	case TokenAnchor:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Anchor)
	case TokenQuantifier:
		return fmt.Sprintf("%s{%d,%d %s}", t.Kind, t.Quant.Min, t.Quant.Max, t.Quant.Mode)
	case TokenGroupOpen:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Group.Kind)
	default:
		return t.Kind.String()
	}
}
