package syntax

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bracketDelims maps opening bracket delimiters to their closing partner.
// Any other punctuation delimiter closes with the same character.
var bracketDelims = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

// SplitDelimiters splits a full pattern string of the form
// "delimiter body delimiter flags" into its delimiter pair, the pattern body,
// the byte offset of the body within the input, and the trailing flag string.
// It fails before any tokenization on a malformed delimiter.
func SplitDelimiters(input string) (Delim, string, int, string, error) {
	if input == "" {
		return Delim{}, "", 0, "", lexErr(0, "empty pattern")
	}
	open, openLen := utf8.DecodeRuneInString(input)
	if open == utf8.RuneError || unicode.IsLetter(open) || unicode.IsDigit(open) ||
		unicode.IsSpace(open) || open == '\\' {
		return Delim{}, "", 0, "", lexErr(0, "delimiter must not be alphanumeric, backslash, or whitespace")
	}

	close, bracket := bracketDelims[open]
	if !bracket {
		close = open
	}
	idx := strings.LastIndex(input[openLen:], string(close))
	if idx < 0 {
		return Delim{}, "", 0, "", lexErr(len(input), "missing closing delimiter %q", close)
	}
	idx += openLen

	body := input[openLen:idx]
	flags := input[idx+utf8.RuneLen(close):]
	return Delim{Open: open, Close: close}, body, openLen, flags, nil
}

// Lexer tokenizes a pattern body into a position-tagged token stream. It is
// single-use: create one per Tokenize call.
type Lexer struct {
	src  string // pattern body, delimiters stripped
	base int    // byte offset of src within the original input
	pos  int    // current byte offset within src

	inClass    bool // between '[' and ']'
	classStart bool // immediately after '[' or '[^', where ']' is a literal
}

// NewLexer creates a lexer for a pattern body. base is the byte offset of
// the body within the original input, so token positions point into what the
// caller passed.
func NewLexer(body string, base int) *Lexer {
	return &Lexer{src: body, base: base}
}

// Tokenize scans the whole body and returns the token stream, terminated by
// a TokenEOF. It fails with a positioned *Error on the first unterminated
// construct or invalid escape; the tokens scanned so far are returned
// alongside the error for tolerant callers.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for l.pos < len(l.src) {
		wasStart := l.classStart
		tok, err := l.scan()
		if err != nil {
			return toks, err
		}
		if l.inClass && wasStart {
			l.classStart = false
		}
		toks = append(toks, tok)
	}
	if l.inClass {
		return toks, lexErr(l.base+len(l.src), "unterminated character class")
	}
	end := l.base + len(l.src)
	return append(toks, Token{Kind: TokenEOF, Pos: end, End: end}), nil
}

func (l *Lexer) scan() (Token, error) {
	if l.inClass {
		return l.scanClass()
	}
	return l.scanMain()
}

// tok builds a token spanning from start to the current position.
func (l *Lexer) tok(kind TokenKind, start int) Token {
	return Token{Kind: kind, Pos: l.base + start, End: l.base + l.pos}
}

func (l *Lexer) byteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) scanMain() (Token, error) {
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch r {
	case '\\':
		l.pos += size
		return l.scanEscape(start)
	case '(':
		l.pos += size
		return l.scanGroup(start)
	case ')':
		l.pos += size
		return l.tok(TokenGroupClose, start), nil
	case '|':
		l.pos += size
		return l.tok(TokenAlternate, start), nil
	case '[':
		l.pos += size
		neg := false
		if l.byteAt(0) == '^' {
			neg = true
			l.pos++
		}
		l.inClass, l.classStart = true, true
		t := l.tok(TokenClassOpen, start)
		t.Negated = neg
		return t, nil
	case '.':
		l.pos += size
		return l.tok(TokenDot, start), nil
	case '^':
		l.pos += size
		t := l.tok(TokenAnchor, start)
		t.Anchor = AnchorLineStart
		return t, nil
	case '$':
		l.pos += size
		t := l.tok(TokenAnchor, start)
		t.Anchor = AnchorLineEnd
		return t, nil
	case '*':
		l.pos += size
		return l.quantTok(start, 0, -1), nil
	case '+':
		l.pos += size
		return l.quantTok(start, 1, -1), nil
	case '?':
		l.pos += size
		return l.quantTok(start, 0, 1), nil
	case '{':
		if t, ok := l.scanBrace(start); ok {
			return t, nil
		}
		l.pos += size
		return l.literalTok(start, r, false), nil
	default:
		l.pos += size
		return l.literalTok(start, r, false), nil
	}
}

func (l *Lexer) literalTok(start int, r rune, escaped bool) Token {
	t := l.tok(TokenLiteral, start)
	t.Ch = r
	t.Escaped = escaped
	return t
}

// quantTok builds a quantifier token, consuming a trailing lazy '?' or
// possessive '+' suffix.
func (l *Lexer) quantTok(start int, min, max int) Token {
	mode := QuantGreedy
	switch l.byteAt(0) {
	case '?':
		mode = QuantLazy
		l.pos++
	case '+':
		mode = QuantPossessive
		l.pos++
	}
	t := l.tok(TokenQuantifier, start)
	t.Quant = Quant{Min: min, Max: max, Mode: mode}
	return t
}

// scanBrace tries to read a {m}, {m,}, {m,n} or {,n} quantifier starting at
// the '{'. It reports false without consuming anything when the braces do
// not form a quantifier, in which case '{' is an ordinary literal.
func (l *Lexer) scanBrace(start int) (Token, bool) {
	i := start + 1
	digits := func() string {
		j := i
		for j < len(l.src) && l.src[j] >= '0' && l.src[j] <= '9' {
			j++
		}
		s := l.src[i:j]
		i = j
		return s
	}

	minStr := digits()
	maxStr := minStr
	hasComma := false
	if i < len(l.src) && l.src[i] == ',' {
		hasComma = true
		i++
		maxStr = digits()
	}
	if i >= len(l.src) || l.src[i] != '}' {
		return Token{}, false
	}
	if minStr == "" && maxStr == "" {
		return Token{}, false // "{}" or "{,}"
	}

	min := 0
	if minStr != "" {
		v, err := strconv.Atoi(minStr)
		if err != nil {
			return Token{}, false
		}
		min = v
	}
	max := min
	if hasComma {
		if maxStr == "" {
			max = -1
		} else {
			v, err := strconv.Atoi(maxStr)
			if err != nil {
				return Token{}, false
			}
			max = v
		}
	}

	l.pos = i + 1
	return l.quantTok(start, min, max), true
}

// anchorEscapes maps escape letters to anchors outside character classes.
var anchorEscapes = map[rune]AnchorKind{
	'A': AnchorTextStart,
	'z': AnchorTextEnd,
	'Z': AnchorTextEndNL,
	'b': AnchorWordBoundary,
	'B': AnchorNoWordBoundary,
	'G': AnchorMatchStart,
}

// controlEscapes maps escape letters that resolve to a literal character
// value at lex time.
var controlEscapes = map[rune]rune{
	't': '\t',
	'n': '\n',
	'r': '\r',
	'f': '\f',
	'e': 0x1B,
	'a': 0x07,
}

// scanEscape scans the escape sequence following a consumed backslash.
// start is the offset of the backslash.
func (l *Lexer) scanEscape(start int) (Token, error) {
	if l.pos >= len(l.src) {
		return Token{}, lexErr(l.base+start, "pattern may not end with a backslash")
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size

	switch r {
	case 'd', 'D', 's', 'S', 'w', 'W', 'h', 'H', 'v', 'V':
		t := l.tok(TokenCharType, start)
		t.Ch = r
		return t, nil

	case 'R', 'N':
		if l.inClass {
			return Token{}, lexErr(l.base+start, `\%c is not allowed in a character class`, r)
		}
		t := l.tok(TokenCharType, start)
		t.Ch = r
		return t, nil

	case 'b':
		if l.inClass {
			// Inside a class \b is the backspace character.
			return l.literalTok(start, 0x08, true), nil
		}
		t := l.tok(TokenAnchor, start)
		t.Anchor = AnchorWordBoundary
		return t, nil

	case 'A', 'z', 'Z', 'B', 'G':
		if l.inClass {
			return Token{}, lexErr(l.base+start, `invalid escape sequence \%c in character class`, r)
		}
		t := l.tok(TokenAnchor, start)
		t.Anchor = anchorEscapes[r]
		return t, nil

	case 't', 'n', 'r', 'f', 'e', 'a':
		return l.literalTok(start, controlEscapes[r], true), nil

	case '0':
		return l.scanOctalShort(start), nil

	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if l.inClass {
			if r > '7' {
				return Token{}, lexErr(l.base+start, `invalid escape sequence \%c in character class`, r)
			}
			l.pos -= size // reread the first digit as octal
			return l.scanOctalShort(start), nil
		}
		num := string(r)
		for l.byteAt(0) >= '0' && l.byteAt(0) <= '9' {
			num += string(rune(l.src[l.pos]))
			l.pos++
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return Token{}, lexErr(l.base+start, "backreference number too large")
		}
		t := l.tok(TokenBackref, start)
		t.Index = n
		return t, nil

	case 'x':
		return l.scanHex(start)

	case 'o':
		return l.scanOctalBrace(start)

	case 'p', 'P':
		return l.scanUnicodeProp(start, r == 'P')

	case 'k':
		if l.inClass {
			return Token{}, lexErr(l.base+start, `invalid escape sequence \k in character class`)
		}
		return l.scanNamedBackref(start)

	case 'g':
		if l.inClass {
			return Token{}, lexErr(l.base+start, `invalid escape sequence \g in character class`)
		}
		return l.scanGEscape(start)

	default:
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return Token{}, lexErr(l.base+start, `unrecognized escape sequence \%c`, r)
		}
		return l.literalTok(start, r, true), nil
	}
}

// scanOctalShort reads up to two further octal digits after \0, or up to
// three digits for in-class octal escapes.
func (l *Lexer) scanOctalShort(start int) Token {
	val := rune(0)
	for i := 0; i < 3 && l.byteAt(0) >= '0' && l.byteAt(0) <= '7'; i++ {
		val = val*8 + rune(l.src[l.pos]-'0')
		l.pos++
	}
	return l.literalTok(start, val, true)
}

// scanHex reads \xhh or \x{h..h}.
func (l *Lexer) scanHex(start int) (Token, error) {
	if l.byteAt(0) == '{' {
		l.pos++
		end := strings.IndexByte(l.src[l.pos:], '}')
		if end < 0 {
			return Token{}, lexErr(l.base+start, `unterminated \x{...} escape`)
		}
		digits := l.src[l.pos : l.pos+end]
		if digits == "" {
			return Token{}, lexErr(l.base+start, `empty \x{...} escape`)
		}
		v, err := strconv.ParseInt(digits, 16, 32)
		if err != nil {
			return Token{}, lexErr(l.base+start, `invalid hexadecimal digits in \x{...}`)
		}
		if v > int64(unicode.MaxRune) {
			return Token{}, lexErr(l.base+start, `code point \x{%s} is too large`, digits)
		}
		l.pos += end + 1
		return l.literalTok(start, rune(v), true), nil
	}

	val := rune(0)
	for i := 0; i < 2; i++ {
		c := l.byteAt(0)
		d, ok := hexDigit(c)
		if !ok {
			break
		}
		val = val*16 + d
		l.pos++
	}
	return l.literalTok(start, val, true), nil
}

func hexDigit(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	default:
		return 0, false
	}
}

// scanOctalBrace reads \o{d..d}.
func (l *Lexer) scanOctalBrace(start int) (Token, error) {
	if l.byteAt(0) != '{' {
		return Token{}, lexErr(l.base+start, `missing opening brace after \o`)
	}
	l.pos++
	end := strings.IndexByte(l.src[l.pos:], '}')
	if end < 0 {
		return Token{}, lexErr(l.base+start, `unterminated \o{...} escape`)
	}
	digits := l.src[l.pos : l.pos+end]
	v, err := strconv.ParseInt(digits, 8, 32)
	if err != nil || digits == "" {
		return Token{}, lexErr(l.base+start, `invalid octal digits in \o{...}`)
	}
	if v > int64(unicode.MaxRune) {
		return Token{}, lexErr(l.base+start, `code point \o{%s} is too large`, digits)
	}
	l.pos += end + 1
	return l.literalTok(start, rune(v), true), nil
}

// scanUnicodeProp reads \p{Name}, \P{Name}, \p{^Name}, or single-letter \pL.
func (l *Lexer) scanUnicodeProp(start int, negated bool) (Token, error) {
	if l.byteAt(0) == '{' {
		l.pos++
		end := strings.IndexByte(l.src[l.pos:], '}')
		if end < 0 {
			return Token{}, lexErr(l.base+start, `unterminated \p{...} escape`)
		}
		name := l.src[l.pos : l.pos+end]
		if strings.HasPrefix(name, "^") {
			negated = !negated
			name = name[1:]
		}
		if name == "" {
			return Token{}, lexErr(l.base+start, `empty property name in \p{}`)
		}
		l.pos += end + 1
		t := l.tok(TokenUnicodeProp, start)
		t.Name = name
		t.Negated = negated
		return t, nil
	}

	c := l.byteAt(0)
	if !isASCIILetter(c) {
		return Token{}, lexErr(l.base+start, `malformed \p escape`)
	}
	l.pos++
	t := l.tok(TokenUnicodeProp, start)
	t.Name = string(rune(c))
	t.Negated = negated
	return t, nil
}

// scanNamedBackref reads \k<name>, \k'name', or \k{name}.
func (l *Lexer) scanNamedBackref(start int) (Token, error) {
	var term byte
	switch l.byteAt(0) {
	case '<':
		term = '>'
	case '\'':
		term = '\''
	case '{':
		term = '}'
	default:
		return Token{}, lexErr(l.base+start, `malformed \k backreference`)
	}
	l.pos++
	name, err := l.scanName(start, term)
	if err != nil {
		return Token{}, err
	}
	t := l.tok(TokenBackref, start)
	t.Name = name
	return t, nil
}

// scanGEscape reads the \g family: \g1 and \g{1} backreferences (optionally
// relative, like \g{-2}), and \g<1> / \g'name' subroutine calls.
func (l *Lexer) scanGEscape(start int) (Token, error) {
	switch c := l.byteAt(0); {
	case c == '<' || c == '\'':
		term := byte('>')
		if c == '\'' {
			term = '\''
		}
		l.pos++
		name, err := l.scanRef(start, term)
		if err != nil {
			return Token{}, err
		}
		t := l.tok(TokenSubroutine, start)
		if n, err := strconv.Atoi(name); err == nil {
			t.Index = n
		} else {
			t.Name = name
		}
		return t, nil

	case c == '{':
		l.pos++
		ref, err := l.scanRef(start, '}')
		if err != nil {
			return Token{}, err
		}
		t := l.tok(TokenBackref, start)
		if n, err := strconv.Atoi(ref); err == nil {
			t.Index = n
		} else {
			t.Name = ref
		}
		return t, nil

	case c == '-' || (c >= '0' && c <= '9'):
		j := l.pos
		if c == '-' {
			j++
		}
		for j < len(l.src) && l.src[j] >= '0' && l.src[j] <= '9' {
			j++
		}
		n, err := strconv.Atoi(l.src[l.pos:j])
		if err != nil {
			return Token{}, lexErr(l.base+start, `malformed \g escape`)
		}
		l.pos = j
		t := l.tok(TokenBackref, start)
		t.Index = n
		return t, nil

	default:
		return Token{}, lexErr(l.base+start, `malformed \g escape`)
	}
}

// scanName reads a group name up to term. Names are [A-Za-z_][A-Za-z0-9_]*.
func (l *Lexer) scanName(start int, term byte) (string, error) {
	end := strings.IndexByte(l.src[l.pos:], term)
	if end < 0 {
		return "", lexErr(l.base+start, "unterminated group name")
	}
	name := l.src[l.pos : l.pos+end]
	if !validName(name) {
		return "", lexErr(l.base+start, "invalid group name %q", name)
	}
	l.pos += end + 1
	return name, nil
}

// scanRef reads a group reference up to term: a name, or a possibly signed
// number.
func (l *Lexer) scanRef(start int, term byte) (string, error) {
	end := strings.IndexByte(l.src[l.pos:], term)
	if end < 0 {
		return "", lexErr(l.base+start, "unterminated group reference")
	}
	ref := l.src[l.pos : l.pos+end]
	if ref == "" {
		return "", lexErr(l.base+start, "empty group reference")
	}
	if !validName(ref) {
		if _, err := strconv.Atoi(ref); err != nil {
			return "", lexErr(l.base+start, "invalid group reference %q", ref)
		}
	}
	l.pos += end + 1
	return ref, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// scanGroup scans everything after a consumed '(' and classifies the group
// variant.
func (l *Lexer) scanGroup(start int) (Token, error) {
	if l.byteAt(0) == '*' {
		return l.scanVerb(start)
	}
	if l.byteAt(0) != '?' {
		t := l.tok(TokenGroupOpen, start)
		t.Group = GroupOpen{Kind: GroupCapture}
		return t, nil
	}
	l.pos++ // '?'
	if l.pos >= len(l.src) {
		return Token{}, lexErr(l.base+start, "unterminated group")
	}

	groupTok := func(kind GroupKind) (Token, error) {
		t := l.tok(TokenGroupOpen, start)
		t.Group = GroupOpen{Kind: kind}
		return t, nil
	}

	switch c := l.src[l.pos]; c {
	case ':':
		l.pos++
		return groupTok(GroupNonCapture)
	case '=':
		l.pos++
		return groupTok(GroupLookahead)
	case '!':
		l.pos++
		return groupTok(GroupNegLookahead)
	case '>':
		l.pos++
		return groupTok(GroupAtomic)
	case '|':
		l.pos++
		return groupTok(GroupBranchReset)

	case '<':
		switch l.byteAt(1) {
		case '=':
			l.pos += 2
			return groupTok(GroupLookbehind)
		case '!':
			l.pos += 2
			return groupTok(GroupNegLookbehind)
		default:
			l.pos++
			name, err := l.scanName(start, '>')
			if err != nil {
				return Token{}, err
			}
			t := l.tok(TokenGroupOpen, start)
			t.Group = GroupOpen{Kind: GroupNamed, Name: name}
			return t, nil
		}

	case '\'':
		l.pos++
		name, err := l.scanName(start, '\'')
		if err != nil {
			return Token{}, err
		}
		t := l.tok(TokenGroupOpen, start)
		t.Group = GroupOpen{Kind: GroupNamed, Name: name}
		return t, nil

	case 'P':
		l.pos++
		switch l.byteAt(0) {
		case '<':
			l.pos++
			name, err := l.scanName(start, '>')
			if err != nil {
				return Token{}, err
			}
			t := l.tok(TokenGroupOpen, start)
			t.Group = GroupOpen{Kind: GroupNamed, Name: name}
			return t, nil
		case '=':
			l.pos++
			name, err := l.scanName(start, ')')
			if err != nil {
				return Token{}, err
			}
			t := l.tok(TokenBackref, start)
			t.Name = name
			return t, nil
		case '>':
			l.pos++
			name, err := l.scanName(start, ')')
			if err != nil {
				return Token{}, err
			}
			t := l.tok(TokenSubroutine, start)
			t.Name = name
			return t, nil
		default:
			return Token{}, lexErr(l.base+start, "unrecognized group syntax (?P")
		}

	case '(':
		l.pos++
		return l.scanCond(start)

	case '&':
		l.pos++
		name, err := l.scanName(start, ')')
		if err != nil {
			return Token{}, err
		}
		t := l.tok(TokenSubroutine, start)
		t.Name = name
		return t, nil

	case 'R':
		if l.byteAt(1) == ')' {
			l.pos += 2
			return l.tok(TokenSubroutine, start), nil
		}
		return Token{}, lexErr(l.base+start, "unrecognized group syntax (?R")

	case '+':
		return l.scanNumericCall(start)

	case '-':
		if d := l.byteAt(1); d >= '0' && d <= '9' {
			return l.scanNumericCall(start)
		}
		return l.scanInlineFlags(start)

	default:
		if c >= '0' && c <= '9' {
			return l.scanNumericCall(start)
		}
		return l.scanInlineFlags(start)
	}
}

// scanNumericCall reads (?1), (?-1), (?+1) subroutine calls; l.pos is at the
// sign or first digit.
func (l *Lexer) scanNumericCall(start int) (Token, error) {
	j := l.pos
	if c := l.src[j]; c == '-' || c == '+' {
		j++
	}
	for j < len(l.src) && l.src[j] >= '0' && l.src[j] <= '9' {
		j++
	}
	if j >= len(l.src) || l.src[j] != ')' {
		return Token{}, lexErr(l.base+start, "unterminated subroutine call")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(l.src[l.pos:j], "+"))
	if err != nil {
		return Token{}, lexErr(l.base+start, "malformed subroutine call")
	}
	l.pos = j + 1
	t := l.tok(TokenSubroutine, start)
	t.Index = n
	return t, nil
}

// scanInlineFlags reads (?flags) and (?flags:...). The flag characters are
// collected raw here; the parser validates them against the allow-list.
func (l *Lexer) scanInlineFlags(start int) (Token, error) {
	j := l.pos
	for j < len(l.src) && (isASCIILetter(l.src[j]) || l.src[j] == '-') {
		j++
	}
	if j >= len(l.src) {
		return Token{}, lexErr(l.base+start, "unterminated group")
	}
	flags := l.src[l.pos:j]
	switch l.src[j] {
	case ')':
		l.pos = j + 1
		t := l.tok(TokenFlags, start)
		t.Name = flags
		return t, nil
	case ':':
		l.pos = j + 1
		t := l.tok(TokenGroupOpen, start)
		t.Group = GroupOpen{Kind: GroupFlags, Flags: flags}
		return t, nil
	default:
		return Token{}, lexErr(l.base+start, "unrecognized group syntax (?%s", l.src[l.pos:j+1])
	}
}

// scanCond reads the condition of a conditional group; l.pos is right after
// the second '(' of "(?(". For assertion conditions the inner '(' is pushed
// back so the lookaround is scanned as its own group-open token.
func (l *Lexer) scanCond(start int) (Token, error) {
	if l.pos >= len(l.src) {
		return Token{}, lexErr(l.base+start, "unterminated conditional group")
	}
	if l.src[l.pos] == '?' {
		l.pos-- // reread the '(' as the lookaround's own opener
		t := l.tok(TokenGroupOpen, start)
		t.Group = GroupOpen{Kind: GroupCond, Cond: Cond{Kind: CondAssertion}}
		return t, nil
	}

	end := strings.IndexByte(l.src[l.pos:], ')')
	if end < 0 {
		return Token{}, lexErr(l.base+start, "unterminated conditional group")
	}
	content := l.src[l.pos : l.pos+end]
	l.pos += end + 1

	cond := Cond{}
	switch {
	case content == "DEFINE":
		cond.Kind = CondDefine
	case len(content) >= 2 && content[0] == '<' && content[len(content)-1] == '>':
		cond = Cond{Kind: CondName, Name: content[1 : len(content)-1]}
	case len(content) >= 2 && content[0] == '\'' && content[len(content)-1] == '\'':
		cond = Cond{Kind: CondName, Name: content[1 : len(content)-1]}
	default:
		if n, err := strconv.Atoi(content); err == nil {
			cond = Cond{Kind: CondGroup, Index: n}
		} else if validName(content) {
			cond = Cond{Kind: CondName, Name: content}
		} else {
			return Token{}, lexErr(l.base+start, "malformed condition %q", content)
		}
	}
	if cond.Kind == CondName && !validName(cond.Name) {
		return Token{}, lexErr(l.base+start, "invalid group name %q in condition", cond.Name)
	}

	t := l.tok(TokenGroupOpen, start)
	t.Group = GroupOpen{Kind: GroupCond, Cond: cond}
	return t, nil
}

// scanVerb reads a (*VERB) or (*VERB:arg) construct; l.pos is at the '*'.
func (l *Lexer) scanVerb(start int) (Token, error) {
	l.pos++ // '*'
	end := strings.IndexByte(l.src[l.pos:], ')')
	if end < 0 {
		return Token{}, lexErr(l.base+start, "unterminated verb")
	}
	content := l.src[l.pos : l.pos+end]
	l.pos += end + 1

	name, arg := content, ""
	if colon := strings.IndexByte(content, ':'); colon >= 0 {
		name, arg = content[:colon], content[colon+1:]
		if name == "" {
			name = "MARK" // (*:label) is shorthand for (*MARK:label)
		}
	}
	kind, ok := verbNames[name]
	if !ok {
		return Token{}, lexErr(l.base+start, "unrecognized verb (*%s)", name)
	}
	t := l.tok(TokenVerb, start)
	t.Verb = kind
	t.Name = arg
	return t, nil
}

// posixClassNames is the set of recognized [:name:] classes.
var posixClassNames = map[string]bool{
	"alnum": true, "alpha": true, "ascii": true, "blank": true,
	"cntrl": true, "digit": true, "graph": true, "lower": true,
	"print": true, "punct": true, "space": true, "upper": true,
	"word": true, "xdigit": true,
}

func (l *Lexer) scanClass() (Token, error) {
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch r {
	case ']':
		l.pos += size
		if l.classStart {
			// ']' immediately after '[' or '[^' is a literal.
			return l.literalTok(start, r, false), nil
		}
		l.inClass = false
		return l.tok(TokenClassClose, start), nil

	case '[':
		if l.byteAt(1) == ':' {
			return l.scanPosixClass(start)
		}
		l.pos += size
		return l.literalTok(start, r, false), nil

	case '\\':
		l.pos += size
		return l.scanEscape(start)

	default:
		l.pos += size
		return l.literalTok(start, r, false), nil
	}
}

// scanPosixClass reads [:name:] or [:^name:] inside a character class.
func (l *Lexer) scanPosixClass(start int) (Token, error) {
	rest := l.src[l.pos+2:]
	end := strings.Index(rest, ":]")
	if end < 0 {
		// No ':]' terminator; the '[' is an ordinary literal.
		l.pos++
		return l.literalTok(start, '[', false), nil
	}
	name := rest[:end]
	negated := false
	if strings.HasPrefix(name, "^") {
		negated = true
		name = name[1:]
	}
	if !posixClassNames[name] {
		return Token{}, lexErr(l.base+start, "unknown POSIX class [:%s:]", name)
	}
	l.pos += 2 + end + 2
	t := l.tok(TokenPosixClass, start)
	t.Name = name
	t.Negated = negated
	return t, nil
}
