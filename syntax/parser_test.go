package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *Regex {
	t.Helper()
	re, err := Parse(input)
	require.NoError(t, err)
	require.NotNil(t, re)
	return re
}

func requireParseError(t *testing.T, input, msg string) {
	t.Helper()
	_, err := Parse(input)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Contains(t, err.Error(), msg)
}

func TestParseSimple(t *testing.T) {
	re := mustParse(t, "/ab|c/")
	alt, ok := re.Expr.(*Alternation)
	require.True(t, ok)
	require.Len(t, alt.Alts, 2)

	seq, ok := alt.Alts[0].(*Sequence)
	require.True(t, ok)
	require.Len(t, seq.Items, 2)

	lit, ok := alt.Alts[1].(*Literal)
	require.True(t, ok)
	require.Equal(t, 'c', lit.Ch)
}

func TestParseSingleAtomCollapses(t *testing.T) {
	re := mustParse(t, "/a/")
	_, ok := re.Expr.(*Literal)
	require.True(t, ok)
}

func TestParseEmptyAlternative(t *testing.T) {
	re := mustParse(t, "/a|/")
	alt := re.Expr.(*Alternation)
	require.Len(t, alt.Alts, 2)
	seq, ok := alt.Alts[1].(*Sequence)
	require.True(t, ok)
	require.Empty(t, seq.Items)
}

func TestParseQuantifier(t *testing.T) {
	re := mustParse(t, "/a{2,5}?/")
	q, ok := re.Expr.(*Quantifier)
	require.True(t, ok)
	require.Equal(t, 2, q.Min)
	require.Equal(t, 5, q.Max)
	require.Equal(t, QuantLazy, q.Mode)
	_, ok = q.Expr.(*Literal)
	require.True(t, ok)
}

func TestParseQuantifierErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"nothing to repeat", "/*a/", "nothing to repeat"},
		{"leading question mark", "/?/", "nothing to repeat"},
		{"after alternation bar", "/a|*b/", "nothing to repeat"},
		{"min exceeds max", "/a{3,1}/", "{3,1}"},
		{"after anchor", "/^*/", "anchor"},
		{"after lookahead", "/(?=a)+/", "zero-width assertion"},
		{"double quantifier", "/a*+*/", "follows another quantifier"},
		{"after verb", "/(*FAIL)?/", "verb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireParseError(t, tt.input, tt.msg)
		})
	}
}

func TestParseClassRange(t *testing.T) {
	re := mustParse(t, "/[a-f0-9_]/")
	cc := re.Expr.(*CharClass)
	require.Len(t, cc.Items, 3)

	r0 := cc.Items[0].(*ClassRange)
	require.Equal(t, 'a', r0.Lo.Ch)
	require.Equal(t, 'f', r0.Hi.Ch)
	r1 := cc.Items[1].(*ClassRange)
	require.Equal(t, '0', r1.Lo.Ch)
	require.Equal(t, '9', r1.Hi.Ch)
	lit := cc.Items[2].(*Literal)
	require.Equal(t, '_', lit.Ch)
}

func TestParseClassHyphenDemotion(t *testing.T) {
	// A hyphen adjacent to a char-type escape is a literal, never a range
	// operator.
	re := mustParse(t, `/[\w-_]/`)
	cc := re.Expr.(*CharClass)
	require.Len(t, cc.Items, 3)
	ct := cc.Items[0].(*CharType)
	require.Equal(t, 'w', ct.Ch)
	require.Equal(t, '-', cc.Items[1].(*Literal).Ch)
	require.Equal(t, '_', cc.Items[2].(*Literal).Ch)

	re = mustParse(t, `/[a-\d]/`)
	cc = re.Expr.(*CharClass)
	require.Len(t, cc.Items, 3)
	require.Equal(t, 'a', cc.Items[0].(*Literal).Ch)
	require.Equal(t, '-', cc.Items[1].(*Literal).Ch)
	_, ok := cc.Items[2].(*CharType)
	require.True(t, ok)
}

func TestParseClassTrailingHyphen(t *testing.T) {
	re := mustParse(t, "/[a-]/")
	cc := re.Expr.(*CharClass)
	require.Len(t, cc.Items, 2)
	require.Equal(t, 'a', cc.Items[0].(*Literal).Ch)
	require.Equal(t, '-', cc.Items[1].(*Literal).Ch)
}

func TestParseClassEscapedHyphenNeverRanges(t *testing.T) {
	re := mustParse(t, `/[a\-z]/`)
	cc := re.Expr.(*CharClass)
	require.Len(t, cc.Items, 3)
}

func TestParseClassRangeOutOfOrder(t *testing.T) {
	requireParseError(t, "/[z-a]/", "out of order")
}

func TestParseFlags(t *testing.T) {
	re := mustParse(t, "/a/imsx")
	require.Equal(t, "imsx", re.Flags)

	requireParseError(t, "/a/q", "unknown modifier 'q'")
	requireParseError(t, "/(?q)a/", "unknown modifier 'q'")
	requireParseError(t, "/(?y:a)/", "unknown modifier 'y'")
}

func TestParseGroupNumbering(t *testing.T) {
	re := mustParse(t, "/(a)(?<x>b)(?:c)((d))/")
	n := Numbering(re)
	require.Equal(t, 4, n.MaxIndex)
	require.Equal(t, []int{1, 2, 3, 4}, n.Order)
	require.Equal(t, map[string][]int{"x": {2}}, n.Names)

	g := ByIndex(re, 2)
	require.NotNil(t, g)
	require.Equal(t, "x", g.Name)
}

func TestParseBranchResetNumbering(t *testing.T) {
	// Alternatives of (?|...) share capture indexes; numbering after the
	// group continues past the widest alternative.
	re := mustParse(t, "/(?|(a)(b)|(c))(d)/")
	n := Numbering(re)
	require.Equal(t, 3, n.MaxIndex)
	require.Equal(t, []int{1, 2, 1, 3}, n.Order)
}

func TestParseBranchResetDuplicateNames(t *testing.T) {
	re := mustParse(t, "/(?|(?<v>a)|(?<v>b))/")
	n := Numbering(re)
	require.Equal(t, []int{1, 1}, n.Names["v"])
}

func TestParseConditionals(t *testing.T) {
	re := mustParse(t, "/(a)(?(1)b|c)/")
	seq := re.Expr.(*Sequence)
	g := seq.Items[1].(*Group)
	require.Equal(t, GroupCond, g.Kind)
	require.Equal(t, Cond{Kind: CondGroup, Index: 1}, g.Cond)

	mustParse(t, "/(?(?=x)a|b)/")
	mustParse(t, "/(?(DEFINE)(?<n>a))/")
	mustParse(t, "/(?<n>a)(?(<n>)b|c)/")
}

func TestParseConditionalErrors(t *testing.T) {
	requireParseError(t, "/(?(1)a|b|c)/", "more than two branches")
	requireParseError(t, "/(?(DEFINE)a|b)/", "may not contain alternatives")
	requireParseError(t, "/(?(1x)a)/", "malformed condition")
	requireParseError(t, "/(?(0)a)/", "group 0") // group 0 cannot be tested
}

func TestParseConditionalAssertionShape(t *testing.T) {
	requireParseError(t, "/(?(?!)/", "")
	_, err := Parse("/(?(?=x)a)/")
	require.NoError(t, err)
}

func TestParseUnbalancedGroups(t *testing.T) {
	requireParseError(t, "/(a/", "missing closing parenthesis")
	requireParseError(t, "/a)/", "unmatched closing parenthesis")
}

func TestParseNestedGroups(t *testing.T) {
	re := mustParse(t, "/((?:a|b)+c)?/")
	q := re.Expr.(*Quantifier)
	outer := q.Expr.(*Group)
	require.Equal(t, GroupCapture, outer.Kind)
	require.Equal(t, 1, outer.Index)
}

func TestParseVerbs(t *testing.T) {
	re := mustParse(t, "/a(*MARK:x)b/")
	seq := re.Expr.(*Sequence)
	v := seq.Items[1].(*Verb)
	require.Equal(t, VerbMark, v.Kind)
	require.Equal(t, "x", v.Arg)
}

func TestParseSpans(t *testing.T) {
	re := mustParse(t, "/ab/")
	require.Equal(t, Span{Start: 0, End: 4}, re.Span)
	seq := re.Expr.(*Sequence)
	require.Equal(t, Span{Start: 1, End: 2}, seq.Items[0].Pos())
	require.Equal(t, Span{Start: 2, End: 3}, seq.Items[1].Pos())
}

func TestParseTolerant(t *testing.T) {
	re, errs := ParseTolerant("/a)*b\\q/")
	require.NotNil(t, re)
	require.NotEmpty(t, errs)
	for _, e := range errs {
		require.NotZero(t, e.Error())
	}
}

func TestParseTolerantCollectsMultiple(t *testing.T) {
	_, errs := ParseTolerant("/*a{3,1}/")
	require.GreaterOrEqual(t, len(errs), 2)
}

func TestWalkVisitsAllNodes(t *testing.T) {
	re := mustParse(t, "/(a|[b-d])+\\w/")
	var count int
	Walk(re.Expr, func(Node) bool {
		count++
		return true
	})
	// sequence, quantifier, group, alternation, literal, class, range,
	// 2 range endpoints, char type
	require.Equal(t, 10, count)
}
