package charset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Range
		want []Range
	}{
		{"sorted", []Range{{'a', 'c'}, {'x', 'z'}}, []Range{{'a', 'c'}, {'x', 'z'}}},
		{"unsorted", []Range{{'x', 'z'}, {'a', 'c'}}, []Range{{'a', 'c'}, {'x', 'z'}}},
		{"overlap", []Range{{'a', 'm'}, {'g', 'z'}}, []Range{{'a', 'z'}}},
		{"adjacent", []Range{{'a', 'm'}, {'n', 'z'}}, []Range{{'a', 'z'}}},
		{"duplicate", []Range{{'a', 'z'}, {'a', 'z'}}, []Range{{'a', 'z'}}},
		{"inverted dropped", []Range{{'z', 'a'}}, nil},
		{"contained", []Range{{'a', 'z'}, {'c', 'f'}}, []Range{{'a', 'z'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(MinCodePoint, MaxCodePoint, tt.in...)
			require.Equal(t, tt.want, got.ranges)
		})
	}
}

func TestSet_WindowClipping(t *testing.T) {
	// Ranges fully outside the window are dropped, straddling ranges clipped.
	s := New('a', 'z', Range{'0', '9'}, Range{'x', '~'}, Range{'b', 'd'})
	require.Equal(t, []Range{{'b', 'd'}, {'x', 'z'}}, s.ranges)
}

func TestSet_Contains(t *testing.T) {
	s := New(MinCodePoint, MaxCodePoint, Range{'a', 'f'}, Range{'0', '9'}, Range{'x', 'x'})
	for _, r := range "abcdef0189x" {
		require.True(t, s.Contains(r), "expected %q in set", r)
	}
	for _, r := range "gwyzABC /" {
		require.False(t, s.Contains(r), "expected %q not in set", r)
	}
}

func TestSet_Subtract(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want []Range
	}{
		{
			"middle hole",
			FromRange(5, 10),
			FromRange(7, 8),
			[]Range{{5, 6}, {9, 10}},
		},
		{
			"left edge",
			FromRange(5, 10),
			FromRange(0, 6),
			[]Range{{7, 10}},
		},
		{
			"right edge",
			FromRange(5, 10),
			FromRange(9, 20),
			[]Range{{5, 8}},
		},
		{
			"full cover",
			FromRange(5, 10),
			FromRange(0, 20),
			nil,
		},
		{
			"disjoint",
			FromRange(5, 10),
			FromRange(20, 30),
			[]Range{{5, 10}},
		},
		{
			"multiple holes",
			FromRange('a', 'z'),
			FromRunes('c', 'm', 'x'),
			[]Range{{'a', 'b'}, {'d', 'l'}, {'n', 'w'}, {'y', 'z'}},
		},
		{
			"empty subtrahend",
			FromRange(5, 10),
			Empty(),
			[]Range{{5, 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Subtract(tt.b).ranges)
		})
	}
}

func TestSet_Intersect(t *testing.T) {
	a := New(MinCodePoint, MaxCodePoint, Range{'a', 'm'}, Range{'p', 'z'})
	b := New(MinCodePoint, MaxCodePoint, Range{'g', 's'})
	require.Equal(t, []Range{{'g', 'm'}, {'p', 's'}}, a.Intersect(b).ranges)

	require.True(t, a.Intersect(Empty()).IsEmpty())
	require.True(t, Empty().Intersect(a).IsEmpty())
}

func TestSet_Complement(t *testing.T) {
	s := New('a', 'z', Range{'d', 'f'}, Range{'x', 'z'})
	require.Equal(t, []Range{{'a', 'c'}, {'g', 'w'}}, s.Complement().ranges)

	// Complement of empty is the full window; complement of full is empty.
	require.Equal(t, []Range{{'a', 'z'}}, New('a', 'z').Complement().ranges)
	require.True(t, New('a', 'z', Range{'a', 'z'}).Complement().IsEmpty())
}

func TestSet_BoundsReconciliation(t *testing.T) {
	a := New(0, 100, Range{10, 20})
	b := New(50, 200, Range{60, 70})
	u := a.Union(b)
	require.Equal(t, rune(0), u.Min())
	require.Equal(t, rune(200), u.Max())
}

// TestSet_AlgebraProperties exercises the algebraic laws over randomized
// interval lists within a shared window.
func TestSet_AlgebraProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const min, max = 0, 512

	randomSet := func() Set {
		n := rng.Intn(6)
		rs := make([]Range, 0, n)
		for i := 0; i < n; i++ {
			lo := rune(rng.Intn(max))
			hi := lo + rune(rng.Intn(40))
			rs = append(rs, Range{Lo: lo, Hi: hi})
		}
		return New(min, max, rs...)
	}

	for trial := 0; trial < 200; trial++ {
		a, b := randomSet(), randomSet()

		union := a.Union(b)
		for r := rune(min); r <= max; r++ {
			require.Equal(t, a.Contains(r) || b.Contains(r), union.Contains(r),
				"union membership mismatch at %d (trial %d)", r, trial)
		}

		// A \ B has nothing in common with B.
		require.True(t, a.Subtract(b).Intersect(b).IsEmpty(),
			"subtract/intersect law violated (trial %d)", trial)

		// Double complement is the identity.
		require.True(t, a.Complement().Complement().Equal(a),
			"double complement law violated (trial %d)", trial)

		// Intersection distributes over membership.
		inter := a.Intersect(b)
		for r := rune(min); r <= max; r++ {
			require.Equal(t, a.Contains(r) && b.Contains(r), inter.Contains(r),
				"intersect membership mismatch at %d (trial %d)", r, trial)
		}
	}
}

func TestSet_Sample(t *testing.T) {
	if _, ok := Empty().Sample(); ok {
		t.Fatal("sample of empty set should report false")
	}
	r, ok := FromRange('k', 'p').Sample()
	require.True(t, ok)
	require.True(t, r >= 'k' && r <= 'p')
}

func TestSet_SizeAndString(t *testing.T) {
	s := New(MinCodePoint, MaxCodePoint, Range{'a', 'c'}, Range{'x', 'x'})
	require.Equal(t, 4, s.Size())
	require.Equal(t, 2, s.Len())
	require.NotEmpty(t, s.String())
}
