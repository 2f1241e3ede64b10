package symmetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/isotest"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		w, h    int
		in, out string
	}{
		{5, 5, "0,0", "0,0"},
		{5, 5, "0,4", "0,0"},
		{5, 5, "4,4", "0,0"},
		{5, 5, "4,0", "0,0"},
		{5, 5, "2,2", "2,2"},
		{5, 5, "3,2", "1,2"},
		{5, 5, "2,3", "1,2"},

		{5, 5, "0,0 0,4", "0,0 0,4"},
		{5, 5, "0,0 4,0", "0,0 0,4"},
		{5, 5, "4,4 4,0", "0,0 0,4"},
		{5, 5, "0,4 4,4", "0,0 0,4"},
		{5, 5, "0,0 4,4", "0,0 4,4"},

		{5, 5, "2,2 1,2 4,3", "2,2 1,2 4,1"},

		{4, 3, "2,3", "0,0"},
		{4, 3, "0,1", "0,1"},
		{4, 3, "0,2", "0,1"},
		{4, 3, "1,1 0,0", "1,1 0,0"},
		{4, 3, "1,2 2,3", "1,1 0,0"},
	}
	for _, tc := range cases {
		cfg := isolation.Config{Width: tc.w, Height: tc.h}
		got, err := Canonical(cfg, isotest.Moves(tc.in))
		if !assert.NoError(t, err, "%dx%d %q", tc.w, tc.h, tc.in) {
			continue
		}
		assert.Equal(t, tc.out, isolation.FormatMoves(got), "%dx%d %q", tc.w, tc.h, tc.in)
	}
}

func TestCanonicalIllegal(t *testing.T) {
	_, err := Canonical(isolation.Config{Width: 5, Height: 5}, isotest.Moves("0,0 0,0"))
	assert.ErrorIs(t, err, isolation.ErrOccupied)
}

func TestSymmetries(t *testing.T) {
	sq := isolation.New(isolation.Config{Width: 5, Height: 5})
	assert.Len(t, symmetries(isolation.Config{Width: 5, Height: 5}), 8)
	assert.Len(t, symmetries(isolation.Config{Width: 4, Height: 3}), 4)

	syms, err := Symmetries(sq)
	require.NoError(t, err)
	assert.Len(t, syms, 1, "empty board is fully symmetric")

	corner := isotest.Play(5, 5, "0,1")
	syms, err = Symmetries(corner)
	require.NoError(t, err)
	assert.Len(t, syms, 8)

	center := isotest.Play(5, 5, "2,2")
	syms, err = Symmetries(center)
	require.NoError(t, err)
	assert.Len(t, syms, 1)
}

func TestTransformPreservesGame(t *testing.T) {
	b := isotest.Play(5, 5, "0,0 4,4 1,2 2,3")
	for _, s := range symmetries(isolation.Config{Width: 5, Height: 5}) {
		tb, err := Transform(b, s)
		require.NoError(t, err)
		assert.Equal(t, b.Ply(), tb.Ply())
		assert.Equal(t, b.Blanks(), tb.Blanks())
		assert.Equal(t, len(b.ActiveMoves()), len(tb.ActiveMoves()))
		assert.Equal(t, s(b.Location(isolation.Player1)), tb.Location(isolation.Player1))
		for _, m := range b.ActiveMoves() {
			assert.True(t, tb.IsLegal(s(m)), "%s -> %s", m, s(m))
		}
	}
}

func TestCanonicalHash(t *testing.T) {
	a := isotest.Play(5, 5, "0,0 4,4 1,2")
	b := isotest.Play(5, 5, "4,4 0,0 3,2")
	c := isotest.Play(5, 5, "0,0 4,4 2,1")
	ha, err := CanonicalHash(a)
	require.NoError(t, err)
	hb, err := CanonicalHash(b)
	require.NoError(t, err)
	hc, err := CanonicalHash(c)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.Equal(t, ha, hc)

	d := isotest.Play(5, 5, "0,0 4,3 1,2")
	hd, err := CanonicalHash(d)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hd)
}
