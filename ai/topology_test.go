package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/isotest"
)

func emptySnapshot(w, h int) [][]bool {
	return isolation.New(isolation.Config{Width: w, Height: h}).Snapshot()
}

func TestKnightMoves(t *testing.T) {
	snap := emptySnapshot(8, 8)
	assert.Len(t, KnightMoves(isolation.Move{Row: 3, Col: 3}, snap), 8)
	assert.Equal(t, isotest.Moves("1,2 2,1"), KnightMoves(isolation.Move{Row: 0, Col: 0}, snap))
	assert.Equal(t,
		isotest.Moves("1,2 1,4 2,1 2,5 4,1 4,5 5,2 5,4"),
		KnightMoves(isolation.Move{Row: 3, Col: 3}, snap),
		"enumeration order")

	b := isotest.Board("1../.../..2 1 2")
	assert.Equal(t, isotest.Moves("1,2 2,1"), KnightMoves(b.Location(isolation.Player1), b.Snapshot()))
	assert.Equal(t, b.LegalMoves(isolation.Player1), KnightMoves(b.Location(isolation.Player1), b.Snapshot()))

	b = isotest.Board("1../..x/..2 1 2")
	assert.Equal(t, isotest.Moves("2,1"), KnightMoves(b.Location(isolation.Player1), b.Snapshot()))

	b = isotest.Board("1../..x/.x2 1 2")
	assert.Empty(t, KnightMoves(b.Location(isolation.Player1), b.Snapshot()))
}

func TestKnightMovesSubset(t *testing.T) {
	for _, b := range randomPositions(t, 6, 5, 40) {
		for _, p := range []isolation.Player{isolation.Player1, isolation.Player2} {
			from := b.Location(p)
			snap := b.Snapshot()
			ms := KnightMoves(from, snap)
			assert.LessOrEqual(t, len(ms), 8)
			for _, m := range ms {
				assert.True(t, b.IsBlank(m), "%s from %s", m, from)
			}
			assert.Equal(t, b.LegalMoves(p), ms)
		}
	}
}

func TestReachDepth(t *testing.T) {
	snap := emptySnapshot(3, 3)
	assert.Equal(t, 8, ReachDepth(isolation.Move{Row: 0, Col: 0}, snap))
	assert.False(t, snap[1][1], "center is unreachable")
	assert.True(t, snap[2][1])

	assert.Equal(t, 0, ReachDepth(isolation.Move{Row: 0, Col: 0}, snap), "visited cell")

	b := isotest.Board("1../.../..2 1 2")
	assert.Equal(t, 3, ReachDepth(isolation.Move{Row: 1, Col: 2}, b.Snapshot()))
	assert.Equal(t, 3, ReachDepth(isolation.Move{Row: 2, Col: 1}, b.Snapshot()))
	assert.True(t, b.IsBlank(isolation.Move{Row: 1, Col: 2}), "board mutated")
}
