package ai

import "github.com/nelhage/isolation/isolation"

// KnightMoves returns the knight jumps from `from` that land on an
// in-bounds, unoccupied cell of snap, in isolation.KnightOffsets order.
func KnightMoves(from isolation.Move, snap [][]bool) []isolation.Move {
	var out []isolation.Move
	for _, d := range isolation.KnightOffsets {
		r, c := from.Row+d.Row, from.Col+d.Col
		if r < 0 || r >= len(snap) || c < 0 || c >= len(snap[r]) {
			continue
		}
		if snap[r][c] {
			continue
		}
		out = append(out, isolation.Move{Row: r, Col: c})
	}
	return out
}

// ReachDepth flood-fills snap from `from`, marking cells as it goes,
// and returns the depth of the deepest knight chain the traversal
// found. snap is consumed; callers pass a private copy.
func ReachDepth(from isolation.Move, snap [][]bool) int {
	if snap[from.Row][from.Col] {
		return 0
	}
	snap[from.Row][from.Col] = true
	deepest := 0
	for _, m := range KnightMoves(from, snap) {
		if d := ReachDepth(m, snap); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
