package symmetry

import (
	"fmt"

	"github.com/nelhage/isolation/isolation"
)

// Symmetry maps a cell to its image under one of the board's
// reflections or rotations. Knight moves commute with all of them, so
// a transformed game is exactly as legal as the original.
type Symmetry func(isolation.Move) isolation.Move

func compose(ss ...Symmetry) Symmetry {
	return func(m isolation.Move) isolation.Move {
		if m.IsNone() {
			return m
		}
		for i := range ss {
			m = ss[len(ss)-i-1](m)
		}
		return m
	}
}

func identity(m isolation.Move) isolation.Move { return m }

// symmetries lists the symmetries of a width x height board, identity
// first. Square boards have eight; other rectangles only four.
func symmetries(cfg isolation.Config) []Symmetry {
	w, h := cfg.Width, cfg.Height
	flipR := func(r int) int { return h - 1 - r }
	flipC := func(c int) int { return w - 1 - c }
	wrap := func(f func(r, c int) (int, int)) Symmetry {
		return func(m isolation.Move) isolation.Move {
			if m.IsNone() {
				return m
			}
			r, c := f(m.Row, m.Col)
			return isolation.Move{Row: r, Col: c}
		}
	}

	out := []Symmetry{
		identity,
		wrap(func(r, c int) (int, int) { return flipR(r), c }),
		wrap(func(r, c int) (int, int) { return r, flipC(c) }),
		wrap(func(r, c int) (int, int) { return flipR(r), flipC(c) }),
	}
	if w != h {
		return out
	}
	return append(out,
		wrap(func(r, c int) (int, int) { return c, r }),
		wrap(func(r, c int) (int, int) { return flipC(c), flipR(r) }),
		wrap(func(r, c int) (int, int) { return c, flipR(r) }),
		wrap(func(r, c int) (int, int) { return flipC(c), r }),
	)
}

func config(b *isolation.Board) isolation.Config {
	return isolation.Config{Width: b.Width(), Height: b.Height()}
}

// Transform returns the image of b under s.
func Transform(b *isolation.Board, s Symmetry) (*isolation.Board, error) {
	snap := b.Snapshot()
	out := make([][]bool, len(snap))
	for r := range out {
		out[r] = make([]bool, len(snap[r]))
	}
	for r, row := range snap {
		for c, v := range row {
			m := s(isolation.Move{Row: r, Col: c})
			out[m.Row][m.Col] = v
		}
	}
	return isolation.FromCells(out,
		s(b.Location(isolation.Player1)),
		s(b.Location(isolation.Player2)),
		b.Ply())
}

type BoardAndSymmetry struct {
	B *isolation.Board
	S Symmetry
}

// Symmetries returns the distinct images of b, each with the symmetry
// that produced it.
func Symmetries(b *isolation.Board) ([]BoardAndSymmetry, error) {
	seen := make(map[uint64]struct{})
	var out []BoardAndSymmetry
	for _, s := range symmetries(config(b)) {
		tb, err := Transform(b, s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[tb.Hash()]; ok {
			continue
		}
		seen[tb.Hash()] = struct{}{}
		out = append(out, BoardAndSymmetry{tb, s})
	}
	return out, nil
}

// CanonicalHash is the same for every board in a symmetry class.
func CanonicalHash(b *isolation.Board) (uint64, error) {
	syms, err := Symmetries(b)
	if err != nil {
		return 0, err
	}
	h := syms[0].B.Hash()
	for _, s := range syms[1:] {
		if sh := s.B.Hash(); sh < h {
			h = sh
		}
	}
	return h, nil
}

// Canonical rewrites a game into a canonical orientation: at each ply,
// among the symmetries that fix the position so far, the one mapping
// the next move to the smallest cell is applied to the rest of the
// game.
func Canonical(cfg isolation.Config, ms []isolation.Move) ([]isolation.Move, error) {
	b := isolation.New(cfg)
	syms := symmetries(config(b))
	tfn := Symmetry(identity)
	var rots []Symmetry
	var out []isolation.Move

	for ply, m := range ms {
		m = tfn(m)
		h := b.Hash()
		best := m
		var rot Symmetry
		for _, s := range syms[1:] {
			tb, err := Transform(b, s)
			if err != nil {
				return nil, err
			}
			if tb.Hash() != h {
				continue
			}
			if rm := s(m); rm.Less(best) {
				best = rm
				rot = s
			}
		}
		if rot != nil {
			rots = append([]Symmetry{rot}, rots...)
			tfn = compose(rots...)
			m = best
		}
		var err error
		if b, err = b.Move(m); err != nil {
			return nil, fmt.Errorf("canonical: move %d: %s: %w", ply, m, err)
		}
		out = append(out, m)
	}
	return out, nil
}
