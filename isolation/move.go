package isolation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Move is a destination cell, addressed by row and column.
type Move struct {
	Row, Col int
}

// NoMove is returned when a player has no legal move.
var NoMove = Move{-1, -1}

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfBounds = errors.New("cell is out of bounds")
	ErrOccupied    = errors.New("cell is occupied")
	ErrGameOver    = errors.New("game is over")
)

// Less orders moves by row, then column.
func (m Move) Less(o Move) bool {
	if m.Row != o.Row {
		return m.Row < o.Row
	}
	return m.Col < o.Col
}

func (m Move) IsNone() bool {
	return m == NoMove
}

func (m Move) String() string {
	return FormatMove(m)
}

func FormatMove(m Move) string {
	if m == NoMove {
		return "none"
	}
	return fmt.Sprintf("%d,%d", m.Row, m.Col)
}

func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "none" {
		return NoMove, nil
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	bits := strings.Split(s, ",")
	if len(bits) != 2 {
		return NoMove, fmt.Errorf("bad move %q: expected ROW,COL", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(bits[0]))
	if err != nil {
		return NoMove, fmt.Errorf("bad row %q: %w", bits[0], err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(bits[1]))
	if err != nil {
		return NoMove, fmt.Errorf("bad column %q: %w", bits[1], err)
	}
	return Move{Row: r, Col: c}, nil
}

// FormatMoves renders ms space-separated, the form ParseMoves reads.
func FormatMoves(ms []Move) string {
	bits := make([]string, len(ms))
	for i, m := range ms {
		bits[i] = FormatMove(m)
	}
	return strings.Join(bits, " ")
}

func ParseMoves(s string) ([]Move, error) {
	var out []Move
	for _, w := range strings.Fields(s) {
		m, err := ParseMove(w)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
