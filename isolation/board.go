package isolation

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
)

type Config struct {
	Width  int
	Height int
}

const (
	DefaultWidth  = 7
	DefaultHeight = 7

	MaxSize = 255
)

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 || c.Width > MaxSize || c.Height > MaxSize {
		return fmt.Errorf("bad board size %dx%d", c.Width, c.Height)
	}
	return nil
}

// KnightOffsets lists the eight knight jumps in the canonical
// enumeration order used for move generation.
var KnightOffsets = [8]Move{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Board is a single ply of a knight-isolation game. Boards are never
// mutated after construction; Move returns a fresh Board.
type Board struct {
	cfg *Config

	ply     int
	blocked []bool
	loc     [2]Move
}

func New(cfg Config) *Board {
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	return &Board{
		cfg:     &cfg,
		blocked: make([]bool, cfg.Width*cfg.Height),
		loc:     [2]Move{NoMove, NoMove},
	}
}

// FromCells builds a board from a row-major occupancy grid and the
// two players' locations. Player cells are always marked blocked.
func FromCells(blocked [][]bool, p1, p2 Move, ply int) (*Board, error) {
	if len(blocked) == 0 {
		return nil, fmt.Errorf("empty board")
	}
	cfg := Config{Width: len(blocked[0]), Height: len(blocked)}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := New(cfg)
	for r, row := range blocked {
		if len(row) != b.Width() {
			return nil, fmt.Errorf("row %d bad length: %d", r, len(row))
		}
		for c, v := range row {
			b.blocked[b.index(Move{r, c})] = v
		}
	}
	for i, m := range []Move{p1, p2} {
		if m.IsNone() {
			continue
		}
		if !b.InBounds(m) {
			return nil, fmt.Errorf("%s at %s: %w", Player(i+1), m, ErrOutOfBounds)
		}
		b.loc[i] = m
		b.blocked[b.index(m)] = true
	}
	if p1 == p2 && p1 != NoMove {
		return nil, fmt.Errorf("players share cell %s", p1)
	}
	b.ply = ply
	return b, nil
}

func (b *Board) Width() int  { return b.cfg.Width }
func (b *Board) Height() int { return b.cfg.Height }
func (b *Board) Ply() int    { return b.ply }

func (b *Board) Active() Player {
	if b.ply%2 == 0 {
		return Player1
	}
	return Player2
}

func (b *Board) Inactive() Player {
	return b.Active().Flip()
}

func (b *Board) Opponent(p Player) Player {
	return p.Flip()
}

// Location returns the player's current cell, or NoMove if the player
// has not been placed yet.
func (b *Board) Location(p Player) Move {
	return b.loc[p.index()]
}

func (b *Board) index(m Move) int {
	return m.Row*b.cfg.Width + m.Col
}

func (b *Board) InBounds(m Move) bool {
	return m.Row >= 0 && m.Row < b.cfg.Height && m.Col >= 0 && m.Col < b.cfg.Width
}

func (b *Board) IsBlank(m Move) bool {
	return b.InBounds(m) && !b.blocked[b.index(m)]
}

func (b *Board) Blanks() int {
	n := 0
	for _, v := range b.blocked {
		if !v {
			n++
		}
	}
	return n
}

func (b *Board) BlankSpaces() []Move {
	var out []Move
	for r := 0; r < b.cfg.Height; r++ {
		for c := 0; c < b.cfg.Width; c++ {
			if !b.blocked[r*b.cfg.Width+c] {
				out = append(out, Move{r, c})
			}
		}
	}
	return out
}

// Snapshot returns a fresh occupancy grid, indexed [row][col]. The
// caller owns the result and may mutate it freely.
func (b *Board) Snapshot() [][]bool {
	out := make([][]bool, b.cfg.Height)
	for r := range out {
		out[r] = make([]bool, b.cfg.Width)
		copy(out[r], b.blocked[r*b.cfg.Width:(r+1)*b.cfg.Width])
	}
	return out
}

// LegalMoves returns the moves available to p. An unplaced player may
// move to any blank cell; otherwise moves are knight jumps onto blank
// cells, in KnightOffsets order.
func (b *Board) LegalMoves(p Player) []Move {
	from := b.Location(p)
	if from.IsNone() {
		return b.BlankSpaces()
	}
	var out []Move
	for _, d := range KnightOffsets {
		m := Move{from.Row + d.Row, from.Col + d.Col}
		if b.IsBlank(m) {
			out = append(out, m)
		}
	}
	return out
}

func (b *Board) ActiveMoves() []Move {
	return b.LegalMoves(b.Active())
}

func (b *Board) IsLegal(m Move) bool {
	for _, l := range b.ActiveMoves() {
		if l == m {
			return true
		}
	}
	return false
}

// IsLoser reports whether p is to move and has nowhere to go.
func (b *Board) IsLoser(p Player) bool {
	return p == b.Active() && len(b.LegalMoves(p)) == 0
}

func (b *Board) IsWinner(p Player) bool {
	return p == b.Inactive() && len(b.LegalMoves(b.Active())) == 0
}

func (b *Board) GameOver() (over bool, winner Player) {
	if len(b.ActiveMoves()) == 0 {
		return true, b.Inactive()
	}
	return false, NoPlayer
}

// Move applies m for the active player and returns the resulting
// board. Moving on a finished game fails with ErrGameOver.
func (b *Board) Move(m Move) (*Board, error) {
	if over, _ := b.GameOver(); over {
		return nil, fmt.Errorf("%s: %w", m, ErrGameOver)
	}
	if !b.InBounds(m) {
		return nil, fmt.Errorf("%s: %w", m, ErrOutOfBounds)
	}
	if b.blocked[b.index(m)] {
		return nil, fmt.Errorf("%s: %w", m, ErrOccupied)
	}
	if !b.IsLegal(m) {
		return nil, fmt.Errorf("%s: %w", m, ErrIllegalMove)
	}
	next := b.clone()
	next.blocked[next.index(m)] = true
	next.loc[b.Active().index()] = m
	next.ply++
	return next, nil
}

// Forecast is Move for callers that only want to look ahead.
func (b *Board) Forecast(m Move) (*Board, error) {
	return b.Move(m)
}

func (b *Board) clone() *Board {
	next := &Board{
		cfg:     b.cfg,
		ply:     b.ply,
		blocked: make([]bool, len(b.blocked)),
		loc:     b.loc,
	}
	copy(next.blocked, b.blocked)
	return next
}

// Hash identifies a board position, including the side to move.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 0, len(b.blocked)+24)
	for _, v := range b.blocked {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	for _, l := range b.loc {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(l.Row)))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(l.Col)))
	}
	buf = append(buf, byte(b.Active()), byte(b.cfg.Width), byte(b.cfg.Height))
	return xxhash.Sum64(buf)
}
