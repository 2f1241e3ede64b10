package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nelhage/isolation/isolation"
)

type Player interface {
	GetMove(b *isolation.Board) isolation.Move
}

type Glyphs struct {
	Player1, Player2 string
	Blocked, Blank   string
}

type CLI struct {
	moves []isolation.Move
	b     *isolation.Board

	Config isolation.Config
	// Initial, if set, is played from instead of an empty board.
	Initial *isolation.Board
	Glyphs  *Glyphs
	Out     io.Writer
	Player1 Player
	Player2 Player
}

var DefaultGlyphs = Glyphs{
	Player1: "1",
	Player2: "2",
	Blocked: "x",
	Blank:   ".",
}

var UnicodeGlyphs = Glyphs{
	Player1: "♘",
	Player2: "♞",
	Blocked: "▪",
	Blank:   "·",
}

func (c *CLI) Play() *isolation.Board {
	c.moves = nil
	c.b = c.Initial
	if c.b == nil {
		c.b = isolation.New(c.Config)
	}
	for {
		c.render()
		if over, winner := c.b.GameOver(); over {
			fmt.Fprintf(c.Out, "Game Over! %s wins; %s has no moves.\n", winner, c.b.Active())
			return c.b
		}
		var m isolation.Move
		if c.b.Active() == isolation.Player1 {
			m = c.Player1.GetMove(c.b)
		} else {
			m = c.Player2.GetMove(c.b)
		}
		next, e := c.b.Move(m)
		if e != nil {
			fmt.Fprintln(c.Out, "illegal move:", e)
			continue
		}
		if c.b.Active() == isolation.Player1 {
			fmt.Fprintf(c.Out, "%d. %s\n", c.b.Ply()/2+1, isolation.FormatMove(m))
		} else {
			fmt.Fprintf(c.Out, "%d. ... %s\n", c.b.Ply()/2+1, isolation.FormatMove(m))
		}
		c.b = next
		c.moves = append(c.moves, m)
	}
}

func (c *CLI) Moves() []isolation.Move {
	return c.moves
}

func (c *CLI) render() {
	RenderBoard(c.Glyphs, c.Out, c.b)
}

func RenderBoard(g *Glyphs, out io.Writer, b *isolation.Board) {
	if g == nil {
		g = &DefaultGlyphs
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[%s to play]\n", b.Active())
	w := tabwriter.NewWriter(out, 2, 8, 1, ' ', 0)
	fmt.Fprintf(w, "\t")
	for c := 0; c < b.Width(); c++ {
		fmt.Fprintf(w, "%d\t", c)
	}
	fmt.Fprintf(w, "\n")
	for r := 0; r < b.Height(); r++ {
		fmt.Fprintf(w, "%d\t", r)
		for c := 0; c < b.Width(); c++ {
			m := isolation.Move{Row: r, Col: c}
			var glyph string
			switch {
			case b.Location(isolation.Player1) == m:
				glyph = g.Player1
			case b.Location(isolation.Player2) == m:
				glyph = g.Player2
			case !b.IsBlank(m):
				glyph = g.Blocked
			default:
				glyph = g.Blank
			}
			fmt.Fprintf(w, "%s\t", glyph)
		}
		fmt.Fprintf(w, "\n")
	}
	w.Flush()
	fmt.Fprintf(out, "blanks: %d\n", b.Blanks())
}
