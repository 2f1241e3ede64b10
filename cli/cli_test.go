package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/isotest"
)

func TestPlayScripted(t *testing.T) {
	var out bytes.Buffer
	// Player 1 fumbles a move before finding a legal one.
	in := bufio.NewReader(strings.NewReader("0,0\nbogus\n2,2\n1,2\n0,1\n2,0\n"))
	p := NewCLIPlayer(&out, in)
	c := &CLI{
		Config:  isolation.Config{Width: 3, Height: 3},
		Out:     &out,
		Player1: p,
		Player2: p,
	}
	final := c.Play()
	assert.Equal(t, isotest.Moves("0,0 2,2 1,2 0,1 2,0"), c.Moves())
	over, winner := final.GameOver()
	require.True(t, over)
	assert.Equal(t, isolation.Player1, winner)
	assert.Contains(t, out.String(), "parse error")
	assert.Contains(t, out.String(), "Game Over! player1 wins")
	assert.Contains(t, out.String(), "2. ... 0,1")
	assert.Contains(t, out.String(), "3. 2,0")
}

func TestPlayIllegal(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("1,1\n1,0\n"))
	c := &CLI{
		Initial: isotest.Board("1../..x/.x2 2 2"),
		Out:     &out,
		Player1: NewCLIPlayer(&out, in),
		Player2: NewCLIPlayer(&out, in),
	}
	final := c.Play()
	assert.Contains(t, out.String(), "illegal move")
	assert.Equal(t, isotest.Moves("1,0"), c.Moves())
	over, winner := final.GameOver()
	assert.True(t, over)
	assert.Equal(t, isolation.Player2, winner)
}

func TestRenderBoard(t *testing.T) {
	var out bytes.Buffer
	RenderBoard(nil, &out, isotest.Board("1../..x/.x2 2 2"))
	s := out.String()
	assert.Contains(t, s, "[player2 to play]")
	assert.Contains(t, s, "0 1 . .")
	assert.Contains(t, s, "2 . x 2")
	assert.Contains(t, s, "blanks: 5")

	out.Reset()
	RenderBoard(&UnicodeGlyphs, &out, isotest.Board("1../..x/.x2 2 2"))
	assert.Contains(t, out.String(), "♘")
}
