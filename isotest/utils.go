package isotest

import (
	"github.com/nelhage/isolation/isolation"
)

func Move(s string) isolation.Move {
	m, e := isolation.ParseMove(s)
	if e != nil {
		panic(e)
	}
	return m
}

// Moves parses a space-separated list of ROW,COL moves.
func Moves(s string) []isolation.Move {
	ms, e := isolation.ParseMoves(s)
	if e != nil {
		panic(e)
	}
	return ms
}

func Board(text string) *isolation.Board {
	b, e := isolation.ParseText(text)
	if e != nil {
		panic(e)
	}
	return b
}

// Play applies ms in order to a fresh board of the given size.
func Play(width, height int, ms string) *isolation.Board {
	b := isolation.New(isolation.Config{Width: width, Height: height})
	var e error
	for _, m := range Moves(ms) {
		b, e = b.Move(m)
		if e != nil {
			panic(e)
		}
	}
	return b
}
