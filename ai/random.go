package ai

import (
	"math/rand"

	"golang.org/x/net/context"

	"github.com/nelhage/isolation/isolation"
)

type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(_ context.Context, b *isolation.Board) isolation.Move {
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return isolation.NoMove
	}
	return moves[r.r.Intn(len(moves))]
}

func NewRandom(seed int64) Agent {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
