package ai

import (
	"github.com/nelhage/isolation/isolation"
	"golang.org/x/net/context"
)

// Agent is anything that can pick a move for the side to play.
type Agent interface {
	GetMove(ctx context.Context, b *isolation.Board) isolation.Move
}
