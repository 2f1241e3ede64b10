package tei

import (
	"strconv"
	"time"

	"github.com/nelhage/isolation/isolation"
)

// TimeControl is the remaining clock and increment for each side.
type TimeControl struct {
	Player1 time.Duration
	Player2 time.Duration
	P1Inc   time.Duration
	P2Inc   time.Duration
}

func (tc *TimeControl) For(p isolation.Player) (remaining, inc time.Duration) {
	if p == isolation.Player2 {
		return tc.Player2, tc.P2Inc
	}
	return tc.Player1, tc.P1Inc
}

// calcBudget picks the time to spend on one move given an explicit
// per-move limit and the side's remaining clock. Either may be zero.
func calcBudget(move, game, inc time.Duration) time.Duration {
	if game == 0 {
		return move
	}
	budget := game/20 + inc/2
	if budget >= game {
		budget = game / 2
	}
	if move != 0 && move < budget {
		budget = move
	}
	return budget
}

func formatTime(d time.Duration) string {
	ms := d / time.Millisecond
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatUint(uint64(ms), 10)
}
