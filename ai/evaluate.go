package ai

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/nelhage/isolation/isolation"
)

var (
	MaxEval = math.Inf(1)
	MinEval = math.Inf(-1)
)

// Evaluator scores a board from the point of view of p. Larger is
// better for p.
type Evaluator interface {
	Evaluate(b *isolation.Board, p isolation.Player) float64
}

type EvaluatorFunc func(b *isolation.Board, p isolation.Player) float64

func (f EvaluatorFunc) Evaluate(b *isolation.Board, p isolation.Player) float64 {
	return f(b, p)
}

// Terminal short-circuits decided positions and defers to Next for
// everything else. A game is decided only when the side to move is
// stuck; a player with no moves who is not on turn has not lost yet.
type Terminal struct {
	Next Evaluator
}

func (t Terminal) Evaluate(b *isolation.Board, p isolation.Player) float64 {
	if b.IsLoser(p) {
		return MinEval
	}
	if b.IsWinner(p) {
		return MaxEval
	}
	return t.Next.Evaluate(b, p)
}

// Phased uses Early while at least half the board is still blank and
// Late afterwards.
type Phased struct {
	Early, Late Evaluator
}

func (ph Phased) Evaluate(b *isolation.Board, p isolation.Player) float64 {
	if IsEarlyGame(b) {
		return ph.Early.Evaluate(b, p)
	}
	return ph.Late.Evaluate(b, p)
}

func IsEarlyGame(b *isolation.Board) bool {
	return 2*b.Blanks() >= b.Width()*b.Height()
}

var (
	EarlyGame  Evaluator = EvaluatorFunc(earlyGame)
	LateGame   Evaluator = EvaluatorFunc(lateGame)
	Positional Evaluator = EvaluatorFunc(positional)

	CustomScore Evaluator = Terminal{Phased{Early: EarlyGame, Late: LateGame}}
)

var evaluators = map[string]Evaluator{
	"custom":     CustomScore,
	"early":      Terminal{EarlyGame},
	"late":       Terminal{LateGame},
	"positional": Terminal{Positional},
}

func EvaluatorByName(name string) (Evaluator, error) {
	if name == "" {
		return CustomScore, nil
	}
	e, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluator: %q", name)
	}
	return e, nil
}

// earlyGame is mobility difference, with a one point penalty when the
// evaluated player just moved and the two players share a target.
func earlyGame(b *isolation.Board, p isolation.Player) float64 {
	own := b.LegalMoves(p)
	opp := b.LegalMoves(b.Opponent(p))
	score := float64(len(own) - len(opp))
	if len(lo.Intersect(own, opp)) != 0 && b.Inactive() == p {
		score--
	}
	return score
}

type lateFeatures struct {
	own, opp           []isolation.Move
	ownReach, oppReach []int
}

func computeLateFeatures(b *isolation.Board, p isolation.Player) lateFeatures {
	f := lateFeatures{
		own: b.LegalMoves(p),
		opp: b.LegalMoves(b.Opponent(p)),
	}
	f.ownReach = reachDepths(b, f.own)
	f.oppReach = reachDepths(b, f.opp)
	return f
}

func reachDepths(b *isolation.Board, ms []isolation.Move) []int {
	return lo.Map(ms, func(m isolation.Move, _ int) int {
		return ReachDepth(m, b.Snapshot())
	})
}

// lateGame weighs mobility heavily and breaks ties by how far the
// player can still run from each of its moves. The opponent's reach is
// not part of the score.
func lateGame(b *isolation.Board, p isolation.Player) float64 {
	f := computeLateFeatures(b, p)
	return float64(1000*(len(f.own)-len(f.opp)) + lo.Sum(f.ownReach))
}

func positional(b *isolation.Board, p isolation.Player) float64 {
	mine, theirs := 0, 0
	for _, m := range b.LegalMoves(p) {
		mine += CellValue(b, m)
	}
	for _, m := range b.LegalMoves(b.Opponent(p)) {
		theirs += CellValue(b, m)
	}
	return float64(mine - theirs)
}

// CellValue is a static weight for a cell: 1000, plus one for every
// knight jump out of the cell that stays on the board.
func CellValue(b *isolation.Board, m isolation.Move) int {
	x, y := m.Row, m.Col
	value := 1000
	if x-2 >= 0 {
		if y-1 >= 0 {
			value++
		}
		if y+1 < b.Width() {
			value++
		}
	}
	if x+2 < b.Height() {
		if y-1 >= 0 {
			value++
		}
		if y+1 < b.Width() {
			value++
		}
	}
	if y-2 >= 0 {
		if x-1 >= 0 {
			value++
		}
		if x+1 < b.Height() {
			value++
		}
	}
	if y+2 < b.Width() {
		if x-1 >= 0 {
			value++
		}
		if x+1 < b.Height() {
			value++
		}
	}
	return value
}

func ExplainScore(out io.Writer, b *isolation.Board, p isolation.Player) {
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	opp := b.Opponent(p)
	phase := "late"
	if IsEarlyGame(b) {
		phase = "early"
	}
	fmt.Fprintf(tw, "phase\t%s\tblanks=%d\n", phase, b.Blanks())
	fmt.Fprintf(tw, "\t%s\t%s\n", p, opp)
	f := computeLateFeatures(b, p)
	fmt.Fprintf(tw, "moves\t%d\t%d\n", len(f.own), len(f.opp))
	fmt.Fprintf(tw, "shared\t%d\t\n", len(lo.Intersect(f.own, f.opp)))
	fmt.Fprintf(tw, "reach\t%d\t%d\n", lo.Sum(f.ownReach), lo.Sum(f.oppReach))
	fmt.Fprintf(tw, "early\t%g\t%g\n", earlyGame(b, p), earlyGame(b, opp))
	fmt.Fprintf(tw, "late\t%g\t%g\n", lateGame(b, p), lateGame(b, opp))
	fmt.Fprintf(tw, "positional\t%g\t%g\n", positional(b, p), positional(b, opp))
	fmt.Fprintf(tw, "custom\t%g\t%g\n", CustomScore.Evaluate(b, p), CustomScore.Evaluate(b, opp))
	tw.Flush()
}
