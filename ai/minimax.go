package ai

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/isolation/isolation"
)

const (
	DefaultDepth     = 3
	DefaultMaxDepth  = 10
	DefaultThreshold = 15 * time.Millisecond
)

// ErrTimeout aborts a search in progress once the remaining time
// drops under the configured threshold.
var ErrTimeout = errors.New("search timed out")

// TimeLeft reports how much of the per-move budget remains.
type TimeLeft func() time.Duration

type Stats struct {
	Depth     int
	Visited   uint64
	Evaluated uint64
	Terminal  uint64
	Cutoffs   uint64
	Elapsed   time.Duration
}

type SearchConfig struct {
	// Depth is used only with NoIterative.
	Depth int `json:"depth"`
	// MaxDepth bounds iterative deepening.
	MaxDepth    int           `json:"max_depth"`
	NoIterative bool          `json:"no_iterative"`
	Method      Method        `json:"method"`
	Threshold   time.Duration `json:"threshold"`
	Debug       int           `json:"debug"`

	// Eval names one of the built-in evaluators; Evaluate, if set,
	// takes precedence.
	Eval     string    `json:"eval"`
	Evaluate Evaluator `json:"-"`
}

type SearchAI struct {
	cfg SearchConfig

	st       Stats
	self     isolation.Player
	timeLeft TimeLeft
}

type scored struct {
	score float64
	move  isolation.Move
}

// less orders by score, falling back to the move coordinates.
func (s scored) less(o scored) bool {
	if s.score != o.score {
		return s.score < o.score
	}
	return s.move.Less(o.move)
}

func NewSearch(cfg SearchConfig) (*SearchAI, error) {
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Evaluate == nil {
		e, err := EvaluatorByName(cfg.Eval)
		if err != nil {
			return nil, err
		}
		cfg.Evaluate = e
	}
	switch cfg.Method {
	case Minimax, AlphaBeta:
	default:
		return nil, fmt.Errorf("unknown search method: %d", cfg.Method)
	}
	return &SearchAI{cfg: cfg}, nil
}

func (ai *SearchAI) Config() SearchConfig {
	return ai.cfg
}

// ContextTimer derives a TimeLeft from ctx's deadline. Without a
// deadline the budget never runs out; once ctx is done it is zero.
func ContextTimer(ctx context.Context) TimeLeft {
	deadline, limited := ctx.Deadline()
	return func() time.Duration {
		if ctx.Err() != nil {
			return 0
		}
		if !limited {
			return time.Duration(math.MaxInt64)
		}
		return time.Until(deadline)
	}
}

func (ai *SearchAI) GetMove(ctx context.Context, b *isolation.Board) isolation.Move {
	m, _, _ := ai.Analyze(ctx, b)
	return m
}

func (ai *SearchAI) Analyze(ctx context.Context, b *isolation.Board) (isolation.Move, float64, Stats) {
	best := ai.choose(b, b.ActiveMoves(), ContextTimer(ctx))
	return best.move, best.score, ai.st
}

// ChooseMove picks a move from legal for the side to move in b. It
// returns isolation.NoMove if legal is empty, and otherwise always
// returns one of legal, even if the very first search is cut short.
func (ai *SearchAI) ChooseMove(b *isolation.Board, legal []isolation.Move, timeLeft TimeLeft) isolation.Move {
	return ai.choose(b, legal, timeLeft).move
}

func (ai *SearchAI) Stats() Stats {
	return ai.st
}

func (ai *SearchAI) begin(self isolation.Player, timeLeft TimeLeft) {
	ai.st = Stats{}
	ai.self = self
	ai.timeLeft = timeLeft
}

func (ai *SearchAI) choose(b *isolation.Board, legal []isolation.Move, timeLeft TimeLeft) scored {
	ai.begin(b.Active(), timeLeft)
	if len(legal) == 0 {
		return scored{MinEval, isolation.NoMove}
	}
	start := time.Now()
	defer func() { ai.st.Elapsed = time.Since(start) }()

	best := scored{MinEval, legal[0]}
	if ai.cfg.NoIterative {
		r, err := ai.searchRoot(b, legal, ai.cfg.Depth)
		if err != nil {
			ai.abandon(ai.cfg.Depth, err)
			return best
		}
		ai.st.Depth = ai.cfg.Depth
		return r
	}

	for depth := 1; depth <= ai.cfg.MaxDepth; depth++ {
		r, err := ai.searchRoot(b, legal, depth)
		if err != nil {
			ai.abandon(depth, err)
			break
		}
		best = r
		ai.st.Depth = depth
		if ai.cfg.Debug > 0 {
			log.Info().
				Int("depth", depth).
				Float64("score", r.score).
				Stringer("move", r.move).
				Dur("elapsed", time.Since(start)).
				Uint64("evaluated", ai.st.Evaluated).
				Msg("[search] deepen")
		}
		if ai.cfg.Debug > 1 {
			log.Info().
				Uint64("visited", ai.st.Visited).
				Uint64("terminal", ai.st.Terminal).
				Uint64("cutoffs", ai.st.Cutoffs).
				Msg("[search]  stats")
		}
		// The result is proven. Deeper searches keep the score but may
		// prefer a different winning move; the shallowest win is kept.
		if math.IsInf(r.score, 0) {
			break
		}
		// Every ply fills a blank cell; nothing lies beyond.
		if depth >= b.Blanks() {
			break
		}
	}
	return best
}

func (ai *SearchAI) abandon(depth int, err error) {
	if !errors.Is(err, ErrTimeout) {
		log.Error().Err(err).Int("depth", depth).Msg("[search] aborted")
		return
	}
	if ai.cfg.Debug > 2 {
		log.Info().Int("depth", depth).Uint64("visited", ai.st.Visited).Msg("[search] time cutoff")
	}
}

// searchRoot forecasts each legal move and scores the reply from the
// opponent's (minimizing) side.
func (ai *SearchAI) searchRoot(b *isolation.Board, legal []isolation.Move, depth int) (scored, error) {
	var best scored
	for i, m := range legal {
		child, err := b.Forecast(m)
		if err != nil {
			return scored{}, fmt.Errorf("forecast %s: %w", m, err)
		}
		var v scored
		switch ai.cfg.Method {
		case AlphaBeta:
			v, err = ai.alphabeta(child, depth-1, MinEval, MaxEval, false)
		default:
			v, err = ai.minimax(child, depth-1, false)
		}
		if err != nil {
			return scored{}, err
		}
		cur := scored{v.score, m}
		if i == 0 || best.less(cur) {
			best = cur
		}
	}
	return best, nil
}

func (ai *SearchAI) checkTime() error {
	if ai.timeLeft() < ai.cfg.Threshold {
		return ErrTimeout
	}
	return nil
}

// leaf scores b for the searching player. The move reported is the
// cell of the player who just moved; it is informational only.
func (ai *SearchAI) leaf(b *isolation.Board, terminal bool) scored {
	ai.st.Evaluated++
	if terminal {
		ai.st.Terminal++
	}
	return scored{ai.cfg.Evaluate.Evaluate(b, ai.self), b.Location(b.Inactive())}
}

func (ai *SearchAI) minimax(b *isolation.Board, depth int, maximizing bool) (scored, error) {
	if err := ai.checkTime(); err != nil {
		return scored{}, err
	}
	if depth == 0 {
		return ai.leaf(b, false), nil
	}
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return ai.leaf(b, true), nil
	}
	ai.st.Visited++

	var best scored
	for i, m := range moves {
		child, err := b.Forecast(m)
		if err != nil {
			return scored{}, err
		}
		v, err := ai.minimax(child, depth-1, !maximizing)
		if err != nil {
			return scored{}, err
		}
		cur := scored{v.score, m}
		if i == 0 || (maximizing && best.less(cur)) || (!maximizing && cur.less(best)) {
			best = cur
		}
	}
	return best, nil
}

// alphabeta searches the closed window [α, β]. A node is cut only once
// its value is strictly outside the window, so any value inside it,
// ties included, is exact and the chosen move matches minimax.
func (ai *SearchAI) alphabeta(b *isolation.Board, depth int, α, β float64, maximizing bool) (scored, error) {
	if err := ai.checkTime(); err != nil {
		return scored{}, err
	}
	if depth == 0 {
		return ai.leaf(b, false), nil
	}
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return ai.leaf(b, true), nil
	}
	ai.st.Visited++

	var best scored
	for i, m := range moves {
		child, err := b.Forecast(m)
		if err != nil {
			return scored{}, err
		}
		v, err := ai.alphabeta(child, depth-1, α, β, !maximizing)
		if err != nil {
			return scored{}, err
		}
		cur := scored{v.score, m}
		if maximizing {
			if i == 0 || best.less(cur) {
				best = cur
			}
			if best.score > β {
				ai.st.Cutoffs++
				break
			}
			α = math.Max(α, best.score)
		} else {
			if i == 0 || cur.less(best) {
				best = cur
			}
			if best.score < α {
				ai.st.Cutoffs++
				break
			}
			β = math.Min(β, best.score)
		}
	}
	return best, nil
}
