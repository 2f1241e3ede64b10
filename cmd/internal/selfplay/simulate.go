package selfplay

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
)

type Config struct {
	Games int

	Verbose bool

	Initial []*isolation.Board

	P1, P2 EngineFactory

	Swap    bool
	Threads int
	Limit   time.Duration
}

type PlayerStats struct {
	Wins int
	// Wins broken down by the side the engine was seated on.
	AsPlayer1 int
	AsPlayer2 int
}

type Stats struct {
	Players [2]PlayerStats
	// Wins by side, regardless of engine.
	Player1, Player2 int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return s.Player1 + s.Player2
}

type gameSpec struct {
	opening *isolation.Board
	oi      int
	i       int
	// p1seat is the side engine P1 plays.
	p1seat isolation.Player
}

type Result struct {
	spec    gameSpec
	Initial *isolation.Board
	Final   *isolation.Board
	Moves   []isolation.Move
	Winner  isolation.Player
}

// WinnerEngine is 0 if engine P1 won and 1 otherwise.
func (r *Result) WinnerEngine() int {
	if r.Winner == r.spec.p1seat {
		return 0
	}
	return 1
}

func (r *Result) Seat(engine int) isolation.Player {
	if engine == 0 {
		return r.spec.p1seat
	}
	return r.spec.p1seat.Flip()
}

func (st *Stats) add(r Result) {
	switch r.Winner {
	case isolation.Player1:
		st.Player1++
	case isolation.Player2:
		st.Player2++
	}
	pst := &st.Players[r.WinnerEngine()]
	pst.Wins++
	if r.Winner == isolation.Player1 {
		pst.AsPlayer1++
	} else {
		pst.AsPlayer2++
	}
	st.Games = append(st.Games, r)
}

func Simulate(ctx context.Context, c *Config) (Stats, error) {
	var st Stats
	rc := make(chan Result)
	gc := make(chan gameSpec)

	threads := c.Threads
	if threads <= 0 {
		threads = 1
	}
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer close(gc)
		return c.schedule(ctx, gc)
	})
	for i := 0; i < threads; i++ {
		grp.Go(func() error {
			return c.worker(ctx, gc, rc)
		})
	}
	go func() {
		grp.Wait()
		close(rc)
	}()

	for r := range rc {
		if c.Verbose {
			log.Info().
				Int("opening", r.spec.oi).
				Int("game", r.spec.i).
				Int("plies", r.Final.Ply()).
				Stringer("p1", r.spec.p1seat).
				Stringer("winner", r.Winner).
				Msg("game")
		}
		st.add(r)
	}
	return st, grp.Wait()
}

func (c *Config) schedule(ctx context.Context, gc chan<- gameSpec) error {
	for oi, b := range c.Initial {
		n := c.Games
		if c.Swap {
			n *= 2
		}
		for g := 0; g < n; g++ {
			seat := isolation.Player1
			if c.Swap && g%2 == 1 {
				seat = isolation.Player2
			}
			spec := gameSpec{
				opening: b,
				oi:      oi,
				i:       g,
				p1seat:  seat,
			}
			select {
			case gc <- spec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func (c *Config) worker(ctx context.Context, games <-chan gameSpec, out chan<- Result) error {
	e1, err := c.P1()
	if err != nil {
		return fmt.Errorf("starting p1: %w", err)
	}
	defer e1.Close()
	e2, err := c.P2()
	if err != nil {
		return fmt.Errorf("starting p2: %w", err)
	}
	defer e2.Close()

	for g := range games {
		r, err := c.play(ctx, g, e1, e2)
		if err != nil {
			return err
		}
		select {
		case out <- r:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (c *Config) play(ctx context.Context, g gameSpec, e1, e2 Engine) (Result, error) {
	cfg := isolation.Config{Width: g.opening.Width(), Height: g.opening.Height()}
	a1, err := e1.NewGame(cfg)
	if err != nil {
		return Result{}, fmt.Errorf("new game p1: %w", err)
	}
	a2, err := e2.NewGame(cfg)
	if err != nil {
		return Result{}, fmt.Errorf("new game p2: %w", err)
	}
	agents := map[isolation.Player]ai.Agent{
		g.p1seat:        a1,
		g.p1seat.Flip(): a2,
	}

	var ms []isolation.Move
	b := g.opening
	for {
		if over, winner := b.GameOver(); over {
			return Result{
				spec:    g,
				Initial: g.opening,
				Final:   b,
				Moves:   ms,
				Winner:  winner,
			}, nil
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		mctx, cancel := ctx, context.CancelFunc(func() {})
		if c.Limit != 0 {
			mctx, cancel = context.WithTimeout(ctx, c.Limit)
		}
		m := agents[b.Active()].GetMove(mctx, b)
		cancel()
		next, err := b.Move(m)
		if err != nil {
			return Result{}, fmt.Errorf("%s played %s: %w", b.Active(), m, err)
		}
		b = next
		ms = append(ms, m)
	}
}
