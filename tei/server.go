package tei

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
)

const (
	minSize = 3
	maxSize = 32
)

type Engine struct {
	ConfigFactory func(cfg isolation.Config) ai.SearchConfig

	in  *bufio.Reader
	out io.Writer

	search *ai.SearchAI
	board  *isolation.Board
	cfg    isolation.Config
}

func NewEngine(in io.Reader, out io.Writer) *Engine {
	return &Engine{
		in:  bufio.NewReader(in),
		out: out,
		cfg: isolation.Config{
			Width:  isolation.DefaultWidth,
			Height: isolation.DefaultHeight,
		},
	}
}

func (e *Engine) Run(ctx context.Context) error {
	for {
		line, err := e.in.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "iei":
			fmt.Fprintln(e.out, "id name Isolation")
			fmt.Fprintln(e.out, "id author Nelson Elhage")
			fmt.Fprintln(e.out, "ieiok")
		case "quit":
			return nil
		case "ieinewgame":
			e.search = nil
			e.board = nil
			cfg := isolation.Config{Width: isolation.DefaultWidth, Height: isolation.DefaultHeight}
			if len(words) > 1 {
				cfg, err = parseSize(words[1])
				if err != nil {
					return err
				}
			}
			e.cfg = cfg
		case "position":
			e.board, err = parsePosition(e.cfg, words)
			if err != nil {
				return fmt.Errorf("error parsing position: %w", err)
			}
		case "go":
			if err := e.analyze(ctx, words); err != nil {
				log.Error().Err(err).Msg("error in go")
			}
		case "stop":
		case "isready":
			fmt.Fprintln(e.out, "readyok")
		default:
			return fmt.Errorf("unknown command: %q", strings.TrimSpace(line))
		}
		if err == io.EOF {
			return nil
		}
	}
}

// parseSize accepts either WxH or a single N for a square board.
func parseSize(s string) (isolation.Config, error) {
	var w, h int
	if strings.Contains(s, "x") {
		if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
			return isolation.Config{}, fmt.Errorf("bad size %q: %w", s, err)
		}
	} else {
		n, err := strconv.Atoi(s)
		if err != nil {
			return isolation.Config{}, fmt.Errorf("bad size %q: %w", s, err)
		}
		w, h = n, n
	}
	if w < minSize || h < minSize || w > maxSize || h > maxSize {
		return isolation.Config{}, fmt.Errorf("bad size: %s", s)
	}
	return isolation.Config{Width: w, Height: h}, nil
}

func parsePosition(cfg isolation.Config, words []string) (*isolation.Board, error) {
	var b *isolation.Board
	words = words[1:]
	if len(words) == 0 {
		return nil, errors.New("not enough arguments")
	}
	switch words[0] {
	case "startpos":
		words = words[1:]
		b = isolation.New(cfg)
	case "text":
		// text ROWS TURN MOVE
		if len(words) < 4 {
			return nil, errors.New("position text: not enough arguments")
		}
		var err error
		b, err = isolation.ParseText(strings.Join(words[1:4], " "))
		if err != nil {
			return nil, fmt.Errorf("parse board: %w", err)
		}
		words = words[4:]
		if b.Width() != cfg.Width || b.Height() != cfg.Height {
			return nil, fmt.Errorf("board has wrong size: got %dx%d, configured for %dx%d",
				b.Width(), b.Height(), cfg.Width, cfg.Height)
		}
	default:
		return nil, fmt.Errorf("unknown initial position: %q", words[0])
	}
	if len(words) == 0 {
		return b, nil
	}
	if words[0] != "moves" {
		return nil, errors.New("position: expected `moves'")
	}
	for _, w := range words[1:] {
		m, err := isolation.ParseMove(w)
		if err != nil {
			return nil, fmt.Errorf("parse move %q: %w", w, err)
		}
		b, err = b.Move(m)
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", w, err)
		}
	}
	return b, nil
}

func (e *Engine) analyze(ctx context.Context, words []string) error {
	if e.board == nil {
		return errors.New("no position provided")
	}
	if e.search == nil {
		var cfg ai.SearchConfig
		if e.ConfigFactory != nil {
			cfg = e.ConfigFactory(e.cfg)
		}
		s, err := ai.NewSearch(cfg)
		if err != nil {
			return err
		}
		e.search = s
	}
	budget, err := parseGo(e.board.Active(), words[1:])
	if err != nil {
		return err
	}
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	m, val, stats := e.search.Analyze(ctx, e.board)
	fmt.Fprintf(e.out, "info depth %d time %d nodes %d score %s\n",
		stats.Depth,
		stats.Elapsed/time.Millisecond,
		stats.Evaluated,
		strconv.FormatFloat(val, 'g', -1, 64),
	)
	fmt.Fprintf(e.out, "bestmove %s\n", isolation.FormatMove(m))
	return nil
}

// parseGo reads the arguments of `go` and returns the time to spend
// on this move, or zero for no limit.
func parseGo(active isolation.Player, words []string) (time.Duration, error) {
	var move time.Duration
	var tc TimeControl
	if len(words)%2 != 0 {
		return 0, errors.New("go: expected KEY VALUE pairs")
	}
	for i := 0; i < len(words); i += 2 {
		ms, err := strconv.ParseUint(words[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad ms: %v", words[i+1])
		}
		d := time.Duration(ms) * time.Millisecond
		switch words[i] {
		case "movetime":
			move = d
		case "p1time":
			tc.Player1 = d
		case "p2time":
			tc.Player2 = d
		case "p1inc":
			tc.P1Inc = d
		case "p2inc":
			tc.P2Inc = d
		default:
			return 0, fmt.Errorf("go: unknown argument %q", words[i])
		}
	}
	game, inc := tc.For(active)
	return calcBudget(move, game, inc), nil
}
