package analyze

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
)

type Command struct {
	quiet bool

	variation string
	timeLimit time.Duration

	eval    bool
	explain bool
	opt     opt.Search
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Evaluate a position given as board text" }
func (*Command) Usage() string {
	return `analyze [options] ROWS TURN MOVE

Evaluate a position, e.g.

  analyze ......./......./..1..../......./....2../......./....... 1 2

Use -variation to play additional moves prior to analysis.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves after the given position")
	flags.DurationVar(&c.timeLimit, "limit", time.Minute, "limit of how much time to use")
	flags.BoolVar(&c.eval, "evaluate", false, "only show static evaluation")
	flags.BoolVar(&c.explain, "explain", false, "explain scoring")

	c.opt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := isolation.ParseText(strings.Join(flag.Args(), " "))
	if err != nil {
		log.Error().Err(err).Msg("parse board")
		return subcommands.ExitUsageError
	}
	if c.variation != "" {
		if b, err = applyVariation(b, c.variation); err != nil {
			log.Error().Err(err).Msg("-variation")
			return subcommands.ExitUsageError
		}
	}
	if err := c.analyze(ctx, os.Stdout, b); err != nil {
		log.Error().Err(err).Msg("analyze")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func applyVariation(b *isolation.Board, variant string) (*isolation.Board, error) {
	ms, err := isolation.ParseMoves(variant)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		b, err = b.Move(m)
		if err != nil {
			return nil, fmt.Errorf("bad move `%s': %w", m, err)
		}
	}
	return b, nil
}

func (c *Command) analyze(ctx context.Context, out io.Writer, b *isolation.Board) error {
	search, err := c.opt.Build()
	if err != nil {
		return err
	}
	if c.timeLimit != 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, c.timeLimit)
		defer cancel()
	}
	a := &analysis{
		out:     out,
		quiet:   c.quiet,
		eval:    c.eval,
		explain: c.explain,
		search:  search,
	}
	a.Analyze(ctx, b)
	return nil
}
