package canonicalize

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/symmetry"
)

type Command struct {
	width, height int
	board         bool
}

func (*Command) Name() string     { return "canonicalize" }
func (*Command) Synopsis() string { return "Canonicalize the symmetry of a game" }
func (*Command) Usage() string {
	return `canonicalize [options] MOVE...

Rewrite a game, given as ROW,COL moves from an empty board, into a
canonical orientation.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.width, "width", isolation.DefaultWidth, "board width")
	flags.IntVar(&c.height, "height", isolation.DefaultHeight, "board height")
	flags.BoolVar(&c.board, "board", false, "also print the final position")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(flag.Args()) == 0 {
		flag.Usage()
		return subcommands.ExitUsageError
	}
	if err := c.run(os.Stdout, strings.Join(flag.Args(), " ")); err != nil {
		log.Error().Err(err).Msg("canonicalize")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Command) run(out io.Writer, game string) error {
	cfg := isolation.Config{Width: c.width, Height: c.height}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ms, err := isolation.ParseMoves(game)
	if err != nil {
		return err
	}
	canon, err := symmetry.Canonical(cfg, ms)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, isolation.FormatMoves(canon))
	if !c.board {
		return nil
	}
	b := isolation.New(cfg)
	for _, m := range canon {
		if b, err = b.Move(m); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, isolation.FormatText(b))
	return nil
}
