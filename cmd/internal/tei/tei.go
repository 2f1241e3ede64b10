package tei

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/tei"
)

type Command struct {
	opt opt.Search
}

func (*Command) Name() string     { return "tei" }
func (*Command) Synopsis() string { return "Launch the engine in TEI mode" }
func (*Command) Usage() string {
	return `tei

Launch the engine in TEI mode, a UCI-like protocol suitable for being
driven by an external GUI or controller.

`
}

func (c *Command) SetFlags(fs *flag.FlagSet) {
	c.opt.AddFlags(fs)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.opt.Load(); err != nil {
		log.Error().Err(err).Msg("tei")
		return subcommands.ExitUsageError
	}
	engine := tei.NewEngine(os.Stdin, os.Stdout)
	engine.ConfigFactory = func(isolation.Config) ai.SearchConfig {
		return c.opt.BuildConfig()
	}
	if err := engine.Run(ctx); err != nil {
		log.Error().Err(err).Msg("tei")
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
