package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/cmd/internal/analyze"
	"github.com/nelhage/isolation/cmd/internal/canonicalize"
	"github.com/nelhage/isolation/cmd/internal/play"
	"github.com/nelhage/isolation/cmd/internal/selfplay"
	"github.com/nelhage/isolation/cmd/internal/serve"
	"github.com/nelhage/isolation/cmd/internal/tei"
)

var verbose = flag.Bool("v", false, "enable debug logging")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&tei.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&canonicalize.Command{}, "")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	status := subcommands.Execute(ctx)
	cancel()
	os.Exit(int(status))
}
