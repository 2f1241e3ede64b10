package play

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/cli"
	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/cmd/internal/selfplay"
	"github.com/nelhage/isolation/isolation"
)

type Command struct {
	p1     string
	p2     string
	width  int
	height int
	limit  time.Duration
	start  string
	out    string

	unicode bool

	opt opt.Search
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play isolation from the command line" }
func (*Command) Usage() string {
	return `play

Play isolation on the command-line, against a human or AI. Players are
"human" or any selfplay engine: random[:SEED], search[:JSON], tei:COMMAND.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "human", "player1")
	flags.StringVar(&c.p2, "p2", "search", "player2")
	flags.IntVar(&c.width, "width", isolation.DefaultWidth, "board width")
	flags.IntVar(&c.height, "height", isolation.DefaultHeight, "board height")
	flags.DurationVar(&c.limit, "limit", time.Second, "ai time limit")
	flags.StringVar(&c.start, "board", "", "start from this board text")
	flags.StringVar(&c.out, "out", "", "write the move list to file")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with utf8 glyphs")

	c.opt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.opt.Load(); err != nil {
		log.Error().Err(err).Msg("play")
		return subcommands.ExitUsageError
	}
	cfg := isolation.Config{Width: c.width, Height: c.height}
	var initial *isolation.Board
	if c.start != "" {
		var err error
		if initial, err = isolation.ParseText(c.start); err != nil {
			log.Error().Err(err).Msg("-board")
			return subcommands.ExitUsageError
		}
		cfg = isolation.Config{Width: initial.Width(), Height: initial.Height()}
	}

	in := bufio.NewReader(os.Stdin)
	var players [2]cli.Player
	for i, spec := range []string{c.p1, c.p2} {
		p, closer, err := c.parsePlayer(in, spec, cfg)
		if err != nil {
			log.Error().Err(err).Str("player", spec).Msg("unparseable player")
			return subcommands.ExitUsageError
		}
		defer closer()
		players[i] = p
	}
	st := &cli.CLI{
		Config:  cfg,
		Initial: initial,
		Out:     os.Stdout,
		Player1: players[0],
		Player2: players[1],
		Glyphs:  glyphs(c.unicode),
	}
	st.Play()
	if c.out != "" {
		record := fmt.Sprintf("# %dx%d %s vs %s\n%s\n",
			cfg.Width, cfg.Height, c.p1, c.p2, isolation.FormatMoves(st.Moves()))
		if err := os.WriteFile(c.out, []byte(record), 0644); err != nil {
			log.Error().Err(err).Msg("-out")
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}

type aiWrapper struct {
	limit time.Duration
	p     ai.Agent
}

func (a *aiWrapper) GetMove(b *isolation.Board) isolation.Move {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(a.limit))
	defer cancel()
	return a.p.GetMove(ctx, b)
}

func (c *Command) parsePlayer(in *bufio.Reader, s string, cfg isolation.Config) (cli.Player, func(), error) {
	if s == "human" {
		return cli.NewCLIPlayer(os.Stdout, in), func() {}, nil
	}
	factory, err := selfplay.ParseEngine(strings.TrimSpace(s), c.opt.BuildConfig())
	if err != nil {
		return nil, nil, err
	}
	engine, err := factory()
	if err != nil {
		return nil, nil, err
	}
	agent, err := engine.NewGame(cfg)
	if err != nil {
		engine.Close()
		return nil, nil, err
	}
	return &aiWrapper{c.limit, agent}, engine.Close, nil
}
