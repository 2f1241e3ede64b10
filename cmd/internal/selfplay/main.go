package selfplay

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/logs"
)

type Command struct {
	width  int
	height int
	p1     string
	p2     string
	seed   int64

	games int
	swap  bool

	openings string
	random   int
	plies    int

	limit   time.Duration
	threads int

	db      string
	summary string
	verbose bool

	opt opt.Search
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]

Engines are given as random[:SEED], search[:JSON] or tei:COMMAND.
search engines start from the search flags below.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.width, "width", isolation.DefaultWidth, "board width")
	flags.IntVar(&c.height, "height", isolation.DefaultHeight, "board height")
	flags.StringVar(&c.p1, "p1", "search", "player1 engine")
	flags.StringVar(&c.p2, "p2", "random", "player2 engine")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play per opening/side")
	flags.BoolVar(&c.swap, "swap", true, "swap sides each game")
	flags.StringVar(&c.openings, "openings", "", "YAML file of openings")
	flags.IntVar(&c.random, "random-openings", 0, "play from this many random openings")
	flags.IntVar(&c.plies, "opening-plies", 2, "length of random openings")
	flags.DurationVar(&c.limit, "limit", time.Second, "amount of time to search each move")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel games")
	flags.StringVar(&c.db, "db", "", "record games in this sqlite database")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")

	c.opt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout); err != nil {
		log.Error().Err(err).Msg("selfplay")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Command) run(ctx context.Context, out io.Writer) error {
	if err := c.opt.Load(); err != nil {
		return err
	}
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}
	base := c.opt.BuildConfig()
	p1, err := ParseEngine(c.p1, base)
	if err != nil {
		return fmt.Errorf("-p1: %w", err)
	}
	p2, err := ParseEngine(c.p2, base)
	if err != nil {
		return fmt.Errorf("-p2: %w", err)
	}

	bcfg := isolation.Config{Width: c.width, Height: c.height}
	var openings []*isolation.Board
	switch {
	case c.openings != "":
		if openings, err = ReadOpeningsFile(c.openings); err != nil {
			return fmt.Errorf("-openings: %w", err)
		}
	case c.random > 0:
		openings = RandomOpenings(bcfg, c.random, c.plies, rand.New(rand.NewSource(c.seed)))
	}
	if len(openings) == 0 {
		openings = []*isolation.Board{isolation.New(bcfg)}
	}

	cfg := &Config{
		Games:   c.games,
		Verbose: c.verbose,
		Initial: openings,
		P1:      p1,
		P2:      p2,
		Swap:    c.swap,
		Threads: c.threads,
		Limit:   c.limit,
	}
	st, err := Simulate(ctx, cfg)
	if err != nil {
		return err
	}

	if c.db != "" {
		repo, err := logs.Open(c.db)
		if err != nil {
			return fmt.Errorf("-db: %w", err)
		}
		defer repo.Close()
		if err := repo.InsertGames(gameRecords(&st, c.p1, c.p2)); err != nil {
			return fmt.Errorf("recording games: %w", err)
		}
	}
	if c.summary != "" {
		if err := c.writeSummary(c.summary, &st); err != nil {
			log.Error().Err(err).Msg("writing summary")
		}
	}
	c.report(out, &st)
	return nil
}

func gameRecords(st *Stats, p1, p2 string) []*logs.Game {
	var out []*logs.Game
	for i := range st.Games {
		r := &st.Games[i]
		g := &logs.Game{
			Width:   r.Final.Width(),
			Height:  r.Final.Height(),
			Opening: isolation.FormatText(r.Initial),
			Winner:  r.Winner.String(),
			Plies:   r.Final.Ply(),
			Record:  isolation.FormatMoves(r.Moves),
		}
		if r.Seat(0) == isolation.Player1 {
			g.Player1, g.Player2 = p1, p2
		} else {
			g.Player1, g.Player2 = p2, p1
		}
		out = append(out, g)
	}
	return out
}

func (c *Command) report(out io.Writer, st *Stats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "done games=%d seed=%d player1=%d player2=%d limit=%s\n",
		st.Count(), c.seed, st.Player1, st.Player2, c.limit)
	p.Fprintf(out, "p1.wins=%d p2.wins=%d\n", st.Players[0].Wins, st.Players[1].Wins)

	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\tas player1\tas player2\tsum\n")
	fmt.Fprintf(tw, "p1\t%d\t%d\t%d\n", st.Players[0].AsPlayer1, st.Players[0].AsPlayer2, st.Players[0].Wins)
	fmt.Fprintf(tw, "p2\t%d\t%d\t%d\n", st.Players[1].AsPlayer1, st.Players[1].AsPlayer2, st.Players[1].Wins)
	fmt.Fprintf(tw, "sum\t%d\t%d\t%d\n", st.Player1, st.Player2, st.Count())
	tw.Flush()

	a, b := int64(st.Players[0].Wins), int64(st.Players[1].Wins)
	if a < b {
		a, b = b, a
	}
	p.Fprintf(out, "p[one-sided]=%f\n", binomTest(a, b, 0.5))
}

type Summary struct {
	Cmdline []string
	Player1 string
	Player2 string
	Limit   time.Duration
	Seed    int64
	Stats   *Stats
}

func (c *Command) writeSummary(path string, stats *Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	summary := Summary{
		Cmdline: os.Args,
		Player1: c.p1,
		Player2: c.p2,
		Limit:   c.limit,
		Seed:    c.seed,
		Stats:   stats,
	}

	bs, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.Write(bs)
	return err
}
