package serve

import (
	"context"
	"flag"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/symmetry"
)

type Command struct {
	port  int
	limit time.Duration
	opt   opt.Search
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve isolation RPCs via GRPC" }
func (*Command) Usage() string {
	return `serve
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.port, "port", 55430, "bind port")
	flags.DurationVar(&c.limit, "limit", 10*time.Second, "default time limit per request")
	c.opt.AddFlags(flags)
}

type cache struct {
	sync.Mutex
	player *ai.SearchAI
	cfg    ai.SearchConfig
}

type server struct {
	base  ai.SearchConfig
	limit time.Duration

	analyzeCache cache
}

func (c *cache) getPlayer(cfg ai.SearchConfig) (*ai.SearchAI, error) {
	if c.player == nil || c.cfg != cfg {
		p, err := ai.NewSearch(cfg)
		if err != nil {
			return nil, err
		}
		c.player = p
		c.cfg = cfg
	}
	return c.player, nil
}

func (s *server) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	b, err := isolation.ParseText(req.Board)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "board: %v", err)
	}
	ms, err := isolation.ParseMoves(req.Moves)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "moves: %v", err)
	}
	for _, m := range ms {
		if b, err = b.Move(m); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "moves: %v", err)
		}
	}

	cfg := s.base
	if req.Depth > 0 {
		cfg.Depth = req.Depth
		cfg.NoIterative = true
	}
	if req.Method != "" {
		if cfg.Method, err = ai.ParseMethod(req.Method); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	if req.Eval != "" {
		cfg.Eval = req.Eval
	}

	limit := s.limit
	if req.MovetimeMS > 0 {
		limit = time.Duration(req.MovetimeMS) * time.Millisecond
	}
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	s.analyzeCache.Lock()
	defer s.analyzeCache.Unlock()
	player, err := s.analyzeCache.getPlayer(cfg)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	m, value, st := player.Analyze(ctx, b)
	return &AnalyzeResponse{
		Move:      isolation.FormatMove(m),
		Value:     strconv.FormatFloat(value, 'g', -1, 64),
		Depth:     st.Depth,
		Evaluated: st.Evaluated,
		Board:     isolation.FormatText(b),
	}, nil
}

func (s *server) Canonicalize(ctx context.Context, req *CanonicalizeRequest) (*CanonicalizeResponse, error) {
	cfg := isolation.Config{Width: req.Width, Height: req.Height}
	if err := cfg.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	ms, err := isolation.ParseMoves(req.Moves)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "moves: %v", err)
	}
	out, err := symmetry.Canonical(cfg, ms)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &CanonicalizeResponse{Moves: isolation.FormatMoves(out)}, nil
}

// NewServer builds a gRPC server exposing the isolation service and
// the standard health service.
func NewServer(base ai.SearchConfig, limit time.Duration) *grpc.Server {
	grpcServer := grpc.NewServer()
	RegisterIsolationServer(grpcServer, &server{base: base, limit: limit})
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)
	return grpcServer
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.opt.Load(); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitUsageError
	}
	log.Info().Int("port", c.port).Msg("listening")
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Error().Err(err).Msg("failed to listen")
		return subcommands.ExitFailure
	}
	grpcServer := NewServer(c.opt.BuildConfig(), c.limit)
	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	if err := grpcServer.Serve(lis); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
