package serve

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nelhage/isolation/ai"
)

func dial(t *testing.T) *grpc.ClientConn {
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(ai.SearchConfig{}, 5*time.Second)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestAnalyze(t *testing.T) {
	cl := NewClient(dial(t))
	ctx := context.Background()

	resp, err := cl.Analyze(ctx, &AnalyzeRequest{Board: ".../.../1.2 1 3", Method: "alphabeta"})
	require.NoError(t, err)
	assert.Equal(t, "1,2", resp.Move)
	assert.Equal(t, ".../.../1.2 1 3", resp.Board)
	assert.NotZero(t, resp.Evaluated)

	resp, err = cl.Analyze(ctx, &AnalyzeRequest{Board: ".../.../... 1 1", Moves: "2,0 2,2", Depth: 1})
	require.NoError(t, err)
	assert.Equal(t, "1,2", resp.Move)
	assert.Equal(t, 1, resp.Depth)
	assert.Equal(t, ".../.../1.2 1 2", resp.Board)

	resp, err = cl.Analyze(ctx, &AnalyzeRequest{Board: "1../..x/.x2 1 3"})
	require.NoError(t, err)
	assert.Equal(t, "none", resp.Move)
	assert.Equal(t, "-Inf", resp.Value)
}

func TestAnalyzeErrors(t *testing.T) {
	cl := NewClient(dial(t))
	for _, req := range []*AnalyzeRequest{
		{Board: "nonsense"},
		{Board: ".../.../... 1 1", Moves: "0,0 0,0"},
		{Board: ".../.../... 1 1", Method: "negamax"},
		{Board: ".../.../... 1 1", Eval: "bogus"},
	} {
		_, err := cl.Analyze(context.Background(), req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "%+v", req)
	}
}

func TestCanonicalize(t *testing.T) {
	cl := NewClient(dial(t))
	resp, err := cl.Canonicalize(context.Background(), &CanonicalizeRequest{
		Width: 5, Height: 5, Moves: "4,4 4,0",
	})
	require.NoError(t, err)
	assert.Equal(t, "0,0 0,4", resp.Moves)

	for _, req := range []*CanonicalizeRequest{
		{Width: 0, Height: 5},
		{Width: 5, Height: 5, Moves: "0,0 0,0"},
		{Width: 5, Height: 5, Moves: "a,b"},
	} {
		_, err := cl.Canonicalize(context.Background(), req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "%+v", req)
	}
}

func TestHealth(t *testing.T) {
	hc := healthpb.NewHealthClient(dial(t))
	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
