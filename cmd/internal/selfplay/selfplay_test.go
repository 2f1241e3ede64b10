package selfplay

import (
	"bytes"
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/isotest"
	"github.com/nelhage/isolation/logs"
	"github.com/nelhage/isolation/symmetry"
)

const book = `
width: 5
height: 5
openings:
  - name: corners
    moves: 0,0 4,4
  - board: 1..../...../..x../...../....2 1 2
  - name: center
    moves: 2,2 0,0 1,0
`

func TestReadOpenings(t *testing.T) {
	bs, err := ReadOpenings(strings.NewReader(book))
	require.NoError(t, err)
	require.Len(t, bs, 3)
	assert.Equal(t, isotest.Play(5, 5, "0,0 4,4").Hash(), bs[0].Hash())
	assert.Equal(t, "1..../...../..x../...../....2 1 2", isolation.FormatText(bs[1]))
	assert.Equal(t, isolation.Player2, bs[2].Active())

	_, err = ReadOpenings(strings.NewReader(`
openings:
  - name: broken
    moves: 0,0 0,0
`))
	assert.ErrorContains(t, err, "broken")
	_, err = ReadOpenings(strings.NewReader("openings: [ 1"))
	assert.Error(t, err)
}

func TestRandomOpenings(t *testing.T) {
	cfg := isolation.Config{Width: 5, Height: 5}
	bs := RandomOpenings(cfg, 10, 3, rand.New(rand.NewSource(1)))
	require.Len(t, bs, 10)
	for _, b := range bs {
		assert.Equal(t, 3, b.Ply())
		over, _ := b.GameOver()
		assert.False(t, over)
	}
	seen := make(map[uint64]bool)
	for _, b := range bs {
		h, err := symmetry.CanonicalHash(b)
		require.NoError(t, err)
		assert.False(t, seen[h], "duplicate opening:\n%s", isolation.FormatText(b))
		seen[h] = true
	}

	// corner, edge, or center
	small := RandomOpenings(isolation.Config{Width: 3, Height: 3}, 10, 1, rand.New(rand.NewSource(1)))
	assert.LessOrEqual(t, len(small), 3)
}

func TestBinomTest(t *testing.T) {
	assert.InDelta(t, 1.0/1024, binomTest(10, 0, 0.5), 1e-9)
	assert.InDelta(t, 638.0/1024, binomTest(5, 5, 0.5), 1e-9)
	assert.InDelta(t, 11.0/1024, binomTest(9, 1, 0.5), 1e-9)
	assert.Equal(t, 1.0, binomTest(0, 0, 0.5))
}

func TestParseEngine(t *testing.T) {
	for _, spec := range []string{
		"random", "random:7", "search", `search:{"method":"alphabeta","depth":2}`, "tei:isolation tei",
	} {
		_, err := ParseEngine(spec, ai.SearchConfig{})
		assert.NoError(t, err, spec)
	}
	for _, spec := range []string{
		"random:x", "search:{", `search:{"method":"mcts"}`, "tei:", "mcts",
	} {
		_, err := ParseEngine(spec, ai.SearchConfig{})
		assert.Error(t, err, spec)
	}
}

func simulate(t *testing.T) Stats {
	openings, err := ReadOpenings(strings.NewReader(book))
	require.NoError(t, err)
	p1, err := ParseEngine(`search:{"method":"alphabeta","no_iterative":true,"depth":2}`, ai.SearchConfig{})
	require.NoError(t, err)
	p2, err := ParseEngine("random:3", ai.SearchConfig{})
	require.NoError(t, err)

	st, err := Simulate(context.Background(), &Config{
		Games:   3,
		Initial: openings,
		P1:      p1,
		P2:      p2,
		Swap:    true,
		Threads: 3,
	})
	require.NoError(t, err)
	return st
}

func TestSimulate(t *testing.T) {
	st := simulate(t)
	assert.Equal(t, 18, st.Count())
	assert.Len(t, st.Games, 18)
	assert.Equal(t, st.Count(), st.Players[0].Wins+st.Players[1].Wins)
	assert.Equal(t, st.Player1, st.Players[0].AsPlayer1+st.Players[1].AsPlayer1)

	seats := map[isolation.Player]int{}
	for _, r := range st.Games {
		over, winner := r.Final.GameOver()
		assert.True(t, over)
		assert.Equal(t, winner, r.Winner)
		assert.Equal(t, r.Initial.Ply()+len(r.Moves), r.Final.Ply())
		seats[r.Seat(0)]++
	}
	assert.Equal(t, 9, seats[isolation.Player1])
	assert.Equal(t, 9, seats[isolation.Player2])
}

func TestRecordGames(t *testing.T) {
	st := simulate(t)
	repo, err := logs.Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.InsertGames(gameRecords(&st, "search", "random")))

	sum, err := repo.Summary()
	require.NoError(t, err)
	require.Len(t, sum, 2)
	wins := map[string]int{}
	for _, s := range sum {
		assert.Equal(t, 18, s.Games)
		wins[s.Player] = s.Wins
	}
	assert.Equal(t, st.Players[0].Wins, wins["search"])
	assert.Equal(t, st.Players[1].Wins, wins["random"])
}

func TestReport(t *testing.T) {
	st := simulate(t)
	var out bytes.Buffer
	c := &Command{seed: 1}
	c.report(&out, &st)
	assert.Contains(t, out.String(), "done games=18")
	assert.Contains(t, out.String(), "p[one-sided]=")
}
