package logs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Repository {
	repo, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func TestInsertAndQuery(t *testing.T) {
	repo := openTemp(t)

	g := &Game{
		Width: 5, Height: 5,
		Player1: "alphabeta", Player2: "random",
		Opening: "0,0 4,4",
		Winner:  "player1",
		Plies:   11,
		Record:  "0,0 4,4 1,2",
	}
	require.NoError(t, repo.InsertGame(g))
	assert.NotZero(t, g.ID)
	assert.False(t, g.Timestamp.IsZero())

	require.NoError(t, repo.InsertGames([]*Game{
		{Width: 5, Height: 5, Player1: "random", Player2: "alphabeta", Winner: "player2", Plies: 9},
		{Width: 5, Height: 5, Player1: "random", Player2: "alphabeta", Winner: "player1", Plies: 14},
	}))

	games, err := repo.Games("alphabeta")
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, PlayerGame{ID: g.ID, Player: "alphabeta", Opponent: "random", Side: "player1", Win: true, Plies: 11}, games[0])
	assert.Equal(t, "player2", games[1].Side)
	assert.True(t, games[1].Win)
	assert.False(t, games[2].Win)

	sum, err := repo.Summary()
	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{Player: "alphabeta", Games: 3, Wins: 2},
		{Player: "random", Games: 3, Wins: 1},
	}, sum)

	none, err := repo.Games("nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.InsertGame(&Game{Player1: "a", Player2: "b", Winner: "player2"}))
	repo.Close()

	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()
	sum, err := repo.Summary()
	require.NoError(t, err)
	assert.Len(t, sum, 2)
}
