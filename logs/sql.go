package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key,
  time datetime,
  width int,
  height int,
  player1 varchar,
  player2 varchar,
  opening string,
  winner string,
  plies int,
  record string
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  id, player, opponent, side, win, plies
) AS
SELECT id, player1, player2, 'player1', winner = 'player1', plies
 FROM games
UNION ALL
SELECT id, player2, player1, 'player2', winner = 'player2', plies
 FROM games
`

const insertStmt = `
INSERT INTO games (time, width, height, player1, player2, opening, winner, plies, record)
VALUES (:time, :width, :height, :player1, :player2, :opening, :winner, :plies, :record)
`

const selectPlayerGames = `
SELECT id, player, opponent, side, win, plies
FROM player_games
WHERE player = ?
ORDER BY id, side
`

const selectSummary = `
SELECT player, COUNT(*) AS games, SUM(win) AS wins
FROM player_games
GROUP BY player
ORDER BY player
`
