package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

// Game is one finished game. Winner is "player1" or "player2"; Record
// is the space-separated move list, opening included.
type Game struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"time"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	Player1   string    `db:"player1"`
	Player2   string    `db:"player2"`
	Opening   string    `db:"opening"`
	Winner    string    `db:"winner"`
	Plies     int       `db:"plies"`
	Record    string    `db:"record"`
}

// PlayerGame is a game seen from one participant's side.
type PlayerGame struct {
	ID       int64  `db:"id"`
	Player   string `db:"player"`
	Opponent string `db:"opponent"`
	Side     string `db:"side"`
	Win      bool   `db:"win"`
	Plies    int    `db:"plies"`
}

type Summary struct {
	Player string `db:"player"`
	Games  int    `db:"games"`
	Wins   int    `db:"wins"`
}

func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(createGameTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create game table: %w", err)
	}
	if _, err = db.Exec(createPlayerView); err != nil {
		db.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}

	repo := &Repository{db: db}
	repo.insert, err = db.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertGame(g *Game) error {
	return r.insertGame(r.insert, g)
}

func (r *Repository) insertGame(stmt *sqlx.NamedStmt, g *Game) error {
	if g.Timestamp.IsZero() {
		g.Timestamp = time.Now()
	}
	res, err := stmt.Exec(g)
	if err != nil {
		return err
	}
	g.ID, err = res.LastInsertId()
	return err
}

func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, g := range gs {
		if e := r.insertGame(stmt, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// Games lists every game player took part in, oldest first.
func (r *Repository) Games(player string) ([]PlayerGame, error) {
	var out []PlayerGame
	if err := r.db.Select(&out, selectPlayerGames, player); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Summary() ([]Summary, error) {
	var out []Summary
	if err := r.db.Select(&out, selectSummary); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Close() {
	if r.insert != nil {
		r.insert.Close()
	}
	r.db.Close()
}
