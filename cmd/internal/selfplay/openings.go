package selfplay

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/symmetry"
)

// OpeningBook is the on-disk form of a set of openings:
//
//	width: 5
//	height: 5
//	openings:
//	  - name: corners
//	    moves: 0,0 4,4
//	  - board: 1..../...../..x../...../....2 1 2
type OpeningBook struct {
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	Openings []Opening `yaml:"openings"`
}

type Opening struct {
	Name  string `yaml:"name"`
	Board string `yaml:"board"`
	Moves string `yaml:"moves"`
}

func ReadOpenings(r io.Reader) ([]*isolation.Board, error) {
	var book OpeningBook
	if err := yaml.NewDecoder(r).Decode(&book); err != nil {
		return nil, fmt.Errorf("decode openings: %w", err)
	}
	cfg := isolation.Config{Width: book.Width, Height: book.Height}
	var out []*isolation.Board
	for i, o := range book.Openings {
		b, err := o.build(cfg)
		if err != nil {
			name := o.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func ReadOpeningsFile(path string) ([]*isolation.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadOpenings(f)
}

func (o *Opening) build(cfg isolation.Config) (*isolation.Board, error) {
	b := isolation.New(cfg)
	if o.Board != "" {
		var err error
		if b, err = isolation.ParseText(o.Board); err != nil {
			return nil, err
		}
	}
	ms, err := isolation.ParseMoves(o.Moves)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		if b, err = b.Move(m); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// RandomOpenings plays plies random moves from an empty board until
// it has n distinct openings. Openings that end the game early, or
// that are a reflection or rotation of one already chosen, are
// discarded. Small boards may have fewer than n distinct openings, in
// which case the result is short.
func RandomOpenings(cfg isolation.Config, n, plies int, r *rand.Rand) []*isolation.Board {
	var out []*isolation.Board
	seen := make(map[uint64]struct{})
	for tries := 0; len(out) < n && tries < 100*n; tries++ {
		b := isolation.New(cfg)
		for i := 0; i < plies; i++ {
			moves := b.ActiveMoves()
			if len(moves) == 0 {
				break
			}
			b, _ = b.Move(moves[r.Intn(len(moves))])
		}
		if over, _ := b.GameOver(); over {
			continue
		}
		h, err := symmetry.CanonicalHash(b)
		if err != nil {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, b)
	}
	return out
}
