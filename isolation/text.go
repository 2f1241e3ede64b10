package isolation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseText parses a board in the text notation produced by
// FormatText: `ROW/ROW/... TURN MOVE`, where each row is a string of
// cells ('.' blank, 'x' blocked, '1' or '2' for a player), TURN is the
// player to move and MOVE the 1-based full-move number.
func ParseText(text string) (*Board, error) {
	words := strings.Fields(text)
	if len(words) != 3 {
		return nil, errors.New("bad board text: wrong number of words")
	}
	turn, err := strconv.Atoi(words[1])
	if err != nil || (turn != 1 && turn != 2) {
		return nil, fmt.Errorf("bad turn: %s", words[1])
	}
	move, err := strconv.Atoi(words[2])
	if err != nil || move < 1 {
		return nil, fmt.Errorf("bad move: %s", words[2])
	}
	ply := 2*(move-1) + (turn - 1)

	rows := strings.Split(words[0], "/")
	p1, p2 := NoMove, NoMove
	var cells [][]bool
	for r, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d bad length: %d", r, len(row))
		}
		line := make([]bool, len(row))
		for c, ch := range row {
			switch ch {
			case '.':
			case 'x':
				line[c] = true
			case '1', '2':
				at := &p1
				if ch == '2' {
					at = &p2
				}
				if *at != NoMove {
					return nil, fmt.Errorf("player %c appears twice", ch)
				}
				*at = Move{r, c}
				line[c] = true
			default:
				return nil, fmt.Errorf("malformed cell %q in row %d", ch, r)
			}
		}
		cells = append(cells, line)
	}
	return FromCells(cells, p1, p2, ply)
}

func FormatText(b *Board) string {
	rows := make([]string, b.Height())
	for r := 0; r < b.Height(); r++ {
		var row strings.Builder
		for c := 0; c < b.Width(); c++ {
			m := Move{r, c}
			switch {
			case b.Location(Player1) == m:
				row.WriteByte('1')
			case b.Location(Player2) == m:
				row.WriteByte('2')
			case !b.IsBlank(m):
				row.WriteByte('x')
			default:
				row.WriteByte('.')
			}
		}
		rows[r] = row.String()
	}
	return fmt.Sprintf("%s %d %d", strings.Join(rows, "/"), b.Active(), b.Ply()/2+1)
}
