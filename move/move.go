// Package move holds the Move value handed around by move generation,
// the search and the protocol layer.
package move

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Move is a cell on the 9x9 board, with the score the search assigned to
// it, if any. Col and Row are 0-based.
type Move struct {
	Col   int
	Row   int
	Score int
}

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[a-iA-I])(?P<row>[1-9])$`)
}

// New creates an unscored move.
func New(col, row int) Move {
	return Move{Col: col, Row: row}
}

// WithScore returns a copy of the move carrying the given score.
func (m Move) WithScore(score int) Move {
	m.Score = score
	return m
}

// SameCell is true if the two moves target the same cell, regardless of
// their scores.
func (m Move) SameCell(o Move) bool {
	return m.Col == o.Col && m.Row == o.Row
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	return fmt.Sprintf("<%s (%d,%d) score: %d>", m.ShortDescription(), m.Col, m.Row, m.Score)
}

// ShortDescription returns the human-readable coordinates of the move,
// e.g. e5 for the board center.
func (m Move) ShortDescription() string {
	return ToBoardGameCoords(m.Col, m.Row)
}

// ToBoardGameCoords turns 0-based coordinates into a coordinate string:
// a column letter a-i followed by a row number 1-9.
func ToBoardGameCoords(col, row int) string {
	return string(rune('a'+col)) + strconv.Itoa(row+1)
}

// FromBoardGameCoords does the inverse of the above. It returns an
// error for anything that isn't a square on the board.
func FromBoardGameCoords(c string) (int, int, error) {
	c = strings.TrimSpace(c)
	match := reCoords.FindStringSubmatch(c)
	if match == nil {
		return 0, 0, fmt.Errorf("bad coordinates: %q", c)
	}
	col := int(strings.ToLower(match[1])[0] - 'a')
	row, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, err
	}
	return col, row - 1, nil
}

// FromNumericCoords parses two 0-based integers, as used by the game
// engine protocol (place_move 4 4).
func FromNumericCoords(xs, ys string) (Move, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Move{}, fmt.Errorf("bad column %q: %w", xs, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Move{}, fmt.Errorf("bad row %q: %w", ys, err)
	}
	if x < 0 || x > 8 || y < 0 || y > 8 {
		return Move{}, fmt.Errorf("coordinates out of range: %d %d", x, y)
	}
	return New(x, y), nil
}
