// Package position converts boards to and from strings: the comma
// separated field and macroboard sent by the game server, and a compact
// one-line form used by the shell and the self-play logs.
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/domino14/uttt/board"
)

var (
	ErrFieldLength = errors.New("field must have 81 values")
	ErrMacroLength = errors.New("macroboard must have 9 values")
	ErrBadValue    = errors.New("value out of range")
	ErrBadPosition = errors.New("position must look like <field>/<macroboard>")
)

const protocolDraw = 0

func parseInts(s string, n int, lengthErr error) ([]int, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%w: got %d", lengthErr, len(fields))
	}
	vals := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("value %d (%q): %w", i, f, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// ParseField parses 81 comma-separated cell values, row by row. Values are
// 0 (empty), 1 or 2.
func ParseField(s string) ([board.NumCells]board.Cell, error) {
	var cells [board.NumCells]board.Cell
	vals, err := parseInts(s, board.NumCells, ErrFieldLength)
	if err != nil {
		return cells, err
	}
	for i, v := range vals {
		if v < 0 || v > 2 {
			return cells, fmt.Errorf("%w: cell %d is %d", ErrBadValue, i, v)
		}
		cells[i] = board.Cell(v)
	}
	return cells, nil
}

// ParseMacroboard parses 9 comma-separated values as the server sends
// them: -1 for a board in play, 0 for a board not in play (undecided or
// drawn), 1 or 2 for a won board.
func ParseMacroboard(s string) ([board.NumMeta]int, error) {
	var macro [board.NumMeta]int
	vals, err := parseInts(s, board.NumMeta, ErrMacroLength)
	if err != nil {
		return macro, err
	}
	for i, v := range vals {
		if v < -1 || v > 2 {
			return macro, fmt.Errorf("%w: macroboard %d is %d", ErrBadValue, i, v)
		}
		macro[i] = v
	}
	return macro, nil
}

// FromProtocol builds a board from a parsed field and macroboard. The
// server does not tell undecided boards from drawn ones; a board marked 0
// whose cells are all taken without a line is drawn.
func FromProtocol(cells [board.NumCells]board.Cell, macro [board.NumMeta]int) *board.Board {
	b := board.NewBoard()
	for i, c := range cells {
		b.SetCell(i%board.Dim, i/board.Dim, c)
	}
	for i, v := range macro {
		mc, mr := i%board.MetaDim, i/board.MetaDim
		m := board.Meta(v)
		if v == protocolDraw && b.CheckLocalResult(mc, mr) == board.Draw {
			m = board.Drawn
		}
		b.SetMeta(mc, mr, m)
	}
	return b
}

// ParseProtocol parses a field and macroboard string straight into a board.
func ParseProtocol(field, macroboard string) (*board.Board, error) {
	cells, err := ParseField(field)
	if err != nil {
		return nil, err
	}
	macro, err := ParseMacroboard(macroboard)
	if err != nil {
		return nil, err
	}
	return FromProtocol(cells, macro), nil
}

// Format writes the board on a single line: the field, a slash, then the
// meta board with -2 for drawn boards.
func Format(b *board.Board) string {
	var sb strings.Builder
	for i, c := range b.Cells() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}
	sb.WriteByte('/')
	for i, m := range b.MetaBoard() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(m)))
	}
	return sb.String()
}

// Parse reads a string written by Format.
func Parse(s string) (*board.Board, error) {
	field, meta, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return nil, ErrBadPosition
	}
	cells, err := ParseField(field)
	if err != nil {
		return nil, err
	}
	vals, err := parseInts(meta, board.NumMeta, ErrMacroLength)
	if err != nil {
		return nil, err
	}
	b := board.NewBoard()
	for i, c := range cells {
		b.SetCell(i%board.Dim, i/board.Dim, c)
	}
	for i, v := range vals {
		if v < int(board.Drawn) || v > int(board.Player2) {
			return nil, fmt.Errorf("%w: meta %d is %d", ErrBadValue, i, v)
		}
		b.SetMeta(i%board.MetaDim, i/board.MetaDim, board.Meta(v))
	}
	return b, nil
}

// Fingerprint is a hash of the position, for deduplication.
func Fingerprint(b *board.Board) uint64 {
	return xxhash.Sum64String(Format(b))
}
