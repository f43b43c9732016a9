package board

import (
	"errors"
	"fmt"
	"strings"
)

func cellRune(c Cell) rune {
	switch c {
	case Cell(Player1):
		return 'X'
	case Cell(Player2):
		return 'O'
	case DrawnCell:
		return '#'
	}
	return '.'
}

func metaRune(m Meta) rune {
	switch m {
	case Open:
		return '*'
	case Drawn:
		return '#'
	case Meta(Player1):
		return 'X'
	case Meta(Player2):
		return 'O'
	}
	return '.'
}

// ToDisplayText renders the grid with the meta board next to it. Player 1
// is X, player 2 is O; on the meta board * marks an open local board and #
// a drawn one.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("\n   a b c   d e f   g h i        meta\n")
	for y := 0; y < Dim; y++ {
		if y > 0 && y%MetaDim == 0 {
			sb.WriteString("   ------+-------+------\n")
		}
		fmt.Fprintf(&sb, "%d  ", y+1)
		for x := 0; x < Dim; x++ {
			if x > 0 && x%MetaDim == 0 {
				sb.WriteString("| ")
			}
			sb.WriteRune(cellRune(b.cells[y*Dim+x]))
			sb.WriteByte(' ')
		}
		if y%MetaDim == 1 {
			mr := y / MetaDim
			sb.WriteString("      ")
			for mc := 0; mc < MetaDim; mc++ {
				sb.WriteRune(metaRune(b.meta[mr*MetaDim+mc]))
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SetFromPlaintext sets the cells from a diagram of nine rows of X, O, #
// (a dead square) and . characters. Spaces and | are ignored, as are lines made only of - and
// +. Local boards that the diagram shows as won or full are closed on the
// meta board; all others become Undetermined, so the caller must open the
// board that is to be played next (or leave them all implicitly playable).
func (b *Board) SetFromPlaintext(text string) error {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Map(func(r rune) rune {
			if r == ' ' || r == '|' || r == '\t' {
				return -1
			}
			return r
		}, line)
		if line == "" || strings.Trim(line, "-+") == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != Dim {
		return fmt.Errorf("expected %d rows, got %d", Dim, len(rows))
	}
	b.undoLog = b.undoLog[:0]
	for y, row := range rows {
		if len(row) != Dim {
			return fmt.Errorf("row %d: expected %d cells, got %d", y+1, Dim, len(row))
		}
		for x, r := range row {
			switch r {
			case 'X', 'x':
				b.cells[y*Dim+x] = Cell(Player1)
			case 'O', 'o':
				b.cells[y*Dim+x] = Cell(Player2)
			case '#':
				b.cells[y*Dim+x] = DrawnCell
			case '.':
				b.cells[y*Dim+x] = Empty
			default:
				return errors.New("unexpected character in diagram: " + string(r))
			}
		}
	}
	for mr := 0; mr < MetaDim; mr++ {
		for mc := 0; mc < MetaDim; mc++ {
			b.meta[mr*MetaDim+mc] = Undetermined
			b.RecordLocalOutcome(mc, mr, b.CheckLocalResult(mc, mr))
		}
	}
	return nil
}
