package heuristic

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/uttt/board"
)

func TestEmptyBoardIsEven(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	is.Equal(Evaluate(b, board.Player1), 0)
	is.Equal(Evaluate(b, board.Player2), 0)
}

func TestCenterMove(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	b.PlayMove(4, 4, board.Player1)
	// four open lines through the center plus the center weight, all times
	// the center board weight.
	is.Equal(LocalScore(b, 1, 1, board.Player1), 8)
	is.Equal(Evaluate(b, board.Player1), 32)
	is.Equal(Evaluate(b, board.Player2), -32)
}

func TestTwoInARow(t *testing.T) {
	is := is.New(t)
	b := &board.Board{}
	is.NoErr(b.SetFromPlaintext(`
XX.......
.........
.........
.........
.........
.........
.........
.........
.........`))
	is.Equal(LocalScore(b, 0, 0, board.Player1), 16)
	is.Equal(Evaluate(b, board.Player1), 48)

	// An opposing mark kills the row and opens two lines of its own.
	b.SetCell(2, 0, board.Cell(board.Player2))
	is.Equal(LocalScore(b, 0, 0, board.Player1), 3)
}

func TestDeadSquareBlocksLines(t *testing.T) {
	is := is.New(t)
	b := &board.Board{}
	is.NoErr(b.SetFromPlaintext(`
XX#......
.........
.........
.........
.........
.........
.........
.........
.........`))
	is.Equal(b.Cell(2, 0), board.DrawnCell)
	// the top row is dead; column 0, column 1 and the diagonal remain.
	is.Equal(LocalScore(b, 0, 0, board.Player1), 8)
	is.Equal(LocalScore(b, 0, 0, board.Player2), -8)
}

func TestMetaScore(t *testing.T) {
	is := is.New(t)
	b := &board.Board{}
	b.SetMeta(1, 1, board.Meta(board.Player1))
	is.Equal(MetaScore(b, board.Player1), 8)
	is.Equal(Evaluate(b, board.Player1), 8*MacroWeight)

	b.SetMeta(0, 0, board.Drawn)
	is.Equal(MetaScore(b, board.Player1), 7)
	is.Equal(Evaluate(b, board.Player2), -7*MacroWeight)
}

func TestDecidedBoardsAreNotScoredLocally(t *testing.T) {
	is := is.New(t)
	b := &board.Board{}
	is.NoErr(b.SetFromPlaintext(`
XXX......
.........
.........
.........
.........
.........
.........
.........
.........`))
	is.Equal(b.Meta(0, 0), board.Meta(board.Player1))
	is.Equal(Evaluate(b, board.Player1), MetaScore(b, board.Player1)*MacroWeight)
}

func TestZeroSum(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(7))
	var calc Calculator = Static{}
	for game := 0; game < 30; game++ {
		b := board.NewBoard()
		p := board.Player1
		for b.CheckMetaResult() == board.None {
			is.Equal(calc.Evaluate(b, board.Player1), -calc.Evaluate(b, board.Player2))
			moves := b.LegalMoves()
			m := moves[rng.Intn(len(moves))]
			b.PlayMove(m.Col, m.Row, p)
			p = p.Opponent()
		}
	}
}
