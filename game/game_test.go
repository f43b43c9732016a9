package game

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.Equal(g.Playing(), Playing)
	is.Equal(g.PlayerOnTurn(), board.Player1)
	is.Equal(g.Result(), board.None)
	is.Equal(g.Turn(), 0)
	is.True(len(g.Uid()) > 0)
	is.True(g.Uid() != NewGame().Uid())
}

func TestPlayAndUnplay(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.NoErr(g.PlayMove(move.New(4, 4)))
	is.Equal(g.PlayerOnTurn(), board.Player2)

	// player 2 is sent to the center board.
	err := g.PlayMove(move.New(0, 0))
	is.True(errors.Is(err, ErrIllegalMove))
	err = g.PlayMove(move.New(4, 4))
	is.True(errors.Is(err, ErrIllegalMove))
	err = g.PlayMove(move.New(9, 4))
	is.True(errors.Is(err, ErrIllegalMove))

	is.NoErr(g.PlayMove(move.New(3, 3)))
	is.Equal(g.Turn(), 2)
	h := g.History()
	is.Equal(h[0].Player, board.Player1)
	is.Equal(h[1].Move, move.New(3, 3))

	is.NoErr(g.UnplayLastMove())
	is.NoErr(g.UnplayLastMove())
	is.True(g.Board().Equals(board.NewBoard()))
	is.Equal(g.PlayerOnTurn(), board.Player1)
	is.True(errors.Is(g.UnplayLastMove(), ErrNoHistory))
}

func TestGameOver(t *testing.T) {
	is := is.New(t)
	b := &board.Board{}
	b.SetMeta(0, 0, board.Meta(board.Player1))
	b.SetMeta(1, 0, board.Meta(board.Player1))
	b.SetMeta(2, 0, board.Open)
	b.SetCell(6, 0, board.Cell(board.Player1))
	b.SetCell(7, 0, board.Cell(board.Player1))

	g := NewGameFromBoard(b, board.Player1)
	is.Equal(g.Playing(), Playing)
	is.NoErr(g.PlayMove(move.New(8, 0)))
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.Result(), board.Player1Wins)
	is.Equal(g.History()[0].LocalResult, board.Player1Wins)

	err := g.PlayMove(move.New(0, 3))
	is.True(errors.Is(err, ErrGameOver))
	is.True(strings.Contains(g.ToDisplayText(), "Game is over: player1-wins"))

	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Playing(), Playing)
	is.Equal(g.Result(), board.None)
}

func TestHistoryYAML(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.NoErr(g.PlayMove(move.New(4, 4)))
	is.NoErr(g.PlayMove(move.New(5, 5)))
	out, err := g.HistoryYAML()
	is.NoErr(err)

	var rec gameRecord
	is.NoErr(yaml.Unmarshal(out, &rec))
	is.Equal(rec.Uid, g.Uid())
	is.Equal(rec.Result, "none")
	is.Equal(len(rec.Turns), 2)
	is.Equal(rec.Turns[0].Move, "e5")
	is.Equal(rec.Turns[1].Player, "player2")
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.NoErr(g.PlayMove(move.New(4, 4)))
	txt := g.ToDisplayText()
	is.True(strings.Contains(txt, "player2 to move"))
	is.True(strings.Contains(txt, "Last: player1 e5"))
}
