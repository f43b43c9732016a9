// Package game referees a game of Ultimate Tic-Tac-Toe: whose turn it is,
// which moves are legal, and when the game is over. AI players and human
// players play a game outside of the scope of this package.
package game

import (
	"errors"
	"fmt"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog/log"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/move"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
	ErrNoHistory   = errors.New("no move to take back")
)

// PlayState is whether the game is still going.
type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

func (s PlayState) String() string {
	if s == Playing {
		return "playing"
	}
	return "game over"
}

// Game is the state of one game.
type Game struct {
	uid     string
	board   *board.Board
	onturn  board.Player
	playing PlayState
	result  board.Result
	history []Turn
}

// NewGame starts a game on an empty board with player 1 to move.
func NewGame() *Game {
	g := &Game{
		uid:   shortuuid.New(),
		board: board.NewBoard(),
	}
	g.onturn = board.Player1
	return g
}

// NewGameFromBoard starts a game from a position, with onturn to move.
// The board becomes owned by the game.
func NewGameFromBoard(b *board.Board, onturn board.Player) *Game {
	g := &Game{
		uid:    shortuuid.New(),
		board:  b,
		onturn: onturn,
	}
	g.updateResult()
	return g
}

func (g *Game) updateResult() {
	g.result = g.board.CheckMetaResult()
	if g.result == board.None {
		g.playing = Playing
	} else {
		g.playing = GameOver
	}
}

// ValidateMove returns an error if m cannot be played right now.
func (g *Game) ValidateMove(m move.Move) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	if m.Col < 0 || m.Col >= board.Dim || m.Row < 0 || m.Row >= board.Dim {
		return fmt.Errorf("%w: %s is off the board", ErrIllegalMove, m)
	}
	for _, lm := range g.board.LegalMoves() {
		if lm.SameCell(m) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
}

// PlayMove plays m for the player on turn and passes the turn.
func (g *Game) PlayMove(m move.Move) error {
	if err := g.ValidateMove(m); err != nil {
		return err
	}
	local := g.board.PlayMove(m.Col, m.Row, g.onturn)
	g.history = append(g.history, Turn{
		Player:      g.onturn,
		Move:        m,
		LocalResult: local,
	})
	g.updateResult()
	log.Debug().Str("uid", g.uid).Str("player", g.onturn.String()).
		Str("move", m.ShortDescription()).Str("local", local.String()).
		Str("result", g.result.String()).Msg("played-move")
	g.onturn = g.onturn.Opponent()
	return nil
}

// UnplayLastMove takes back the last move played through PlayMove.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 || g.board.UndoDepth() == 0 {
		return ErrNoHistory
	}
	last := g.history[len(g.history)-1]
	g.board.UndoMove(last.Move.Col, last.Move.Row)
	g.history = g.history[:len(g.history)-1]
	g.onturn = last.Player
	g.updateResult()
	return nil
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Player {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

// Result is None while the game is being played.
func (g *Game) Result() board.Result {
	return g.result
}

// Turn is the number of moves played so far.
func (g *Game) Turn() int {
	return len(g.history)
}
