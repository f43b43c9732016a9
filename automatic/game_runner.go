// Package automatic plays the engine against itself, for testing changes
// to the search and the evaluation.
package automatic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/game"
	"github.com/domino14/uttt/move"
	"github.com/domino14/uttt/player"
	"github.com/domino14/uttt/position"
)

// maxOpeningTries is how many random openings we draw looking for one
// that has not been played yet.
const maxOpeningTries = 20

// GameRunner plays self-play games. A runner is not safe for concurrent
// use; every worker gets its own.
type GameRunner struct {
	game    *game.Game
	config  *config.Config
	players [2]*player.Player
	logchan chan string

	randomPlies int
	openings    *openingSet
	opening     []move.Move
}

// NewGameRunner creates a runner. logchan, if not nil, receives one CSV
// line per finished game.
func NewGameRunner(logchan chan string, cfg *config.Config) *GameRunner {
	r := &GameRunner{
		logchan:     logchan,
		config:      cfg,
		randomPlies: cfg.GetInt(config.ConfigAutoplayRandomPlies),
	}
	r.players[0] = player.NewPlayer(board.Player1, cfg)
	r.players[1] = player.NewPlayer(board.Player2, cfg)
	return r
}

// StartGame sets up a new game and plays its random opening.
func (r *GameRunner) StartGame() {
	for try := 0; ; try++ {
		r.game = game.NewGame()
		r.playRandomOpening()
		if r.openings == nil || r.openings.add(position.Fingerprint(r.game.Board())) {
			return
		}
		if try == maxOpeningTries {
			log.Debug().Str("opening", r.openingString()).Msg("duplicate-opening")
			return
		}
	}
}

func (r *GameRunner) playRandomOpening() {
	r.opening = r.opening[:0]
	for i := 0; i < r.randomPlies && r.game.Playing() == game.Playing; i++ {
		moves := r.game.Board().LegalMoves()
		m := moves[frand.Intn(len(moves))]
		if err := r.game.PlayMove(m); err != nil {
			// a legal move generated from the board itself.
			panic(err)
		}
		r.opening = append(r.opening, m)
	}
}

func (r *GameRunner) openingString() string {
	return strings.Join(lo.Map(r.opening, func(m move.Move, _ int) string {
		return m.ShortDescription()
	}), " ")
}

// PlayBestTurn has the player on turn search and play a move.
func (r *GameRunner) PlayBestTurn() move.Move {
	onturn := r.game.PlayerOnTurn()
	m := r.players[onturn-1].ChooseMove(r.game.Board())
	if err := r.game.PlayMove(m); err != nil {
		panic(fmt.Sprintf("engine chose an illegal move %s: %v", m, err))
	}
	return m
}

// PlayFull plays the current game to the end and returns its result.
func (r *GameRunner) PlayFull() board.Result {
	for r.game.Playing() == game.Playing {
		r.PlayBestTurn()
	}
	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%s,%s,%d,%s,%016x\n",
			r.game.Uid(),
			r.openingString(),
			r.game.Turn(),
			r.game.Result(),
			position.Fingerprint(r.game.Board()))
	}
	return r.game.Result()
}

// Close releases the players' resources.
func (r *GameRunner) Close() error {
	return errors.Join(r.players[0].Close(), r.players[1].Close())
}

// Game is the game currently being played.
func (r *GameRunner) Game() *game.Game {
	return r.game
}
