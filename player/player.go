// Package player decides how deep to search and asks the solver for a
// move.
package player

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/heuristic"
	"github.com/domino14/uttt/move"
	"github.com/domino14/uttt/negamax"
)

// DepthTable maps the shape of a position to a search depth.
type DepthTable struct {
	Opening          int
	DeepEndgame      int
	Wide             int
	Default          int
	WideThreshold    int
	EndgameThreshold int
}

// DefaultDepthTable is the table with the stock depths.
var DefaultDepthTable = DepthTable{
	Opening:          8,
	DeepEndgame:      8,
	Wide:             5,
	Default:          7,
	WideThreshold:    25,
	EndgameThreshold: 4,
}

// DepthTableFromConfig reads the depth settings.
func DepthTableFromConfig(cfg *config.Config) DepthTable {
	return DepthTable{
		Opening:          cfg.GetInt(config.ConfigDepthOpening),
		DeepEndgame:      cfg.GetInt(config.ConfigDepthDeepEndgame),
		Wide:             cfg.GetInt(config.ConfigDepthWide),
		Default:          cfg.GetInt(config.ConfigDepthDefault),
		WideThreshold:    cfg.GetInt(config.ConfigWideThreshold),
		EndgameThreshold: cfg.GetInt(config.ConfigEndgameThreshold),
	}
}

// Depth picks a depth for a position with numMoves legal moves. freeChoice
// is true if the mover was sent to a finished board.
func (d DepthTable) Depth(numMoves int, freeChoice bool) int {
	switch {
	case numMoves <= d.EndgameThreshold:
		return d.DeepEndgame
	case numMoves >= 7 && !freeChoice:
		return d.Opening
	case numMoves > d.WideThreshold:
		return d.Wide
	}
	return d.Default
}

// Player is the move selector for one seat.
type Player struct {
	id     board.Player
	depths DepthTable
	solver *negamax.Solver

	searchLog *os.File
}

// NewPlayer creates a player for seat id. A nil cfg uses the defaults.
func NewPlayer(id board.Player, cfg *config.Config) *Player {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	p := &Player{
		id:     id,
		depths: DepthTableFromConfig(cfg),
		solver: &negamax.Solver{},
	}
	p.solver.Init(nil, heuristic.Static{})
	p.solver.SetPruning(cfg.GetBool(config.ConfigUsePruning))
	if pow := cfg.GetInt(config.ConfigEvalCachePower); pow > 0 {
		p.solver.SetEvalCache(negamax.NewEvalCache(pow))
	}
	if path := cfg.GetString(config.ConfigSearchLogPath); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Err(err).Str("path", path).Msg("could-not-open-search-log")
		} else {
			p.searchLog = f
			p.solver.SetLogStream(f)
		}
	}
	return p
}

// Close releases the search log file, if any. The player keeps working
// afterwards, without a search log.
func (p *Player) Close() error {
	if p.searchLog == nil {
		return nil
	}
	err := p.searchLog.Close()
	p.searchLog = nil
	p.solver.SetLogStream(nil)
	return err
}

// ID is the seat this player moves for.
func (p *Player) ID() board.Player {
	return p.id
}

// SetID changes the seat, e.g. once the protocol says which bot we are.
func (p *Player) SetID(id board.Player) {
	p.id = id
}

// Solver exposes the underlying search, mostly for its statistics.
func (p *Player) Solver() *negamax.Solver {
	return p.solver
}

// ChooseMove returns the move to play on b. On an empty board it plays the
// center without searching. It panics if there is no legal move.
func (p *Player) ChooseMove(b *board.Board) move.Move {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		panic("ChooseMove called without any legal move")
	}
	if len(moves) == board.NumCells {
		return move.New(4, 4)
	}
	depth := p.depths.Depth(len(moves), b.FreeChoice())
	return p.ChooseMoveAtDepth(b, depth)
}

// ChooseMoveAtDepth searches b to a fixed depth.
func (p *Player) ChooseMoveAtDepth(b *board.Board, depth int) move.Move {
	p.solver.SetBoard(b)
	m, score := p.solver.Search(p.id, depth)
	pv := p.solver.PrincipalVariation()
	log.Debug().
		Str("player", p.id.String()).
		Int("depth", depth).
		Int("score", score).
		Strs("pv", lo.Map(pv.Moves, func(m move.Move, _ int) string {
			return m.ShortDescription()
		})).
		Msg("chose-move")
	return m
}
