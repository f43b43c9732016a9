// Package negamax is the depth-limited alpha-beta search that picks a move.
// The search is written once, from the point of view of the side to move
// (negamax), instead of as mirrored maximizing and minimizing halves.
package negamax

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/heuristic"
	"github.com/domino14/uttt/move"
	"github.com/domino14/uttt/zobrist"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

const (
	// WinScore is the value of a won game. The depth left is added to it
	// so that quicker wins (and slower losses) are preferred.
	WinScore = 123456789
	// Infinity bounds the search window. It is larger than any score.
	Infinity = 1 << 30
	// MaxDepth is the deepest search we allow.
	MaxDepth = 32
)

// Solver searches a board in place. It borrows the board for the duration
// of a search and leaves it exactly as it found it.
type Solver struct {
	board     *board.Board
	evaluator heuristic.Calculator
	zobrist   *zobrist.Zobrist
	evalCache *EvalCache

	pruning bool

	principalVariation PVLine
	requestedDepth     int

	nodes   uint64
	leaves  uint64
	cutoffs uint64

	logStream io.Writer
	moveBufs  [MaxDepth + 1][]move.Move
}

// Stats are counters from the last search.
type Stats struct {
	Nodes   uint64
	Leaves  uint64
	Cutoffs uint64
}

// rootMoveLog is one entry of the YAML search log.
type rootMoveLog struct {
	Move  string `yaml:"move"`
	Value int    `yaml:"value"`
	Alpha int    `yaml:"alpha"`
	Nodes uint64 `yaml:"nodes"`
}

type searchLog struct {
	Depth  int           `yaml:"depth"`
	ToMove string        `yaml:"to_move"`
	Best   string        `yaml:"best"`
	Score  int           `yaml:"score"`
	Plays  []rootMoveLog `yaml:"plays"`
}

// Init initializes the solver for a board. A nil evaluator means the
// default static evaluator.
func (s *Solver) Init(b *board.Board, e heuristic.Calculator) {
	s.board = b
	if e == nil {
		e = heuristic.Static{}
	}
	s.evaluator = e
	s.pruning = true
	if s.zobrist == nil {
		s.zobrist = &zobrist.Zobrist{}
		s.zobrist.Initialize()
	}
}

// SetBoard points the solver at a different board, keeping its cache.
func (s *Solver) SetBoard(b *board.Board) {
	s.board = b
}

// SetPruning turns alpha-beta pruning on or off. Without it the solver
// runs a full-width minimax.
func (s *Solver) SetPruning(p bool) {
	s.pruning = p
}

// SetEvalCache sets a cache for leaf evaluations. The cache must only be
// used with one evaluator.
func (s *Solver) SetEvalCache(c *EvalCache) {
	s.evalCache = c
}

// SetLogStream makes every search write a YAML summary of its root moves
// to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// PrincipalVariation returns the line found by the last search.
func (s *Solver) PrincipalVariation() PVLine {
	return s.principalVariation
}

// Stats returns the counters of the last search.
func (s *Solver) Stats() Stats {
	return Stats{Nodes: s.nodes, Leaves: s.leaves, Cutoffs: s.cutoffs}
}

// Search finds the best move for toMove, looking depth plies ahead. The
// score is from toMove's point of view. It panics if there is no legal
// move: callers must not ask for a move in a finished game.
func (s *Solver) Search(toMove board.Player, depth int) (move.Move, int) {
	if depth < 1 || depth > MaxDepth {
		panic(fmt.Sprintf("search depth out of range: %d", depth))
	}
	moves := s.board.LegalMoves()
	if len(moves) == 0 {
		panic("search called on a position with no legal moves")
	}
	s.requestedDepth = depth
	s.nodes, s.leaves, s.cutoffs = 0, 0, 0
	s.principalVariation.Clear()
	tstart := time.Now()

	var best move.Move
	var score int
	if s.pruning {
		best, score = s.searchMoves(moves, toMove, depth)
	} else {
		best, score = s.minimaxRoot(moves, toMove, depth)
	}

	log.Debug().
		Int("depth", depth).
		Str("to-move", toMove.String()).
		Str("best", best.ShortDescription()).
		Int("score", score).
		Uint64("nodes", s.nodes).
		Uint64("leaves", s.leaves).
		Uint64("cutoffs", s.cutoffs).
		Bool("pruning", s.pruning).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("search-returning")
	if s.evalCache != nil {
		s.evalCache.logStats()
	}
	return best, score
}

// searchMoves runs negamax under every root move and keeps the first best
// one.
func (s *Solver) searchMoves(moves []move.Move, toMove board.Player, depth int) (move.Move, int) {
	α := -Infinity
	β := Infinity
	bestValue := -Infinity
	var best move.Move
	var slog *searchLog
	if s.logStream != nil {
		slog = &searchLog{Depth: depth, ToMove: toMove.String()}
	}

	key := s.zobrist.Hash(s.board, toMove)
	pv := PVLine{}
	childPV := PVLine{}
	for _, m := range moves {
		nodesBefore := s.nodes
		before := s.board.MetaBoard()
		s.board.PlayMove(m.Col, m.Row, toMove)
		childKey := s.zobrist.AddMove(key, before, s.board.MetaBoard(), m, toMove)
		value := -s.negamax(childKey, depth-1, -β, -α, toMove.Opponent(), &childPV)
		s.board.UndoMove(m.Col, m.Row)

		if value > bestValue {
			bestValue = value
			best = m.WithScore(value)
			pv.Update(best, childPV, value)
		}
		α = max(α, bestValue)
		if slog != nil {
			slog.Plays = append(slog.Plays, rootMoveLog{
				Move: m.ShortDescription(), Value: value, Alpha: α,
				Nodes: s.nodes - nodesBefore,
			})
		}
		childPV.Clear()
	}
	s.principalVariation = pv
	if slog != nil {
		slog.Best = best.ShortDescription()
		slog.Score = bestValue
		s.writeLog(slog)
	}
	return best, bestValue
}

func (s *Solver) writeLog(slog *searchLog) {
	out, err := yaml.Marshal([]*searchLog{slog})
	if err != nil {
		log.Error().Err(err).Msg("marshalling search log")
		return
	}
	if _, err := s.logStream.Write(out); err != nil {
		log.Error().Err(err).Msg("writing search log")
	}
}

// terminalValue returns the value of a finished game for toMove.
func terminalValue(r board.Result, toMove board.Player, depth int) (int, bool) {
	switch r {
	case board.Draw:
		return 0, true
	case board.Player1Wins, board.Player2Wins:
		if r.Winner() == toMove {
			return WinScore + depth, true
		}
		return -(WinScore + depth), true
	}
	return 0, false
}

func (s *Solver) evaluate(key uint64, toMove board.Player) int {
	s.leaves++
	if s.evalCache != nil {
		if v, ok := s.evalCache.lookup(key); ok {
			return v
		}
	}
	v := s.evaluator.Evaluate(s.board, toMove)
	if s.evalCache != nil {
		s.evalCache.store(key, v)
	}
	return v
}

func (s *Solver) genMoves(depth int) []move.Move {
	s.moveBufs[depth] = s.board.AppendLegalMoves(s.moveBufs[depth][:0])
	return s.moveBufs[depth]
}

// negamax returns the value of the position for toMove. The local board of
// the move that led here has already been closed by board.PlayMove.
func (s *Solver) negamax(nodeKey uint64, depth int, α, β int, toMove board.Player,
	pv *PVLine) int {

	s.nodes++
	if v, over := terminalValue(s.board.CheckMetaResult(), toMove, depth); over {
		return v
	}
	if depth == 0 {
		return s.evaluate(nodeKey, toMove)
	}

	childPV := PVLine{}
	bestValue := -Infinity
	for _, m := range s.genMoves(depth) {
		before := s.board.MetaBoard()
		s.board.PlayMove(m.Col, m.Row, toMove)
		childKey := s.zobrist.AddMove(nodeKey, before, s.board.MetaBoard(), m, toMove)
		value := -s.negamax(childKey, depth-1, -β, -α, toMove.Opponent(), &childPV)
		s.board.UndoMove(m.Col, m.Row)

		if value > bestValue {
			bestValue = value
			pv.Update(m.WithScore(value), childPV, value)
		}
		α = max(α, bestValue)
		if α >= β {
			s.cutoffs++
			break // beta cut-off
		}
		childPV.Clear()
	}
	return bestValue
}
