package negamax

import (
	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/move"
)

// minimaxRoot is the unpruned reference search. It visits every node to
// the requested depth and breaks ties the same way searchMoves does, so
// the two must always agree on both move and score.
func (s *Solver) minimaxRoot(moves []move.Move, toMove board.Player, depth int) (move.Move, int) {
	bestValue := -Infinity
	var best move.Move
	key := s.zobrist.Hash(s.board, toMove)
	pv := PVLine{}
	childPV := PVLine{}
	for _, m := range moves {
		before := s.board.MetaBoard()
		s.board.PlayMove(m.Col, m.Row, toMove)
		childKey := s.zobrist.AddMove(key, before, s.board.MetaBoard(), m, toMove)
		value := -s.fullWidth(childKey, depth-1, toMove.Opponent(), &childPV)
		s.board.UndoMove(m.Col, m.Row)
		if value > bestValue {
			bestValue = value
			best = m.WithScore(value)
			pv.Update(best, childPV, value)
		}
		childPV.Clear()
	}
	s.principalVariation = pv
	return best, bestValue
}

func (s *Solver) fullWidth(nodeKey uint64, depth int, toMove board.Player, pv *PVLine) int {
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
		value := -s.fullWidth(childKey, depth-1, toMove.Opponent(), &childPV)
		s.board.UndoMove(m.Col, m.Row)
		if value > bestValue {
			bestValue = value
			pv.Update(m.WithScore(value), childPV, value)
		}
		childPV.Clear()
	}
	return bestValue
}
