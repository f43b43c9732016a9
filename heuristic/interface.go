package heuristic

import "github.com/domino14/uttt/board"

// Calculator assigns a static value to a position.
type Calculator interface {
	// Evaluate returns how good the position is for p. It must be zero-sum:
	// Evaluate(b, p) == -Evaluate(b, p.Opponent()).
	Evaluate(b *board.Board, p board.Player) int
}

// Static is the default Calculator. It just calls Evaluate.
type Static struct{}

func (Static) Evaluate(b *board.Board, p board.Player) int {
	return Evaluate(b, p)
}
