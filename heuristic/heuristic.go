// Package heuristic is the static evaluation used at the search frontier.
// It scores possible lines on the meta board and inside every local board
// that is still in play. The weights are fixed.
package heuristic

import "github.com/domino14/uttt/board"

const (
	// MacroWeight scales the meta board score relative to the local boards.
	MacroWeight = 23
	// TwoInARowBonus is added for a line where one side holds two of three.
	TwoInARowBonus = 7
)

// positionWeights values the squares of any 3x3 grid: center, then corners.
var positionWeights = [board.NumMeta]int{
	3, 2, 3,
	2, 4, 2,
	3, 2, 3,
}

// boardWeights is how much each local board's score counts.
var boardWeights = [board.NumMeta]int{
	3, 2, 3,
	2, 4, 2,
	3, 2, 3,
}

// mark is a square of a 3x3 grid as the scorer sees it.
type mark int8

const (
	blank   mark = 0
	blocker mark = -1
	// marks 1 and 2 are player ids.
)

type grid [board.NumMeta]mark

// Evaluate scores the position for p.
func Evaluate(b *board.Board, p board.Player) int {
	value := MetaScore(b, p) * MacroWeight
	for i := 0; i < board.NumMeta; i++ {
		mc, mr := i%board.MetaDim, i/board.MetaDim
		if b.Meta(mc, mr).Decided() {
			continue
		}
		value += LocalScore(b, mc, mr, p) * boardWeights[i]
	}
	return value
}

// MetaScore scores the meta board alone. A drawn local board blocks every
// line through it.
func MetaScore(b *board.Board, p board.Player) int {
	var g grid
	for i, m := range b.MetaBoard() {
		switch {
		case m == board.Drawn:
			g[i] = blocker
		case m.Owner() != board.NoPlayer:
			g[i] = mark(m.Owner())
		}
	}
	return scoreGrid(&g, p)
}

// LocalScore scores local board (mc, mr) alone.
func LocalScore(b *board.Board, mc, mr int, p board.Player) int {
	var g grid
	for k := 0; k < board.NumMeta; k++ {
		c := b.LocalCell(mc, mr, k)
		switch {
		case c == board.DrawnCell:
			g[k] = blocker
		case c.Owner() != board.NoPlayer:
			g[k] = mark(c.Owner())
		}
	}
	return scoreGrid(&g, p)
}

func lineValue(ct int) int {
	if ct == 2 {
		return 1 + TwoInARowBonus
	}
	return 1
}

// scoreGrid counts lines only one side can still complete, then adds the
// positional weight of every occupied square.
func scoreGrid(g *grid, p board.Player) int {
	me, opp := mark(p), mark(p.Opponent())
	mine, theirs := 0, 0
	for _, line := range board.WinningLines {
		var pc, oc int
		blocked := false
		for _, k := range line {
			switch g[k] {
			case me:
				pc++
			case opp:
				oc++
			case blocker:
				blocked = true
			}
		}
		if blocked || (pc > 0 && oc > 0) {
			continue
		}
		if pc > 0 {
			mine += lineValue(pc)
		} else if oc > 0 {
			theirs += lineValue(oc)
		}
	}
	pos := 0
	for k, v := range g {
		switch v {
		case me:
			pos += positionWeights[k]
		case opp:
			pos -= positionWeights[k]
		}
	}
	return mine - theirs + pos
}
