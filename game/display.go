package game

import (
	"fmt"
	"strings"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText turns the current state of the game into a displayable
// string.
func (g *Game) ToDisplayText() string {
	bts := strings.Split(g.board.ToDisplayText(), "\n")
	hpadding := 3

	addText(bts, 1, hpadding, fmt.Sprintf("Game %s", g.uid))
	addText(bts, 2, hpadding, fmt.Sprintf("Turn %d", len(g.history)))
	if g.playing == Playing {
		addText(bts, 3, hpadding, fmt.Sprintf("%s to move", g.onturn))
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		addText(bts, 5, hpadding, fmt.Sprintf("Last: %s %s", last.Player, last.Move.ShortDescription()))
	}
	if g.playing == GameOver {
		addText(bts, 7, hpadding, fmt.Sprintf("Game is over: %s", g.result))
	}
	return strings.Join(bts, "\n")
}
