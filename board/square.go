package board

import "fmt"

// Player is a player id. The game engine numbers its players 1 and 2.
type Player int8

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

// Opponent returns the other player's id.
func (p Player) Opponent() Player {
	return 3 - p
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

// A Cell is the content of one of the 81 squares of the grid.
type Cell int8

const (
	Empty Cell = 0
	// Cell values 1 and 2 are player ids.
	// DrawnCell is never produced by play. It marks a square that neither
	// player may use in a position set up by hand ('#' in SetFromPlaintext);
	// it blocks every line through it.
	DrawnCell Cell = -2
)

// Owner returns the player occupying the cell, or NoPlayer.
func (c Cell) Owner() Player {
	if c == Cell(Player1) || c == Cell(Player2) {
		return Player(c)
	}
	return NoPlayer
}

// A Meta is the status of one local board, as tracked on the meta board.
type Meta int8

const (
	// Undetermined local boards are not finished but are not playable
	// right now.
	Undetermined Meta = 0
	// Open local boards are where the next move must be played.
	Open Meta = -1
	// Meta values 1 and 2 are player ids.
	Drawn Meta = -2
)

// Decided is true for local boards that have been won or drawn. These
// never reopen.
func (m Meta) Decided() bool {
	return m == Drawn || m == Meta(Player1) || m == Meta(Player2)
}

// Owner returns the player that won the local board, or NoPlayer.
func (m Meta) Owner() Player {
	if m == Meta(Player1) || m == Meta(Player2) {
		return Player(m)
	}
	return NoPlayer
}

func (m Meta) String() string {
	switch m {
	case Undetermined:
		return "undetermined"
	case Open:
		return "open"
	case Drawn:
		return "drawn"
	case Meta(Player1), Meta(Player2):
		return Player(m).String()
	}
	return fmt.Sprintf("meta(%d)", int8(m))
}

// Result is the outcome of a local board or of the whole game.
type Result int8

const (
	None Result = iota
	Player1Wins
	Player2Wins
	Draw
)

// WinFor returns the Result in which p has won.
func WinFor(p Player) Result {
	switch p {
	case Player1:
		return Player1Wins
	case Player2:
		return Player2Wins
	}
	return None
}

// Winner returns the winning player, or NoPlayer for undecided and drawn
// results.
func (r Result) Winner() Player {
	switch r {
	case Player1Wins:
		return Player1
	case Player2Wins:
		return Player2
	}
	return NoPlayer
}

// Decisive is true if somebody won.
func (r Result) Decisive() bool {
	return r == Player1Wins || r == Player2Wins
}

func (r Result) String() string {
	switch r {
	case None:
		return "none"
	case Player1Wins:
		return "player1-wins"
	case Player2Wins:
		return "player2-wins"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("result(%d)", int8(r))
}
