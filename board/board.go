// Package board holds the state of an Ultimate Tic-Tac-Toe game: the 9x9
// grid of cells and the 3x3 meta board that tracks the nine local boards.
//
// All mutation during a search goes through PlayMove (or ApplyMove) and
// UndoMove. Every applied move pushes the meta board as it was before the
// move onto an undo log, so that undoing a move restores the board exactly,
// including any local boards that were bulk-opened or closed in between.
package board

import (
	"fmt"

	"github.com/domino14/uttt/move"
)

const (
	// Dim is the width and height of the cell grid.
	Dim = 9
	// MetaDim is the width and height of the meta board.
	MetaDim = 3
	// NumCells is the number of cells on the grid.
	NumCells = Dim * Dim
	// NumMeta is the number of local boards.
	NumMeta = MetaDim * MetaDim
)

// WinningLines are the eight triples of a 3x3 grid, as flat indexes
// (row*3 + col): three rows, three columns, two diagonals.
var WinningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

type undoEntry struct {
	cell int8
	meta [NumMeta]Meta
}

// Board is the game state. The zero value is an empty board on which no
// local board is Open; every local board is then implicitly playable.
type Board struct {
	cells [NumCells]Cell
	meta  [NumMeta]Meta

	undoLog []undoEntry
}

// NewBoard returns an empty board with every local board open, which is
// how the game engine starts a game.
func NewBoard() *Board {
	b := &Board{undoLog: make([]undoEntry, 0, NumCells)}
	b.Clear()
	return b
}

// Clear empties the board and opens every local board.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	for i := range b.meta {
		b.meta[i] = Open
	}
	b.undoLog = b.undoLog[:0]
}

func cellIndex(x, y int) int {
	if x < 0 || x >= Dim || y < 0 || y >= Dim {
		panic(fmt.Sprintf("cell out of range: (%d, %d)", x, y))
	}
	return y*Dim + x
}

func metaIndex(mc, mr int) int {
	if mc < 0 || mc >= MetaDim || mr < 0 || mr >= MetaDim {
		panic(fmt.Sprintf("meta position out of range: (%d, %d)", mc, mr))
	}
	return mr*MetaDim + mc
}

// LocalCellIndex converts a flat 0-8 index inside local board (mc, mr) to
// its (x, y) cell coordinates.
func LocalCellIndex(mc, mr, k int) (int, int) {
	return mc*MetaDim + k%MetaDim, mr*MetaDim + k/MetaDim
}

// Cell returns the content of cell (x, y).
func (b *Board) Cell(x, y int) Cell {
	return b.cells[cellIndex(x, y)]
}

// Meta returns the status of local board (mc, mr).
func (b *Board) Meta(mc, mr int) Meta {
	return b.meta[metaIndex(mc, mr)]
}

// LocalCell returns the k-th cell (row-major, 0-8) of local board (mc, mr).
func (b *Board) LocalCell(mc, mr, k int) Cell {
	x, y := LocalCellIndex(mc, mr, k)
	return b.cells[y*Dim+x]
}

// SetCell sets a cell directly. It is meant for setting up positions; it
// is not undoable.
func (b *Board) SetCell(x, y int, c Cell) {
	b.cells[cellIndex(x, y)] = c
}

// SetMeta sets a meta position directly. It is meant for setting up
// positions; it is not undoable.
func (b *Board) SetMeta(mc, mr int, m Meta) {
	b.meta[metaIndex(mc, mr)] = m
}

// anyOpen is true if some local board is explicitly marked Open.
func (b *Board) anyOpen() bool {
	for _, m := range b.meta {
		if m == Open {
			return true
		}
	}
	return false
}

// FreeChoice is true if the player on turn may choose among more than one
// local board: they were sent to a finished board, or nothing is Open and
// several undetermined boards are implicitly playable.
func (b *Board) FreeChoice() bool {
	ct := 0
	for _, ok := range b.playableMeta() {
		if ok {
			ct++
		}
	}
	return ct > 1
}

func (b *Board) playableMeta() [NumMeta]bool {
	var playable [NumMeta]bool
	want := Open
	if !b.anyOpen() {
		want = Undetermined
	}
	for i, m := range b.meta {
		playable[i] = m == want
	}
	return playable
}

// LegalMoves returns every legal move, scanning row by row. The order is
// stable; the search depends on it for reproducible tie-breaking.
func (b *Board) LegalMoves() []move.Move {
	return b.AppendLegalMoves(make([]move.Move, 0, NumCells))
}

// AppendLegalMoves appends the legal moves to moves and returns the result.
func (b *Board) AppendLegalMoves(moves []move.Move) []move.Move {
	playable := b.playableMeta()
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			if playable[(y/MetaDim)*MetaDim+x/MetaDim] && b.cells[y*Dim+x] == Empty {
				moves = append(moves, move.New(x, y))
			}
		}
	}
	return moves
}

// NumLegalMoves counts the legal moves without allocating them.
func (b *Board) NumLegalMoves() int {
	playable := b.playableMeta()
	ct := 0
	for i, c := range b.cells {
		x, y := i%Dim, i/Dim
		if c == Empty && playable[(y/MetaDim)*MetaDim+x/MetaDim] {
			ct++
		}
	}
	return ct
}

func (b *Board) hasLegalMove() bool {
	playable := b.playableMeta()
	for mi, ok := range playable {
		if !ok {
			continue
		}
		for k := 0; k < NumMeta; k++ {
			if b.LocalCell(mi%MetaDim, mi/MetaDim, k) == Empty {
				return true
			}
		}
	}
	return false
}

// openUndetermined opens every local board that is not finished. It is
// what happens when a player is sent to a board that is already decided.
func (b *Board) openUndetermined() {
	for i, m := range b.meta {
		if m == Undetermined {
			b.meta[i] = Open
		}
	}
}

// ApplyMove places p's mark on (x, y) and routes the next move: the local
// board at (x mod 3, y mod 3) becomes Open, or, if that board is already
// finished, every unfinished board does. It does not close the local board
// the move was played in; see RecordLocalOutcome and PlayMove.
func (b *Board) ApplyMove(x, y int, p Player) {
	idx := cellIndex(x, y)
	if b.cells[idx] != Empty {
		panic(fmt.Sprintf("cell (%d, %d) is not empty", x, y))
	}
	b.undoLog = append(b.undoLog, undoEntry{cell: int8(idx), meta: b.meta})
	b.cells[idx] = Cell(p)

	// Whatever was open was open for this move only.
	for i, m := range b.meta {
		if m == Open {
			b.meta[i] = Undetermined
		}
	}
	b.meta[metaIndex(x/MetaDim, y/MetaDim)] = Undetermined

	dest := metaIndex(x%MetaDim, y%MetaDim)
	if b.meta[dest].Decided() {
		b.openUndetermined()
	} else {
		b.meta[dest] = Open
	}
}

// UndoMove takes back the last applied move, which must be at (x, y).
func (b *Board) UndoMove(x, y int) {
	idx := cellIndex(x, y)
	if len(b.undoLog) == 0 {
		panic("undo with an empty undo log")
	}
	last := b.undoLog[len(b.undoLog)-1]
	if int(last.cell) != idx {
		panic(fmt.Sprintf("undo of (%d, %d) but the last move was at (%d, %d)",
			x, y, int(last.cell)%Dim, int(last.cell)/Dim))
	}
	b.undoLog = b.undoLog[:len(b.undoLog)-1]
	b.cells[idx] = Empty
	b.meta = last.meta
}

// UndoDepth is the number of moves that can currently be undone.
func (b *Board) UndoDepth() int {
	return len(b.undoLog)
}

// PlayMove applies a move and then closes its local board if the move
// finished it. It returns the local board's result. This is the mutation
// used by the search; UndoMove reverses all of it.
func (b *Board) PlayMove(x, y int, p Player) Result {
	b.ApplyMove(x, y, p)
	mc, mr := x/MetaDim, y/MetaDim
	r := b.CheckLocalResult(mc, mr)
	b.RecordLocalOutcome(mc, mr, r)
	return r
}

// RecordLocalOutcome marks local board (mc, mr) as won or drawn. If the
// board was Open, i.e. the move that finished it also routed play back
// into it, every unfinished board is opened first. A None outcome leaves
// the board alone.
func (b *Board) RecordLocalOutcome(mc, mr int, outcome Result) {
	if outcome == None {
		return
	}
	i := metaIndex(mc, mr)
	if b.meta[i] == Open {
		b.openUndetermined()
	}
	if outcome == Draw {
		b.meta[i] = Drawn
		return
	}
	b.meta[i] = Meta(outcome.Winner())
}

// CheckLocalResult looks for three in a row inside local board (mc, mr).
// A full board without a line is a Draw.
func (b *Board) CheckLocalResult(mc, mr int) Result {
	metaIndex(mc, mr)
	var grid [NumMeta]Player
	full := true
	for k := 0; k < NumMeta; k++ {
		c := b.LocalCell(mc, mr, k)
		grid[k] = c.Owner()
		if c == Empty {
			full = false
		}
	}
	if p := lineOwner(&grid); p != NoPlayer {
		return WinFor(p)
	}
	if full {
		return Draw
	}
	return None
}

// CheckMetaResult looks for three won local boards in a row. Open,
// undetermined and drawn boards never form a line. Without a line, the
// game is a Draw once nobody can move.
func (b *Board) CheckMetaResult() Result {
	var grid [NumMeta]Player
	for i, m := range b.meta {
		grid[i] = m.Owner()
	}
	if p := lineOwner(&grid); p != NoPlayer {
		return WinFor(p)
	}
	if b.hasLegalMove() {
		return None
	}
	return Draw
}

func lineOwner(grid *[NumMeta]Player) Player {
	for _, line := range WinningLines {
		p := grid[line[0]]
		if p != NoPlayer && grid[line[1]] == p && grid[line[2]] == p {
			return p
		}
	}
	return NoPlayer
}

// IsEmpty is true if no cell has been played.
func (b *Board) IsEmpty() bool {
	return b.NumEmpty() == NumCells
}

// NumEmpty counts the empty cells.
func (b *Board) NumEmpty() int {
	ct := 0
	for _, c := range b.cells {
		if c == Empty {
			ct++
		}
	}
	return ct
}

// Copy returns a deep copy of the position. The undo log is not copied.
func (b *Board) Copy() *Board {
	n := &Board{undoLog: make([]undoEntry, 0, NumCells)}
	n.cells = b.cells
	n.meta = b.meta
	return n
}

// CopyFrom copies the position of other into b and drops b's undo log.
func (b *Board) CopyFrom(other *Board) {
	b.cells = other.cells
	b.meta = other.meta
	b.undoLog = b.undoLog[:0]
}

// Equals compares the cells and the meta board.
func (b *Board) Equals(other *Board) bool {
	return b.cells == other.cells && b.meta == other.meta
}

// Cells returns a copy of the cell grid, row-major.
func (b *Board) Cells() [NumCells]Cell {
	return b.cells
}

// MetaBoard returns a copy of the meta board, row-major.
func (b *Board) MetaBoard() [NumMeta]Meta {
	return b.meta
}
