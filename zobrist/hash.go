package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/move"
)

const bignum = 1<<63 - 2

// meta values run from Drawn (-2) to Player2 (2).
const metaOffset = 2
const numMetaValues = 5

// Zobrist generates a zobrist hash for a position and the side to move.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	p2ToMove uint64

	cellTable [board.NumCells][2]uint64
	metaTable [board.NumMeta][numMetaValues]uint64
}

// Initialize draws fresh random keys.
func (z *Zobrist) Initialize() {
	for i := 0; i < board.NumCells; i++ {
		for j := 0; j < 2; j++ {
			z.cellTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for i := 0; i < board.NumMeta; i++ {
		for j := 0; j < numMetaValues; j++ {
			z.metaTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.p2ToMove = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) cellKey(idx int, p board.Player) uint64 {
	return z.cellTable[idx][p-1]
}

func (z *Zobrist) metaKey(idx int, m board.Meta) uint64 {
	return z.metaTable[idx][int(m)+metaOffset]
}

// Hash computes the key of a position from scratch.
func (z *Zobrist) Hash(b *board.Board, toMove board.Player) uint64 {
	key := uint64(0)
	for i, c := range b.Cells() {
		if p := c.Owner(); p != board.NoPlayer {
			key ^= z.cellKey(i, p)
		}
	}
	for i, m := range b.MetaBoard() {
		key ^= z.metaKey(i, m)
	}
	if toMove == board.Player2 {
		key ^= z.p2ToMove
	}
	return key
}

// AddMove updates key for player p's move m, given the meta board before
// and after the move. The side to move flips.
func (z *Zobrist) AddMove(key uint64, before, after [board.NumMeta]board.Meta,
	m move.Move, p board.Player) uint64 {

	key ^= z.cellKey(m.Row*board.Dim+m.Col, p)
	for i := range before {
		if before[i] != after[i] {
			key ^= z.metaKey(i, before[i])
			key ^= z.metaKey(i, after[i])
		}
	}
	key ^= z.p2ToMove
	return key
}
