package player

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestDepthTable(t *testing.T) {
	type tc struct {
		numMoves   int
		freeChoice bool
		depth      int
	}
	cases := []tc{
		{26, true, 5},
		{4, false, 8},
		{4, true, 8},
		{15, true, 7},
		{9, false, 8},
		{7, false, 8},
		{6, false, 7},
		{25, true, 7},
		{60, true, 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.depth, DefaultDepthTable.Depth(c.numMoves, c.freeChoice),
			"moves %d free %v", c.numMoves, c.freeChoice)
	}
}

func TestDepthTableWithoutOpenBoard(t *testing.T) {
	b := &board.Board{}
	b.SetCell(4, 4, board.Cell(board.Player1))
	// no board is Open, so all of them are playable: a wide free choice.
	assert.Equal(t, 80, b.NumLegalMoves())
	assert.True(t, b.FreeChoice())
	assert.Equal(t, DefaultDepthTable.Wide, DefaultDepthTable.Depth(b.NumLegalMoves(), b.FreeChoice()))
}

func TestDepthTableFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	is.Equal(DepthTableFromConfig(cfg), DefaultDepthTable)
	cfg.Set(config.ConfigDepthWide, 2)
	is.Equal(DepthTableFromConfig(cfg).Depth(40, true), 2)
}

func TestFirstMoveIsCenter(t *testing.T) {
	is := is.New(t)
	p := NewPlayer(board.Player1, nil)
	b := board.NewBoard()
	is.Equal(p.ChooseMove(b), move.New(4, 4))
	is.Equal(p.Solver().Stats().Nodes, uint64(0))
}

func TestChooseMoveTakesWin(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigEvalCachePower, 0)
	cfg.Set(config.ConfigDepthOpening, 3)
	p := NewPlayer(board.Player2, cfg)

	b := &board.Board{}
	b.SetMeta(0, 2, board.Meta(board.Player2))
	b.SetMeta(1, 1, board.Meta(board.Player2))
	b.SetMeta(2, 0, board.Open)
	b.SetCell(6, 1, board.Cell(board.Player2))
	b.SetCell(7, 1, board.Cell(board.Player2))
	orig := b.Copy()

	// 7 legal moves and no free choice: searched at the opening depth.
	is.Equal(b.NumLegalMoves(), 7)
	m := p.ChooseMove(b)
	is.True(m.SameCell(move.New(8, 1)))
	is.True(b.Equals(orig))
}

func TestSetID(t *testing.T) {
	is := is.New(t)
	p := NewPlayer(board.Player1, nil)
	p.SetID(board.Player2)
	is.Equal(p.ID(), board.Player2)
}

func TestSearchLogClosed(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigEvalCachePower, 0)
	path := filepath.Join(t.TempDir(), "search.yaml")
	cfg.Set(config.ConfigSearchLogPath, path)

	p := NewPlayer(board.Player2, cfg)
	b := board.NewBoard()
	b.PlayMove(4, 4, board.Player1)
	p.ChooseMoveAtDepth(b, 1)
	is.NoErr(p.Close())
	is.True(p.searchLog == nil)

	contents, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(strings.Contains(string(contents), "depth: 1"))

	// still usable, but nothing more is logged.
	p.ChooseMoveAtDepth(b, 1)
	after, err := os.ReadFile(path)
	is.NoErr(err)
	is.Equal(len(after), len(contents))
	is.NoErr(p.Close())
}
