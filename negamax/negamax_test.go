package negamax

import (
	"bytes"
	"math/rand"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/heuristic"
	"github.com/domino14/uttt/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// oneMoveFromWinning has player 1 owning the two top-left local boards and
// two marks in the top row of the top-right board, which is open.
func oneMoveFromWinning() *board.Board {
	b := &board.Board{}
	b.SetMeta(0, 0, board.Meta(board.Player1))
	b.SetMeta(1, 0, board.Meta(board.Player1))
	b.SetMeta(2, 0, board.Open)
	b.SetCell(6, 0, board.Cell(board.Player1))
	b.SetCell(7, 0, board.Cell(board.Player1))
	return b
}

// randomPosition plays plies random moves from an empty board, stopping
// early if the game ends.
func randomPosition(rng *rand.Rand, plies int) (*board.Board, board.Player) {
	b := board.NewBoard()
	p := board.Player1
	for i := 0; i < plies; i++ {
		if b.CheckMetaResult() != board.None {
			break
		}
		moves := b.LegalMoves()
		m := moves[rng.Intn(len(moves))]
		b.PlayMove(m.Col, m.Row, p)
		p = p.Opponent()
	}
	return b.Copy(), p
}

func TestImmediateWin(t *testing.T) {
	is := is.New(t)
	b := oneMoveFromWinning()
	orig := b.Copy()

	s := &Solver{}
	s.Init(b, nil)
	m, score := s.Search(board.Player1, 3)
	is.Equal(m.Col, 8)
	is.Equal(m.Row, 0)
	// the win is found with two plies still to go.
	is.Equal(score, WinScore+2)
	is.True(b.Equals(orig))
	is.Equal(b.UndoDepth(), 0)

	pv := s.PrincipalVariation()
	is.Equal(len(pv.Moves), 1)
	is.True(pv.GetPVMove().SameCell(move.New(8, 0)))
	is.Equal(pv.Score(), WinScore+2)
}

func TestPreferQuickerWin(t *testing.T) {
	is := is.New(t)
	b := oneMoveFromWinning()
	s := &Solver{}
	s.Init(b, nil)
	_, shallow := s.Search(board.Player1, 1)
	_, deep := s.Search(board.Player1, 5)
	is.Equal(shallow, WinScore)
	is.Equal(deep, WinScore+4)
}

func TestPruningMatchesMinimax(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(1066))

	for i := 0; i < 30; i++ {
		b, toMove := randomPosition(rng, 8+rng.Intn(30))
		if b.CheckMetaResult() != board.None {
			continue
		}
		maxDepth := 3
		if b.NumLegalMoves() <= 9 {
			maxDepth = 4
		}
		for depth := 1; depth <= maxDepth; depth++ {
			pruned := &Solver{}
			pruned.Init(b.Copy(), nil)
			full := &Solver{}
			full.Init(b.Copy(), nil)
			full.SetPruning(false)

			pm, ps := pruned.Search(toMove, depth)
			fm, fs := full.Search(toMove, depth)
			is.Equal(pm, fm)
			is.Equal(ps, fs)
			is.True(pruned.Stats().Nodes <= full.Stats().Nodes)
			is.Equal(full.Stats().Cutoffs, uint64(0))
		}
	}
}

func TestSearchLeavesBoardUntouched(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(2024))
	for i := 0; i < 10; i++ {
		b, toMove := randomPosition(rng, 10+rng.Intn(20))
		if b.CheckMetaResult() != board.None {
			continue
		}
		orig := b.Copy()
		s := &Solver{}
		s.Init(b, nil)
		m, _ := s.Search(toMove, 3)
		is.True(b.Equals(orig))
		is.Equal(b.UndoDepth(), 0)

		legal := false
		for _, lm := range b.LegalMoves() {
			if lm.SameCell(m) {
				legal = true
			}
		}
		is.True(legal)
	}
}

func TestEvalCacheDoesNotChangeResult(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(77))
	cache := NewEvalCache(MinCachePower + 8)
	for i := 0; i < 10; i++ {
		b, toMove := randomPosition(rng, 12+rng.Intn(20))
		if b.CheckMetaResult() != board.None {
			continue
		}
		plain := &Solver{}
		plain.Init(b.Copy(), nil)
		cached := &Solver{}
		cached.Init(b.Copy(), nil)
		cached.SetEvalCache(cache)

		pm, ps := plain.Search(toMove, 4)
		cm, cs := cached.Search(toMove, 4)
		is.Equal(pm, cm)
		is.Equal(ps, cs)

		// A repeated search is answered mostly from the cache.
		hits := cache.hits.Load()
		cm, cs = cached.Search(toMove, 4)
		is.Equal(pm, cm)
		is.Equal(ps, cs)
		is.True(cache.hits.Load() > hits)
	}
}

type constEval struct{}

var _ heuristic.Calculator = constEval{}

func (constEval) Evaluate(*board.Board, board.Player) int { return 0 }

func TestFirstBestMoveWinsTies(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	b.PlayMove(4, 4, board.Player1)
	s := &Solver{}
	s.Init(b, constEval{})
	m, score := s.Search(board.Player2, 2)
	is.Equal(score, 0)
	is.Equal(m, b.LegalMoves()[0])
}

func TestSearchLogStream(t *testing.T) {
	is := is.New(t)
	b := oneMoveFromWinning()
	s := &Solver{}
	s.Init(b, nil)
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	s.Search(board.Player1, 2)

	var logged []searchLog
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &logged))
	is.Equal(len(logged), 1)
	is.Equal(logged[0].Depth, 2)
	is.Equal(logged[0].Best, "i1")
	is.Equal(logged[0].Score, WinScore+1)
	is.Equal(len(logged[0].Plays), 7)
}

func TestSearchWithoutMovesPanics(t *testing.T) {
	is := is.New(t)
	b := &board.Board{}
	for i := 0; i < board.NumMeta; i++ {
		b.SetMeta(i%board.MetaDim, i/board.MetaDim, board.Drawn)
	}
	s := &Solver{}
	s.Init(b, nil)
	defer func() {
		is.True(recover() != nil)
	}()
	s.Search(board.Player1, 1)
}
