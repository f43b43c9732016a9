package automatic

// Computer vs computer games, for collecting results.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const CSVHeader = "gameID,opening,plies,result,fingerprint\n"

// openingSet remembers the positions reached after the random opening.
type openingSet struct {
	sync.Mutex
	seen map[uint64]struct{}
}

func newOpeningSet() *openingSet {
	return &openingSet{seen: make(map[uint64]struct{})}
}

// add returns false if the fingerprint was already there.
func (s *openingSet) add(fp uint64) bool {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.seen[fp]; ok {
		return false
	}
	s.seen[fp] = struct{}{}
	return true
}

// StartCompVComp plays numGames games on threads workers and writes one
// CSV line per game to out. It blocks until every game is done or ctx is
// cancelled, and returns the tally of the games that finished.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames, threads,
	randomPlies int, out io.Writer) (*stats.Outcomes, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	if threads < 1 {
		threads = 1
	}
	log.Info().Int("games", numGames).Int("threads", threads).
		Int("random-plies", randomPlies).Msg("starting-comp-v-comp")

	if _, err := io.WriteString(out, CSVHeader); err != nil {
		return nil, err
	}
	CVCCounter.Set(0)
	jobs := make(chan struct{}, 100)
	logChan := make(chan string, 100)
	openings := newOpeningSet()
	outcomes := &stats.Outcomes{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- struct{}{}:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				return nil
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	workers.Add(threads)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			defer workers.Done()
			r := NewGameRunner(logChan, cfg)
			defer func() {
				if err := r.Close(); err != nil {
					log.Err(err).Msg("closing-game-runner")
				}
			}()
			r.randomPlies = randomPlies
			r.openings = openings
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				if gctx.Err() != nil {
					return nil
				}
				r.StartGame()
				res := r.PlayFull()
				CVCCounter.Add(1)
				mu.Lock()
				switch res {
				case board.Player1Wins:
					outcomes.AddP1Win()
				case board.Player2Wins:
					outcomes.AddP2Win()
				default:
					outcomes.AddDraw()
				}
				mu.Unlock()
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(logChan)
	}()

	var writeErr error
	for msg := range logChan {
		if writeErr != nil {
			continue
		}
		if _, writeErr = io.WriteString(out, msg); writeErr != nil {
			log.Err(writeErr).Msg("writing-game-log")
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Str("outcomes", outcomes.String()).Msg("comp-v-comp-done")
	return outcomes, writeErr
}
