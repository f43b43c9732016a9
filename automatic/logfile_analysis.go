package automatic

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/stats"
)

var errBadRecord = errors.New("bad game record")

// AnalyzeLogFile reads a file written by StartCompVComp and summarizes
// it.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return AnalyzeLog(file)
}

// AnalyzeLog summarizes game records read from r.
func AnalyzeLog(r io.Reader) (string, error) {
	cr := csv.NewReader(r)
	// Record looks like:
	// gameID,opening,plies,result,fingerprint
	cr.FieldsPerRecord = 5

	outcomes := &stats.Outcomes{}
	plies := &stats.Statistic{}
	var lengths []float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		n, err := strconv.Atoi(record[2])
		if err != nil {
			return "", fmt.Errorf("%w: plies %q: %w", errBadRecord, record[2], err)
		}
		plies.Push(float64(n))
		lengths = append(lengths, float64(n))
		switch record[3] {
		case board.Player1Wins.String():
			outcomes.AddP1Win()
		case board.Player2Wins.String():
			outcomes.AddP2Win()
		case board.Draw.String():
			outcomes.AddDraw()
		default:
			return "", fmt.Errorf("%w: result %q", errBadRecord, record[3])
		}
	}

	s := fmt.Sprintf("Games played: %d\n", outcomes.Games())
	s += fmt.Sprintf("Player 1 wins: %d\n", outcomes.P1Wins)
	s += fmt.Sprintf("Player 2 wins: %d\n", outcomes.P2Wins)
	s += fmt.Sprintf("Draws: %d\n", outcomes.Draws)
	lo, hi := outcomes.P1Score().ConfidenceInterval(95)
	s += fmt.Sprintf("Player 1 score: %.3f (95%% CI %.3f to %.3f)\n",
		outcomes.P1Score().Mean(), lo, hi)
	s += fmt.Sprintf("Moves per game: %.2f (stdev %.2f)\n", plies.Mean(), plies.Stdev())
	if len(lengths) > 1 && plies.Stdev() > 0 {
		var buf bytes.Buffer
		hist := histogram.Hist(10, lengths)
		if err := histogram.Fprint(&buf, hist, histogram.Linear(40)); err != nil {
			return "", err
		}
		s += "Game lengths:\n" + buf.String()
	}
	return s, nil
}
