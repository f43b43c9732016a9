package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/uttt/automatic"
	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/game"
	"github.com/domino14/uttt/move"
	"github.com/domino14/uttt/negamax"
	"github.com/domino14/uttt/position"
)

var (
	errNoGame   = errors.New("please start or load a game first")
	errBadUsage = errors.New("bad usage, see help")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type CmdOptions map[string]bool

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a command line the way a shell would. Arguments
// that start with a dash and are not numbers are options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New("no command")
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "-") {
			if _, err := strconv.Atoi(f); err != nil {
				cmd.options[strings.TrimLeft(f, "-")] = true
				continue
			}
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game = game.NewGame()
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 1 {
		return nil, errBadUsage
	}
	b, err := position.Parse(cmd.args[0])
	if err != nil {
		return nil, err
	}
	onturn := board.Player1
	if len(cmd.args) > 1 {
		id, err := strconv.Atoi(cmd.args[1])
		if err != nil || (id != 1 && id != 2) {
			return nil, fmt.Errorf("%w: player on turn must be 1 or 2", errBadUsage)
		}
		onturn = board.Player(id)
	}
	sc.game = game.NewGameFromBoard(b, onturn)
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if cmd.options["pos"] {
		return msg(position.Format(sc.game.Board())), nil
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) gen(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	moves := sc.game.Board().LegalMoves()
	descs := lo.Map(moves, func(m move.Move, _ int) string {
		return m.ShortDescription()
	})
	return msg(fmt.Sprintf("%d legal moves:\n%s", len(moves), strings.Join(descs, " "))), nil
}

func parseMove(args []string) (move.Move, error) {
	switch len(args) {
	case 1:
		col, row, err := move.FromBoardGameCoords(args[0])
		if err != nil {
			return move.Move{}, err
		}
		return move.New(col, row), nil
	case 2:
		return move.FromNumericCoords(args[0], args[1])
	}
	return move.Move{}, errBadUsage
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	m, err := parseMove(cmd.args)
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Playing() == game.GameOver {
		return nil, game.ErrGameOver
	}
	p := sc.playerFor(sc.game.PlayerOnTurn())
	var m move.Move
	if len(cmd.args) > 0 {
		depth, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		if depth < 1 || depth > negamax.MaxDepth {
			return nil, fmt.Errorf("%w: depth must be between 1 and %d", errBadUsage, negamax.MaxDepth)
		}
		m = p.ChooseMoveAtDepth(sc.game.Board(), depth)
	} else {
		m = p.ChooseMove(sc.game.Board())
	}
	stats := p.Solver().Stats()
	pv := p.Solver().PrincipalVariation()
	if stats.Nodes == 0 {
		// opening move, nothing was searched
		return msg(fmt.Sprintf("best: %s", m.ShortDescription())), nil
	}
	return msg(fmt.Sprintf("best: %s score: %d nodes: %d\n%s",
		m.ShortDescription(), m.Score, stats.Nodes, pv.String())), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Playing() == game.GameOver {
		return nil, game.ErrGameOver
	}
	m := sc.playerFor(sc.game.PlayerOnTurn()).ChooseMove(sc.game.Board())
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	out, err := sc.game.HistoryYAML()
	if err != nil {
		return nil, err
	}
	return msg(string(out)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 1 {
		return nil, errBadUsage
	}
	numGames, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	threads := sc.config.GetInt(config.ConfigAutoplayThreads)
	if len(cmd.args) > 1 {
		if threads, err = strconv.Atoi(cmd.args[1]); err != nil {
			return nil, err
		}
	}
	outFile := "/tmp/autoplay.txt"
	if len(cmd.args) > 2 {
		outFile = cmd.args[2]
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	outcomes, err := automatic.StartCompVComp(sc.ctx, sc.config, numGames, threads,
		sc.config.GetInt(config.ConfigAutoplayRandomPlies), f)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s\ngames written to %s", outcomes, outFile)), nil
}
