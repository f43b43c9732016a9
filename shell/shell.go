// Package shell has the two front ends of the engine: the line protocol
// spoken to a game server, and an interactive shell for humans.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/game"
	"github.com/domino14/uttt/player"
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config
	ctx    context.Context

	game    *game.Game
	players [2]*player.Player
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController creates an interactive shell on the terminal.
func NewShellController(ctx context.Context, cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31muttt>\033[0m ",
		HistoryFile:     "/tmp/uttt_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return &ShellController{l: l, out: l.Stderr(), config: cfg, ctx: ctx}, nil
}

// newController creates a shell without a terminal, writing to out.
func newController(ctx context.Context, cfg *config.Config, out io.Writer) *ShellController {
	return &ShellController{out: out, config: cfg, ctx: ctx}
}

func (sc *ShellController) playerFor(p board.Player) *player.Player {
	if sc.players[p-1] == nil {
		sc.players[p-1] = player.NewPlayer(p, sc.config)
	}
	return sc.players[p-1]
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Execute runs one command line. It returns io.EOF when the shell should
// exit.
func (sc *ShellController) Execute(line string) (*Response, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "quit":
		return nil, io.EOF
	case "help":
		if len(cmd.args) == 0 {
			usage(sc.out)
		} else {
			usageTopic(sc.out, cmd.args[0])
		}
		return nil, nil
	case "new":
		return sc.newGame(cmd)
	case "load":
		return sc.load(cmd)
	case "show":
		return sc.show(cmd)
	case "gen":
		return sc.gen(cmd)
	case "play":
		return sc.play(cmd)
	case "undo":
		return sc.undo(cmd)
	case "best":
		return sc.best(cmd)
	case "aiplay":
		return sc.aiplay(cmd)
	case "history":
		return sc.history(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(line))
	return nil, fmt.Errorf("unknown command %q, try help", cmd.cmd)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.Execute(line)
		if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}

// Cleanup releases the players' resources.
func (sc *ShellController) Cleanup() {
	for i, p := range sc.players {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil {
			log.Err(err).Msg("closing-player")
		}
		sc.players[i] = nil
	}
}

// ExecuteAndShow runs one command and prints its output or error.
func (sc *ShellController) ExecuteAndShow(line string) {
	resp, err := sc.Execute(line)
	if err != nil && err != io.EOF {
		sc.showError(err)
		return
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
}
