package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/player"
	"github.com/domino14/uttt/position"
)

var errNoPosition = errors.New("asked for a move before receiving field and macroboard")

// BotSession speaks the line protocol of the theaigames.com Ultimate
// Tic-Tac-Toe competition. The server sends settings and game updates;
// on "action move" we answer with "place_move X Y".
type BotSession struct {
	out    io.Writer
	player *player.Player

	field      string
	macroboard string
	round      int
	moveNum    int
}

func NewBotSession(cfg *config.Config, out io.Writer) *BotSession {
	return &BotSession{
		out:    out,
		player: player.NewPlayer(board.Player1, cfg),
	}
}

// Close releases the player's resources.
func (s *BotSession) Close() error {
	return s.player.Close()
}

// BotLoop reads protocol lines from in until it ends.
func BotLoop(cfg *config.Config, in io.Reader, out io.Writer) error {
	s := NewBotSession(cfg, out)
	defer s.Close()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := s.HandleLine(scanner.Text()); err != nil {
			log.Err(err).Str("line", scanner.Text()).Msg("protocol-error")
		}
	}
	return scanner.Err()
}

// HandleLine processes one line from the server.
func (s *BotSession) HandleLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch {
	case fields[0] == "settings" && len(fields) == 3:
		return s.setting(fields[1], fields[2])
	case fields[0] == "update" && len(fields) == 4 && fields[1] == "game":
		return s.update(fields[2], fields[3])
	case fields[0] == "action" && len(fields) >= 2 && fields[1] == "move":
		return s.move()
	}
	log.Debug().Str("line", line).Msg("ignoring-line")
	return nil
}

func (s *BotSession) setting(key, value string) error {
	switch key {
	case "your_botid":
		id, err := strconv.Atoi(value)
		if err != nil || (id != 1 && id != 2) {
			return fmt.Errorf("bad bot id %q", value)
		}
		s.player.SetID(board.Player(id))
		log.Info().Int("botid", id).Msg("set-bot-id")
	default:
		log.Debug().Str("key", key).Str("value", value).Msg("ignoring-setting")
	}
	return nil
}

func (s *BotSession) update(key, value string) error {
	var err error
	switch key {
	case "field":
		if _, err = position.ParseField(value); err == nil {
			s.field = value
		}
	case "macroboard":
		if _, err = position.ParseMacroboard(value); err == nil {
			s.macroboard = value
		}
	case "round":
		s.round, err = strconv.Atoi(value)
	case "move":
		s.moveNum, err = strconv.Atoi(value)
	default:
		log.Debug().Str("key", key).Msg("ignoring-update")
	}
	return err
}

func (s *BotSession) move() error {
	if s.field == "" || s.macroboard == "" {
		return errNoPosition
	}
	b, err := position.ParseProtocol(s.field, s.macroboard)
	if err != nil {
		return err
	}
	if b.NumLegalMoves() == 0 {
		return errors.New("no legal moves in this position")
	}
	m := s.player.ChooseMove(b)
	log.Info().Int("round", s.round).Int("move", s.moveNum).
		Str("play", m.ShortDescription()).Int("score", m.Score).Msg("placing-move")
	_, err = fmt.Fprintf(s.out, "place_move %d %d\n", m.Col, m.Row)
	return err
}
