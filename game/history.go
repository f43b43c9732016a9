package game

import (
	"gopkg.in/yaml.v3"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/move"
)

// Turn is one move of the game record.
type Turn struct {
	Player      board.Player
	Move        move.Move
	LocalResult board.Result
}

type turnRecord struct {
	Player string `yaml:"player"`
	Move   string `yaml:"move"`
	Local  string `yaml:"local,omitempty"`
}

type gameRecord struct {
	Uid    string       `yaml:"uid"`
	Result string       `yaml:"result"`
	Turns  []turnRecord `yaml:"turns"`
}

// History returns a copy of the moves played so far.
func (g *Game) History() []Turn {
	h := make([]Turn, len(g.history))
	copy(h, g.history)
	return h
}

// HistoryYAML writes the game record as YAML.
func (g *Game) HistoryYAML() ([]byte, error) {
	rec := gameRecord{Uid: g.uid, Result: g.result.String()}
	for _, t := range g.history {
		tr := turnRecord{Player: t.Player.String(), Move: t.Move.ShortDescription()}
		if t.LocalResult != board.None {
			tr.Local = t.LocalResult.String()
		}
		rec.Turns = append(rec.Turns, tr)
	}
	return yaml.Marshal(rec)
}
