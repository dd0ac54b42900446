package game

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/domino14/connectfour/move"
)

// Record is a finished or ongoing game in a form that can be saved.
type Record struct {
	Uid      string   `yaml:"uid"`
	Variant  string   `yaml:"variant"`
	Player1  string   `yaml:"player1"`
	Player2  string   `yaml:"player2"`
	Moves    []string `yaml:"moves"`
	State    string   `yaml:"state"`
	Winner   string   `yaml:"winner,omitempty"`
	Length   int      `yaml:"length"`
	Finished string   `yaml:"summary"`
}

// Record returns the history of the game so far.
func (g *Game) Record() *Record {
	r := &Record{
		Uid:      g.uid,
		Variant:  g.variant.Name(),
		Player1:  g.Player(move.PlayerOne).Name(),
		Player2:  g.Player(move.PlayerTwo).Name(),
		State:    g.playing.String(),
		Length:   len(g.history),
		Finished: g.Summary(),
	}
	for _, m := range g.history {
		r.Moves = append(r.Moves, fmt.Sprintf("%v %s", m.Player(), m.ShortDescription()))
	}
	if g.playing == Won {
		r.Winner = g.Player(g.winner).Name()
	}
	return r
}

// MarshalRecord serializes the game record as YAML.
func (g *Game) MarshalRecord() ([]byte, error) {
	return yaml.Marshal(g.Record())
}
