// Package automatic plays computer-vs-computer games, usually many at
// once, and summarizes the results.
package automatic

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connectfour/game"
	"github.com/domino14/connectfour/move"
	"github.com/domino14/connectfour/negamax"
	"github.com/domino14/connectfour/variant"
)

// Contestant is one of the two computer players of a match.
type Contestant struct {
	Name       string
	Difficulty negamax.Difficulty
}

// GameResult is the outcome of one automatic game.
type GameResult struct {
	Index int    `yaml:"index"`
	Uid   string `yaml:"uid"`
	First string `yaml:"first"`
	// Winner is 1 or 2 for the first or second contestant, 0 for a draw.
	Winner int  `yaml:"winner"`
	Length int  `yaml:"length"`
	Capped bool `yaml:"capped,omitempty"`

	firstIdx int
}

// GameRunner plays a single automatic game.
type GameRunner struct {
	game        *game.Game
	contestants [2]Contestant
	// seats[i] is the contestant index seated as player i+1.
	seats    [2]int
	maxMoves int
	logchan  chan []string
}

// NewGameRunner sets up a game between c1 and c2. If swap is set, c2
// moves first.
func NewGameRunner(v variant.Variant, c1, c2 Contestant, swap bool, maxMoves int,
	logchan chan []string) *GameRunner {

	r := &GameRunner{
		contestants: [2]Contestant{c1, c2},
		seats:       [2]int{0, 1},
		maxMoves:    maxMoves,
		logchan:     logchan,
	}
	if swap {
		r.seats = [2]int{1, 0}
	}
	first := r.contestants[r.seats[0]]
	second := r.contestants[r.seats[1]]
	r.game = game.NewGame(v,
		game.NewComputerPlayer(first.Name, first.Difficulty),
		game.NewComputerPlayer(second.Name, second.Difficulty))
	return r
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayGame plays the game out. Games that reach the move limit are stopped
// and counted as draws.
func (r *GameRunner) PlayGame(ctx context.Context) (GameResult, error) {
	g := r.game
	res := GameResult{
		Uid:      g.Uid(),
		First:    r.contestants[r.seats[0]].Name,
		firstIdx: r.seats[0] + 1,
	}
	for !g.Over() {
		if r.maxMoves > 0 && len(g.History()) >= r.maxMoves {
			res.Capped = true
			log.Debug().Str("uid", g.Uid()).Int("moves", r.maxMoves).Msg("game-capped")
			break
		}
		onturn := g.OnTurn()
		m, err := g.PlayTurn(ctx)
		if err != nil {
			return res, err
		}
		if m.Failed() {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			return res, fmt.Errorf("%v could not move: %s", g.Player(onturn).Name(), m.Message())
		}
		if r.logchan != nil {
			r.logchan <- []string{
				g.Player(onturn).Name(),
				g.Uid(),
				strconv.Itoa(len(g.History())),
				m.ShortDescription(),
				strconv.Itoa(g.Board().MoveCount()),
			}
		}
	}
	res.Length = len(g.History())
	if g.Playing() == game.Won {
		res.Winner = r.seats[g.Winner()-move.PlayerOne] + 1
	}
	if r.logchan != nil {
		winner := "draw"
		if res.Winner > 0 {
			winner = r.contestants[res.Winner-1].Name
		}
		r.logchan <- []string{"result", g.Uid(), strconv.Itoa(res.Length), winner,
			strconv.Itoa(g.Board().MoveCount())}
	}
	return res, nil
}
