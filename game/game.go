// Package game drives a Connect Four match: two players take turns on a
// board of some variant until one of them completes a line or the board
// fills up.
// Note: a Game doesn't care how it is played. Human players, computer
// players, the shell and the automatic runner all drive it from outside.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/move"
	"github.com/domino14/connectfour/variant"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotOnTurn    = errors.New("player is not on turn")
	ErrNoSuchPlayer = errors.New("no such player")
)

// PlayState is whether a game is still going, and how it ended.
type PlayState int

const (
	Playing PlayState = iota
	Won
	Drawn
)

func (s PlayState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	}
	return "UNHANDLED"
}

type Game struct {
	uid     string
	variant variant.Variant
	board   *board.Board
	players [2]Player

	onturn  move.Player
	playing PlayState
	winner  move.Player
	history []*move.Move
}

// NewGame creates a game of the given variant between p1 and p2. Player one
// moves first.
func NewGame(v variant.Variant, p1, p2 Player) *Game {
	g := &Game{
		variant: v,
		players: [2]Player{p1, p2},
	}
	g.Reset()
	return g
}

// Reset clears the board and the history, keeping the variant and the
// players.
func (g *Game) Reset() {
	g.uid = uuid.NewString()
	g.board = variant.NewBoard(g.variant)
	g.onturn = move.PlayerOne
	g.playing = Playing
	g.winner = 0
	g.history = nil
	log.Debug().Str("uid", g.uid).Str("variant", g.variant.Name()).Msg("game-reset")
}

// SetVariant switches the rules. The game starts over.
func (g *Game) SetVariant(v variant.Variant) {
	g.variant = v
	g.Reset()
}

// SetPlayer seats pl as player p. The game carries on from where it is.
func (g *Game) SetPlayer(p move.Player, pl Player) error {
	if p != move.PlayerOne && p != move.PlayerTwo {
		return fmt.Errorf("%w: %d", ErrNoSuchPlayer, p)
	}
	g.players[p-1] = pl
	return nil
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) Variant() variant.Variant {
	return g.variant
}

// Board returns the live board. Callers must not modify it.
func (g *Game) Board() *board.Board {
	return g.board
}

// Player returns the player seated as p.
func (g *Game) Player(p move.Player) Player {
	return g.players[p-1]
}

func (g *Game) OnTurn() move.Player {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) Over() bool {
	return g.playing != Playing
}

// Winner returns the winning side, or 0 if nobody has won.
func (g *Game) Winner() move.Player {
	return g.winner
}

// History returns the moves played so far, oldest first.
func (g *Game) History() []*move.Move {
	h := make([]*move.Move, len(g.history))
	copy(h, g.history)
	return h
}

// Play plays m for the player on turn. Malformed or illegal moves leave
// the game untouched and come back failed, with a message saying why; they
// are not errors. An error is returned if the game is over or m belongs to
// the wrong player.
func (g *Game) Play(m *move.Move) error {
	if g.playing != Playing {
		return ErrGameOver
	}
	if m.Player() != g.onturn {
		return fmt.Errorf("%w: %v moved but %v is on turn", ErrNotOnTurn, m.Player(), g.onturn)
	}
	if m.Failed() || !g.board.Legal(m) {
		log.Debug().Str("move", m.ShortDescription()).Str("msg", m.Message()).Msg("rejected-move")
		return nil
	}
	won := g.board.Wins(m)
	g.board.Apply(m)
	g.history = append(g.history, m)
	log.Debug().Str("uid", g.uid).Str("player", g.onturn.String()).
		Str("move", m.ShortDescription()).Int("move-count", g.board.MoveCount()).Msg("played")

	switch {
	case won:
		g.playing = Won
		g.winner = g.onturn
	case g.board.IsDraw():
		g.playing = Drawn
	default:
		g.onturn = g.onturn.Opponent()
	}
	return nil
}

// PlayTurn asks the player on turn for a move and plays it. The move is
// returned so that the caller can report it, or its failure.
func (g *Game) PlayTurn(ctx context.Context) (*move.Move, error) {
	if g.playing != Playing {
		return nil, ErrGameOver
	}
	pl := g.players[g.onturn-1]
	m := pl.NextMove(ctx, g.variant, g.board.Copy(), g.onturn)
	if m == nil {
		return nil, fmt.Errorf("%v returned no move", pl.Name())
	}
	return m, g.Play(m)
}

// PlayToEnd keeps asking players for moves until the game ends. Failed
// moves are handed to onFail, if given; computer players that fail to move
// stop the loop with an error, as they would fail again.
func (g *Game) PlayToEnd(ctx context.Context, onMove, onFail func(*move.Move)) error {
	for g.playing == Playing {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := g.PlayTurn(ctx)
		if err != nil {
			return err
		}
		if m.Failed() {
			if onFail != nil {
				onFail(m)
			}
			if g.players[g.onturn-1].Kind() == KindComputer {
				return fmt.Errorf("%v could not move: %s", g.players[g.onturn-1].Name(), m.Message())
			}
			continue
		}
		if onMove != nil {
			onMove(m)
		}
	}
	return nil
}

// Describe says what m did, in the words of the player who made it.
func (g *Game) Describe(m *move.Move) string {
	action := "pushed"
	if m.Action() == move.MoveTypePop {
		action = "popped"
	}
	return fmt.Sprintf("%s %s column %d", g.Player(m.Player()).Name(), action, m.Column()+1)
}

// Summary describes the outcome of the game.
func (g *Game) Summary() string {
	switch g.playing {
	case Won:
		return fmt.Sprintf("%s won the game in %d total moves", g.Player(g.winner).Name(), len(g.history))
	case Drawn:
		return fmt.Sprintf("Game is a draw after %d total moves", len(g.history))
	}
	return fmt.Sprintf("Current Move: %s", g.Player(g.onturn).Name())
}
