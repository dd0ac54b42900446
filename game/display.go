package game

import (
	"fmt"
	"strings"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/move"
)

func (g *Game) playerStateString(p move.Player) string {
	onturn := ""
	if g.onturn == p && g.playing == Playing {
		onturn = "-> "
	}
	return fmt.Sprintf("%4v%20v  %c", onturn, g.Player(p).Name(), board.SpaceFor(p).DisplayRune())
}

// ToDisplayText turns the current state of the game into a displayable
// string.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s (%s)\n", g.variant.Name(), g.uid)
	sb.WriteString(g.playerStateString(move.PlayerOne))
	sb.WriteString("\n")
	sb.WriteString(g.playerStateString(move.PlayerTwo))
	sb.WriteString("\n")
	if n := len(g.history); n > 0 {
		fmt.Fprintf(&sb, "Last move: %s\n", g.Describe(g.history[n-1]))
	}
	sb.WriteString(g.Summary())
	sb.WriteString("\n")
	return sb.String()
}

// PlayersInfo lists both players, as shown in the shell.
func (g *Game) PlayersInfo() string {
	return fmt.Sprintf("Current Player Info:\n Player1: %s\n Player2: %s",
		g.Player(move.PlayerOne).Info(), g.Player(move.PlayerTwo).Info())
}

// VariantInfo describes the rules in use.
func (g *Game) VariantInfo() string {
	t := g.variant.Tuning()
	return fmt.Sprintf("Current Game Mode Info:\n %s\n     %s", t.Name, t.Explanation)
}
