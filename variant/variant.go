// Package variant holds the rule sets a board can be played under: the
// classic game, and PopOut, where a player may also remove their own disk
// from the bottom of a column.
package variant

import (
	"errors"
	"strings"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/move"
)

// ErrUnknownVariant is returned when looking up a variant by a name that
// doesn't match any.
var ErrUnknownVariant = errors.New("unknown variant")

// Variant is the rule surface of a game over a shared board.
type Variant interface {
	board.Rules
	Name() string
	// EnumerateMoves returns every legal move for p. When order is not
	// nil, columns are visited in that order instead of left to right.
	EnumerateMoves(b *board.Board, p move.Player, order []int) []*move.Move
	// ParseMove turns user input into a move intent. Malformed input
	// yields a failed move with a message; it never defaults.
	ParseMove(text string, p move.Player) *move.Move
}

// StandardEvaluationTable weighs each cell of the 6x7 grid by the number of
// four-in-a-row lines passing through it.
var StandardEvaluationTable = [][]int{
	{3, 4, 5, 7, 5, 4, 3},
	{4, 6, 8, 10, 8, 6, 4},
	{5, 8, 11, 13, 11, 8, 5},
	{5, 8, 11, 13, 11, 8, 5},
	{4, 6, 8, 10, 8, 6, 4},
	{3, 4, 5, 7, 5, 4, 3},
}

const (
	standardEvaluationConstant = 138
	standardMaxEvaluation      = 1000
)

// Get returns the variant with the given name.
func Get(name string) (Variant, error) {
	switch strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", ""), "-", "") {
	case "classic", "":
		return NewClassic(), nil
	case "popout":
		return NewPopOut(), nil
	}
	return nil, ErrUnknownVariant
}

// All returns the built-in variants.
func All() []Variant {
	return []Variant{NewClassic(), NewPopOut()}
}

// NewBoard allocates a board and initializes it for v.
func NewBoard(v Variant) *board.Board {
	return board.NewBoard(v)
}

// CenterOrder returns the columns of a board of the given width, center
// first, then alternating outward. Central columns take part in more
// lines, so searching them first causes earlier cutoffs.
func CenterOrder(width int) []int {
	order := make([]int, width)
	for i := range order {
		order[i] = width/2 + (1-2*(i%2))*(i+1)/2
	}
	return order
}

func columns(width int, order []int) []int {
	if order != nil {
		return order
	}
	cols := make([]int, width)
	for i := range cols {
		cols[i] = i
	}
	return cols
}
