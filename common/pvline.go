package common

import (
	"fmt"
	"strings"

	"github.com/domino14/connectfour/move"
)

// PVLine is a principal variation: the line of best play found by a search.
// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []*move.Move
	score int
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(m *move.Move, newPVLine PVLine, score int) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

// GetPVMove gets the best move from the principal variation line.
func (pvLine *PVLine) GetPVMove() *move.Move {
	if len(pvLine.Moves) == 0 {
		return nil
	}
	return pvLine.Moves[0]
}

func (pvLine PVLine) Score() int {
	return pvLine.score
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %d\n", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, "%d: %v %s\n", i+1, m.Player(), m.ShortDescription())
	}
	return sb.String()
}

// NLBString is String without line breaks, for logging.
func (pvLine PVLine) NLBString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %d; ", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, "%d: %v %s; ", i+1, m.Player(), m.ShortDescription())
	}
	return sb.String()
}
