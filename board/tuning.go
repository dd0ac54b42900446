package board

import (
	"errors"
	"fmt"
)

// Tuning describes the geometry and the static evaluation parameters of a
// game variant.
type Tuning struct {
	Name        string
	Explanation string

	Height    int
	Width     int
	WinLength int

	// EvaluationTable holds a positive weight per cell, Height rows of
	// Width columns, row 0 at the bottom. It approximates how many
	// winning lines pass through each cell.
	EvaluationTable [][]int
	// EvaluationConstant is added to every static evaluation; it is
	// usually about half the sum of the table.
	EvaluationConstant int
	// MaxEvaluation bounds every score. It is the score of a win on the
	// next move at the root of a search.
	MaxEvaluation int
}

// TableSum is the sum of all the weights of the evaluation table.
func (t Tuning) TableSum() int {
	sum := 0
	for _, row := range t.EvaluationTable {
		for _, w := range row {
			sum += w
		}
	}
	return sum
}

// Validate checks that the tuning can be used to build a board and search
// it.
func (t Tuning) Validate() error {
	if t.Height <= 0 || t.Width <= 0 {
		return fmt.Errorf("bad dimensions %dx%d", t.Height, t.Width)
	}
	if t.WinLength <= 1 {
		return fmt.Errorf("bad win length %d", t.WinLength)
	}
	if len(t.EvaluationTable) != t.Height {
		return fmt.Errorf("evaluation table has %d rows, want %d",
			len(t.EvaluationTable), t.Height)
	}
	for i, row := range t.EvaluationTable {
		if len(row) != t.Width {
			return fmt.Errorf("evaluation table row %d has %d columns, want %d",
				i, len(row), t.Width)
		}
	}
	if t.MaxEvaluation <= 2*t.EvaluationConstant {
		return errors.New("max evaluation must exceed twice the evaluation constant")
	}
	return nil
}
