package variant

import (
	"github.com/domino14/connectfour/board"
)

// custom plays the classic or the PopOut rules on an arbitrary tuning.
type custom struct {
	Variant
	tuning board.Tuning
}

// Custom returns a variant with the given tuning, following the PopOut
// rules if popout is set and the classic rules otherwise. It is mostly
// useful for small boards.
func Custom(t board.Tuning, popout bool) (Variant, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var base Variant = NewClassic()
	if popout {
		base = NewPopOut()
	}
	return &custom{Variant: base, tuning: t}, nil
}

func (c *custom) Name() string {
	if c.tuning.Name != "" {
		return c.tuning.Name
	}
	return c.Variant.Name()
}

func (c *custom) Tuning() board.Tuning {
	return c.tuning
}

// SmallTuning is a 4x4 board with three in a row to win. Central cells
// weigh more, as on the standard board.
func SmallTuning() board.Tuning {
	table := [][]int{
		{3, 4, 4, 3},
		{4, 6, 6, 4},
		{4, 6, 6, 4},
		{3, 4, 4, 3},
	}
	return board.Tuning{
		Name:               "Small",
		Explanation:        "4x4 board, three in a row wins",
		Height:             4,
		Width:              4,
		WinLength:          3,
		EvaluationTable:    table,
		EvaluationConstant: 34,
		MaxEvaluation:      1000,
	}
}
