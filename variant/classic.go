package variant

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/move"
)

const columnInputError = "Can't read input - column value needs to be a positive integer"

// Classic is the standard game: drop a disk in a column, first to connect
// four wins.
type Classic struct {
	tuning board.Tuning
}

func NewClassic() *Classic {
	return &Classic{tuning: board.Tuning{
		Name:               "Classic",
		Explanation:        "Classic Connect Four Game with default rules",
		Height:             6,
		Width:              7,
		WinLength:          4,
		EvaluationTable:    StandardEvaluationTable,
		EvaluationConstant: standardEvaluationConstant,
		MaxEvaluation:      standardMaxEvaluation,
	}}
}

func (c *Classic) Name() string {
	return c.tuning.Name
}

func (c *Classic) Tuning() board.Tuning {
	return c.tuning
}

func (c *Classic) InitializeBoard(b *board.Board) {}

func (c *Classic) EnumerateMoves(b *board.Board, p move.Player, order []int) []*move.Move {
	if b.IsDraw() {
		return nil
	}
	return lo.FilterMap(columns(b.Width(), order), func(col int, _ int) (*move.Move, bool) {
		m := move.NewPushMove(col, p)
		return m, b.Legal(m)
	})
}

func (c *Classic) ParseMove(text string, p move.Player) *move.Move {
	col, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return move.NewFailedMove(p, columnInputError)
	}
	m := move.NewPushMove(col-1, p)
	m.Succeed()
	return m
}
