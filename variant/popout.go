package variant

import (
	"strconv"
	"strings"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/move"
)

const popOutInputError = "Can't read input - Use commands \"pop <column_name>\" or \"push <column_name>\" to play"

// PopOut lets a player either push a disk on top of a column, or pop their
// own disk out of the bottom of one.
type PopOut struct {
	tuning board.Tuning
}

func NewPopOut() *PopOut {
	return &PopOut{tuning: board.Tuning{
		Name: "Pop Out",
		Explanation: "A unique variant where players can remove the bottom disk as well if it belongs to them.\n" +
			"Use commands \"pop <column_name>\" or \"push <column_name>\" to play",
		Height:             6,
		Width:              7,
		WinLength:          4,
		EvaluationTable:    StandardEvaluationTable,
		EvaluationConstant: standardEvaluationConstant,
		MaxEvaluation:      standardMaxEvaluation,
	}}
}

func (po *PopOut) Name() string {
	return po.tuning.Name
}

func (po *PopOut) Tuning() board.Tuning {
	return po.tuning
}

func (po *PopOut) InitializeBoard(b *board.Board) {}

func (po *PopOut) EnumerateMoves(b *board.Board, p move.Player, order []int) []*move.Move {
	if b.IsDraw() {
		return nil
	}
	var moves []*move.Move
	for _, col := range columns(b.Width(), order) {
		push := move.NewPushMove(col, p)
		if b.Legal(push) {
			moves = append(moves, push)
		}
		pop := move.NewPopMove(col, p)
		if b.Legal(pop) {
			moves = append(moves, pop)
		}
	}
	return moves
}

func (po *PopOut) ParseMove(text string, p move.Player) *move.Move {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return move.NewFailedMove(p, popOutInputError)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return move.NewFailedMove(p, columnInputError)
	}
	var m *move.Move
	switch strings.ToLower(fields[0]) {
	case "push":
		m = move.NewPushMove(col-1, p)
	case "pop":
		m = move.NewPopMove(col-1, p)
	default:
		return move.NewFailedMove(p, popOutInputError)
	}
	m.Succeed()
	return m
}
