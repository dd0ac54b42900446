package move

import (
	"fmt"
	"strconv"
)

// MoveType is a type of move; a push onto the top of a column, or a pop
// from its bottom.
type MoveType uint8

const (
	MoveTypePush MoveType = iota
	MoveTypePop
)

func (t MoveType) String() string {
	switch t {
	case MoveTypePush:
		return "push"
	case MoveTypePop:
		return "pop"
	}
	return "UNHANDLED"
}

// Player is one of the two sides.
type Player uint8

const (
	PlayerOne Player = iota + 1
	PlayerTwo
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "Player1"
	case PlayerTwo:
		return "Player2"
	}
	return "Player(" + strconv.Itoa(int(p)) + ")"
}

// Result is the outcome of evaluating a move against a board or a parser.
type Result uint8

const (
	ResultUnevaluated Result = iota
	ResultSuccess
	ResultFail
)

func (r Result) String() string {
	switch r {
	case ResultUnevaluated:
		return "unevaluated"
	case ResultSuccess:
		return "success"
	case ResultFail:
		return "fail"
	}
	return "UNHANDLED"
}

// Move is a move intent. Legality is decided by the board; the move only
// carries what the board (or the parser) reported back.
type Move struct {
	action  MoveType
	column  int
	player  Player
	result  Result
	message string
}

// NewPushMove creates a move that drops a token on top of column col.
func NewPushMove(col int, p Player) *Move {
	return &Move{action: MoveTypePush, column: col, player: p}
}

// NewPopMove creates a move that removes the bottom token of column col.
func NewPopMove(col int, p Player) *Move {
	return &Move{action: MoveTypePop, column: col, player: p}
}

// NewFailedMove creates a move that failed before it could reach a board,
// for example because its text could not be parsed.
func NewFailedMove(p Player, msg string) *Move {
	return &Move{column: -1, player: p, result: ResultFail, message: msg}
}

func (m *Move) Action() MoveType {
	return m.action
}

// Column is the 0-based column this move targets.
func (m *Move) Column() int {
	return m.column
}

func (m *Move) Player() Player {
	return m.player
}

func (m *Move) Result() Result {
	return m.result
}

// Message is a human-readable explanation of a failed result.
func (m *Move) Message() string {
	return m.message
}

func (m *Move) Failed() bool {
	return m.result == ResultFail
}

// Fail marks the move as failed with the given message.
func (m *Move) Fail(msg string) {
	m.result = ResultFail
	m.message = msg
}

// Succeed marks the move as succeeded and clears any earlier message.
func (m *Move) Succeed() {
	m.result = ResultSuccess
	m.message = ""
}

// Equals compares the intent of two moves, ignoring results.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.action == o.action && m.column == o.column && m.player == o.player
}

// ShortDescription provides a short, user-facing description, with a
// 1-based column, e.g. "push 4".
func (m *Move) ShortDescription() string {
	if m.column < 0 {
		return "(none)"
	}
	return fmt.Sprintf("%v %d", m.action, m.column+1)
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	return fmt.Sprintf("<%p action: %v col: %d player: %v result: %v msg: %q>",
		m, m.action, m.column, m.player, m.result, m.message)
}
