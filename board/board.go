package board

import (
	"errors"
	"fmt"

	"github.com/domino14/connectfour/move"
)

// SpaceState is the content of a single cell of the grid.
type SpaceState uint8

const (
	Empty SpaceState = iota
	Player1
	Player2
)

// SpaceFor converts a player to the token it places.
func SpaceFor(p move.Player) SpaceState {
	switch p {
	case move.PlayerOne:
		return Player1
	case move.PlayerTwo:
		return Player2
	}
	panic(fmt.Errorf("%w: no token for %v", ErrContract, p))
}

// Owner is the player whose token occupies this space. It panics for an
// empty space.
func (s SpaceState) Owner() move.Player {
	switch s {
	case Player1:
		return move.PlayerOne
	case Player2:
		return move.PlayerTwo
	}
	panic(fmt.Errorf("%w: empty space has no owner", ErrContract))
}

var (
	// ErrOutOfBounds is wrapped by the panics raised on out-of-range
	// cell or column access.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrContract is wrapped by the panics raised when a caller breaks
	// the board's contract (applying an illegal move, placing an empty
	// token, etc.)
	ErrContract = errors.New("board contract violation")
)

// Rules is what a board needs from a game variant in order to initialize.
type Rules interface {
	Tuning() Tuning
	// InitializeBoard may pre-populate a freshly allocated board.
	InitializeBoard(b *Board)
}

// Board is the grid state of a game. Row 0 is the bottom row.
type Board struct {
	tuning    Tuning
	squares   []SpaceState
	heights   []int
	moveCount int
}

// NewBoard allocates and initializes a board for the given rules.
func NewBoard(r Rules) *Board {
	b := &Board{}
	b.Init(r)
	return b
}

// Init allocates an empty grid with the dimensions of the rules' tuning,
// resets the heights and move count, and runs the rules' pre-population
// hook.
func (b *Board) Init(r Rules) {
	t := r.Tuning()
	if err := t.Validate(); err != nil {
		panic(fmt.Errorf("%w: %w", ErrContract, err))
	}
	b.tuning = t
	b.squares = make([]SpaceState, t.Height*t.Width)
	b.heights = make([]int, t.Width)
	b.moveCount = 0
	r.InitializeBoard(b)
}

func (b *Board) Height() int {
	return b.tuning.Height
}

func (b *Board) Width() int {
	return b.tuning.Width
}

func (b *Board) WinLength() int {
	return b.tuning.WinLength
}

func (b *Board) Tuning() Tuning {
	return b.tuning
}

// UsableHeight is the number of rows a column can be filled to. Every row
// of the grid is playable.
func (b *Board) UsableHeight() int {
	return b.tuning.Height
}

// MoveCount is the number of moves applied to this board. Pops count as
// moves too, so this is not the number of tokens on the board.
func (b *Board) MoveCount() int {
	return b.moveCount
}

// ColumnHeight is the number of tokens stacked in column col.
func (b *Board) ColumnHeight(col int) int {
	b.checkColumn(col)
	return b.heights[col]
}

func (b *Board) checkColumn(col int) {
	if col < 0 || col >= b.tuning.Width {
		panic(fmt.Errorf("%w: column %d (width %d)", ErrOutOfBounds, col, b.tuning.Width))
	}
}

func (b *Board) idx(row, col int) int {
	if row < 0 || row >= b.tuning.Height {
		panic(fmt.Errorf("%w: row %d (height %d)", ErrOutOfBounds, row, b.tuning.Height))
	}
	b.checkColumn(col)
	return row*b.tuning.Width + col
}

// CellAt returns the content of the cell at row, col.
func (b *Board) CellAt(row, col int) SpaceState {
	return b.squares[b.idx(row, col)]
}

// Set places token s on top of column col at the given row. The row must
// be the column's current height. It is meant for variants that
// pre-populate the board, and does not count as a move.
func (b *Board) Set(row, col int, s SpaceState) {
	i := b.idx(row, col)
	if s == Empty {
		panic(fmt.Errorf("%w: cannot place an empty token", ErrContract))
	}
	if row != b.heights[col] {
		panic(fmt.Errorf("%w: row %d is not the top of column %d (height %d)",
			ErrContract, row, col, b.heights[col]))
	}
	b.squares[i] = s
	b.heights[col]++
}

// Legal checks whether m can be applied to this board. When it can't, the
// move's result is set to failed, with a message explaining why.
func (b *Board) Legal(m *move.Move) bool {
	col := m.Column()
	if col < 0 || col >= b.tuning.Width {
		m.Fail(fmt.Sprintf("Please select a column between 1 and %d", b.tuning.Width))
		return false
	}
	switch m.Action() {
	case move.MoveTypePush:
		if b.heights[col] >= b.UsableHeight() {
			m.Fail("Can't insert to a full column")
			return false
		}
	case move.MoveTypePop:
		if b.heights[col] == 0 || b.squares[b.idx(0, col)] != SpaceFor(m.Player()) {
			m.Fail("Can only pop a column whose bottom disk is yours")
			return false
		}
	default:
		m.Fail("Unknown move type")
		return false
	}
	m.Succeed()
	return true
}

// Apply plays m. The move must be legal.
func (b *Board) Apply(m *move.Move) {
	if !b.Legal(m) {
		panic(fmt.Errorf("%w: applying illegal move %v: %s", ErrContract,
			m.ShortDescription(), m.Message()))
	}
	col := m.Column()
	switch m.Action() {
	case move.MoveTypePush:
		b.squares[b.idx(b.heights[col], col)] = SpaceFor(m.Player())
		b.heights[col]++
	case move.MoveTypePop:
		b.pop(col)
	}
	b.moveCount++
}

// pop removes the bottom token of col and collapses the column.
func (b *Board) pop(col int) {
	h := b.heights[col]
	for row := 0; row < h-1; row++ {
		b.squares[b.idx(row, col)] = b.squares[b.idx(row+1, col)]
	}
	b.squares[b.idx(h-1, col)] = Empty
	b.heights[col]--
}

// Wins returns whether applying m would immediately complete a line for
// the mover. The board is not modified.
func (b *Board) Wins(m *move.Move) bool {
	col := m.Column()
	b.checkColumn(col)
	owner := SpaceFor(m.Player())

	switch m.Action() {
	case move.MoveTypePush:
		row := b.heights[col]
		if row >= b.UsableHeight() {
			return false
		}
		return b.lineThrough(row, col, owner)

	case move.MoveTypePop:
		if b.heights[col] == 0 || b.squares[b.idx(0, col)] != owner {
			return false
		}
		// Every cell of the column moves, so any of them may now be part
		// of a line.
		trial := b.Copy()
		trial.pop(col)
		for row := 0; row < trial.heights[col]; row++ {
			if trial.squares[trial.idx(row, col)] == owner &&
				trial.lineThrough(row, col, owner) {
				return true
			}
		}
	}
	return false
}

var lineDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

// lineThrough counts contiguous owner tokens on both sides of (row, col),
// treating (row, col) itself as owned.
func (b *Board) lineThrough(row, col int, owner SpaceState) bool {
	for _, d := range lineDirections {
		count := 1
		for _, sign := range [2]int{1, -1} {
			r, c := row+sign*d[0], col+sign*d[1]
			for r >= 0 && r < b.tuning.Height && c >= 0 && c < b.tuning.Width &&
				b.squares[r*b.tuning.Width+c] == owner {
				count++
				r += sign * d[0]
				c += sign * d[1]
			}
		}
		if count >= b.tuning.WinLength {
			return true
		}
	}
	return false
}

// IsDraw returns true once every column is full.
func (b *Board) IsDraw() bool {
	for _, h := range b.heights {
		if h < b.UsableHeight() {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the board. The tuning is shared, as it is
// never mutated.
func (b *Board) Copy() *Board {
	squares := make([]SpaceState, len(b.squares))
	copy(squares, b.squares)
	heights := make([]int, len(b.heights))
	copy(heights, b.heights)
	return &Board{
		tuning:    b.tuning,
		squares:   squares,
		heights:   heights,
		moveCount: b.moveCount,
	}
}

// Evaluate is the static positional score of the board from p's point of
// view: the weights of p's cells, minus the weights of the opponent's
// cells, plus the evaluation constant.
func (b *Board) Evaluate(p move.Player) int {
	own := SpaceFor(p)
	score := b.tuning.EvaluationConstant
	for row := 0; row < b.tuning.Height; row++ {
		for col := 0; col < b.tuning.Width; col++ {
			switch s := b.squares[row*b.tuning.Width+col]; {
			case s == Empty:
			case s == own:
				score += b.tuning.EvaluationTable[row][col]
			default:
				score -= b.tuning.EvaluationTable[row][col]
			}
		}
	}
	return score
}

// Equals compares grids, heights and move counts.
func (b *Board) Equals(b2 *Board) bool {
	if b.moveCount != b2.moveCount || len(b.squares) != len(b2.squares) ||
		b.tuning.Width != b2.tuning.Width {
		return false
	}
	for i := range b.squares {
		if b.squares[i] != b2.squares[i] {
			return false
		}
	}
	for i := range b.heights {
		if b.heights[i] != b2.heights[i] {
			return false
		}
	}
	return true
}
