package game

import (
	"context"
	"fmt"
	"io"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/move"
	"github.com/domino14/connectfour/negamax"
	"github.com/domino14/connectfour/variant"
)

const (
	KindHuman    = "human"
	KindComputer = "ai"
)

// Player supplies moves for one side of a game.
type Player interface {
	Name() string
	// Kind is KindHuman or KindComputer.
	Kind() string
	// NextMove returns the move p wants to play on b. The board is a copy
	// and may be kept. The returned move may have failed.
	NextMove(ctx context.Context, v variant.Variant, b *board.Board, p move.Player) *move.Move
	Info() string
}

// LineReader is a source of typed lines, such as a readline instance.
type LineReader interface {
	Readline() (string, error)
}

const unreadableInput = "Can't read input - column value needs to be a positive integer"

// HumanPlayer reads moves from a LineReader.
type HumanPlayer struct {
	name string
	in   LineReader
}

func NewHumanPlayer(name string, in LineReader) *HumanPlayer {
	return &HumanPlayer{name: name, in: in}
}

func (h *HumanPlayer) Name() string { return h.name }

func (h *HumanPlayer) Kind() string { return KindHuman }

func (h *HumanPlayer) SetInput(in LineReader) {
	h.in = in
}

func (h *HumanPlayer) NextMove(ctx context.Context, v variant.Variant, b *board.Board, p move.Player) *move.Move {
	if h.in == nil {
		return move.NewFailedMove(p, unreadableInput)
	}
	line, err := h.in.Readline()
	if err != nil {
		return move.NewFailedMove(p, unreadableInput)
	}
	return v.ParseMove(line, p)
}

func (h *HumanPlayer) Info() string {
	return fmt.Sprintf("Name: %s, Type: Human", h.name)
}

// ComputerPlayer searches for its moves with a negamax solver.
type ComputerPlayer struct {
	name       string
	difficulty negamax.Difficulty
	solver     *negamax.Solver
	logStream  io.Writer
}

func NewComputerPlayer(name string, d negamax.Difficulty) *ComputerPlayer {
	return &ComputerPlayer{name: name, difficulty: d}
}

func (c *ComputerPlayer) Name() string { return c.name }

func (c *ComputerPlayer) Kind() string { return KindComputer }

func (c *ComputerPlayer) Difficulty() negamax.Difficulty {
	return c.difficulty
}

func (c *ComputerPlayer) SetDifficulty(d negamax.Difficulty) {
	c.difficulty = d
	if c.solver != nil {
		c.solver.SetDifficulty(d)
	}
}

// SetLogStream sends the search trace of this player to w; nil stops it.
func (c *ComputerPlayer) SetLogStream(w io.Writer) {
	c.logStream = w
	if c.solver != nil {
		c.solver.SetLogStream(w)
	}
}

// Solver returns the solver for v, creating it when the variant changed.
func (c *ComputerPlayer) Solver(v variant.Variant) *negamax.Solver {
	if c.solver == nil || c.solver.Variant() != v {
		c.solver = negamax.NewSolver(v, c.difficulty)
		c.solver.SetLogStream(c.logStream)
	}
	return c.solver
}

func (c *ComputerPlayer) NextMove(ctx context.Context, v variant.Variant, b *board.Board, p move.Player) *move.Move {
	return c.Solver(v).SelectMove(ctx, b, p)
}

func (c *ComputerPlayer) Info() string {
	return fmt.Sprintf("Name: %s, Type: Ai, Difficulty: %s", c.name, c.difficulty.Name)
}
