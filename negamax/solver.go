package negamax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/common"
	"github.com/domino14/connectfour/move"
	"github.com/domino14/connectfour/variant"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
(* Initial call for Player A's root node *)
negamax(rootNode, depth, −∞, +∞, 1)
**/

var (
	ErrNoMoves = errors.New("no next move - likely a draw")
	// ErrWindow is wrapped by the panic raised when a node is entered with
	// an empty search window.
	ErrWindow = errors.New("invalid search window")
)

// Solver picks moves for one variant at one difficulty. A Solver is not
// safe for concurrent use; give every goroutine its own.
type Solver struct {
	variant    variant.Variant
	difficulty Difficulty
	pruning    bool
	logStream  io.Writer

	maxEval int
	// mateFloor is the lowest score a win can get, one above anything
	// Evaluate returns.
	mateFloor int
	nodes     atomic.Uint64

	// principal variations of the tied best root moves, parallel to the
	// moves returned by the last Solve.
	rootPVs   []common.PVLine
	lastPV    common.PVLine
	lastScore int
	lastMoves []*move.Move
}

func NewSolver(v variant.Variant, d Difficulty) *Solver {
	t := v.Tuning()
	return &Solver{
		variant:    v,
		difficulty: d,
		pruning:    true,
		maxEval:    t.MaxEvaluation,
		mateFloor:  min(t.EvaluationConstant+t.TableSum()+1, t.MaxEvaluation),
	}
}

// winScore is the score of a win on the next move. Quicker wins score
// higher, but never below mateFloor: MoveCount also counts pops, so long
// PopOut games would otherwise push wins into the range of Evaluate.
func (s *Solver) winScore(b *board.Board) int {
	return max(s.maxEval-b.MoveCount(), s.mateFloor)
}

// SetLogStream turns on the search trace. Pass nil to turn it off.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// SetPruning toggles alpha-beta pruning. With pruning off the solver runs a
// plain exhaustive negamax to the same depth.
func (s *Solver) SetPruning(p bool) {
	s.pruning = p
}

func (s *Solver) Difficulty() Difficulty {
	return s.difficulty
}

func (s *Solver) SetDifficulty(d Difficulty) {
	s.difficulty = d
}

func (s *Solver) Variant() variant.Variant {
	return s.variant
}

// Nodes returns the number of nodes visited by the last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// PrincipalVariation is the line behind the move last returned by
// SelectMove.
func (s *Solver) PrincipalVariation() common.PVLine {
	return s.lastPV
}

// BestMoves returns the tied best moves of the last search.
func (s *Solver) BestMoves() []*move.Move {
	return s.lastMoves
}

// LastScore is the best root score of the last search.
func (s *Solver) LastScore() int {
	return s.lastScore
}

// Solve searches every candidate move of player p and returns the best
// score along with all the moves that reach it. The board b is not
// modified.
func (s *Solver) Solve(ctx context.Context, b *board.Board, p move.Player) (int, []*move.Move, error) {
	s.nodes.Store(0)
	s.rootPVs = nil
	s.lastMoves = nil
	st := time.Now()
	order := variant.CenterOrder(b.Width())
	candidates := s.variant.EnumerateMoves(b, p, order)
	if len(candidates) == 0 {
		return 0, nil, ErrNoMoves
	}
	log.Debug().Int("candidates", len(candidates)).Int("max-depth", s.difficulty.MaxDepth).
		Bool("pruning", s.pruning).Str("player", p.String()).Msg("negamax-solve-config")
	if s.logStream != nil {
		fmt.Fprintf(s.logStream, "- solve: %v\n  depth: %d\n  plays:\n", p, s.difficulty.MaxDepth)
	}

	best := -s.maxEval - 1
	var bestMoves []*move.Move
	var bestPVs []common.PVLine

	for _, m := range candidates {
		var score int
		var pv common.PVLine
		if b.Wins(m) {
			score = s.maxEval
			pv.Update(m, common.PVLine{}, score)
		} else {
			child := b.Copy()
			child.Apply(m)
			childPV := common.PVLine{}
			val, err := s.negamax(ctx, child, -s.maxEval, s.maxEval, p.Opponent(), 1, order, &childPV)
			if err != nil {
				return 0, nil, err
			}
			score = -val
			pv.Update(m, childPV, score)
		}
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  - play: %v\n    value: %d\n", m.ShortDescription(), score)
		}
		switch {
		case score > best:
			best = score
			bestMoves = []*move.Move{m}
			bestPVs = []common.PVLine{pv}
		case score == best:
			bestMoves = append(bestMoves, m)
			bestPVs = append(bestPVs, pv)
		}
	}
	s.rootPVs = bestPVs
	s.lastScore = best
	s.lastMoves = bestMoves

	elapsed := time.Since(st)
	log.Debug().
		Int("best-val", best).
		Int("ties", len(bestMoves)).
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", elapsed.Seconds()).
		Msg("solve-returning")
	if s.logStream != nil {
		fmt.Fprintf(s.logStream, "  best: %d\n  nodes: %d\n  elapsed: %v\n", best, s.nodes.Load(), elapsed)
	}
	return best, bestMoves, nil
}

// SelectMove returns one of the best moves for p, chosen uniformly at
// random among ties. It never returns nil: when there is nothing to play, or
// the search was cut short, the returned move has failed and carries the
// reason.
func (s *Solver) SelectMove(ctx context.Context, b *board.Board, p move.Player) *move.Move {
	s.lastPV = common.PVLine{}
	_, moves, err := s.Solve(ctx, b, p)
	if err != nil {
		log.Debug().Err(err).Msg("select-move-failed")
		return move.NewFailedMove(p, err.Error())
	}
	idx := 0
	if len(moves) > 1 {
		idx = frand.Intn(len(moves))
	}
	s.lastPV = s.rootPVs[idx]
	log.Debug().Str("pv", s.lastPV.NLBString()).Msg("selected")
	return moves[idx]
}

func (s *Solver) negamax(ctx context.Context, b *board.Board, α, β int, p move.Player,
	depth int, order []int, pv *common.PVLine) (int, error) {

	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if α >= β {
		panic(fmt.Errorf("%w: α=%d β=%d at depth %d", ErrWindow, α, β, depth))
	}
	s.nodes.Add(1)

	if b.IsDraw() {
		return 0, nil
	}
	moves := s.variant.EnumerateMoves(b, p, order)
	for _, m := range moves {
		if b.Wins(m) {
			pv.Update(m, common.PVLine{}, s.winScore(b))
			return s.winScore(b), nil
		}
	}
	if s.pruning {
		// No win is possible this turn, so the best this side can still
		// reach is a win on a later move.
		if bound := s.winScore(b); β > bound {
			β = bound
			if α >= β {
				return β, nil
			}
		}
	}
	if depth >= s.difficulty.MaxDepth {
		return b.Evaluate(p), nil
	}

	indent := 2 * depth
	if s.logStream != nil {
		fmt.Fprintf(s.logStream, "  %vplays:\n", strings.Repeat(" ", indent))
	}
	best := -s.maxEval - 1
	childPV := common.PVLine{}
	for _, m := range moves {
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v- play: %v\n", strings.Repeat(" ", indent), m.ShortDescription())
		}
		child := b.Copy()
		child.Apply(m)
		val, err := s.negamax(ctx, child, -β, -α, p.Opponent(), depth+1, order, &childPV)
		if err != nil {
			return 0, err
		}
		score := -val
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v  value: %v\n", strings.Repeat(" ", indent), score)
		}
		if !s.pruning {
			if score > best {
				best = score
				pv.Update(m, childPV, score)
			}
			childPV.Clear()
			continue
		}
		if score >= β {
			return score, nil
		}
		if score > α {
			α = score
			pv.Update(m, childPV, score)
		}
		childPV.Clear()
	}
	if !s.pruning {
		return best, nil
	}
	return α, nil
}
