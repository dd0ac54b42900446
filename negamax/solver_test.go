package negamax

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/domino14/connectfour/board"
	"github.com/domino14/connectfour/move"
	"github.com/domino14/connectfour/variant"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func setUpSolver(v variant.Variant, bvs board.VsWho, d Difficulty) (*Solver, *board.Board) {
	b := variant.NewBoard(v)
	if bvs != "" {
		b.SetToGame(bvs)
	}
	return NewSolver(v, d), b
}

func descriptions(moves []*move.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.ShortDescription()
	}
	sort.Strings(out)
	return out
}

// randomPosition plays up to n random legal moves without letting anyone
// complete a line. n must be small enough that the board cannot fill up.
func randomPosition(v variant.Variant, n int) (*board.Board, move.Player) {
	b := variant.NewBoard(v)
	p := move.PlayerOne
	for i := 0; i < n; i++ {
		moves := v.EnumerateMoves(b, p, nil)
		var safe []*move.Move
		for _, m := range moves {
			if !b.Wins(m) {
				safe = append(safe, m)
			}
		}
		if len(safe) == 0 {
			break
		}
		m := safe[frand.Intn(len(safe))]
		b.Apply(m)
		p = p.Opponent()
	}
	return b, p
}

func TestImmediateWin(t *testing.T) {
	is := is.New(t)
	s, b := setUpSolver(variant.NewClassic(), board.VsBottomThree, MediumDifficulty)

	best, moves, err := s.Solve(context.Background(), b, move.PlayerOne)
	is.NoErr(err)
	is.Equal(best, 1000)
	is.Equal(descriptions(moves), []string{"push 4"})
}

func TestBlocksThreat(t *testing.T) {
	is := is.New(t)
	for _, d := range Difficulties() {
		if d.MaxDepth > MediumDifficulty.MaxDepth {
			continue
		}
		s, b := setUpSolver(variant.NewClassic(), board.VsBottomThree, d)
		m := s.SelectMove(context.Background(), b, move.PlayerTwo)
		is.Equal(m.Result(), move.ResultSuccess)
		is.Equal(m.Action(), move.MoveTypePush)
		is.Equal(m.Column(), 3)
		is.Equal(m.Player(), move.PlayerTwo)
	}
}

func TestPopWin(t *testing.T) {
	is := is.New(t)
	s, b := setUpSolver(variant.NewPopOut(), board.VsPopWin, EasyDifficulty)
	best, moves, err := s.Solve(context.Background(), b, move.PlayerOne)
	is.NoErr(err)
	is.Equal(best, 1000)
	is.True(len(moves) >= 1)
	var foundPop bool
	for _, m := range moves {
		if m.Action() == move.MoveTypePop && m.Column() == 0 {
			foundPop = true
		}
	}
	is.True(foundPop)
}

func TestScoresWithinBounds(t *testing.T) {
	v := variant.NewClassic()
	maxEval := v.Tuning().MaxEvaluation
	for i := 0; i < 5; i++ {
		b, p := randomPosition(v, 8)
		s := NewSolver(v, EasyDifficulty)
		best, moves, err := s.Solve(context.Background(), b, p)
		require.NoError(t, err)
		assert.NotEmpty(t, moves)
		assert.LessOrEqual(t, best, maxEval)
		assert.GreaterOrEqual(t, best, -maxEval)
		assert.Greater(t, s.Nodes(), uint64(0))
	}
}

func TestPruningMatchesExhaustiveSearch(t *testing.T) {
	for _, popout := range []bool{false, true} {
		v, err := variant.Custom(variant.SmallTuning(), popout)
		require.NoError(t, err)
		d := Difficulty{Name: "test", MaxDepth: 4}
		if popout {
			d.MaxDepth = 3
		}
		for i := 0; i < 12; i++ {
			b, p := randomPosition(v, i%6)
			pruned := NewSolver(v, d)
			exhaustive := NewSolver(v, d)
			exhaustive.SetPruning(false)

			b1, m1, err := pruned.Solve(context.Background(), b, p)
			require.NoError(t, err)
			b2, m2, err := exhaustive.Solve(context.Background(), b, p)
			require.NoError(t, err)

			assert.Equal(t, b2, b1, "position:\n%s", b.ToDisplayText())
			assert.Equal(t, descriptions(m2), descriptions(m1), "position:\n%s", b.ToDisplayText())
			assert.LessOrEqual(t, pruned.Nodes(), exhaustive.Nodes())
		}
	}
}

// lengthen adds 2n to the move count of b by pushing and popping a disk
// of p in the empty column col.
func lengthen(b *board.Board, col int, p move.Player, n int) {
	for i := 0; i < n; i++ {
		b.Apply(move.NewPushMove(col, p))
		b.Apply(move.NewPopMove(col, p))
	}
}

func TestLongPopOutGame(t *testing.T) {
	v := variant.NewPopOut()
	maxEval := v.Tuning().MaxEvaluation

	fresh := variant.NewBoard(v)
	long := variant.NewBoard(v)
	lengthen(long, 3, move.PlayerOne, 550)
	require.Equal(t, 1100, long.MoveCount())
	require.Equal(t, fresh.ToDisplayText(), long.ToDisplayText())

	b1, m1, err := NewSolver(v, EasyDifficulty).Solve(context.Background(), fresh, move.PlayerOne)
	require.NoError(t, err)
	b2, m2, err := NewSolver(v, EasyDifficulty).Solve(context.Background(), long, move.PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
	assert.Equal(t, descriptions(m1), descriptions(m2))
	assert.Less(t, len(m2), len(v.EnumerateMoves(long, move.PlayerOne, nil)))

	// a threat must still be blocked however long the game has been
	b := variant.NewBoard(v)
	b.SetToGame(board.VsBottomThree)
	lengthen(b, 6, move.PlayerOne, 550)
	best, moves, err := NewSolver(v, EasyDifficulty).Solve(context.Background(), b, move.PlayerTwo)
	require.NoError(t, err)
	assert.Equal(t, []string{"push 4"}, descriptions(moves))
	assert.Greater(t, best, -maxEval)
	tn := v.Tuning()
	assert.LessOrEqual(t, best, tn.EvaluationConstant+tn.TableSum())
}

func TestSearchDoesNotModifyBoard(t *testing.T) {
	is := is.New(t)
	for _, v := range variant.All() {
		s, b := setUpSolver(v, board.VsPopColumn, EasyDifficulty)
		before := b.Copy()
		s.SelectMove(context.Background(), b, move.PlayerOne)
		is.True(b.Equals(before))
		is.Equal(b.MoveCount(), before.MoveCount())
	}
}

func TestNoMovesOnFullBoard(t *testing.T) {
	is := is.New(t)
	for _, v := range variant.All() {
		s, b := setUpSolver(v, board.VsFullDraw, HardDifficulty)
		_, moves, err := s.Solve(context.Background(), b, move.PlayerOne)
		is.True(errors.Is(err, ErrNoMoves))
		is.Equal(len(moves), 0)

		m := s.SelectMove(context.Background(), b, move.PlayerTwo)
		is.True(m.Failed())
		is.Equal(m.Message(), "no next move - likely a draw")
		is.Equal(m.Player(), move.PlayerTwo)
	}
}

func TestLastFreeSpace(t *testing.T) {
	is := is.New(t)
	s, b := setUpSolver(variant.NewClassic(), board.VsAlmostFull, ProDifficulty)
	m := s.SelectMove(context.Background(), b, move.PlayerOne)
	is.True(!m.Failed())
	is.Equal(m.Column(), 6)
}

func TestEmptyWindowPanics(t *testing.T) {
	s, b := setUpSolver(variant.NewClassic(), "", EasyDifficulty)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrWindow)
	}()
	s.negamax(context.Background(), b, 5, 5, move.PlayerOne, 1, variant.CenterOrder(b.Width()), nil)
}

func TestCancelledSearch(t *testing.T) {
	is := is.New(t)
	s, b := setUpSolver(variant.NewClassic(), "", ProDifficulty)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Solve(ctx, b, move.PlayerOne)
	is.True(errors.Is(err, context.Canceled))

	m := s.SelectMove(ctx, b, move.PlayerOne)
	is.True(m.Failed())
	is.Equal(m.Message(), context.Canceled.Error())
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	s, b := setUpSolver(variant.NewClassic(), board.VsPopColumn, EasyDifficulty)
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	s.SelectMove(context.Background(), b, move.PlayerOne)
	is.True(bytes.Contains(buf.Bytes(), []byte("- play: push 4")))
	is.True(bytes.Contains(buf.Bytes(), []byte("nodes:")))

	buf.Reset()
	s.SetLogStream(nil)
	s.SelectMove(context.Background(), b, move.PlayerOne)
	is.Equal(buf.Len(), 0)
}

func TestPrincipalVariation(t *testing.T) {
	is := is.New(t)
	s, b := setUpSolver(variant.NewClassic(), board.VsBottomThree, MediumDifficulty)
	m := s.SelectMove(context.Background(), b, move.PlayerOne)
	pv := s.PrincipalVariation()
	is.True(pv.GetPVMove().Equals(m))
	is.Equal(pv.Score(), 1000)
	is.Equal(s.LastScore(), 1000)
}

func TestDifficultyFromName(t *testing.T) {
	is := is.New(t)
	d, ok := DifficultyFromName("hard")
	is.True(ok)
	is.Equal(d, HardDifficulty)
	d, ok = DifficultyFromName("PRO")
	is.True(ok)
	is.Equal(d.MaxDepth, 11)
	d, ok = DifficultyFromName("impossible")
	is.True(!ok)
	is.Equal(d, MediumDifficulty)
	is.Equal(len(Difficulties()), 4)
}
