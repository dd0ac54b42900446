package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/connectfour/negamax"
	"github.com/domino14/connectfour/variant"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func smallOptions(t *testing.T, popout bool) Options {
	v, err := variant.Custom(variant.SmallTuning(), popout)
	require.NoError(t, err)
	return Options{
		Variant: v,
		Player1: Contestant{Name: "easy", Difficulty: negamax.EasyDifficulty},
		Player2: Contestant{Name: "medium", Difficulty: negamax.MediumDifficulty},
		Games:   6,
		Threads: 3,
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	opts := smallOptions(t, false)
	opts.OutputFile = filepath.Join(dir, "summary.yaml")
	opts.LogFile = filepath.Join(dir, "games.csv")

	s, err := NewRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Games)
	assert.Equal(t, 6, s.Requested)
	assert.Equal(t, s.Games, s.Player1Wins+s.Player2Wins+s.Draws)
	assert.Equal(t, 0, s.Capped)
	assert.Len(t, s.Results, 6)
	assert.EqualValues(t, 6, CVCCounter.Value())
	assert.EqualValues(t, 0, IsPlaying.Value())
	for i, res := range s.Results {
		assert.Equal(t, i, res.Index)
		assert.LessOrEqual(t, res.Length, 16)
		assert.GreaterOrEqual(t, res.Length, 5)
		// contestants alternate moving first
		if i%2 == 0 {
			assert.Equal(t, "easy", res.First)
		} else {
			assert.Equal(t, "medium", res.First)
		}
	}
	assert.LessOrEqual(t, s.ScoreLow, s.Player1Score)
	assert.GreaterOrEqual(t, s.ScoreHigh, s.Player1Score)
	assert.Contains(t, s.String(), "Games played: 6 of 6")
	assert.Contains(t, s.String(), "easy (Easy) wins:")

	out, err := os.ReadFile(opts.OutputFile)
	require.NoError(t, err)
	var saved Summary
	require.NoError(t, yaml.Unmarshal(out, &saved))
	assert.Equal(t, s.Games, saved.Games)
	assert.Equal(t, s.Player2Wins, saved.Player2Wins)
	assert.Len(t, saved.Results, 6)

	analysis, err := AnalyzeLogFile(opts.LogFile)
	require.NoError(t, err)
	assert.Contains(t, analysis, "Games played: 6")
	assert.Contains(t, analysis, "Opening plays:")
}

func TestMoveLimit(t *testing.T) {
	opts := smallOptions(t, true)
	opts.MaxMoves = 3
	opts.Games = 4
	s, err := NewRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Draws)
	assert.Equal(t, 4, s.Capped)
	assert.Equal(t, 3.0, s.MeanLength)
	assert.Equal(t, 3, s.MaxLength)
	assert.InDelta(t, 0.5, s.Player1Score, 1e-9)
	assert.Contains(t, s.String(), "3: 4 games")
}

func TestCancelledRun(t *testing.T) {
	opts := smallOptions(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := NewRunner().Run(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Games)
	assert.Equal(t, 6, s.Requested)
	assert.Contains(t, s.String(), "(no games)")
}

func TestOneBatchAtATime(t *testing.T) {
	r := NewRunner()
	r.playing.Store(true)
	_, err := r.Run(context.Background(), smallOptions(t, false))
	assert.ErrorIs(t, err, ErrAlreadyPlaying)

	r.playing.Store(false)
	opts := smallOptions(t, false)
	opts.Games = 0
	_, err = r.Run(context.Background(), opts)
	assert.Error(t, err)
}

func TestAnalyzeLog(t *testing.T) {
	log := strings.Join([]string{
		"playerID,gameID,turn,play,movecount",
		"a,g1,1,push 4,1",
		"b,g1,2,push 3,2",
		"result,g1,2,a,2",
		"b,g2,1,push 4,1",
		"a,g2,2,push 1,2",
		"result,g2,2,draw,2",
		"a,g3,1,push 2,1",
		"result,g3,1,a,1",
	}, "\n") + "\n"
	out, err := analyzeLog(strings.NewReader(log))
	require.NoError(t, err)
	assert.Contains(t, out, "Games played: 3")
	assert.Contains(t, out, "a wins: 2 (66.667%)")
	assert.Contains(t, out, "Draws: 1 (33.333%)")
	assert.Contains(t, out, "  push 4: 2\n  push 2: 1\n")
}

func TestLogQuotesNames(t *testing.T) {
	opts := smallOptions(t, false)
	opts.Games = 2
	opts.Player1.Name = "easy, fast"
	opts.Player2.Name = "deep,slow"
	opts.LogFile = filepath.Join(t.TempDir(), "games.csv")

	s, err := NewRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 2, s.Games)

	dat, err := os.ReadFile(opts.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(dat), `"easy, fast",`)

	analysis, err := AnalyzeLogFile(opts.LogFile)
	require.NoError(t, err)
	assert.Contains(t, analysis, "Games played: 2")
	if s.Player1Wins > 0 {
		assert.Contains(t, analysis, "easy, fast wins:")
	}
	if s.Player2Wins > 0 {
		assert.Contains(t, analysis, "deep,slow wins:")
	}
}
