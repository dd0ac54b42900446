package stats

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		lengths []int
		mean    float64
		stdev   float64
		min     float64
		max     float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]int{7}, 7, 0, 7, 7},
		{[]int{}, 0, 0, 0, 0},
		{[]int{42, 42}, 42, 0, 42, 42},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, l := range c.lengths {
			s.Push(float64(l))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Iterations(), len(c.lengths))
	}
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
}

func TestScoreInterval(t *testing.T) {
	score, lo, hi := ScoreInterval(60, 20, 100, 95)
	assert.InDelta(t, 0.7, score, Epsilon)
	assert.Less(t, lo, score)
	assert.Greater(t, hi, score)
	assert.InDelta(t, score-lo, hi-score, Epsilon)

	score, lo, hi = ScoreInterval(10, 0, 10, 95)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 1.0, hi)

	score, _, _ = ScoreInterval(0, 0, 0, 95)
	assert.Equal(t, 0.0, score)
}
