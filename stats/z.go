package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	return dist.Quantile((1 + (confidenceInterval / 100)) / 2)
}

// ScoreInterval gives the score of a player over a match (a win counts 1, a
// draw counts half) along with the bounds of its normal-approximation
// confidence interval, clamped to [0, 1].
func ScoreInterval(wins, draws, games int, confidenceInterval float64) (score, lo, hi float64) {
	if games == 0 {
		return 0, 0, 0
	}
	n := float64(games)
	score = (float64(wins) + float64(draws)/2) / n
	margin := ZVal(confidenceInterval) * math.Sqrt(score*(1-score)/n)
	return score, math.Max(0, score-margin), math.Min(1, score+margin)
}
