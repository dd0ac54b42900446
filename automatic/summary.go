package automatic

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/connectfour/stats"
)

const histogramBins = 10

// Summary is the outcome of a batch of automatic games.
type Summary struct {
	Variant   string `yaml:"variant"`
	Player1   string `yaml:"player1"`
	Player2   string `yaml:"player2"`
	Requested int    `yaml:"requested"`
	Games     int    `yaml:"games"`

	Player1Wins int `yaml:"player1_wins"`
	Player2Wins int `yaml:"player2_wins"`
	Draws       int `yaml:"draws"`
	Capped      int `yaml:"capped"`
	// FirstMoverScore counts a win by whoever moved first as 1 and a draw
	// as half.
	FirstMoverScore float64 `yaml:"first_mover_score"`

	Player1Score float64 `yaml:"player1_score"`
	ScoreLow     float64 `yaml:"score_low"`
	ScoreHigh    float64 `yaml:"score_high"`
	Confidence   float64 `yaml:"confidence"`

	MeanLength  float64 `yaml:"mean_length"`
	StdevLength float64 `yaml:"stdev_length"`
	MinLength   int     `yaml:"min_length"`
	MaxLength   int     `yaml:"max_length"`

	ElapsedSec float64       `yaml:"elapsed_sec"`
	Results    []*GameResult `yaml:"results"`

	lengths []float64
}

// Summarize gathers the finished games among results; unfinished ones are
// nil and skipped.
func Summarize(opts Options, results []*GameResult, elapsed time.Duration) *Summary {
	played := lo.Compact(results)
	s := &Summary{
		Variant:    opts.Variant.Name(),
		Player1:    contestantString(opts.Player1),
		Player2:    contestantString(opts.Player2),
		Requested:  opts.Games,
		Games:      len(played),
		Confidence: ConfidenceLevel,
		ElapsedSec: elapsed.Seconds(),
		Results:    played,
	}
	lengths := &stats.Statistic{}
	for _, res := range played {
		switch res.Winner {
		case 1:
			s.Player1Wins++
		case 2:
			s.Player2Wins++
		default:
			s.Draws++
			s.FirstMoverScore += 0.5
		}
		if res.Winner != 0 && res.Winner == res.firstIdx {
			s.FirstMoverScore++
		}
		if res.Capped {
			s.Capped++
		}
		lengths.Push(float64(res.Length))
		s.lengths = append(s.lengths, float64(res.Length))
	}
	s.MeanLength = lengths.Mean()
	s.StdevLength = lengths.Stdev()
	s.MinLength = int(lengths.Min())
	s.MaxLength = int(lengths.Max())
	s.Player1Score, s.ScoreLow, s.ScoreHigh = stats.ScoreInterval(s.Player1Wins, s.Draws, s.Games, ConfidenceLevel)
	return s
}

func contestantString(c Contestant) string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Difficulty.Name)
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100.0 * float64(n) / float64(total)
}

// WriteHistogram draws the distribution of game lengths.
func (s *Summary) WriteHistogram(w io.Writer) error {
	if len(s.lengths) == 0 {
		_, err := fmt.Fprintln(w, "(no games)")
		return err
	}
	if lo.Min(s.lengths) == lo.Max(s.lengths) {
		_, err := fmt.Fprintf(w, "%.0f: %d games\n", s.lengths[0], len(s.lengths))
		return err
	}
	hist := histogram.Hist(histogramBins, s.lengths)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Variant: %s\n", s.Variant)
	fmt.Fprintf(&sb, "Games played: %d of %d\n", s.Games, s.Requested)
	fmt.Fprintf(&sb, "%s wins: %d (%.3f%%)\n", s.Player1, s.Player1Wins, pct(s.Player1Wins, s.Games))
	fmt.Fprintf(&sb, "%s wins: %d (%.3f%%)\n", s.Player2, s.Player2Wins, pct(s.Player2Wins, s.Games))
	fmt.Fprintf(&sb, "Draws: %d (%d stopped at the move limit)\n", s.Draws, s.Capped)
	fmt.Fprintf(&sb, "Player who went first wins: %.1f (%.3f%%)\n", s.FirstMoverScore,
		100.0*s.FirstMoverScore/float64(max(s.Games, 1)))
	fmt.Fprintf(&sb, "%s score: %.3f (%.0f%% CI %.3f - %.3f)\n", s.Player1, s.Player1Score,
		s.Confidence, s.ScoreLow, s.ScoreHigh)
	fmt.Fprintf(&sb, "Game length: mean %.2f stdev %.2f min %d max %d\n",
		s.MeanLength, s.StdevLength, s.MinLength, s.MaxLength)
	sb.WriteString("Game length histogram:\n")
	if err := s.WriteHistogram(&sb); err != nil {
		fmt.Fprintf(&sb, "error drawing histogram: %v\n", err)
	}
	return sb.String()
}
