package automatic

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/connectfour/variant"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const (
	DefaultThreads  = 4
	DefaultMaxMoves = 200
	// ConfidenceLevel is the level, in percent, of the reported score
	// interval.
	ConfidenceLevel = 95.0
)

// Options configure a batch of automatic games.
type Options struct {
	Variant  variant.Variant
	Player1  Contestant
	Player2  Contestant
	Games    int
	Threads  int
	MaxMoves int
	// Contestants take turns moving first unless FixedOrder is set.
	FixedOrder bool
	// OutputFile receives the YAML summary, if set.
	OutputFile string
	// LogFile receives one CSV line per move, if set.
	LogFile string
}

// Runner plays batches of computer-vs-computer games. Only one batch can
// run at a time.
type Runner struct {
	playing atomic.Bool
}

func NewRunner() *Runner {
	return &Runner{}
}

// Run plays the games described by opts and summarizes them. If ctx is
// cancelled, the games finished so far are summarized.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	if !r.playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer r.playing.Store(false)
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	if opts.Variant == nil {
		opts.Variant = variant.NewClassic()
	}
	if opts.Games <= 0 {
		return nil, errors.New("number of games must be positive")
	}
	if opts.Threads <= 0 {
		opts.Threads = DefaultThreads
	}
	if opts.MaxMoves <= 0 {
		opts.MaxMoves = DefaultMaxMoves
	}
	log.Debug().Int("games", opts.Games).Int("threads", opts.Threads).
		Str("variant", opts.Variant.Name()).Msg("autoplay-starting")

	var logChan chan []string
	writer := errgroup.Group{}
	if opts.LogFile != "" {
		logfile, err := os.Create(opts.LogFile)
		if err != nil {
			return nil, err
		}
		logChan = make(chan []string, 100)
		writer.Go(func() error {
			defer logfile.Close()
			w := csv.NewWriter(logfile)
			werr := w.Write([]string{"playerID", "gameID", "turn", "play", "movecount"})
			for rec := range logChan {
				// keep draining after a failure so games never block
				if werr != nil {
					continue
				}
				werr = w.Write(rec)
			}
			if werr != nil {
				return werr
			}
			w.Flush()
			return w.Error()
		})
	}

	CVCCounter.Set(0)
	tstart := time.Now()
	results := make([]*GameResult, opts.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Threads)

gameLoop:
	for i := 0; i < opts.Games; i++ {
		select {
		case <-gctx.Done():
			log.Info().Msg("Got stop signal, exiting soon...")
			break gameLoop
		default:
		}
		g.Go(func() error {
			swap := !opts.FixedOrder && i%2 == 1
			gr := NewGameRunner(opts.Variant, opts.Player1, opts.Player2, swap, opts.MaxMoves, logChan)
			res, err := gr.PlayGame(gctx)
			if err != nil {
				return err
			}
			res.Index = i
			results[i] = &res
			CVCCounter.Add(1)
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
	}
	if werr := writer.Wait(); werr != nil {
		log.Err(werr).Msg("autoplay-log-write")
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if err != nil {
		// Not actually an error
		log.Info().AnErr("err", err).Msg("autoplay-stopped-early")
	}

	summary := Summarize(opts, results, time.Since(tstart))
	log.Info().Int("games", summary.Games).Float64("elapsed-sec", time.Since(tstart).Seconds()).
		Msg("autoplay-finished")
	if opts.OutputFile != "" {
		out, err := yaml.Marshal(summary)
		if err != nil {
			return summary, err
		}
		if err := os.WriteFile(opts.OutputFile, out, 0o644); err != nil {
			return summary, err
		}
	}
	return summary, nil
}
