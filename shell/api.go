package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connectfour/automatic"
	"github.com/domino14/connectfour/config"
	"github.com/domino14/connectfour/game"
	"github.com/domino14/connectfour/move"
	"github.com/domino14/connectfour/negamax"
	"github.com/domino14/connectfour/variant"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game.Reset()
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) info(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	sb.WriteString(sc.game.PlayersInfo())
	sb.WriteString("\n")
	sb.WriteString(sc.game.VariantInfo())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Search trace: %v\n", sc.trace)
	if sc.gitVersion != "" {
		fmt.Fprintf(&sb, "Version: %s\n", sc.gitVersion)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) setVariant(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.game.VariantInfo()), nil
	}
	v, err := variant.Get(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %s (choose classic or popout)", err, strings.Join(cmd.args, " "))
	}
	sc.game.SetVariant(v)
	return msg(sc.game.VariantInfo() + "\n" + sc.game.ToDisplayText()), nil
}

func (sc *ShellController) setPlayer(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: player <1|2> <human|ai> [-name name] [-difficulty easy|medium|hard|pro]")
	}
	seat, err := strconv.Atoi(cmd.args[0])
	if err != nil || (seat != 1 && seat != 2) {
		return nil, errors.New("player must be 1 or 2")
	}
	p := move.Player(seat)
	kind := strings.ToLower(cmd.args[1])
	if kind != game.KindHuman && kind != game.KindComputer && kind != "computer" {
		return nil, fmt.Errorf("unknown player type %v", cmd.args[1])
	}
	name := cmd.options.String("name")
	if name == "" {
		name = sc.game.Player(p).Name()
	}
	difficulty := cmd.options.String("difficulty")
	if difficulty != "" {
		if _, ok := negamax.DifficultyFromName(difficulty); !ok {
			return nil, fmt.Errorf("unknown difficulty %v", difficulty)
		}
	} else if c, ok := sc.game.Player(p).(*game.ComputerPlayer); ok {
		difficulty = c.Difficulty().Name
	} else if p == move.PlayerOne {
		difficulty = sc.config.GetString(config.ConfigDifficulty1)
	} else {
		difficulty = sc.config.GetString(config.ConfigDifficulty2)
	}
	if err := sc.game.SetPlayer(p, sc.newPlayer(kind, name, difficulty)); err != nil {
		return nil, err
	}
	return msg(sc.game.PlayersInfo()), nil
}

// play plays the move typed by the human on turn, then lets computer
// players reply.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game.Over() {
		return nil, fmt.Errorf("%w: %s; type `new` to start over", game.ErrGameOver, sc.game.Summary())
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("please provide a move")
	}
	onturn := sc.game.OnTurn()
	if sc.game.Player(onturn).Kind() == game.KindComputer {
		return nil, fmt.Errorf("%v is a computer player; type `ai` to let it move", sc.game.Player(onturn).Name())
	}
	m := sc.game.Variant().ParseMove(strings.Join(cmd.args, " "), onturn)
	if err := sc.game.Play(m); err != nil {
		return nil, err
	}
	if m.Failed() {
		return nil, errors.New(m.Message())
	}
	var sb strings.Builder
	sb.WriteString(sc.game.Describe(m))
	sb.WriteString("\n")
	if err := sc.computerReplies(context.Background(), &sb); err != nil {
		return nil, err
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

// computerReplies lets computer players move for as long as one is on
// turn.
func (sc *ShellController) computerReplies(ctx context.Context, sb *strings.Builder) error {
	for !sc.game.Over() && sc.game.Player(sc.game.OnTurn()).Kind() == game.KindComputer {
		pl := sc.game.Player(sc.game.OnTurn())
		m, err := sc.game.PlayTurn(ctx)
		if err != nil {
			return err
		}
		if m.Failed() {
			return fmt.Errorf("%v could not move: %s", pl.Name(), m.Message())
		}
		sb.WriteString(sc.game.Describe(m))
		sb.WriteString("\n")
		if sc.game.Player(move.PlayerOne).Kind() == game.KindComputer &&
			sc.game.Player(move.PlayerTwo).Kind() == game.KindComputer {
			// one move at a time when nobody is human
			break
		}
	}
	return nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game.Over() {
		return nil, fmt.Errorf("%w: %s", game.ErrGameOver, sc.game.Summary())
	}
	pl := sc.game.Player(sc.game.OnTurn())
	if pl.Kind() != game.KindComputer {
		return nil, fmt.Errorf("%v is not a computer player; try `hint`", pl.Name())
	}
	var sb strings.Builder
	if err := sc.computerReplies(context.Background(), &sb); err != nil {
		return nil, err
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.game.Over() {
		return nil, fmt.Errorf("%w: %s", game.ErrGameOver, sc.game.Summary())
	}
	d := negamax.MediumDifficulty
	if c, ok := sc.game.Player(sc.game.OnTurn()).(*game.ComputerPlayer); ok {
		d = c.Difficulty()
	}
	if name := cmd.options.String("difficulty"); name != "" {
		var ok bool
		if d, ok = negamax.DifficultyFromName(name); !ok {
			return nil, fmt.Errorf("unknown difficulty %v", name)
		}
	}
	s := negamax.NewSolver(sc.game.Variant(), d)
	if sc.trace {
		s.SetLogStream(sc.out)
	}
	m := s.SelectMove(context.Background(), sc.game.Board(), sc.game.OnTurn())
	if m.Failed() {
		return nil, errors.New(m.Message())
	}
	descs := make([]string, 0, len(s.BestMoves()))
	for _, bm := range s.BestMoves() {
		descs = append(descs, bm.ShortDescription())
	}
	return msg(fmt.Sprintf("Best moves at %s depth (value %d, %d nodes): %s\nSuggested: %s\n%s",
		d.Name, s.LastScore(), s.Nodes(), strings.Join(descs, ", "), m.ShortDescription(),
		s.PrincipalVariation().String())), nil
}

// start plays the game to its end, asking humans for their moves at the
// prompt. Ctrl-C stops the game where it is.
func (sc *ShellController) start(cmd *shellcmd) (*Response, error) {
	if sc.game.Over() {
		sc.game.Reset()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sc.input.cancel = cancel
	defer func() { sc.input.cancel = nil }()

	sc.showMessage(sc.game.ToDisplayText())
	err := sc.game.PlayToEnd(ctx,
		func(m *move.Move) {
			sc.showMessage(sc.game.Describe(m))
			sc.showMessage(sc.game.ToDisplayText())
			if !sc.game.Over() {
				sc.showMessage(sc.game.Summary())
			}
		},
		func(m *move.Move) {
			if ctx.Err() == nil {
				sc.showMessage(m.Message())
			}
		})
	if errors.Is(err, context.Canceled) {
		return msg("Game stopped; type `start` to carry on"), nil
	}
	if err != nil {
		return nil, err
	}
	return msg(sc.game.Summary()), nil
}

func (sc *ShellController) debug(cmd *shellcmd) (*Response, error) {
	sc.trace = !sc.trace
	for _, p := range []move.Player{move.PlayerOne, move.PlayerTwo} {
		if c, ok := sc.game.Player(p).(*game.ComputerPlayer); ok {
			if sc.trace {
				c.SetLogStream(sc.out)
			} else {
				c.SetLogStream(nil)
			}
		}
	}
	return msg(fmt.Sprintf("Search trace: %v", sc.trace)), nil
}

func contestant(name, difficulty string) (automatic.Contestant, error) {
	d, ok := negamax.DifficultyFromName(difficulty)
	if !ok {
		return automatic.Contestant{}, fmt.Errorf("unknown difficulty %v", difficulty)
	}
	if name == "" {
		name = d.Name
	}
	return automatic.Contestant{Name: name, Difficulty: d}, nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		sc.autoplayMu.Lock()
		cancel := sc.autoplayCancel
		sc.autoplayMu.Unlock()
		if cancel == nil {
			return nil, errors.New("no autoplay is running")
		}
		cancel()
		return msg("Stopping autoplay..."), nil
	}

	games, err := cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	maxMoves, err := cmd.options.IntDefault("maxmoves", sc.config.GetInt(config.ConfigAutoplayMaxMoves))
	if err != nil {
		return nil, err
	}
	d1, d2 := cmd.options.String("difficulty1"), cmd.options.String("difficulty2")
	if d1 == "" {
		d1 = sc.config.GetString(config.ConfigDifficulty1)
	}
	if d2 == "" {
		d2 = sc.config.GetString(config.ConfigDifficulty2)
	}
	c1, err := contestant(cmd.options.String("name1"), d1)
	if err != nil {
		return nil, err
	}
	c2, err := contestant(cmd.options.String("name2"), d2)
	if err != nil {
		return nil, err
	}
	if c1.Name == c2.Name {
		c1.Name += "-1"
		c2.Name += "-2"
	}
	opts := automatic.Options{
		Variant:    sc.game.Variant(),
		Player1:    c1,
		Player2:    c2,
		Games:      games,
		Threads:    threads,
		MaxMoves:   maxMoves,
		OutputFile: cmd.options.String("out"),
		LogFile:    cmd.options.String("log"),
	}

	sc.autoplayMu.Lock()
	if sc.autoplayCancel != nil {
		sc.autoplayMu.Unlock()
		return nil, automatic.ErrAlreadyPlaying
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoplayCancel, sc.autoplayDone = cancel, done
	sc.autoplayMu.Unlock()

	var summary *automatic.Summary
	var runErr error
	go func() {
		defer close(done)
		defer func() {
			sc.autoplayMu.Lock()
			sc.autoplayCancel, sc.autoplayDone = nil, nil
			sc.autoplayMu.Unlock()
			cancel()
		}()
		summary, runErr = sc.runner.Run(ctx, opts)
		if sc.waitAutoplay {
			return
		}
		if runErr != nil {
			sc.showError(runErr)
			return
		}
		sc.showMessage(summary.String())
	}()

	if !sc.waitAutoplay {
		log.Info().Int("games", games).Int("threads", threads).Msg("autoplay-started")
		return msg(fmt.Sprintf("Playing %d games in the background; type `autoplay stop` to stop", games)), nil
	}
	<-done
	if runErr != nil {
		return nil, runErr
	}
	return msg(summary.String()), nil
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("please provide the log file to analyze")
	}
	analysis, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(analysis), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("please provide a filename to save to")
	}
	out, err := sc.game.MarshalRecord()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cmd.args[0], out, 0o644); err != nil {
		return nil, err
	}
	return msg("exported to " + cmd.args[0]), nil
}
