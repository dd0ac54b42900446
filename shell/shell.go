package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connectfour/automatic"
	"github.com/domino14/connectfour/config"
	"github.com/domino14/connectfour/game"
	"github.com/domino14/connectfour/move"
	"github.com/domino14/connectfour/negamax"
	"github.com/domino14/connectfour/variant"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config     *config.Config
	execPath   string
	gitVersion string

	game  *game.Game
	trace bool
	// input feeds human players during `start`.
	input *lineInput

	runner         *automatic.Runner
	autoplayMu     sync.Mutex
	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
	// waitAutoplay makes autoplay block, for non-interactive use.
	waitAutoplay bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

const prompt = "\033[31mconnectfour>\033[0m "

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, os.Stderr)
	sc.execPath = execPath
	sc.gitVersion = gitVersion

	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     "/tmp/connectfour_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	sc.input.rl = l
	return sc
}

// newController sets up everything but the terminal, writing to out.
func newController(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{
		out:    out,
		config: cfg,
		runner: automatic.NewRunner(),
		trace:  cfg.GetBool(config.ConfigSearchTrace),
	}
	sc.input = &lineInput{}

	v, err := variant.Get(cfg.GetString(config.ConfigVariant))
	if err != nil {
		log.Err(err).Str("variant", cfg.GetString(config.ConfigVariant)).Msg("using classic rules")
		v = variant.NewClassic()
	}
	p1 := sc.newPlayer(cfg.GetString(config.ConfigPlayer1), cfg.GetString(config.ConfigPlayer1Name),
		cfg.GetString(config.ConfigDifficulty1))
	p2 := sc.newPlayer(cfg.GetString(config.ConfigPlayer2), cfg.GetString(config.ConfigPlayer2Name),
		cfg.GetString(config.ConfigDifficulty2))
	sc.game = game.NewGame(v, p1, p2)
	return sc
}

// newPlayer builds a player from its settings; anything that is not a
// computer is a human.
func (sc *ShellController) newPlayer(kind, name, difficulty string) game.Player {
	if strings.EqualFold(kind, game.KindComputer) || strings.EqualFold(kind, "computer") {
		d, ok := negamax.DifficultyFromName(difficulty)
		if !ok {
			log.Warn().Str("difficulty", difficulty).Msg("unknown difficulty, using medium")
		}
		c := game.NewComputerPlayer(name, d)
		if sc.trace {
			c.SetLogStream(sc.out)
		}
		return c
	}
	return game.NewHumanPlayer(name, sc.input)
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && !isNumber(fields[idx]) {
			// option
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{
		cmd:     cmd,
		args:    args,
		options: options,
	}, nil
}

// looksLikeMove tells whether a line without a command is a move, such as
// "4" or "pop 3".
func looksLikeMove(cmd *shellcmd) bool {
	if isNumber(cmd.cmd) {
		return true
	}
	return (cmd.cmd == move.MoveTypePush.String() || cmd.cmd == move.MoveTypePop.String()) &&
		len(cmd.args) == 1
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		if cmd.args == nil {
			return usage("standard")
		}
		return usageTopic(cmd.args[0])
	case "new":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "variant":
		return sc.setVariant(cmd)
	case "player":
		return sc.setPlayer(cmd)
	case "play":
		return sc.play(cmd)
	case "ai":
		return sc.aiplay(cmd)
	case "hint":
		return sc.hint(cmd)
	case "start":
		return sc.start(cmd)
	case "debug":
		return sc.debug(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "autoanalyze":
		return sc.autoAnalyze(cmd)
	case "export":
		return sc.export(cmd)
	case "info":
		return sc.info(cmd)
	default:
		if looksLikeMove(cmd) {
			return sc.play(&shellcmd{cmd: "play", args: strings.Fields(line)})
		}
		log.Info().Msgf("command %v not found", cmd.cmd)
		return nil, fmt.Errorf("command %v not found; type `help` for a list", cmd.cmd)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.showMessage(sc.game.ToDisplayText())

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command line, waiting for anything it starts.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.waitAutoplay = true
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil && !errors.Is(err, errQuit) {
		sc.showError(err)
		return
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
}

// Cleanup stops a running autoplay and waits for it.
func (sc *ShellController) Cleanup() {
	sc.autoplayMu.Lock()
	cancel, done := sc.autoplayCancel, sc.autoplayDone
	sc.autoplayMu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
	log.Debug().Msg("shell cleaned up")
}

// lineInput feeds human players from the terminal. A failed read stops
// the game in progress.
type lineInput struct {
	rl     *readline.Instance
	cancel context.CancelFunc
}

func (li *lineInput) Readline() (string, error) {
	if li.rl == nil {
		return "", io.EOF
	}
	line, err := li.rl.Readline()
	if err != nil && li.cancel != nil {
		li.cancel()
	}
	return line, err
}
