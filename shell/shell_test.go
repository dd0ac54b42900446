package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/connectfour/config"
	"github.com/domino14/connectfour/game"
	"github.com/domino14/connectfour/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -out /path/to/summary.yaml",
			&shellcmd{"autoplay", nil, CmdOptions{"out": {"/path/to/summary.yaml"}}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"player 2 ai -name 'Deep Blue' -difficulty hard ",
			&shellcmd{"player",
				[]string{"2", "ai"},
				CmdOptions{"name": {"Deep Blue"}, "difficulty": {"hard"}}},
			nil,
		},
		{"play -3",
			&shellcmd{"play", []string{"-3"}, CmdOptions{}},
			nil},
		{"autoplay -games 10 -out",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController(t *testing.T, args ...string) (*ShellController, *bytes.Buffer) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Load(args))
	var out bytes.Buffer
	return newController(cfg, &out), &out
}

func run(t *testing.T, sc *ShellController, line string) string {
	sig := make(chan os.Signal, 1)
	resp, err := sc.standardModeSwitch(line, sig)
	require.NoError(t, err, line)
	if resp == nil {
		return ""
	}
	return resp.message
}

func TestControllerFromConfig(t *testing.T) {
	sc, _ := newTestController(t, "--variant", "popout", "--player1", "ai",
		"--difficulty1", "hard", "--player2-name", "bob")
	assert.Equal(t, "Pop Out", sc.game.Variant().Name())
	p1, ok := sc.game.Player(move.PlayerOne).(*game.ComputerPlayer)
	require.True(t, ok)
	assert.Equal(t, "Hard", p1.Difficulty().Name)
	assert.Equal(t, "bob", sc.game.Player(move.PlayerTwo).Name())
	// the second seat is a computer unless told otherwise
	p2, ok := sc.game.Player(move.PlayerTwo).(*game.ComputerPlayer)
	require.True(t, ok)
	assert.Equal(t, game.KindComputer, p2.Kind())
	assert.Equal(t, "Medium", p2.Difficulty().Name)

	sc, _ = newTestController(t, "--player2", "human")
	assert.Equal(t, game.KindHuman, sc.game.Player(move.PlayerTwo).Kind())

	sc, _ = newTestController(t, "--variant", "connect6")
	assert.Equal(t, "Classic", sc.game.Variant().Name())
}

func TestPlayAgainstComputer(t *testing.T) {
	sc, _ := newTestController(t, "--difficulty2", "easy")
	out := run(t, sc, "play 4")
	assert.Contains(t, out, "Player1 pushed column 4")
	assert.Contains(t, out, "Player2 pushed column")
	assert.Equal(t, 2, len(sc.game.History()))
	assert.Equal(t, move.PlayerOne, sc.game.OnTurn())

	// bare move text
	run(t, sc, "3")
	assert.Equal(t, 4, len(sc.game.History()))

	sig := make(chan os.Signal, 1)
	_, err := sc.standardModeSwitch("play 9", sig)
	assert.EqualError(t, err, "Please select a column between 1 and 7")
	_, err = sc.standardModeSwitch("play four", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("ai", sig)
	assert.Error(t, err)
	assert.Equal(t, 4, len(sc.game.History()))
}

func TestHumanVsHuman(t *testing.T) {
	sc, _ := newTestController(t, "--player2", "human")
	for _, c := range []string{"1", "2", "1", "2", "1", "2"} {
		run(t, sc, c)
	}
	out := run(t, sc, "play 1")
	assert.Contains(t, out, "Player1 won the game in 7 total moves")

	sig := make(chan os.Signal, 1)
	_, err := sc.standardModeSwitch("play 3", sig)
	assert.ErrorIs(t, err, game.ErrGameOver)

	run(t, sc, "new")
	assert.Empty(t, sc.game.History())
}

func TestComputerVsComputerStepping(t *testing.T) {
	sc, _ := newTestController(t, "--player1", "ai", "--difficulty1", "easy", "--difficulty2", "easy")
	out := run(t, sc, "ai")
	assert.Contains(t, out, "Player1 pushed column")
	assert.Equal(t, 1, len(sc.game.History()))
	run(t, sc, "ai")
	assert.Equal(t, 2, len(sc.game.History()))
}

func TestSetPlayerAndVariant(t *testing.T) {
	sc, _ := newTestController(t)
	out := run(t, sc, "player 2 ai -name 'Deep Blue' -difficulty pro")
	assert.Contains(t, out, "Player2: Name: Deep Blue, Type: Ai, Difficulty: Pro")

	out = run(t, sc, "player 1 ai")
	assert.Contains(t, out, "Player1: Name: Player1, Type: Ai, Difficulty: Medium")

	sig := make(chan os.Signal, 1)
	_, err := sc.standardModeSwitch("player 3 ai", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("player 1 ai -difficulty impossible", sig)
	assert.Error(t, err)

	out = run(t, sc, "variant popout")
	assert.Contains(t, out, "Pop Out")
	assert.Equal(t, "Pop Out", sc.game.Variant().Name())
	_, err = sc.standardModeSwitch("variant connect6", sig)
	assert.Error(t, err)
}

func TestHint(t *testing.T) {
	sc, _ := newTestController(t, "--player2", "human")
	for _, c := range []string{"1", "7", "2", "7", "3"} {
		run(t, sc, c)
	}
	out := run(t, sc, "hint -difficulty easy")
	assert.Contains(t, out, "Best moves at Easy depth")
	assert.Contains(t, out, "Suggested: push 4")
	// hinting does not play
	assert.Equal(t, 5, len(sc.game.History()))
}

func TestDebugToggle(t *testing.T) {
	sc, out := newTestController(t, "--difficulty2", "easy")
	assert.Equal(t, "Search trace: true", run(t, sc, "debug"))
	run(t, sc, "play 4")
	assert.Contains(t, out.String(), "- solve: Player2")

	out.Reset()
	assert.Equal(t, "Search trace: false", run(t, sc, "debug"))
	run(t, sc, "play 4")
	assert.NotContains(t, out.String(), "- solve:")
}

func TestAutoplayAndExport(t *testing.T) {
	dir := t.TempDir()
	sc, _ := newTestController(t)
	sc.waitAutoplay = true
	summaryFile := filepath.Join(dir, "cvc.yaml")
	logFile := filepath.Join(dir, "cvc.csv")
	out := run(t, sc, "autoplay -games 2 -threads 2 -difficulty1 easy -difficulty2 easy -out "+
		summaryFile+" -log "+logFile)
	assert.Contains(t, out, "Games played: 2 of 2")
	assert.Contains(t, out, "Easy-1 (Easy) wins:")
	assert.FileExists(t, summaryFile)

	out = run(t, sc, "autoanalyze "+logFile)
	assert.Contains(t, out, "Games played: 2")

	sig := make(chan os.Signal, 1)
	_, err := sc.standardModeSwitch("autoplay stop", sig)
	assert.Error(t, err)

	run(t, sc, "play 4")
	exported := filepath.Join(dir, "game.yaml")
	run(t, sc, "export "+exported)
	dat, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(dat), "Player1 push 4")
}

func TestHelpAndUnknown(t *testing.T) {
	sc, _ := newTestController(t)
	assert.Contains(t, run(t, sc, "help"), "autoplay")
	assert.Contains(t, run(t, sc, "help player"), "Deep")
	assert.Contains(t, run(t, sc, "help nothing"), "There is no help text")
	assert.Contains(t, run(t, sc, "info"), "Current Game Mode Info")

	sig := make(chan os.Signal, 1)
	_, err := sc.standardModeSwitch("frobnicate", sig)
	assert.Error(t, err)

	_, err = sc.standardModeSwitch("exit", sig)
	assert.ErrorIs(t, err, errQuit)
	assert.Len(t, sig, 1)
}

func TestAutocomplete(t *testing.T) {
	sc, _ := newTestController(t)
	c := NewShellCompleter(sc)
	toStrings := func(rs [][]rune) []string {
		var out []string
		for _, r := range rs {
			out = append(out, string(r))
		}
		return out
	}
	line := []rune("auto")
	matches, n := c.Do(line, len(line))
	assert.Equal(t, 4, n)
	assert.ElementsMatch(t, []string{"play", "analyze"}, toStrings(matches))

	line = []rune("hint -difficulty p")
	matches, _ = c.Do(line, len(line))
	assert.Equal(t, []string{"ro"}, toStrings(matches))

	line = []rune("variant ")
	matches, _ = c.Do(line, len(line))
	assert.True(t, strings.HasPrefix(string(matches[0]), "classic"))
}
