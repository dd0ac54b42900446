package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/connectfour/negamax"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games", "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

// commandMetadata maps command names to their options and arguments
var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{
			"-games", "-threads", "-maxmoves", "-difficulty1", "-difficulty2",
			"-name1", "-name2", "-out", "-log",
		},
		Args: []string{"stop"},
	},
	"player": {
		Options: []string{"-name", "-difficulty"},
		Args:    []string{"1", "2", "human", "ai"},
	},
	"hint": {
		Options: []string{"-difficulty"},
	},
	"variant": {
		Args: []string{"classic", "popout"},
	},
	"help": {
		Args: []string{"autoplay", "player", "variant", "hint"},
	},
}

var commandNames = []string{
	"help", "new", "show", "variant", "player", "play", "ai", "hint",
	"start", "debug", "autoplay", "autoanalyze", "export", "info", "exit",
}

func difficultyNames() []string {
	return lo.Map(negamax.Difficulties(), func(d negamax.Difficulty, _ int) string {
		return strings.ToLower(d.Name)
	})
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	// Parse the line using shellquote to handle quoted strings properly
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "difficulty", "difficulty1", "difficulty2":
				completions = difficultyNames()
			}
		}
		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
