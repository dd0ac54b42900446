package negamax

import "strings"

// Difficulty bounds how deep the solver searches.
type Difficulty struct {
	Name     string
	MaxDepth int
}

var (
	EasyDifficulty   = Difficulty{Name: "Easy", MaxDepth: 2}
	MediumDifficulty = Difficulty{Name: "Medium", MaxDepth: 5}
	HardDifficulty   = Difficulty{Name: "Hard", MaxDepth: 8}
	ProDifficulty    = Difficulty{Name: "Pro", MaxDepth: 11}
)

// Difficulties lists the built-in difficulties, easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{EasyDifficulty, MediumDifficulty, HardDifficulty, ProDifficulty}
}

// DifficultyFromName looks up a difficulty by name, case-insensitively.
// An unknown name gets the medium difficulty and ok set to false.
func DifficultyFromName(name string) (d Difficulty, ok bool) {
	for _, d := range Difficulties() {
		if strings.EqualFold(strings.TrimSpace(name), d.Name) {
			return d, true
		}
	}
	return MediumDifficulty, false
}

func (d Difficulty) String() string {
	return d.Name
}
