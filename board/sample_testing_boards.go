package board

// This file contains some sample filled boards, used solely for testing.
// All of them are for the standard 6x7 grid, top row first.

// VsWho is a string representation of a board.
type VsWho string

const (
	// VsFullDraw is a full board where nobody has four in a row.
	VsFullDraw VsWho = `
OOXXOOX
XXOOXXO
OOXXOOX
XXOOXXO
OOXXOOX
XXOOXXO
`
	// VsBottomThree has three X on the bottom row and three O on top of
	// them. X wins by pushing column 4; O must block there.
	VsBottomThree VsWho = `
.......
.......
.......
.......
OOO....
XXX....
`
	// VsPopColumn has an X at the bottom of column 1 and an O above it.
	VsPopColumn VsWho = `
.......
.......
.......
.......
O......
X......
`
	// VsPopWin is a PopOut position where X wins by popping column 1:
	// the column collapses and its top X lands next to the three X of
	// the second row.
	VsPopWin VsWho = `
.......
.......
.......
X......
OXXX...
XOXO...
`
	// VsAlmostFull has every column full except the last, which has one
	// free space.
	VsAlmostFull VsWho = `
OOXXOO.
XXOOXXO
OOXXOOX
XXOOXXO
OOXXOOX
XXOOXXO
`
)

// SetToGame sets the board to one of the sample positions. It panics on a
// malformed position, as these are only used in tests.
func (b *Board) SetToGame(game VsWho) {
	if err := b.SetFromPlaintext(string(game)); err != nil {
		panic(err)
	}
}
