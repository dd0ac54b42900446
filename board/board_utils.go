package board

import (
	"fmt"
	"strings"
)

// DisplayRune is the character used for s in text renderings of a board.
func (s SpaceState) DisplayRune() rune {
	switch s {
	case Player1:
		return 'X'
	case Player2:
		return 'O'
	}
	return ' '
}

func spaceFromRune(r rune) (SpaceState, bool) {
	switch r {
	case 'X', 'x':
		return Player1, true
	case 'O', 'o':
		return Player2, true
	case '.', ' ', '_':
		return Empty, true
	}
	return Empty, false
}

// ToDisplayText renders the board, top row first, with a 1-based column
// header.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for col := 0; col < b.tuning.Width; col++ {
		fmt.Fprintf(&sb, "| %d |", col+1)
	}
	sb.WriteString("\n")
	for row := b.tuning.Height - 1; row >= 0; row-- {
		for col := 0; col < b.tuning.Width; col++ {
			fmt.Fprintf(&sb, "| %c |", b.CellAt(row, col).DisplayRune())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SetFromPlaintext sets the board from rows of text, top row first. Each
// non-blank line holds one character per column: X, O, or '.' for empty.
// The move count is set to the number of tokens. Floating tokens are an
// error.
func (b *Board) SetFromPlaintext(text string) error {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != b.tuning.Height {
		return fmt.Errorf("got %d rows, want %d", len(rows), b.tuning.Height)
	}
	squares := make([]SpaceState, len(b.squares))
	heights := make([]int, len(b.heights))
	count := 0
	for i, line := range rows {
		row := b.tuning.Height - 1 - i
		runes := []rune(line)
		if len(runes) != b.tuning.Width {
			return fmt.Errorf("row %q has %d columns, want %d", line, len(runes), b.tuning.Width)
		}
		for col, r := range runes {
			s, ok := spaceFromRune(r)
			if !ok {
				return fmt.Errorf("unrecognized space %q", r)
			}
			squares[row*b.tuning.Width+col] = s
		}
	}
	for col := 0; col < b.tuning.Width; col++ {
		for row := 0; row < b.tuning.Height; row++ {
			s := squares[row*b.tuning.Width+col]
			if s == Empty {
				continue
			}
			if heights[col] != row {
				return fmt.Errorf("floating token in column %d, row %d", col+1, row+1)
			}
			heights[col]++
			count++
		}
	}
	b.squares = squares
	b.heights = heights
	b.moveCount = count
	return nil
}
