package minimax

import "fmt"

type Score int

const (
	MinWins Score = -1
	Draw    Score = 0
	MaxWins Score = 1
)

// Search bounds. Any real score lies strictly between them.
const (
	NegInf Score = -1 << 31
	PosInf Score = 1<<31 - 1
)

// winLines holds the 8 lines as row-major indexes: rows, columns, diagonals.
var winLines = [8][Size]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (b Board) at(index int) Cell {
	return b[index/Size][index%Size]
}

// lineOwners reports which players fully occupy at least one line.
func (b Board) lineOwners() (maxLine, minLine bool) {
	for _, line := range winLines {
		a := b.at(line[0])
		if a == Empty || a != b.at(line[1]) || a != b.at(line[2]) {
			continue
		}

		switch a {
		case Max:
			maxLine = true
		case Min:
			minLine = true
		}
	}

	return maxLine, minLine
}

func (b Board) full() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// Terminal reports whether a player holds a line or no empty cell is left.
func (b Board) Terminal() bool {
	maxLine, minLine := b.lineOwners()

	return maxLine || minLine || b.full()
}

// Evaluate returns the score of a terminal board. The boolean is false, and the
// score meaningless, when the game is still going.
//
// Evaluate panics if both players hold a line; such a board is unreachable and
// Validate rejects it.
func (b Board) Evaluate() (Score, bool) {
	maxLine, minLine := b.lineOwners()

	switch {
	case maxLine && minLine:
		panic(fmt.Errorf("evaluate %s: %w", b, ErrDoubleWin))
	case maxLine:
		return MaxWins, true
	case minLine:
		return MinWins, true
	case b.full():
		return Draw, true
	default:
		return 0, false
	}
}

// Validate checks that every cell holds a known value and that at most one
// player has a winning line.
func Validate(b Board) error {
	for row := range Size {
		for col := range Size {
			if !b[row][col].valid() {
				return fmt.Errorf("%w: %s at (%d,%d)", ErrUnknownCell, b[row][col], row, col)
			}
		}
	}

	if maxLine, minLine := b.lineOwners(); maxLine && minLine {
		return fmt.Errorf("%w: %s", ErrDoubleWin, b)
	}

	return nil
}
