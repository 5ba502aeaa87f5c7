package minimax

import (
	"fmt"
	"strings"
)

// Size is the length of a board side.
const Size = 3

type Cell uint8

const (
	Empty Cell = iota
	Max
	Min
)

// Opponent returns the other player. Empty has no opponent and is returned as is.
func (c Cell) Opponent() Cell {
	switch c {
	case Max:
		return Min
	case Min:
		return Max
	default:
		return c
	}
}

func (c Cell) valid() bool {
	return c <= Min
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case Max:
		return "X"
	case Min:
		return "O"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Board is an immutable-by-value snapshot of the grid. Passing a Board copies it,
// so a child position never aliases its parent.
type Board [Size][Size]Cell

// Move is a 0-indexed (row, column) coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Index returns the row-major cell index of the move.
func (m Move) Index() int {
	return m.Row*Size + m.Col
}

// MoveAt is the inverse of Move.Index.
func MoveAt(index int) Move {
	return Move{Row: index / Size, Col: index % Size}
}

func (m Move) inBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// LegalMoves lists the empty cells in row-major order. The order decides which of
// several equally good moves BestMove picks.
func (b Board) LegalMoves() []Move {
	moves := make([]Move, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if b[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Apply returns a copy of the board with player placed at move. The receiver is
// never modified.
func (b Board) Apply(move Move, player Cell) (Board, error) {
	if !move.inBounds() {
		return b, fmt.Errorf("%w: %s", ErrOutOfBounds, move)
	}

	if player != Max && player != Min {
		return b, fmt.Errorf("%w: got %s", ErrInvalidPlayer, player)
	}

	if occupant := b[move.Row][move.Col]; occupant != Empty {
		return b, fmt.Errorf("%w: %s holds %s", ErrCellOccupied, move, occupant)
	}

	b[move.Row][move.Col] = player

	return b, nil
}

// Occupied counts non-empty cells.
func (b Board) Occupied() int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell != Empty {
				n++
			}
		}
	}

	return n
}

// String renders the board as three rows separated by '/', e.g. "XX./OO./...".
func (b Board) String() string {
	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := range Size {
			sb.WriteString(b[row][col].String())
		}
	}

	return sb.String()
}

// ParseBoard reads nine cells in row-major order. 'X' is Max, 'O' is Min and
// '.', '-' or '_' mark an empty cell. Row separators '/', '|' and whitespace are
// ignored.
func ParseBoard(s string) (Board, error) {
	var (
		board Board
		n     int
	)

	for _, r := range s {
		var cell Cell

		switch r {
		case '/', '|', ' ', '\t', '\n', '\r':
			continue
		case 'X', 'x':
			cell = Max
		case 'O', 'o':
			cell = Min
		case '.', '-', '_':
			cell = Empty
		default:
			return Board{}, fmt.Errorf("%w: %q", ErrUnknownCell, r)
		}

		if n >= Size*Size {
			return Board{}, fmt.Errorf("%w: got more than %d", ErrBoardSize, Size*Size)
		}

		board[n/Size][n%Size] = cell
		n++
	}

	if n != Size*Size {
		return Board{}, fmt.Errorf("%w: got %d", ErrBoardSize, n)
	}

	return board, nil
}

// FromCells builds a board from a row-major slice of exactly nine cells.
func FromCells(cells []Cell) (Board, error) {
	if len(cells) != Size*Size {
		return Board{}, fmt.Errorf("%w: got %d", ErrBoardSize, len(cells))
	}

	var board Board
	for i, cell := range cells {
		if !cell.valid() {
			return Board{}, fmt.Errorf("%w: %s at index %d", ErrUnknownCell, cell, i)
		}
		board[i/Size][i%Size] = cell
	}

	return board, nil
}
