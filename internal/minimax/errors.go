package minimax

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidBoard = errors.New("invalid board")
	ErrNoMoves      = errors.New("no moves available on a terminal board")

	ErrCellOccupied  = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrOutOfBounds   = fmt.Errorf("%w: coordinates out of range", ErrInvalidMove)
	ErrInvalidPlayer = fmt.Errorf("%w: player must be Max or Min", ErrInvalidMove)

	ErrBoardSize   = fmt.Errorf("%w: board must have exactly %d cells", ErrInvalidBoard, Size*Size)
	ErrUnknownCell = fmt.Errorf("%w: unknown cell value", ErrInvalidBoard)
	ErrDoubleWin   = fmt.Errorf("%w: both players hold a winning line", ErrInvalidBoard)
)
