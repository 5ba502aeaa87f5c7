package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

var noHighlight = minimax.Move{Row: -1, Col: -1}

// renderBoard draws the grid with cell numbers on empty squares. highlight marks
// one square, usually the last or suggested move.
func renderBoard(w io.Writer, board minimax.Board, highlight minimax.Move) string {
	out := termenv.NewOutput(w)

	var sb strings.Builder
	for row := range minimax.Size {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := range minimax.Size {
			if col > 0 {
				sb.WriteString("|")
			}

			move := minimax.Move{Row: row, Col: col}
			sb.WriteString(" " + renderCell(out, board[row][col], move, move == highlight) + " ")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func renderCell(out *termenv.Output, cell minimax.Cell, move minimax.Move, highlight bool) string {
	var style termenv.Style

	switch cell {
	case minimax.Max:
		style = out.String(cell.String()).Foreground(out.Color("#f472b6")).Bold()
	case minimax.Min:
		style = out.String(cell.String()).Foreground(out.Color("#818cf8")).Bold()
	default:
		style = out.String(strconv.Itoa(move.Index())).Faint()
	}

	if highlight {
		style = style.Underline()
	}

	return style.String()
}
