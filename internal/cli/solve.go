package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <board>",
		Short: "Print the best move for a position",
		Long: `Reads a board of nine cells in row-major order ('X', 'O', '.'; '/' separates rows)
and prints the best move for the player to move with its game-theoretic value.`,
		Example: `  tictactoe solve "XX./OO./..." --player X`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, _ := cmd.Flags().GetString("player")

			board, err := minimax.ParseBoard(args[0])
			if err != nil {
				return err
			}

			bot := service.NewBotService(flagLogger(cmd), nil)

			analysis, err := bot.Analyze(board, player)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderBoard(out, board, analysis.Move))
			fmt.Fprintf(out, "best move for %s: %s (cell %d)\n", player, analysis.Move, analysis.Cell)
			fmt.Fprintf(out, "value: %s, %d nodes, %d cut-offs\n", describeScore(analysis.Score), analysis.Stats.Nodes, analysis.Stats.Cutoffs)

			return nil
		},
	}

	cmd.Flags().StringP("player", "p", "X", "Player to move, X or O")

	return cmd
}

func describeScore(score minimax.Score) string {
	switch score {
	case minimax.MaxWins:
		return "X wins"
	case minimax.MinWins:
		return "O wins"
	default:
		return "draw"
	}
}
