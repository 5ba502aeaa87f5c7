package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

var (
	errQuit = errors.New("quit")
	errHint = errors.New("hint")
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the bot in the terminal",
		Long: `Starts a local game against the minimax bot. Enter a cell number (0-8) or
"row col", "hint" for a suggestion, or "quit".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mark, _ := cmd.Flags().GetString("mark")

			game, err := entity.NewGame("local", strings.ToUpper(mark))
			if err != nil {
				return err
			}

			bot := service.NewBotService(flagLogger(cmd), nil)

			return playGame(cmd.InOrStdin(), cmd.OutOrStdout(), game, bot)
		},
	}

	cmd.Flags().StringP("mark", "m", entity.PlayerX, "Your mark, X or O (X moves first)")

	return cmd
}

// playGame runs the terminal loop until the game ends, input runs out or the human quits.
func playGame(in io.Reader, out io.Writer, game *entity.Game, bot service.BotService) error {
	scanner := bufio.NewScanner(in)
	last := noHighlight

	for !game.IsFinished() {
		if game.IsBotTurn() {
			analysis, err := bot.MakeTurn(game)
			if err != nil {
				return err
			}

			last = analysis.Move
			fmt.Fprintf(out, "bot plays %s\n", analysis.Move)

			continue
		}

		board, err := game.SearchBoard()
		if err != nil {
			return err
		}

		fmt.Fprint(out, renderBoard(out, board, last))
		fmt.Fprintf(out, "your move (%s): ", game.HumanMark)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cell, err := readCell(scanner.Text())
		switch {
		case errors.Is(err, errQuit):
			fmt.Fprintln(out, "bye")
			return nil
		case errors.Is(err, errHint):
			analysis, err := bot.Suggest(game)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "hint: %s (cell %d), value %s\n", analysis.Move, analysis.Cell, describeScore(analysis.Score))
			continue
		case err != nil:
			fmt.Fprintln(out, err)
			continue
		}

		if err = game.MakeTurn(game.HumanMark, cell); err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		last = minimax.MoveAt(cell)
	}

	board, err := game.SearchBoard()
	if err != nil {
		return err
	}

	fmt.Fprint(out, renderBoard(out, board, last))

	switch game.Winner {
	case entity.PlayerTie:
		fmt.Fprintln(out, "game over: it's a draw!")
	case game.HumanMark:
		fmt.Fprintln(out, "game over: you win!")
	default:
		fmt.Fprintf(out, "game over: %s wins!\n", game.Winner)
	}

	return nil
}

// readCell accepts "4" or "1 1" and the words quit/exit and hint.
func readCell(line string) (int, error) {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 0:
		return 0, errors.New("enter a cell number 0-8 or \"row col\"")
	case fields[0] == "quit" || fields[0] == "exit":
		return 0, errQuit
	case fields[0] == "hint":
		return 0, errHint
	}

	nums := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", field)
		}
		nums[i] = n
	}

	switch len(nums) {
	case 1:
		return nums[0], nil
	case 2:
		if nums[0] < 0 || nums[0] >= minimax.Size || nums[1] < 0 || nums[1] >= minimax.Size {
			return 0, fmt.Errorf("%w: (%d,%d)", minimax.ErrOutOfBounds, nums[0], nums[1])
		}
		return minimax.Move{Row: nums[0], Col: nums[1]}.Index(), nil
	default:
		return 0, fmt.Errorf("expected one or two numbers, got %d", len(nums))
	}
}
