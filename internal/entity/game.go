package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// Game is the authoritative state of one session between a human and the bot.
type Game struct {
	ID        string    `json:"id"`
	Board     [9]string `json:"board"`
	Winner    string    `json:"winner"`
	Status    string    `json:"status"`
	Turn      string    `json:"player_turn"`
	HumanMark string    `json:"human_mark"`
	BotMark   string    `json:"bot_mark"`
}

func NewGame(id, humanMark string) (*Game, error) {
	if humanMark != PlayerX && humanMark != PlayerO {
		return nil, fmt.Errorf("%w: got %q", apperror.ErrInvalidMark, humanMark)
	}

	return &Game{
		ID:        id,
		Turn:      PlayerX,
		Status:    StatusOngoing,
		HumanMark: humanMark,
		BotMark:   ToggleMark(humanMark),
	}, nil
}

// MarkToCell maps X to the maximizing player and O to the minimizing one.
func MarkToCell(mark string) (minimax.Cell, error) {
	switch mark {
	case PlayerX:
		return minimax.Max, nil
	case PlayerO:
		return minimax.Min, nil
	case EmptyCell:
		return minimax.Empty, nil
	default:
		return minimax.Empty, fmt.Errorf("%w: got %q", apperror.ErrInvalidMark, mark)
	}
}

func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// SearchBoard converts the stored board into a search snapshot.
func (that *Game) SearchBoard() (minimax.Board, error) {
	cells := make([]minimax.Cell, len(that.Board))
	for i, mark := range that.Board {
		cell, err := MarkToCell(mark)
		if err != nil {
			return minimax.Board{}, fmt.Errorf("cell %d: %w", i, err)
		}
		cells[i] = cell
	}

	board, err := minimax.FromCells(cells)
	if err != nil {
		return minimax.Board{}, fmt.Errorf("failed to build board: %w", err)
	}

	return board, nil
}

// DetermineGameResult returns the winning mark, PlayerTie, or "" while the game goes on.
func (that *Game) DetermineGameResult() (string, error) {
	board, err := that.SearchBoard()
	if err != nil {
		return "", err
	}

	if err = minimax.Validate(board); err != nil {
		return "", fmt.Errorf("failed to classify board: %w", err)
	}

	score, ok := board.Evaluate()
	if !ok {
		return "", nil
	}

	switch score {
	case minimax.MaxWins:
		return PlayerX, nil
	case minimax.MinWins:
		return PlayerO, nil
	default:
		return PlayerTie, nil
	}
}

func (that *Game) UpdateGameState() error {
	winner, err := that.DetermineGameResult()
	if err != nil {
		return err
	}

	switch winner {
	// one player wins or tie
	case PlayerX, PlayerO, PlayerTie:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		that.Status = StatusOngoing
	}

	return nil
}

func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = playerMark
	that.Turn = ToggleMark(playerMark)

	if err := that.UpdateGameState(); err != nil {
		that.Board[cell] = EmptyCell
		that.Turn = playerMark

		return fmt.Errorf("failed to update game state: %w", err)
	}

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsHumanTurn() bool {
	return that.IsOngoing() && that.Turn == that.HumanMark
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}
