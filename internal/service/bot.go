package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

// Analysis is the engine's verdict for the side to move.
type Analysis struct {
	Player   string        `json:"player"`
	Cell     int           `json:"cell"`
	Move     minimax.Move  `json:"move"`
	Score    minimax.Score `json:"score"`
	Stats    minimax.Stats `json:"stats"`
	Board    string        `json:"board"`
	Duration time.Duration `json:"duration_ns"`
}

type searchRecorder interface {
	ObserveSearch(mark string, stats minimax.Stats, elapsed time.Duration)
}

type BotService interface {
	MakeTurn(game *entity.Game) (*Analysis, error)
	Suggest(game *entity.Game) (*Analysis, error)
	Analyze(board minimax.Board, mark string) (*Analysis, error)
}

type botService struct {
	logger   *slog.Logger
	recorder searchRecorder
}

func NewBotService(logger *slog.Logger, recorder searchRecorder) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		recorder: recorder,
	}
}

// MakeTurn plays the best move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) (*Analysis, error) {
	if !game.IsBotTurn() {
		return nil, ErrNotBotTurn
	}

	analysis, err := that.Suggest(game)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(game.BotMark, analysis.Cell); err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return analysis, nil
}

// Suggest returns the best move for whoever is to move, without playing it.
func (that *botService) Suggest(game *entity.Game) (*Analysis, error) {
	board, err := game.SearchBoard()
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	analysis, err := that.Analyze(board, game.Turn)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", game.ID, err)
	}

	return analysis, nil
}

func (that *botService) Analyze(board minimax.Board, mark string) (*Analysis, error) {
	log := that.logger.With("method", "Analyze", "board", board.String(), "mark", mark)

	player, err := entity.MarkToCell(mark)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	move, score, stats, err := minimax.BestMoveWithStats(board, player)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	if that.recorder != nil {
		that.recorder.ObserveSearch(mark, stats, elapsed)
	}

	log.Debug("search finished", "move", move.String(), "score", int(score), "nodes", stats.Nodes, "cutoffs", stats.Cutoffs, "elapsed", elapsed)

	return &Analysis{
		Player:   mark,
		Cell:     move.Index(),
		Move:     move,
		Score:    score,
		Stats:    stats,
		Board:    board.String(),
		Duration: elapsed,
	}, nil
}
