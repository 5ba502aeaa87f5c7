package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (*service.Analysis, error)
	Suggest(game *entity.Game) (*service.Analysis, error)
	Analyze(board minimax.Board, mark string) (*service.Analysis, error)
}

type finishRecorder interface {
	ObserveFinished(winner string)
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	bot      botService
	recorder finishRecorder
	newID    func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot botService, recorder finishRecorder) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		bot:      bot,
		recorder: recorder,
		newID:    uuid.NewString,
	}
}

// StartGame creates a game for a human playing humanMark. The bot opens when it holds X.
func (that *GameManager) StartGame(ctx context.Context, humanMark string) (*entity.Game, error) {
	game, err := entity.NewGame(that.newID(), humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	if game.IsBotTurn() {
		if _, err = that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game started", "gameID", game.ID, "humanMark", game.HumanMark)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn applies the human move and, unless that ended the game, the bot's reply.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(game.HumanMark, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsBotTurn() {
		analysis, err := that.bot.MakeTurn(game)
		if err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}

		log.Debug("bot moved", "cell", analysis.Cell, "score", int(analysis.Score), "nodes", analysis.Stats.Nodes)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)

		if that.recorder != nil {
			that.recorder.ObserveFinished(game.Winner)
		}
	}

	return game, nil
}

// Hint returns the engine's best move for the human without playing it.
func (that *GameManager) Hint(ctx context.Context, gameID string) (*service.Analysis, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if !game.IsHumanTurn() {
		return nil, apperror.ErrNotYourTurn
	}

	analysis, err := that.bot.Suggest(game)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest move: %w", err)
	}

	return analysis, nil
}

// Analyze runs a stateless search on an arbitrary board.
func (that *GameManager) Analyze(board minimax.Board, mark string) (*service.Analysis, error) {
	analysis, err := that.bot.Analyze(board, mark)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze board: %w", err)
	}

	return analysis, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		if !errors.Is(err, apperror.ErrGameNotFound) {
			that.logger.Error("failed to delete game", "gameID", gameID, "error", err)
		}

		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
