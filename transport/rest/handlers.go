package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

type gameUseCase interface {
	StartGame(ctx context.Context, humanMark string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (*service.Analysis, error)
	Analyze(board minimax.Board, mark string) (*service.Analysis, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type startRequest struct {
	Mark string `json:"mark"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type analyzeRequest struct {
	Board  string `json:"board"`
	Player string `json:"player"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger      *slog.Logger
	games       gameUseCase
	defaultMark string
}

// NewRouter wires the game API. metrics may be nil.
func NewRouter(logger *slog.Logger, games gameUseCase, defaultMark string, metrics http.Handler) http.Handler {
	that := &handlers{
		logger:      logger.With("component", "rest"),
		games:       games,
		defaultMark: defaultMark,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(that.logRequests)

	router.Get("/ping", pingHandler)
	if metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics)
	}

	router.Post("/analyze", that.analyze)
	router.Route("/games", func(r chi.Router) {
		r.Post("/", that.startGame)
		r.Get("/{id}", that.getGame)
		r.Delete("/{id}", that.deleteGame)
		r.Post("/{id}/turn", that.makeTurn)
		r.Get("/{id}/hint", that.hint)
	})

	return router
}

func (that *handlers) startGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			that.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if req.Mark == "" {
		req.Mark = that.defaultMark
	}

	game, err := that.games.StartGame(r.Context(), req.Mark)
	if err != nil {
		that.writeUseCaseError(w, "StartGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeUseCaseError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeUseCaseError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeUseCaseError(w, "MakeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) hint(w http.ResponseWriter, r *http.Request) {
	analysis, err := that.games.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeUseCaseError(w, "Hint", err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func (that *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	board, err := minimax.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := that.games.Analyze(board, req.Player)
	if err != nil {
		that.writeUseCaseError(w, "Analyze", err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, minimax.ErrNoMoves):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, minimax.ErrInvalidBoard),
		errors.Is(err, minimax.ErrInvalidMove):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeUseCaseError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeError(w, status, "Internal Server Error")
		return
	}

	that.writeError(w, status, err.Error())
}

func (that *handlers) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
