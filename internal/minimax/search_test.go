package minimax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_EmptyBoardIsDraw(t *testing.T) {
	// Given: the empty board with Max to move
	var board Board

	// When: searching with a full window
	score, err := Search(board, NegInf, PosInf, true)

	// Then: perfect play ends in a draw
	require.NoError(t, err)
	assert.Equal(t, Draw, score)
}

func TestSearch_TerminalShortCircuit(t *testing.T) {
	for _, input := range []string{"XXX/OO./...", "XOX/XOO/OXX", "OOO/XX./X.."} {
		// Given: a board that is already over
		board := mustParse(t, input)
		expected, ok := board.Evaluate()
		require.True(t, ok)

		// When: searching it
		score, stats, err := SearchWithStats(board, NegInf, PosInf, true)

		// Then: its value is returned without exploring any child
		require.NoError(t, err)
		assert.Equal(t, expected, score)
		assert.Equal(t, 1, stats.Nodes)
		assert.Zero(t, stats.Cutoffs)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	board := mustParse(t, "X../.O./...")

	first, firstStats, err := SearchWithStats(board, NegInf, PosInf, true)
	require.NoError(t, err)

	second, secondStats, err := SearchWithStats(board, NegInf, PosInf, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
}

func TestSearch_Prunes(t *testing.T) {
	// Given: the empty board, whose unpruned tree has 549946 nodes
	var board Board

	// When: searching it with alpha-beta
	_, stats, err := SearchWithStats(board, NegInf, PosInf, true)

	// Then: branches were cut off and fewer nodes were visited
	require.NoError(t, err)
	assert.Positive(t, stats.Cutoffs)
	assert.Less(t, stats.Nodes, 549946)
}

func TestSearch_MatchesPlainMinimax(t *testing.T) {
	memo := make(map[Board]Score)

	for board := range reachableBoards() {
		maximizing := board.sideToMove() == Max

		score, err := Search(board, NegInf, PosInf, maximizing)
		require.NoError(t, err)
		require.Equal(t, plainMinimax(board, maximizing, memo), score, "board %s", board)
	}
}

func TestSearch_RejectsMalformedBoards(t *testing.T) {
	t.Run("Double win", func(t *testing.T) {
		_, err := Search(mustParse(t, "XXX/OOO/..."), NegInf, PosInf, true)

		assert.ErrorIs(t, err, ErrDoubleWin)
	})

	t.Run("Unknown cell", func(t *testing.T) {
		var board Board
		board[0][0] = Cell(3)

		_, err := Search(board, NegInf, PosInf, true)

		assert.ErrorIs(t, err, ErrUnknownCell)
	})
}

func TestBestMove(t *testing.T) {
	t.Run("Completes a winning row", func(t *testing.T) {
		// Given: Max can win at (0,2)
		board := mustParse(t, "XX./OO./...")

		// When: choosing the move for Max
		move, score, err := BestMove(board, Max)

		// Then: the winning move is played and the result is a Max win
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 0, Col: 2}, move)
		assert.Equal(t, MaxWins, score)

		next, err := board.Apply(move, Max)
		require.NoError(t, err)
		value, ok := next.Evaluate()
		require.True(t, ok)
		assert.Equal(t, MaxWins, value)
	})

	t.Run("Blocks the opponent's row", func(t *testing.T) {
		// Given: Min threatens (0,2) and has already moved twice
		board := mustParse(t, "OO./X../...")

		// When: choosing the move for Max
		move, score, err := BestMove(board, Max)

		// Then: Max blocks first; Min's extra tempo still forks, so no move beats -1
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 0, Col: 2}, move)
		assert.Equal(t, MinWins, score)

		for _, other := range board.LegalMoves() {
			child, err := board.Apply(other, Max)
			require.NoError(t, err)

			value, err := Search(child, NegInf, PosInf, false)
			require.NoError(t, err)
			assert.LessOrEqual(t, value, score, "move %s", other)
		}
	})

	t.Run("Blocks and holds the draw on a reachable board", func(t *testing.T) {
		// Given: Min threatens (0,1) with equal stone counts
		board := mustParse(t, "O.O/.X./..X")

		// When: choosing the move for Max
		move, score, err := BestMove(board, Max)

		// Then: Max blocks and is no worse than a draw
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 0, Col: 1}, move)
		assert.GreaterOrEqual(t, score, Draw)
	})

	t.Run("Works for Min", func(t *testing.T) {
		// Given: Min can win at (1,2)
		board := mustParse(t, "XX./OO./X..")

		// When: choosing the move for Min
		move, score, err := BestMove(board, Min)

		// Then: Min takes the row
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 1, Col: 2}, move)
		assert.Equal(t, MinWins, score)
	})

	t.Run("First move wins ties", func(t *testing.T) {
		// Given: the empty board, where every opening draws
		var board Board

		// When: choosing the opening for Max
		move, score, err := BestMove(board, Max)

		// Then: the first cell in row-major order is kept
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 0, Col: 0}, move)
		assert.Equal(t, Draw, score)
	})

	t.Run("Is deterministic and does not touch the board", func(t *testing.T) {
		board := mustParse(t, "X../.O./...")
		before := board

		first, firstScore, err := BestMove(board, Max)
		require.NoError(t, err)
		second, secondScore, err := BestMove(board, Max)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstScore, secondScore)
		assert.Equal(t, before, board)
	})

	t.Run("Fails on a terminal board", func(t *testing.T) {
		_, _, err := BestMove(mustParse(t, "XXX/OO./..."), Min)

		assert.ErrorIs(t, err, ErrNoMoves)
	})

	t.Run("Fails for Empty", func(t *testing.T) {
		_, _, err := BestMove(Board{}, Empty)

		assert.ErrorIs(t, err, ErrInvalidPlayer)
	})
}

func TestBestMove_NeverLosesSelfPlay(t *testing.T) {
	// Given: both sides use the engine from the empty board
	var board Board
	player := Max

	// When: playing the game out
	for !board.Terminal() {
		move, _, err := BestMove(board, player)
		require.NoError(t, err)

		board, err = board.Apply(move, player)
		require.NoError(t, err)

		player = player.Opponent()
	}

	// Then: the game is drawn
	score, ok := board.Evaluate()
	require.True(t, ok)
	assert.Equal(t, Draw, score)
}

// sideToMove infers the turn of a reachable board, Max moving first.
func (b Board) sideToMove() Cell {
	var maxCount, minCount int
	for _, row := range b {
		for _, cell := range row {
			switch cell {
			case Max:
				maxCount++
			case Min:
				minCount++
			}
		}
	}

	if maxCount > minCount {
		return Min
	}

	return Max
}

// plainMinimax is an unpruned reference used to check alpha-beta values.
func plainMinimax(board Board, maximizing bool, memo map[Board]Score) Score {
	if score, ok := memo[board]; ok {
		return score
	}

	if score, ok := board.Evaluate(); ok {
		memo[board] = score
		return score
	}

	player, best := Min, PosInf
	if maximizing {
		player, best = Max, NegInf
	}

	for _, move := range board.LegalMoves() {
		child, err := board.Apply(move, player)
		if err != nil {
			panic(err)
		}

		score := plainMinimax(child, !maximizing, memo)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	memo[board] = best

	return best
}
