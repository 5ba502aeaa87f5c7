package minimax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		board    string
		score    Score
		terminal bool
	}{
		{name: "empty board", board: ".../.../...", terminal: false},
		{name: "row win for Max", board: "XXX/OO./...", score: MaxWins, terminal: true},
		{name: "column win for Min", board: "XOX/.OX/.O.", score: MinWins, terminal: true},
		{name: "main diagonal for Max", board: "XO./OX./..X", score: MaxWins, terminal: true},
		{name: "anti diagonal for Min", board: "XXO/XO./O..", score: MinWins, terminal: true},
		{name: "full board draw", board: "XOX/XOO/OXX", score: Draw, terminal: true},
		{name: "win on the last cell", board: "XOX/OXO/OXX", score: MaxWins, terminal: true},
		{name: "ongoing game", board: "XO./.X./..O", terminal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a board
			board := mustParse(t, tt.board)

			// When: classifying it
			score, ok := board.Evaluate()

			// Then: terminality and value match, and both functions agree
			assert.Equal(t, tt.terminal, ok)
			assert.Equal(t, tt.terminal, board.Terminal())
			if tt.terminal {
				assert.Equal(t, tt.score, score)
			}
		})
	}
}

func TestBoard_Evaluate_PanicsOnDoubleWin(t *testing.T) {
	// Given: an unreachable board where both players hold a row
	board := mustParse(t, "XXX/OOO/...")

	// Then: Evaluate refuses to score it
	assert.Panics(t, func() { board.Evaluate() })
}

func TestValidate(t *testing.T) {
	t.Run("Accepts reachable boards", func(t *testing.T) {
		assert.NoError(t, Validate(mustParse(t, "XO./.X./..O")))
		assert.NoError(t, Validate(Board{}))
	})

	t.Run("Rejects double wins", func(t *testing.T) {
		err := Validate(mustParse(t, "XXX/OOO/..."))

		require.ErrorIs(t, err, ErrInvalidBoard)
		assert.ErrorIs(t, err, ErrDoubleWin)
	})

	t.Run("Rejects unknown cell values", func(t *testing.T) {
		var board Board
		board[2][1] = Cell(5)

		assert.ErrorIs(t, Validate(board), ErrUnknownCell)
	})
}

func TestReachableBoards(t *testing.T) {
	boards := reachableBoards()

	// 5478 distinct positions are reachable from the empty board with X first.
	require.Len(t, boards, 5478)

	for board := range boards {
		score, ok := board.Evaluate()

		require.Equal(t, board.Terminal(), ok, "board %s", board)
		if ok {
			require.Contains(t, []Score{MinWins, Draw, MaxWins}, score)
		}

		moves := board.LegalMoves()
		require.Len(t, moves, 9-board.Occupied(), "board %s", board)
		require.Equal(t, board.full(), len(moves) == 0, "board %s", board)
	}
}

// reachableBoards enumerates every position of alternating play, Max first.
func reachableBoards() map[Board]struct{} {
	seen := make(map[Board]struct{})

	var walk func(board Board, player Cell)
	walk = func(board Board, player Cell) {
		if _, ok := seen[board]; ok {
			return
		}
		seen[board] = struct{}{}

		if board.Terminal() {
			return
		}

		for _, move := range board.LegalMoves() {
			child, err := board.Apply(move, player)
			if err != nil {
				panic(err)
			}
			walk(child, player.Opponent())
		}
	}

	walk(Board{}, Max)

	return seen
}
