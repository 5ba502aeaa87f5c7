package minimax

import "fmt"

// Stats counts work done by one search.
type Stats struct {
	// Nodes is the number of positions visited, the root included.
	Nodes int `json:"nodes"`
	// Cutoffs is the number of times remaining siblings were pruned.
	Cutoffs int `json:"cutoffs"`
}

// Search returns the minimax value of board with alpha-beta pruning. maximizing
// tells whether Max is to move. The initial call uses NegInf and PosInf as bounds.
func Search(board Board, alpha, beta Score, maximizing bool) (Score, error) {
	score, _, err := SearchWithStats(board, alpha, beta, maximizing)

	return score, err
}

// SearchWithStats is Search that also reports how many nodes were visited.
func SearchWithStats(board Board, alpha, beta Score, maximizing bool) (Score, Stats, error) {
	if err := Validate(board); err != nil {
		return 0, Stats{}, fmt.Errorf("search: %w", err)
	}

	var stats Stats
	score := alphaBeta(board, alpha, beta, maximizing, &stats)

	return score, stats, nil
}

// alphaBeta expects a validated board. Children are derived from LegalMoves, so
// placing a stone can not fail here.
func alphaBeta(board Board, alpha, beta Score, maximizing bool, stats *Stats) Score {
	stats.Nodes++

	if score, ok := board.Evaluate(); ok {
		return score
	}

	if maximizing {
		value := NegInf
		for _, move := range board.LegalMoves() {
			child := board
			child[move.Row][move.Col] = Max

			value = max(value, alphaBeta(child, alpha, beta, false, stats))
			if value >= beta {
				// beta cut-off
				stats.Cutoffs++
				break
			}
			alpha = max(alpha, value)
		}

		return value
	}

	value := PosInf
	for _, move := range board.LegalMoves() {
		child := board
		child[move.Row][move.Col] = Min

		value = min(value, alphaBeta(child, alpha, beta, true, stats))
		if value <= alpha {
			// alpha cut-off
			stats.Cutoffs++
			break
		}
		beta = min(beta, value)
	}

	return value
}

// BestMove picks the move for player with the best value for that player: the
// highest for Max, the lowest for Min. Ties keep the first move in row-major
// order.
func BestMove(board Board, player Cell) (Move, Score, error) {
	move, score, _, err := BestMoveWithStats(board, player)

	return move, score, err
}

// BestMoveWithStats is BestMove that also sums the stats of every root search.
func BestMoveWithStats(board Board, player Cell) (Move, Score, Stats, error) {
	if player != Max && player != Min {
		return Move{}, 0, Stats{}, fmt.Errorf("best move: %w: got %s", ErrInvalidPlayer, player)
	}

	if err := Validate(board); err != nil {
		return Move{}, 0, Stats{}, fmt.Errorf("best move: %w", err)
	}

	if board.Terminal() {
		return Move{}, 0, Stats{}, fmt.Errorf("best move: %w", ErrNoMoves)
	}

	var (
		stats     Stats
		bestMove  Move
		bestScore Score
		found     bool
	)

	for _, move := range board.LegalMoves() {
		child, err := board.Apply(move, player)
		if err != nil {
			return Move{}, 0, stats, fmt.Errorf("best move: %w", err)
		}

		score := alphaBeta(child, NegInf, PosInf, player == Min, &stats)

		if !found || better(player, score, bestScore) {
			bestMove, bestScore, found = move, score, true
		}
	}

	return bestMove, bestScore, stats, nil
}

// better reports a strict improvement for player.
func better(player Cell, score, best Score) bool {
	if player == Max {
		return score > best
	}

	return score < best
}
