package search

import (
	"time"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/othello"
)

// AlphaBeta is Minimax with fail-soft alpha-beta pruning. It returns the same
// score and the same move as Minimax while visiting fewer nodes.
type AlphaBeta struct {
	base
}

// NewAlphaBeta creates an alpha-beta player for side. A depth below 1 is raised to 1.
func NewAlphaBeta(side othello.Side, depth int, evaluator eval.Evaluator) *AlphaBeta {
	return &AlphaBeta{base: newBase(side, depth, evaluator)}
}

// GetMove returns the best move for the player, or false if it has to pass.
func (a *AlphaBeta) GetMove(board othello.Board) (uint64, bool) {
	if !board.HasMoves(a.side) {
		return 0, false
	}

	return a.Analyze(board).Move, true
}

// Analyze searches board with the player to move. The score is from x's point
// of view and Move is 0 when the player has to pass.
func (a *AlphaBeta) Analyze(board othello.Board) Result {
	a.nodes = 0
	startTime := time.Now()

	result := a.Search(board, a.depth, a.side, -Infinity, Infinity)
	a.logStats("alphabeta", startTime, result)

	return result
}

// Search returns the score of board with side to move within the window (alpha, beta).
// Scores outside the window are bounds, not exact values.
func (a *AlphaBeta) Search(board othello.Board, depth int, side othello.Side, alpha, beta int) Result {
	a.nodes++

	if depth == 0 || board.IsOver() {
		return Result{Score: a.evaluator.Eval(board)}
	}

	if !board.HasMoves(side) {
		passed := a.Search(board, depth-1, side.Opponent(), alpha, beta)
		return Result{Score: passed.Score}
	}

	best := Result{}

	for move := range board.Moves(side) {
		child := board.DoMove(move, side)
		score := a.Search(child, depth-1, side.Opponent(), alpha, beta).Score

		if side == othello.X {
			if best.Move == 0 || score > best.Score {
				best = Result{Score: score, Move: move}
			}
			alpha = max(alpha, score)
		} else {
			if best.Move == 0 || score < best.Score {
				best = Result{Score: score, Move: move}
			}
			beta = min(beta, score)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}
