package search

import (
	"time"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/othello"
)

// Negamax is alpha-beta written from the point of view of the side to move.
// Scores are multiplied by color only at the leaves and negated on the way up.
type Negamax struct {
	base
}

// NewNegamax creates a negamax player for side. A depth below 1 is raised to 1.
func NewNegamax(side othello.Side, depth int, evaluator eval.Evaluator) *Negamax {
	return &Negamax{base: newBase(side, depth, evaluator)}
}

// GetMove returns the best move for the player, or false if it has to pass.
func (n *Negamax) GetMove(board othello.Board) (uint64, bool) {
	if !board.HasMoves(n.side) {
		return 0, false
	}

	return n.Analyze(board).Move, true
}

// Analyze searches board with the player to move. The score is from x's point
// of view and Move is 0 when the player has to pass.
func (n *Negamax) Analyze(board othello.Board) Result {
	n.nodes = 0
	startTime := time.Now()

	result := n.Search(board, n.depth, n.side, n.side.Color(), -Infinity, Infinity)
	result.Score *= n.side.Color()

	n.logStats("negamax", startTime, result)

	return result
}

// Search returns the score of board for side, which is to move. Color must be
// side.Color(): +1 when x is to move and -1 when o is.
func (n *Negamax) Search(board othello.Board, depth int, side othello.Side, color int, alpha, beta int) Result {
	n.nodes++

	if depth == 0 || board.IsOver() {
		return Result{Score: color * n.evaluator.Eval(board)}
	}

	if !board.HasMoves(side) {
		passed := n.Search(board, depth-1, side.Opponent(), -color, -beta, -alpha)
		return Result{Score: -passed.Score}
	}

	best := Result{}

	for move := range board.Moves(side) {
		child := board.DoMove(move, side)
		score := -n.Search(child, depth-1, side.Opponent(), -color, -beta, -alpha).Score

		if best.Move == 0 || score > best.Score {
			best = Result{Score: score, Move: move}
		}

		alpha = max(alpha, best.Score)
		if alpha >= beta {
			break
		}
	}

	return best
}
