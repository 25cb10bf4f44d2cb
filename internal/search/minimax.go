package search

import (
	"time"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/othello"
)

// Minimax searches the full tree. X maximises the evaluator score, O minimises it.
type Minimax struct {
	base
}

// NewMinimax creates a minimax player for side. A depth below 1 is raised to 1.
func NewMinimax(side othello.Side, depth int, evaluator eval.Evaluator) *Minimax {
	return &Minimax{base: newBase(side, depth, evaluator)}
}

// GetMove returns the best move for the player, or false if it has to pass.
func (m *Minimax) GetMove(board othello.Board) (uint64, bool) {
	if !board.HasMoves(m.side) {
		return 0, false
	}

	return m.Analyze(board).Move, true
}

// Analyze searches board with the player to move. The score is from x's point
// of view and Move is 0 when the player has to pass.
func (m *Minimax) Analyze(board othello.Board) Result {
	m.nodes = 0
	startTime := time.Now()

	result := m.Search(board, m.depth, m.side)
	m.logStats("minimax", startTime, result)

	return result
}

// Search returns the minimax score of board with side to move, and the first
// move that reaches it.
func (m *Minimax) Search(board othello.Board, depth int, side othello.Side) Result {
	m.nodes++

	if depth == 0 || board.IsOver() {
		return Result{Score: m.evaluator.Eval(board)}
	}

	if !board.HasMoves(side) {
		passed := m.Search(board, depth-1, side.Opponent())
		return Result{Score: passed.Score}
	}

	best := Result{}

	for move := range board.Moves(side) {
		child := board.DoMove(move, side)
		score := m.Search(child, depth-1, side.Opponent()).Score

		if best.Move == 0 || (side == othello.X && score > best.Score) || (side == othello.O && score < best.Score) {
			best = Result{Score: score, Move: move}
		}
	}

	return best
}
