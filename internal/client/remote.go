package client

import (
	"log/slog"

	"github.com/lk16/reversi-search/internal/models"
	"github.com/lk16/reversi-search/internal/othello"
)

// Remote is a player that asks the server for its moves.
type Remote struct {
	client    *APIClient
	side      othello.Side
	algorithm string
	evaluator string
	depth     int
	err       error
}

func NewRemote(client *APIClient, side othello.Side, algorithm, evaluator string, depth int) *Remote {
	return &Remote{
		client:    client,
		side:      side,
		algorithm: algorithm,
		evaluator: evaluator,
		depth:     depth,
	}
}

func (r *Remote) Symbol() othello.Side {
	return r.side
}

// GetMove returns false when the server answers with a pass or cannot be
// reached. The latter is reported by Err.
func (r *Remote) GetMove(board othello.Board) (uint64, bool) {
	if !board.HasMoves(r.side) {
		return 0, false
	}

	response, err := r.client.BestMove(models.MoveRequest{
		Board:     board.String(),
		Side:      r.side.String(),
		Algorithm: r.algorithm,
		Evaluator: r.evaluator,
		Depth:     r.depth,
	})
	if err != nil {
		slog.Error("Remote move failed", "error", err)
		r.err = err
		return 0, false
	}

	slog.Debug("Remote move", "field", response.Field, "score", response.Score, "cached", response.Cached)

	return response.Move, !response.Pass
}

// Err returns the last error of GetMove, if any.
func (r *Remote) Err() error {
	return r.err
}
