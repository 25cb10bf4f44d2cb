package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/othello"
)

// Infinity bounds every score an evaluator can return.
const Infinity = math.MaxInt32

// Result is the outcome of searching one node. Move is 0 for leaves and passes.
type Result struct {
	Score int
	Move  uint64
}

var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// Strategy is implemented by Minimax, AlphaBeta and Negamax.
type Strategy interface {
	GetMove(board othello.Board) (uint64, bool)
	Analyze(board othello.Board) Result
	Symbol() othello.Side
	Depth() int
	Nodes() uint64
}

// Algorithms returns the names accepted by New.
func Algorithms() []string {
	return []string{"minimax", "alphabeta", "negamax"}
}

// New creates the strategy called algorithm.
func New(algorithm string, side othello.Side, depth int, evaluator eval.Evaluator) (Strategy, error) {
	switch algorithm {
	case "minimax":
		return NewMinimax(side, depth, evaluator), nil
	case "alphabeta":
		return NewAlphaBeta(side, depth, evaluator), nil
	case "negamax":
		return NewNegamax(side, depth, evaluator), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// base holds what all strategies share: the side they play, the search
// depth, the leaf evaluator and the node counter of the last search.
type base struct {
	side      othello.Side
	depth     int
	evaluator eval.Evaluator
	nodes     uint64
}

func newBase(side othello.Side, depth int, evaluator eval.Evaluator) base {
	return base{
		side:      side,
		depth:     max(depth, 1),
		evaluator: evaluator,
	}
}

// Symbol returns the side this strategy plays.
func (b *base) Symbol() othello.Side {
	return b.side
}

// Depth returns the search depth in plies.
func (b *base) Depth() int {
	return b.depth
}

// Nodes returns the number of nodes visited by the last GetMove call.
func (b *base) Nodes() uint64 {
	return b.nodes
}

func (b *base) logStats(algorithm string, startTime time.Time, result Result) {
	elapsedSeconds := time.Since(startTime).Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(b.nodes) / elapsedSeconds)
	}

	slog.Debug("search done",
		"algorithm", algorithm,
		"side", b.side,
		"depth", b.depth,
		"move", othello.MoveToField(result.Move),
		"score", result.Score,
		"nodes", b.nodes,
		"seconds", elapsedSeconds,
		"nodes_per_second", nodesPerSecond,
	)
}
