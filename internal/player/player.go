package player

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/othello"
	"github.com/lk16/reversi-search/internal/search"
)

// MaxDepth is the deepest search New accepts.
const MaxDepth = 10

var (
	ErrUnknownKind  = errors.New("unknown player kind")
	ErrInvalidDepth = errors.New("invalid depth")
)

// Player picks moves for one side. GetMove returns false when the player has
// no legal move and must pass.
type Player interface {
	GetMove(board othello.Board) (uint64, bool)
	Symbol() othello.Side
}

// Kind names a player implementation.
type Kind string

const (
	KindRandom    Kind = "random"
	KindMinimax   Kind = "minimax"
	KindAlphaBeta Kind = "alphabeta"
	KindNegamax   Kind = "negamax"
)

// Kinds returns all kinds accepted by New.
func Kinds() []Kind {
	return []Kind{KindRandom, KindMinimax, KindAlphaBeta, KindNegamax}
}

// Spec describes a player to build. Depth and Evaluator are ignored for random players.
type Spec struct {
	Kind      Kind
	Side      othello.Side
	Depth     int
	Evaluator string
	Seed      int64
}

// String returns a short description, like "negamax(heuristic,5)".
func (s Spec) String() string {
	if s.Kind == KindRandom {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s(%s,%d)", s.Kind, s.Evaluator, s.Depth)
}

// New builds the player described by spec.
func New(spec Spec) (Player, error) {
	if spec.Kind == KindRandom {
		return NewRandom(spec.Side, spec.Seed), nil
	}

	if spec.Depth < 1 || spec.Depth > MaxDepth {
		return nil, fmt.Errorf("%w: %d, must be between 1 and %d", ErrInvalidDepth, spec.Depth, MaxDepth)
	}

	evaluator, err := eval.ByName(spec.Evaluator)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(Kinds(), spec.Kind) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}

	return search.New(string(spec.Kind), spec.Side, spec.Depth, evaluator)
}
