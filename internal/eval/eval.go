package eval

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/lk16/reversi-search/internal/othello"
)

const (
	cornerMask = 0x8100000000000081
	edgeMask   = 0x7E8181818181817E
	ringMask   = 0x007E424242427E00

	cornerValue = 20
	edgeValue   = 3
	ringValue   = -5

	mobilityWeight = 2

	// WinScore is returned for finished games won by x. It is out of reach of any
	// heuristic score, so a forced win always beats a good looking position.
	WinScore = math.MaxInt32 - 8

	// LossScore is returned for finished games won by o.
	LossScore = -WinScore
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator scores a board from x's point of view. Implementations must be pure.
type Evaluator interface {
	Eval(board othello.Board) int
}

// Material scores the disc difference.
type Material struct{}

func (Material) Eval(board othello.Board) int {
	return board.Count(othello.X) - board.Count(othello.O)
}

// Heuristic combines disc difference, mobility and square weights.
type Heuristic struct{}

func positional(discs uint64) int {
	return bits.OnesCount64(discs&cornerMask)*cornerValue +
		bits.OnesCount64(discs&edgeMask)*edgeValue +
		bits.OnesCount64(discs&ringMask)*ringValue
}

func (Heuristic) Eval(board othello.Board) int {
	x, o := board.X(), board.O()
	xCount, oCount := bits.OnesCount64(x), bits.OnesCount64(o)

	xMoves := bits.OnesCount64(board.LegalMoves(othello.X))
	oMoves := bits.OnesCount64(board.LegalMoves(othello.O))

	if xMoves == 0 && oMoves == 0 {
		switch {
		case xCount > oCount:
			return WinScore
		case xCount < oCount:
			return LossScore
		default:
			return 0
		}
	}

	material := xCount - oCount
	mobility := xMoves - oMoves

	return material + mobilityWeight*mobility + positional(x) - positional(o)
}

var evaluators = map[string]Evaluator{
	"material":  Material{},
	"heuristic": Heuristic{},
}

// Names returns the names accepted by ByName.
func Names() []string {
	return []string{"material", "heuristic"}
}

// ByName returns the evaluator registered under name.
func ByName(name string) (Evaluator, error) {
	evaluator, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
	return evaluator, nil
}
