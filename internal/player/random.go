package player

import (
	"math/rand"

	"github.com/lk16/reversi-search/internal/othello"
)

// Random plays a uniformly random legal move. It owns its generator, so two
// players created with the same seed play the same moves.
type Random struct {
	side othello.Side
	rng  *rand.Rand
}

// NewRandom creates a random player seeded with seed.
func NewRandom(side othello.Side, seed int64) *Random {
	return &Random{
		side: side,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Symbol() othello.Side {
	return r.side
}

func (r *Random) GetMove(board othello.Board) (uint64, bool) {
	count := board.CountMoves(r.side)
	if count == 0 {
		return 0, false
	}

	n := r.rng.Intn(count)
	for move := range board.Moves(r.side) {
		if n == 0 {
			return move, true
		}
		n--
	}

	// unreachable: n < count
	return 0, false
}
