package player

import (
	"math/rand"

	"github.com/lk16/reversi-search/internal/othello"
)

// Mixed plays like the wrapped player, except that with probability
// randChance it plays a random move instead.
type Mixed struct {
	player     Player
	random     *Random
	randChance float64
	rng        *rand.Rand
}

// NewMixed wraps player. The random moves and the choice between the two are
// both derived from seed.
func NewMixed(player Player, seed int64, randChance float64) *Mixed {
	return &Mixed{
		player:     player,
		random:     NewRandom(player.Symbol(), seed),
		randChance: randChance,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (m *Mixed) Symbol() othello.Side {
	return m.player.Symbol()
}

func (m *Mixed) GetMove(board othello.Board) (uint64, bool) {
	if m.rng.Float64() < m.randChance {
		return m.random.GetMove(board)
	}
	return m.player.GetMove(board)
}
