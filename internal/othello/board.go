package othello

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"math/rand"
	"strconv"
)

const (
	MaxX = 8
	MaxY = 8

	// Squares is the number of squares on the board.
	Squares = MaxX * MaxY
)

var ErrOverlappingDiscs = errors.New("invalid board: x and o discs cannot overlap")

// Board holds one occupancy mask per side. Bit index is row*8 + col, bit 0 is a1.
// A Board has no turn: the side to move is passed to every query.
type Board struct {
	x uint64
	o uint64
}

// NewBoard creates a board from an x and an o bitboard.
func NewBoard(x, o uint64) (Board, error) {
	if x&o != 0 {
		return Board{}, ErrOverlappingDiscs
	}

	return Board{x: x, o: o}, nil
}

// NewBoardMust creates a board from an x and an o bitboard
// and panics if the discs overlap.
func NewBoardMust(x, o uint64) Board {
	b, err := NewBoard(x, o)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardStart creates a board with the standard starting layout.
func NewBoardStart() Board {
	return NewBoardMust(0x0000000810000000, 0x0000001008000000)
}

// NewBoardEmpty creates a board without discs.
func NewBoardEmpty() Board {
	return Board{}
}

// NewBoardRandom plays random legal moves from the start until the board holds
// the requested number of discs. It returns the board and the side to move.
func NewBoardRandom(discs int, rng *rand.Rand) (Board, Side, error) {
	if discs < 4 || discs > Squares {
		return Board{}, X, fmt.Errorf("invalid number of discs: %d", discs)
	}

	board := NewBoardStart()
	side := X

	for board.CountDiscs() < discs {
		count := board.CountMoves(side)
		if count == 0 {
			if board.IsOver() {
				board = NewBoardStart()
				side = X
				continue
			}
			side = side.Opponent()
			continue
		}

		n := rng.Intn(count)
		for move := range board.Moves(side) {
			if n == 0 {
				board.ApplyMove(move, side)
				break
			}
			n--
		}
		side = side.Opponent()
	}

	return board, side, nil
}

// NewBoardFromString parses the 32 hex character form produced by Board.String.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != 32 {
		return Board{}, fmt.Errorf("board string must be 32 characters long, got %d", len(s))
	}

	x, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid x discs: %w", err)
	}

	o, err := strconv.ParseUint(s[16:], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid o discs: %w", err)
	}

	return NewBoard(x, o)
}

// ParsePosition parses a board with side to move, like "00000008100000000000001008000000-x".
func ParsePosition(s string) (Board, Side, error) {
	if len(s) != 34 || s[32] != '-' {
		return Board{}, X, fmt.Errorf("position string must be 32 hex characters, a dash and a side, got %q", s)
	}

	side, err := ParseSide(s[33:])
	if err != nil {
		return Board{}, X, err
	}

	board, err := NewBoardFromString(s[:32])
	if err != nil {
		return Board{}, X, err
	}

	return board, side, nil
}

// FormatPosition is the inverse of ParsePosition.
func FormatPosition(b Board, side Side) string {
	return b.String() + "-" + side.String()
}

// X returns the x bitboard.
func (b Board) X() uint64 {
	return b.x
}

// O returns the o bitboard.
func (b Board) O() uint64 {
	return b.o
}

// Discs returns the bitboard of side.
func (b Board) Discs(side Side) uint64 {
	if side == X {
		return b.x
	}
	return b.o
}

// split returns the discs of side and its opponent.
func (b Board) split(side Side) (uint64, uint64) {
	if side == X {
		return b.x, b.o
	}
	return b.o, b.x
}

// Count returns the number of discs of side.
func (b Board) Count(side Side) int {
	return bits.OnesCount64(b.Discs(side))
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	return bits.OnesCount64(b.x | b.o)
}

// Empties returns the number of empty squares.
func (b Board) Empties() int {
	return Squares - b.CountDiscs()
}

// LegalMoves returns a bitset with all legal moves for side.
func (b Board) LegalMoves(side Side) uint64 {
	me, opp := b.split(side)
	empty := ^(me | opp)

	var moves uint64
	for _, d := range directions {
		run := d.step(me) & opp
		for range maxRun - 1 {
			run |= d.step(run) & opp
		}
		moves |= d.step(run) & empty
	}

	return moves
}

// CountMoves returns the number of legal moves for side.
func (b Board) CountMoves(side Side) int {
	return bits.OnesCount64(b.LegalMoves(side))
}

// HasMoves returns whether side has at least one legal move.
func (b Board) HasMoves(side Side) bool {
	return b.LegalMoves(side) != 0
}

// IsLegal checks that move is a single square and a legal placement for side.
func (b Board) IsLegal(move uint64, side Side) bool {
	if bits.OnesCount64(move) != 1 {
		return false
	}
	return b.LegalMoves(side)&move != 0
}

// IsOver returns true when neither side can move.
func (b Board) IsOver() bool {
	return b.LegalMoves(X) == 0 && b.LegalMoves(O) == 0
}

// Moves yields the legal moves of side one square at a time, lowest bit first.
func (b Board) Moves(side Side) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		moves := b.LegalMoves(side)
		for moves != 0 {
			move := moves & -moves
			if !yield(move) {
				return
			}
			moves &^= move
		}
	}
}

// Flips returns the opponent discs that side flips by playing move.
func (b Board) Flips(move uint64, side Side) uint64 {
	me, opp := b.split(side)

	var flips uint64
	for _, d := range directions {
		run := d.step(move) & opp
		for range maxRun - 1 {
			run |= d.step(run) & opp
		}

		// The run only flips when it is closed off by a disc of the mover.
		if d.step(run)&me != 0 {
			flips |= run
		}
	}

	return flips
}

// ApplyMove plays a legal move for side. The result is undefined for illegal moves.
func (b *Board) ApplyMove(move uint64, side Side) {
	mask := b.Flips(move, side) | move

	if side == X {
		b.x |= mask
		b.o &^= mask
	} else {
		b.o |= mask
		b.x &^= mask
	}
}

// DoMove returns a copy of the board with move applied.
func (b Board) DoMove(move uint64, side Side) Board {
	child := b
	child.ApplyMove(move, side)
	return child
}

// Winner returns the side with more discs, false on a draw.
func (b Board) Winner() (Side, bool) {
	x, o := b.Count(X), b.Count(O)
	switch {
	case x > o:
		return X, true
	case o > x:
		return O, true
	default:
		return X, false
	}
}

// FinalScore returns the disc difference from x's point of view, with the
// empty squares awarded to the winner.
func (b Board) FinalScore() int {
	x, o := b.Count(X), b.Count(O)
	switch {
	case x > o:
		return x - o + b.Empties()
	case o > x:
		return x - o - b.Empties()
	default:
		return 0
	}
}

// ASCIIArtLines returns the ascii art lines for the board, marking the legal moves of side.
func (b Board) ASCIIArtLines(side Side) []string {
	moves := b.LegalMoves(side)
	lines := make([]string, MaxY+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for y := range MaxY {
		line := fmt.Sprintf("%d ", y+1)

		for x := range MaxX {
			mask := uint64(1) << (y*MaxX + x)

			switch {
			case b.x&mask != 0:
				line += "● "
			case b.o&mask != 0:
				line += "○ "
			case moves&mask != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[y+1] = line + "|"
	}

	lines[MaxY+1] = "+-----------------+"

	return lines
}

// String returns the hex representation of the board.
func (b Board) String() string {
	return fmt.Sprintf("%016x%016x", b.x, b.o)
}
