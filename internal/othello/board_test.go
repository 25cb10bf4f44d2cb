package othello //nolint:testpackage

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceFlips walks the board square by square. It is slow but obviously correct.
func referenceFlips(b Board, index int, side Side) uint64 {
	me, opp := b.split(side)

	if (me|opp)&(uint64(1)<<index) != 0 {
		return 0
	}

	flipped := uint64(0)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}

			line := uint64(0)
			x, y := index%8+dx, index/8+dy

			for x >= 0 && x < 8 && y >= 0 && y < 8 {
				bit := uint64(1) << (y*8 + x)

				if opp&bit != 0 {
					line |= bit
				} else {
					if me&bit != 0 {
						flipped |= line
					}
					break
				}

				x += dx
				y += dy
			}
		}
	}

	return flipped
}

func referenceMoves(b Board, side Side) uint64 {
	moves := uint64(0)
	for index := range Squares {
		if referenceFlips(b, index, side) != 0 {
			moves |= uint64(1) << index
		}
	}
	return moves
}

// generateTestBoards generates boards with a flipping line from each square in
// each direction, some fixed boards and some random ones.
func generateTestBoards(t *testing.T) []Board { //nolint:gocognit
	t.Helper()

	boards := make([]Board, 0)

	for y := range 8 {
		for x := range 8 {
			me := uint64(1) << (y*8 + x)

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dy == 0 && dx == 0 {
						continue
					}
					opp := uint64(0)

					for d := 1; d <= 6; d++ {
						py := y + (d+1)*dy
						px := x + (d+1)*dx

						if py < 0 || py > 7 || px < 0 || px > 7 {
							break
						}

						opp |= uint64(1) << ((y+d*dy)*8 + x + d*dx)

						boards = append(boards, NewBoardMust(me, opp))
					}
				}
			}
		}
	}

	boards = append(boards,
		NewBoardEmpty(),
		NewBoardStart(),
		NewBoardMust(0xFFFFFFFFFFFFFFFF, 0x0000000000000000),
		NewBoardMust(0x0000000000000000, 0xFFFFFFFFFFFFFFFF),
		NewBoardMust(0xFFFFFFFF00000000, 0x00000000FFFFFFFF),
		NewBoardMust(0x5555555555555555, 0xAAAAAAAAAAAAAAAA),
		NewBoardMust(0x8000000000000001, 0x0000000000000000),
	)

	rng := rand.New(rand.NewSource(42))
	for discs := 4; discs <= 64; discs++ {
		board, _, err := NewBoardRandom(discs, rng)
		require.NoError(t, err)
		boards = append(boards, board)
	}

	return boards
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name    string
		x       uint64
		o       uint64
		wantErr error
	}{
		{
			name:    "empty",
			x:       0,
			o:       0,
			wantErr: nil,
		},
		{
			name:    "start",
			x:       0x0000000810000000,
			o:       0x0000001008000000,
			wantErr: nil,
		},
		{
			name:    "overlap",
			x:       0x0000000000000001,
			o:       0x0000000000000001,
			wantErr: ErrOverlappingDiscs,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board, err := NewBoard(test.x, test.o)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.x, board.X())
			require.Equal(t, test.o, board.O())
		})
	}
}

func TestNewBoardMust(t *testing.T) {
	require.Panics(t, func() { NewBoardMust(1, 1) })
	require.NotPanics(t, func() { NewBoardMust(1, 2) })
}

func TestNewBoardStart(t *testing.T) {
	board := NewBoardStart()
	require.Equal(t, 4, board.CountDiscs())
	require.Equal(t, 2, board.Count(X))
	require.Equal(t, 2, board.Count(O))
	require.Equal(t, 60, board.Empties())
	require.False(t, board.IsOver())
}

func fieldsToMask(t *testing.T, fields ...string) uint64 {
	t.Helper()

	mask := uint64(0)
	for _, field := range fields {
		move, err := FieldToMove(field)
		require.NoError(t, err)
		mask |= move
	}
	return mask
}

func TestBoard_LegalMovesStart(t *testing.T) {
	board := NewBoardStart()

	require.Equal(t, fieldsToMask(t, "d3", "c4", "f5", "e6"), board.LegalMoves(X))
	require.Equal(t, fieldsToMask(t, "e3", "f4", "c5", "d6"), board.LegalMoves(O))
}

func TestBoard_LegalMovesMatchesReference(t *testing.T) {
	for _, board := range generateTestBoards(t) {
		for _, side := range []Side{X, O} {
			require.Equal(t, referenceMoves(board, side), board.LegalMoves(side), "board %s side %s", board, side)
		}
	}
}

func TestBoard_FlipsMatchesReference(t *testing.T) {
	for _, board := range generateTestBoards(t) {
		for _, side := range []Side{X, O} {
			for index := range Squares {
				move := uint64(1) << index
				if !board.IsLegal(move, side) {
					continue
				}
				require.Equal(t, referenceFlips(board, index, side), board.Flips(move, side))
			}
		}
	}
}

func TestBoard_LegalMovesNoWraparound(t *testing.T) {
	tests := []struct {
		name string
		x    string
		o    string
	}{
		{name: "east edge", x: "h1", o: "a2"},
		{name: "west edge", x: "a2", o: "h1"},
		{name: "south east edge", x: "h1", o: "a3"},
		{name: "north west edge", x: "a3", o: "h1"},
		{name: "south west edge", x: "a1", o: "h1"},
		{name: "north east edge", x: "h2", o: "a2"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := NewBoardMust(fieldsToMask(t, test.x), fieldsToMask(t, test.o))
			require.Zero(t, board.LegalMoves(X))
			require.Zero(t, board.LegalMoves(O))
		})
	}
}

func TestBoard_ApplyMoveStart(t *testing.T) {
	for move := range NewBoardStart().Moves(X) {
		board := NewBoardStart()
		board.ApplyMove(move, X)

		require.Equal(t, 4, board.Count(X), MoveToField(move))
		require.Equal(t, 1, board.Count(O), MoveToField(move))
		require.NotZero(t, board.X()&move)
	}
}

func TestBoard_ApplyMoveFlipsSeveralLines(t *testing.T) {
	// c3 closes lines to a1, c1 and a3 at once.
	board := NewBoardMust(
		fieldsToMask(t, "a1", "c1", "a3"),
		fieldsToMask(t, "b2", "c2", "b3"),
	)

	move := fieldsToMask(t, "c3")
	require.True(t, board.IsLegal(move, X))

	board.ApplyMove(move, X)

	require.Equal(t, fieldsToMask(t, "a1", "c1", "a3", "b2", "c2", "b3", "c3"), board.X())
	require.Zero(t, board.O())
}

func TestBoard_ApplyMoveLongestRun(t *testing.T) {
	board := NewBoardMust(
		fieldsToMask(t, "a1"),
		fieldsToMask(t, "b1", "c1", "d1", "e1", "f1", "g1"),
	)

	move := fieldsToMask(t, "h1")
	require.Equal(t, board.O(), board.Flips(move, X))

	board.ApplyMove(move, X)
	require.Equal(t, uint64(0xFF), board.X())
	require.Zero(t, board.O())
}

func TestBoard_RandomGamesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for range 50 {
		board := NewBoardStart()
		side := X

		for !board.IsOver() {
			moves := board.LegalMoves(side)
			empty := ^(board.X() | board.O())

			require.Zero(t, board.X()&board.O())
			require.Equal(t, moves, moves&empty)

			if moves == 0 {
				side = side.Opponent()
				continue
			}

			n := rng.Intn(bits.OnesCount64(moves))
			for move := range board.Moves(side) {
				if n == 0 {
					before := board
					flips := board.Flips(move, side)
					board.ApplyMove(move, side)

					require.NotZero(t, flips)
					require.Equal(t, before.Count(side)+bits.OnesCount64(flips)+1, board.Count(side))
					require.Equal(t, before.Count(side.Opponent())-bits.OnesCount64(flips), board.Count(side.Opponent()))
					break
				}
				n--
			}

			side = side.Opponent()
		}

		require.Zero(t, board.X()&board.O())
	}
}

func TestBoard_IsLegal(t *testing.T) {
	board := NewBoardStart()

	require.True(t, board.IsLegal(fieldsToMask(t, "d3"), X))
	require.False(t, board.IsLegal(fieldsToMask(t, "d3"), O))
	require.False(t, board.IsLegal(fieldsToMask(t, "d3", "c4"), X))
	require.False(t, board.IsLegal(0, X))
	require.False(t, board.IsLegal(fieldsToMask(t, "a1"), X))
	require.False(t, board.IsLegal(fieldsToMask(t, "d4"), X))
}

func TestBoard_IsOver(t *testing.T) {
	tests := []struct {
		name     string
		board    Board
		wantOver bool
	}{
		{
			name:     "start",
			board:    NewBoardStart(),
			wantOver: false,
		},
		{
			name:     "empty",
			board:    NewBoardEmpty(),
			wantOver: true,
		},
		{
			name:     "full",
			board:    NewBoardMust(0xFFFFFFFF00000000, 0x00000000FFFFFFFF),
			wantOver: true,
		},
		{
			name:     "one side wiped out",
			board:    NewBoardMust(0x0000000810000000, 0),
			wantOver: true,
		},
		{
			name:     "only x can move",
			board:    NewBoardMust(fieldsToMask(t, "a1"), fieldsToMask(t, "b1")),
			wantOver: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bothEmpty := test.board.LegalMoves(X) == 0 && test.board.LegalMoves(O) == 0
			require.Equal(t, bothEmpty, test.board.IsOver())
			require.Equal(t, test.wantOver, test.board.IsOver())
		})
	}
}

func TestBoard_OnlyOneSideCanMove(t *testing.T) {
	board := NewBoardMust(fieldsToMask(t, "a1"), fieldsToMask(t, "b1"))

	require.Equal(t, fieldsToMask(t, "c1"), board.LegalMoves(X))
	require.Zero(t, board.LegalMoves(O))
	require.False(t, board.IsOver())
}

func TestBoard_Moves(t *testing.T) {
	board := NewBoardStart()

	moves := make([]uint64, 0)
	union := uint64(0)
	for move := range board.Moves(X) {
		require.Equal(t, 1, bits.OnesCount64(move))
		if len(moves) > 0 {
			require.Greater(t, move, moves[len(moves)-1])
		}
		moves = append(moves, move)
		union |= move
	}

	require.Len(t, moves, 4)
	require.Equal(t, board.LegalMoves(X), union)

	// Iteration is restartable and can stop early.
	count := 0
	for range board.Moves(X) {
		count++
		break
	}
	require.Equal(t, 1, count)

	for range NewBoardEmpty().Moves(X) {
		t.Fatal("empty board has no moves")
	}
}

func TestBoard_DoMoveLeavesOriginal(t *testing.T) {
	board := NewBoardStart()
	child := board.DoMove(fieldsToMask(t, "d3"), X)

	require.Equal(t, NewBoardStart(), board)
	require.Equal(t, 4, child.Count(X))
}

func TestBoard_FinalScore(t *testing.T) {
	tests := []struct {
		name       string
		board      Board
		wantScore  int
		wantWinner Side
		wantDecide bool
	}{
		{
			name:       "x wins with empties",
			board:      NewBoardMust(0x0000000000000007, 0x0000000000000008),
			wantScore:  62,
			wantWinner: X,
			wantDecide: true,
		},
		{
			name:       "o wins full board",
			board:      NewBoardMust(0x00000000000000FF, 0xFFFFFFFFFFFFFF00),
			wantScore:  -48,
			wantWinner: O,
			wantDecide: true,
		},
		{
			name:       "draw",
			board:      NewBoardMust(0xFFFFFFFF00000000, 0x00000000FFFFFFFF),
			wantScore:  0,
			wantWinner: X,
			wantDecide: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.wantScore, test.board.FinalScore())

			winner, ok := test.board.Winner()
			require.Equal(t, test.wantDecide, ok)
			if ok {
				require.Equal(t, test.wantWinner, winner)
			}
		})
	}
}

func TestNewBoardRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for discs := 4; discs <= 64; discs++ {
		board, _, err := NewBoardRandom(discs, rng)
		require.NoError(t, err)
		require.Equal(t, discs, board.CountDiscs())
		require.Zero(t, board.X()&board.O())
	}

	_, _, err := NewBoardRandom(3, rng)
	require.EqualError(t, err, "invalid number of discs: 3")

	_, _, err = NewBoardRandom(65, rng)
	require.EqualError(t, err, "invalid number of discs: 65")
}

func TestBoard_String(t *testing.T) {
	board := NewBoardStart()
	require.Equal(t, "00000008100000000000001008000000", board.String())

	parsed, err := NewBoardFromString(board.String())
	require.NoError(t, err)
	require.Equal(t, board, parsed)
}

func TestNewBoardFromString(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		wantErr bool
	}{
		{name: "ok", s: "00000008100000000000001008000000", wantErr: false},
		{name: "too short", s: "0000000810000000", wantErr: true},
		{name: "bad x", s: "z0000008100000000000001008000000", wantErr: true},
		{name: "bad o", s: "0000000810000000z000001008000000", wantErr: true},
		{name: "overlap", s: "00000000000000010000000000000001", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoardFromString(test.s)
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	board, side, err := ParsePosition("00000008100000000000001008000000-o")
	require.NoError(t, err)
	require.Equal(t, NewBoardStart(), board)
	require.Equal(t, O, side)
	require.Equal(t, "00000008100000000000001008000000-o", FormatPosition(board, side))

	for _, s := range []string{
		"",
		"00000008100000000000001008000000",
		"00000008100000000000001008000000+x",
		"00000008100000000000001008000000-z",
		"0000000810000000000000100800000z-x",
	} {
		_, _, err = ParsePosition(s)
		require.Error(t, err, s)
	}
}

func TestBoard_ASCIIArtLines(t *testing.T) {
	lines := NewBoardStart().ASCIIArtLines(X)

	require.Len(t, lines, 10)
	require.Equal(t, "+-a-b-c-d-e-f-g-h-+", lines[0])
	require.Equal(t, "3       ·         |", lines[3])
	require.Equal(t, "4     · ○ ●       |", lines[4])
	require.Equal(t, "+-----------------+", lines[9])
}
