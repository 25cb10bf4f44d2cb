package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/othello"
)

func mustMove(t *testing.T, field string) uint64 {
	t.Helper()

	move, err := othello.FieldToMove(field)
	require.NoError(t, err)
	return move
}

// randomBoards returns count reproducible positions with the side to move.
func randomBoards(t *testing.T, count int, seed int64) ([]othello.Board, []othello.Side) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	boards := make([]othello.Board, 0, count)
	sides := make([]othello.Side, 0, count)

	for range count {
		// Stay away from the first and last few discs to get bushy trees.
		discs := 8 + rng.Intn(48)
		board, side, err := othello.NewBoardRandom(discs, rng)
		require.NoError(t, err)

		boards = append(boards, board)
		sides = append(sides, side)
	}

	return boards, sides
}

func TestDepthZeroIsEvaluation(t *testing.T) {
	boards, sides := randomBoards(t, 20, 1)
	evaluator := eval.Heuristic{}

	for i, board := range boards {
		side := sides[i]
		want := evaluator.Eval(board)

		minimax := NewMinimax(side, 4, evaluator)
		require.Equal(t, Result{Score: want}, minimax.Search(board, 0, side))

		alphaBeta := NewAlphaBeta(side, 4, evaluator)
		require.Equal(t, Result{Score: want}, alphaBeta.Search(board, 0, side, -Infinity, Infinity))

		negamax := NewNegamax(side, 4, evaluator)
		require.Equal(t, Result{Score: side.Color() * want}, negamax.Search(board, 0, side, side.Color(), -Infinity, Infinity))
	}
}

func TestSearchEquivalence(t *testing.T) {
	tests := []struct {
		name      string
		evaluator eval.Evaluator
		depth     int
		seed      int64
	}{
		{
			name:      "material",
			evaluator: eval.Material{},
			depth:     4,
			seed:      11,
		},
		{
			name:      "heuristic",
			evaluator: eval.Heuristic{},
			depth:     4,
			seed:      12,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			boards, sides := randomBoards(t, 100, test.seed)

			var minimaxNodes, alphaBetaNodes, negamaxNodes uint64

			for i, board := range boards {
				side := sides[i]

				minimax := NewMinimax(side, test.depth, test.evaluator)
				alphaBeta := NewAlphaBeta(side, test.depth, test.evaluator)
				negamax := NewNegamax(side, test.depth, test.evaluator)

				minimaxResult := minimax.Search(board, test.depth, side)
				alphaBetaResult := alphaBeta.Search(board, test.depth, side, -Infinity, Infinity)
				negamaxResult := negamax.Search(board, test.depth, side, side.Color(), -Infinity, Infinity)

				require.Equal(t, minimaxResult.Score, alphaBetaResult.Score, "board %s", othello.FormatPosition(board, side))
				require.Equal(t, minimaxResult.Score, side.Color()*negamaxResult.Score, "board %s", othello.FormatPosition(board, side))

				require.Equal(t, minimaxResult.Move, alphaBetaResult.Move, "board %s", othello.FormatPosition(board, side))
				require.Equal(t, alphaBetaResult.Move, negamaxResult.Move, "board %s", othello.FormatPosition(board, side))

				minimaxNodes += minimax.nodes
				alphaBetaNodes += alphaBeta.nodes
				negamaxNodes += negamax.nodes

				require.LessOrEqual(t, alphaBeta.nodes, minimax.nodes)
				require.LessOrEqual(t, negamax.nodes, minimax.nodes)

				move, ok := alphaBeta.GetMove(board)
				require.Equal(t, board.HasMoves(side), ok)
				if ok {
					require.True(t, board.IsLegal(move, side))
				}
			}

			require.Less(t, alphaBetaNodes, minimaxNodes)
			require.Less(t, negamaxNodes, minimaxNodes)
		})
	}
}

func TestGetMoveAgreesAcrossStrategies(t *testing.T) {
	boards, sides := randomBoards(t, 30, 5)

	for i, board := range boards {
		side := sides[i]

		minimaxMove, minimaxOk := NewMinimax(side, 3, eval.Heuristic{}).GetMove(board)
		alphaBetaMove, alphaBetaOk := NewAlphaBeta(side, 3, eval.Heuristic{}).GetMove(board)
		negamaxMove, negamaxOk := NewNegamax(side, 3, eval.Heuristic{}).GetMove(board)

		require.Equal(t, minimaxOk, alphaBetaOk)
		require.Equal(t, alphaBetaOk, negamaxOk)
		require.Equal(t, minimaxMove, alphaBetaMove)
		require.Equal(t, alphaBetaMove, negamaxMove)
	}
}

func TestGetMoveWithoutMoves(t *testing.T) {
	// o has no discs to flank with, x can play c1
	board := othello.NewBoardMust(mustMove(t, "a1"), mustMove(t, "b1"))

	players := []interface {
		GetMove(board othello.Board) (uint64, bool)
		Nodes() uint64
	}{
		NewMinimax(othello.O, 3, eval.Material{}),
		NewAlphaBeta(othello.O, 3, eval.Material{}),
		NewNegamax(othello.O, 3, eval.Material{}),
	}

	for _, player := range players {
		move, ok := player.GetMove(board)
		require.False(t, ok)
		require.Zero(t, move)
		require.Zero(t, player.Nodes())
	}
}

func TestForcedPassConsumesPly(t *testing.T) {
	// o must pass, then x plays c1 and wipes o out.
	board := othello.NewBoardMust(mustMove(t, "a1"), mustMove(t, "b1"))
	side := othello.O

	tests := []struct {
		name  string
		depth int
		want  int
	}{
		{name: "pass reaches depth zero", depth: 1, want: 0},
		{name: "x replies after the pass", depth: 2, want: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			minimax := NewMinimax(side, test.depth, eval.Material{})
			result := minimax.Search(board, test.depth, side)
			require.Equal(t, Result{Score: test.want}, result)
			require.Equal(t, uint64(test.depth+1), minimax.nodes)

			alphaBeta := NewAlphaBeta(side, test.depth, eval.Material{})
			require.Equal(t, Result{Score: test.want}, alphaBeta.Search(board, test.depth, side, -Infinity, Infinity))

			negamax := NewNegamax(side, test.depth, eval.Material{})
			require.Equal(t, Result{Score: -test.want}, negamax.Search(board, test.depth, side, side.Color(), -Infinity, Infinity))
		})
	}
}

func TestTerminalScoring(t *testing.T) {
	// Neither side can move and x has more discs.
	board := othello.NewBoardMust(0x0000000000000007, 0x0000000000000000)
	require.True(t, board.IsOver())

	minimax := NewMinimax(othello.X, 5, eval.Heuristic{})
	require.Equal(t, Result{Score: eval.WinScore}, minimax.Search(board, 5, othello.X))
	require.Equal(t, uint64(1), minimax.nodes)

	negamax := NewNegamax(othello.O, 5, eval.Heuristic{})
	require.Equal(t, Result{Score: -eval.WinScore}, negamax.Search(board, 5, othello.O, -1, -Infinity, Infinity))
}

func TestTiesKeepFirstMove(t *testing.T) {
	board := othello.NewBoardStart()

	tests := []struct {
		name      string
		side      othello.Side
		wantMove  string
		wantScore int
	}{
		// Every opening move scores +3 for x at depth 1.
		{name: "x", side: othello.X, wantMove: "d3", wantScore: 3},
		{name: "o", side: othello.O, wantMove: "e3", wantScore: -3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			want := mustMove(t, test.wantMove)

			minimax := NewMinimax(test.side, 1, eval.Material{})
			require.Equal(t, Result{Score: test.wantScore, Move: want}, minimax.Search(board, 1, test.side))

			alphaBeta := NewAlphaBeta(test.side, 1, eval.Material{})
			require.Equal(t, Result{Score: test.wantScore, Move: want}, alphaBeta.Search(board, 1, test.side, -Infinity, Infinity))

			negamax := NewNegamax(test.side, 1, eval.Material{})
			result := negamax.Search(board, 1, test.side, test.side.Color(), -Infinity, Infinity)
			require.Equal(t, Result{Score: test.side.Color() * test.wantScore, Move: want}, result)
		})
	}
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	boards, sides := randomBoards(t, 10, 9)

	for i, board := range boards {
		before := board
		NewNegamax(sides[i], 4, eval.Heuristic{}).GetMove(board)
		NewMinimax(sides[i], 3, eval.Heuristic{}).GetMove(board)
		require.Equal(t, before, board)
	}
}

func TestConstructors(t *testing.T) {
	minimax := NewMinimax(othello.O, 0, eval.Material{})
	require.Equal(t, othello.O, minimax.Symbol())
	require.Equal(t, 1, minimax.Depth())

	alphaBeta := NewAlphaBeta(othello.X, 6, eval.Material{})
	require.Equal(t, othello.X, alphaBeta.Symbol())
	require.Equal(t, 6, alphaBeta.Depth())

	negamax := NewNegamax(othello.X, -3, eval.Heuristic{})
	require.Equal(t, 1, negamax.Depth())
}

func TestNew(t *testing.T) {
	for _, algorithm := range Algorithms() {
		strategy, err := New(algorithm, othello.O, 3, eval.Material{})
		require.NoError(t, err)
		require.Equal(t, othello.O, strategy.Symbol())
		require.Equal(t, 3, strategy.Depth())
	}

	_, err := New("mtdf", othello.X, 3, eval.Material{})
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAnalyzeScoresFromX(t *testing.T) {
	boards, sides := randomBoards(t, 20, 21)

	for i, board := range boards {
		side := sides[i]

		var results []Result
		for _, algorithm := range Algorithms() {
			strategy, err := New(algorithm, side, 3, eval.Heuristic{})
			require.NoError(t, err)

			result := strategy.Analyze(board)
			require.NotZero(t, strategy.Nodes())
			results = append(results, result)
		}

		require.Equal(t, results[0], results[1])
		require.Equal(t, results[1], results[2])

		if !board.HasMoves(side) {
			require.Zero(t, results[0].Move)
		}
	}
}
