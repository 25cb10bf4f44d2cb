package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lk16/reversi-search/internal/othello"
	"github.com/lk16/reversi-search/internal/player"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrWrongSeat   = errors.New("player does not play this side")
)

// Outcome is the result of a finished game.
type Outcome string

const (
	XWin Outcome = "x_win"
	OWin Outcome = "o_win"
	Draw Outcome = "draw"
)

// Score holds the disc count of both sides.
type Score struct {
	X int `json:"x"`
	O int `json:"o"`
}

// Outcome returns who won.
func (s Score) Outcome() Outcome {
	switch {
	case s.X > s.O:
		return XWin
	case s.O > s.X:
		return OWin
	default:
		return Draw
	}
}

// Turn is one entry of the game record. Move is 0 for a pass.
type Turn struct {
	Side  othello.Side
	Move  uint64
	Board othello.Board
}

// Field returns the move in field notation.
func (t Turn) Field() string {
	return othello.MoveToField(t.Move)
}

// Game alternates two players, starting with x, until neither side can move.
type Game struct {
	players [2]player.Player
	board   othello.Board
	turn    othello.Side
	moves   []Turn
	onMove  func(Turn)
}

// New creates a game. Each player must play the seat it is given.
func New(x, o player.Player) (*Game, error) {
	if x.Symbol() != othello.X {
		return nil, fmt.Errorf("%w: x seat got %s", ErrWrongSeat, x.Symbol())
	}

	if o.Symbol() != othello.O {
		return nil, fmt.Errorf("%w: o seat got %s", ErrWrongSeat, o.Symbol())
	}

	g := &Game{players: [2]player.Player{x, o}}
	g.Reset()
	return g, nil
}

// Reset restores the start board and clears the record.
func (g *Game) Reset() {
	g.board = othello.NewBoardStart()
	g.turn = othello.X
	g.moves = make([]Turn, 0, othello.Squares)
}

// OnMove registers a callback that runs after every turn, passes included.
func (g *Game) OnMove(f func(Turn)) {
	g.onMove = f
}

// Board returns the current board.
func (g *Game) Board() othello.Board {
	return g.board
}

// Moves returns a copy of the game record.
func (g *Game) Moves() []Turn {
	moves := make([]Turn, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// Score returns the current disc counts.
func (g *Game) Score() Score {
	return Score{X: g.board.Count(othello.X), O: g.board.Count(othello.O)}
}

// Step plays a single turn. A player without legal moves passes.
func (g *Game) Step() error {
	current := g.players[g.turn]

	move, ok := current.GetMove(g.board)
	if !ok {
		move = 0
		if g.board.HasMoves(g.turn) {
			return fmt.Errorf("%w: %s passed with moves available", ErrIllegalMove, g.turn)
		}
	} else {
		if !g.board.IsLegal(move, g.turn) {
			return fmt.Errorf("%w: %s played %s", ErrIllegalMove, g.turn, othello.MoveToField(move))
		}
		g.board.ApplyMove(move, g.turn)
	}

	turn := Turn{Side: g.turn, Move: move, Board: g.board}
	g.moves = append(g.moves, turn)

	if g.onMove != nil {
		g.onMove(turn)
	}

	g.turn = g.turn.Opponent()
	return nil
}

// Run plays until the game is over and returns the final disc counts.
func (g *Game) Run(ctx context.Context) (Score, error) {
	for !g.board.IsOver() {
		if err := ctx.Err(); err != nil {
			return g.Score(), err
		}

		if err := g.Step(); err != nil {
			return g.Score(), err
		}
	}

	score := g.Score()
	slog.Debug("game over", "x", score.X, "o", score.O, "outcome", score.Outcome(), "turns", len(g.moves))
	return score, nil
}
