package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/game"
	"github.com/lk16/reversi-search/internal/othello"
	"github.com/lk16/reversi-search/internal/player"
	"github.com/lk16/reversi-search/internal/search"
)

// MoveRequest asks the server for the best move of side on board.
type MoveRequest struct {
	Board     string `json:"board"`
	Side      string `json:"side"`
	Algorithm string `json:"algorithm"`
	Evaluator string `json:"evaluator"`
	Depth     int    `json:"depth"`
}

// Parse validates the request and returns the board and side to move.
func (r *MoveRequest) Parse() (othello.Board, othello.Side, error) {
	board, err := othello.NewBoardFromString(r.Board)
	if err != nil {
		return othello.Board{}, othello.X, fmt.Errorf("invalid board: %w", err)
	}

	side, err := othello.ParseSide(r.Side)
	if err != nil {
		return othello.Board{}, othello.X, err
	}

	if !lo.Contains(search.Algorithms(), r.Algorithm) {
		return othello.Board{}, othello.X, fmt.Errorf("algorithm must be one of: %v", search.Algorithms())
	}

	if !lo.Contains(eval.Names(), r.Evaluator) {
		return othello.Board{}, othello.X, fmt.Errorf("evaluator must be one of: %v", eval.Names())
	}

	if r.Depth < 1 || r.Depth > player.MaxDepth {
		return othello.Board{}, othello.X, fmt.Errorf("depth must be between 1 and %d", player.MaxDepth)
	}

	return board, side, nil
}

// CacheKey identifies the request in the move cache.
func (r *MoveRequest) CacheKey() string {
	return fmt.Sprintf("move:%s:%s:%s:%s:%d", strings.ToLower(r.Board), strings.ToLower(r.Side), r.Algorithm, r.Evaluator, r.Depth)
}

// MoveResponse is the answer to a MoveRequest. Score is from x's point of view.
type MoveResponse struct {
	Move   uint64 `json:"move"`
	Field  string `json:"field"`
	Pass   bool   `json:"pass"`
	Score  int    `json:"score"`
	Nodes  uint64 `json:"nodes"`
	Cached bool   `json:"cached"`
}

// NewMoveResponse converts a search result.
func NewMoveResponse(result search.Result, nodes uint64) MoveResponse {
	return MoveResponse{
		Move:  result.Move,
		Field: othello.MoveToField(result.Move),
		Pass:  result.Move == 0,
		Score: result.Score,
		Nodes: nodes,
	}
}

// PlayerSpec describes one seat of a game played by the server.
type PlayerSpec struct {
	Kind      string `json:"kind"`
	Depth     int    `json:"depth"`
	Evaluator string `json:"evaluator"`
	Seed      int64  `json:"seed"`
}

// ToSpec returns the player spec for side.
func (p PlayerSpec) ToSpec(side othello.Side) player.Spec {
	return player.Spec{
		Kind:      player.Kind(p.Kind),
		Side:      side,
		Depth:     p.Depth,
		Evaluator: p.Evaluator,
		Seed:      p.Seed,
	}
}

// GameRequest asks the server to play a game between two players.
type GameRequest struct {
	X PlayerSpec `json:"x"`
	O PlayerSpec `json:"o"`
}

// Players builds both players.
func (r *GameRequest) Players() (player.Player, player.Player, error) {
	x, err := player.New(r.X.ToSpec(othello.X))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid x player: %w", err)
	}

	o, err := player.New(r.O.ToSpec(othello.O))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid o player: %w", err)
	}

	return x, o, nil
}

// GameRecord is a finished game as stored in the database.
type GameRecord struct {
	ID        uuid.UUID `json:"id"         db:"id"`
	XPlayer   string    `json:"x_player"   db:"x_player"`
	OPlayer   string    `json:"o_player"   db:"o_player"`
	Moves     Fields    `json:"moves"      db:"moves"`
	XDiscs    int       `json:"x_discs"    db:"x_discs"`
	ODiscs    int       `json:"o_discs"    db:"o_discs"`
	Outcome   string    `json:"outcome"    db:"outcome"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewGameRecord creates a record with a fresh id for a finished game.
func NewGameRecord(request GameRequest, turns []game.Turn, score game.Score) GameRecord {
	return GameRecord{
		ID:      uuid.New(),
		XPlayer: request.X.ToSpec(othello.X).String(),
		OPlayer: request.O.ToSpec(othello.O).String(),
		Moves: lo.Map(turns, func(turn game.Turn, _ int) string {
			return turn.Field()
		}),
		XDiscs:  score.X,
		ODiscs:  score.O,
		Outcome: string(score.Outcome()),
	}
}

// Fields is a list of moves in field notation. It is stored as a postgres text array.
type Fields []string

// Scan implements the sql.Scanner interface for Fields.
func (f *Fields) Scan(value interface{}) error {
	var s string

	switch v := value.(type) {
	case []byte:
		if v == nil {
			return errors.New("cannot scan nil into Fields")
		}
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("cannot scan %T into Fields", value)
	}

	// We should have a string that looks like "{d3,c5,--}"
	s = strings.Trim(s, "{}")

	if s == "" {
		*f = Fields{}
		return nil
	}

	parts := strings.Split(s, ",")
	for _, part := range parts {
		if _, err := othello.FieldToMove(part); err != nil {
			return fmt.Errorf("cannot convert %s to move: %w", part, err)
		}
	}
	*f = parts

	return nil
}

// Value implements the driver.Valuer interface for Fields.
func (f Fields) Value() (driver.Value, error) {
	return pq.Array([]string(f)).Value()
}

// GameStats counts the outcomes of all games played by the server.
type GameStats struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

// Total returns the number of games counted.
func (s GameStats) Total() int {
	return s.XWins + s.OWins + s.Draws
}

type VersionResponse struct {
	Commit string `json:"commit"`
}
