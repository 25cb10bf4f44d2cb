package ws

import (
	"encoding/json"
)

const (
	EventMoveRequest = "move_request"
	EventPlayRequest = "play_request"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// TurnMessage is streamed for every turn of a game started with play_request.
type TurnMessage struct {
	Side  string `json:"side"`
	Field string `json:"field"`
	Board string `json:"board"`
}
