package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/lk16/reversi-search/internal/game"
	"github.com/lk16/reversi-search/internal/models"
	"github.com/lk16/reversi-search/internal/repository"
	"github.com/lk16/reversi-search/internal/services"
)

const (
	moveTimeout = 10 * time.Second
	playTimeout = 30 * time.Second
)

// Conn is the part of a websocket connection used by Handler.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	services *services.Services
	ws       Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, services *services.Services) *Handler {
	return &Handler{services: services, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case EventMoveRequest:
		return h.handleMoveRequest(req)
	case EventPlayRequest:
		return h.handlePlayRequest(req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle handles the websocket connection until the client disconnects or
// sends a malformed message.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		respData, err := h.handleMessage(req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleMoveRequest(req *Incoming) (*Outgoing, error) {
	var reqData models.MoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws move request unmarshal error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), moveTimeout)
	defer cancel()

	repo := repository.NewMoveRepositoryFromServices(h.services)

	response, err := repo.BestMove(ctx, reqData)
	if errors.Is(err, repository.ErrInvalidRequest) {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find move: %w", err)
	}

	return &Outgoing{ID: req.ID, Data: response}, nil
}

// handlePlayRequest plays a game and streams every turn before returning the final record.
func (h *Handler) handlePlayRequest(req *Incoming) (*Outgoing, error) {
	var reqData models.GameRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws play request unmarshal error: %w", err)
	}

	x, o, err := reqData.Players()
	if err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	g, err := game.New(x, o)
	if err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
	defer cancel()

	var writeErr error
	g.OnMove(func(turn game.Turn) {
		if writeErr != nil {
			return
		}

		writeErr = h.writeMessage(&Outgoing{
			ID: req.ID,
			Data: TurnMessage{
				Side:  turn.Side.String(),
				Field: turn.Field(),
				Board: turn.Board.String(),
			},
		})
		if writeErr != nil {
			cancel()
		}
	})

	score, err := g.Run(ctx)
	if writeErr != nil {
		return nil, writeErr
	}

	if err != nil {
		return nil, fmt.Errorf("failed to play game: %w", err)
	}

	record := models.NewGameRecord(reqData, g.Moves(), score)

	repo := repository.NewGameRepositoryFromServices(h.services)
	if err = repo.SaveGame(ctx, &record); err != nil && !errors.Is(err, repository.ErrStorageDisabled) {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return &Outgoing{ID: req.ID, Data: record}, nil
}
