package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckclash/internal/game"
	"github.com/peterkuimelis/deckclash/internal/session"
)

// Handler turns one client's messages into session calls and answers each
// with exactly one server message. It owns at most one battle.
type Handler struct {
	mgr    *session.Manager
	logger *zap.Logger
	remote string

	battleID string
}

// NewHandler creates a handler for the client at remote.
func NewHandler(mgr *session.Manager, logger *zap.Logger, remote string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{mgr: mgr, logger: logger, remote: remote}
}

// Controller drives one JSON-over-TCP client connection.
type Controller struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
	h    *Handler
}

// NewController creates a controller for a connection.
func NewController(conn net.Conn, mgr *session.Manager, logger *zap.Logger) *Controller {
	return &Controller{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		h:    NewHandler(mgr, logger, conn.RemoteAddr().String()),
	}
}

func (c *Controller) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(msg)
}

// Serve sends the welcome message and handles requests until the client
// leaves or ctx is cancelled. The connection's battle is closed
// on return.
func (c *Controller) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()
	defer c.h.Close()

	if err := c.send(c.h.Welcome()); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}

	for {
		var msg ClientMessage
		if err := c.dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		if msg.Type == MsgQuit {
			return nil
		}
		if err := c.send(c.h.Handle(msg)); err != nil {
			return fmt.Errorf("send %s reply: %w", msg.Type, err)
		}
	}
}

// Welcome lists the starters and difficulties a client may pick.
func (h *Handler) Welcome() ServerMessage {
	msg := ServerMessage{Type: MsgWelcome}
	for _, s := range h.mgr.Catalog().Starters() {
		msg.Starters = append(msg.Starters, StarterView{
			ID:        s.ID,
			Name:      s.Name,
			MaxHealth: s.MaxHealth,
			DeckSize:  len(s.Deck),
		})
	}
	for _, d := range []game.Difficulty{game.DifficultyEasy, game.DifficultyNormal, game.DifficultyHard, game.DifficultyBoss} {
		msg.Difficulties = append(msg.Difficulties, d.String())
	}
	return msg
}

// Handle answers one client message. Quit is not handled here; transports
// treat it as end of stream.
func (h *Handler) Handle(msg ClientMessage) ServerMessage {
	switch msg.Type {
	case MsgStart:
		if h.battleID != "" {
			return errorMessage(errors.New("battle already started on this connection"))
		}
		diff := game.DifficultyNormal
		if msg.Difficulty != "" {
			d, err := game.ParseDifficulty(msg.Difficulty)
			if err != nil {
				return errorMessage(err)
			}
			diff = d
		}
		out, err := h.mgr.Start(msg.Starter, diff)
		if err != nil {
			return errorMessage(err)
		}
		h.battleID = out.ID
		h.logger.Debug("connection started battle",
			zap.String("remote", h.remote),
			zap.String("id", out.ID))
		return outcomeMessage(out)

	case MsgPlay:
		if h.battleID == "" {
			return errorMessage(errNoBattle)
		}
		out, err := h.mgr.Play(h.battleID, msg.Index)
		if err != nil {
			return errorMessage(err)
		}
		return outcomeMessage(out)

	case MsgEndTurn:
		if h.battleID == "" {
			return errorMessage(errNoBattle)
		}
		out, err := h.mgr.EndTurn(h.battleID)
		if err != nil {
			return errorMessage(err)
		}
		return outcomeMessage(out)

	case MsgState:
		if h.battleID == "" {
			return errorMessage(errNoBattle)
		}
		sv, err := h.mgr.Snapshot(h.battleID)
		if err != nil {
			return errorMessage(err)
		}
		return outcomeMessage(&session.Outcome{ID: h.battleID, State: sv})
	}
	return errorMessage(fmt.Errorf("unknown message type %q", msg.Type))
}

// BattleID returns the id of the handler's battle, or "" before start.
func (h *Handler) BattleID() string {
	return h.battleID
}

// Close discards the handler's battle.
func (h *Handler) Close() {
	if h.battleID == "" {
		return
	}
	_ = h.mgr.Close(h.battleID)
	h.battleID = ""
}

var errNoBattle = errors.New("no battle started; send a start message first")

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Error: err.Error()}
}

func outcomeMessage(out *session.Outcome) ServerMessage {
	msg := ServerMessage{Type: MsgUpdate, Log: out.Log, State: out.State}
	if out.State != nil && out.State.Over {
		msg.Type = MsgGameOver
		msg.Winner = out.State.Winner
		msg.Result = out.State.Result
	}
	return msg
}
