package net

import "github.com/peterkuimelis/deckclash/internal/session"

// Message types for the line-delimited JSON protocol over TCP.

// Client → server message types.
const (
	MsgStart   = "start"
	MsgPlay    = "play"
	MsgEndTurn = "end_turn"
	MsgState   = "state"
	MsgQuit    = "quit"
)

// Server → client message types.
const (
	MsgWelcome  = "welcome"
	MsgUpdate   = "update"
	MsgError    = "error"
	MsgGameOver = "game_over"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "welcome"
	Starters     []StarterView `json:"starters,omitempty"`
	Difficulties []string      `json:"difficulties,omitempty"`

	// For "update" and "game_over"
	Log   []string           `json:"log,omitempty"`
	State *session.StateView `json:"state,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// StarterView is a selectable player loadout.
type StarterView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxHealth int    `json:"max_health"`
	DeckSize  int    `json:"deck_size"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "start"
	Starter    string `json:"starter,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`

	// For "play": position in hand, 0-indexed
	Index int `json:"index,omitempty"`
}
