package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/peterkuimelis/deckclash/internal/log"
	"github.com/peterkuimelis/deckclash/internal/session"
)

// ToolResponse is the JSON envelope returned by the battle tools.
type ToolResponse struct {
	BattleID string             `json:"battle_id"`
	Log      []string           `json:"log"`
	State    *session.StateView `json:"state,omitempty"`
	GameOver bool               `json:"game_over"`
	Winner   string             `json:"winner,omitempty"`
	Result   string             `json:"result,omitempty"`
	Hint     string             `json:"hint,omitempty"`
}

// StarterInfo and OpponentInfo describe content for the listing tools.
type StarterInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MaxHealth int      `json:"max_health"`
	MaxEnergy int      `json:"max_energy"`
	Passives  []string `json:"passives,omitempty"`
	Deck      []string `json:"deck"`
}

type OpponentInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Difficulty string   `json:"difficulty"`
	MaxHealth  int      `json:"max_health"`
	Passives   []string `json:"passives,omitempty"`
}

// newToolResponse builds a response from a session outcome. Log lines are
// highlighted for markdown display.
func newToolResponse(out *session.Outcome) *ToolResponse {
	resp := &ToolResponse{BattleID: out.ID, Log: make([]string, 0, len(out.Log)), State: out.State}
	for _, l := range out.Log {
		resp.Log = append(resp.Log, log.Highlight(l))
	}
	if sv := out.State; sv != nil {
		resp.GameOver = sv.Over
		resp.Winner = sv.Winner
		resp.Result = sv.Result
		switch {
		case sv.Over:
			resp.Hint = "The battle is over. Use start_battle to play again."
		case sv.IsYourTurn:
			resp.Hint = "Your turn: play_card with a playable hand index, or end_turn."
		}
	}
	return resp
}

// respondJSON marshals a tool response to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
