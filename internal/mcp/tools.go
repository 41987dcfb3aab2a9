package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/deckclash/internal/game"
	"github.com/peterkuimelis/deckclash/internal/session"
)

// Tools exposes a session manager as MCP tools. An agent plays the player
// side; the opponent is always the built-in AI.
type Tools struct {
	mgr *session.Manager
}

// NewTools creates the tool set over a session manager.
func NewTools(mgr *session.Manager) *Tools {
	return &Tools{mgr: mgr}
}

// RegisterTools adds all battle tools to the MCP server.
func RegisterTools(s *server.MCPServer, mgr *session.Manager) {
	t := NewTools(mgr)
	s.AddTool(listStartersTool(), t.handleListStarters)
	s.AddTool(listOpponentsTool(), t.handleListOpponents)
	s.AddTool(startBattleTool(), t.handleStartBattle)
	s.AddTool(playCardTool(), t.handlePlayCard)
	s.AddTool(endTurnTool(), t.handleEndTurn)
	s.AddTool(getBattleStateTool(), t.handleGetBattleState)
	s.AddTool(listBattlesTool(), t.handleListBattles)
}

// --- Tool definitions ---

func listStartersTool() mcp.Tool {
	return mcp.NewTool("list_starters",
		mcp.WithDescription("List the starter loadouts (health, energy, passives and deck) a battle can be started with. Read-only."),
	)
}

func listOpponentsTool() mcp.Tool {
	return mcp.NewTool("list_opponents",
		mcp.WithDescription("List the opponents and their difficulty tiers. Read-only."),
	)
}

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a deck battle against a random AI opponent of the chosen difficulty. "+
			"Returns the battle id, the opening log, and the state. If the opponent moves first its turn is already played."),
		mcp.WithString("starter", mcp.Required(), mcp.Description("Starter id from list_starters")),
		mcp.WithString("difficulty", mcp.Description("Easy, Normal, Hard or Boss (default Normal)")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand. A play the rules reject leaves the battle unchanged and explains why in the log."),
		mcp.WithString("battle_id", mcp.Required(), mcp.Description("Battle id returned by start_battle")),
		mcp.WithNumber("hand_index", mcp.Required(), mcp.Description("0-based index of the card in state.you.hand")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn. The opponent's turn is played out and the log of both turns is returned."),
		mcp.WithString("battle_id", mcp.Required(), mcp.Description("Battle id returned by start_battle")),
	)
}

func getBattleStateTool() mcp.Tool {
	return mcp.NewTool("get_battle_state",
		mcp.WithDescription("Get the current state and recent log of a battle without acting. Read-only."),
		mcp.WithString("battle_id", mcp.Required(), mcp.Description("Battle id returned by start_battle")),
	)
}

func listBattlesTool() mcp.Tool {
	return mcp.NewTool("list_battles",
		mcp.WithDescription("List running and finished battles in this process. Read-only."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleListStarters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []StarterInfo
	for _, s := range t.mgr.Catalog().Starters() {
		si := StarterInfo{ID: s.ID, Name: s.Name, MaxHealth: s.MaxHealth, MaxEnergy: s.MaxEnergy}
		for _, p := range s.Passives {
			si.Passives = append(si.Passives, p.Name)
		}
		for _, c := range s.Deck {
			si.Deck = append(si.Deck, c.Name)
		}
		out = append(out, si)
	}
	return mcp.NewToolResultText(respondJSON(out)), nil
}

func (t *Tools) handleListOpponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []OpponentInfo
	for _, o := range t.mgr.Catalog().Opponents() {
		oi := OpponentInfo{ID: o.ID, Name: o.Name, Difficulty: o.Difficulty.String(), MaxHealth: o.MaxHealth}
		for _, p := range o.Passives {
			oi.Passives = append(oi.Passives, p.Name)
		}
		out = append(out, oi)
	}
	return mcp.NewToolResultText(respondJSON(out)), nil
}

func (t *Tools) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	starter := request.GetString("starter", "")
	if starter == "" {
		return mcp.NewToolResultError("starter is required. Use list_starters to see the options."), nil
	}
	diff := game.DifficultyNormal
	if name := request.GetString("difficulty", ""); name != "" {
		d, err := game.ParseDifficulty(name)
		if err != nil {
			return mcp.NewToolResultErrorf("%v. Choose Easy, Normal, Hard or Boss.", err), nil
		}
		diff = d
	}

	out, err := t.mgr.Start(starter, diff)
	if err != nil {
		return toolError("Failed to start battle", err), nil
	}
	return mcp.NewToolResultText(respondJSON(newToolResponse(out))), nil
}

func (t *Tools) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("battle_id", "")
	index := request.GetInt("hand_index", -1)
	if index < 0 {
		return mcp.NewToolResultError("hand_index must be a non-negative integer."), nil
	}

	out, err := t.mgr.Play(id, index)
	if err != nil {
		return toolError("Could not play card", err), nil
	}
	return mcp.NewToolResultText(respondJSON(newToolResponse(out))), nil
}

func (t *Tools) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := t.mgr.EndTurn(request.GetString("battle_id", ""))
	if err != nil {
		return toolError("Could not end turn", err), nil
	}
	return mcp.NewToolResultText(respondJSON(newToolResponse(out))), nil
}

func (t *Tools) handleGetBattleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("battle_id", "")
	sv, err := t.mgr.Snapshot(id)
	if err != nil {
		return toolError("Could not read battle", err), nil
	}
	resp := newToolResponse(&session.Outcome{ID: id, Log: sv.Log, State: sv})
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleListBattles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(t.mgr.List())), nil
}

// toolError turns a session error into a tool error with a next-step hint.
func toolError(prefix string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, session.ErrBattleNotFound):
		return mcp.NewToolResultErrorf("%s: %v. Use start_battle or list_battles.", prefix, err)
	case errors.Is(err, session.ErrBattleOver):
		return mcp.NewToolResultErrorf("%s: %v. Use start_battle to play again.", prefix, err)
	case errors.Is(err, session.ErrUnknownStarter):
		return mcp.NewToolResultErrorf("%s: %v. Use list_starters to see the options.", prefix, err)
	case errors.Is(err, session.ErrBadCardIndex):
		return mcp.NewToolResultErrorf("%s: %v. Use get_battle_state to see your hand.", prefix, err)
	}
	return mcp.NewToolResultErrorf("%s: %v", prefix, err)
}
