package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/deckclash/internal/content"
	"github.com/peterkuimelis/deckclash/internal/session"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	return NewTools(session.NewManager(cat, session.Config{Seed: 11}))
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func decodeResponse(t *testing.T, text string) ToolResponse {
	t.Helper()
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	return resp
}

func TestListTools(t *testing.T) {
	tools := newTestTools(t)

	text, isErr := call(t, tools.handleListStarters, nil)
	require.False(t, isErr)
	var starters []StarterInfo
	require.NoError(t, json.Unmarshal([]byte(text), &starters))
	require.Len(t, starters, 2)
	assert.NotEmpty(t, starters[0].Deck)

	text, isErr = call(t, tools.handleListOpponents, nil)
	require.False(t, isErr)
	var opps []OpponentInfo
	require.NoError(t, json.Unmarshal([]byte(text), &opps))
	assert.NotEmpty(t, opps)
}

func TestStartPlayEndTurn(t *testing.T) {
	tools := newTestTools(t)

	text, isErr := call(t, tools.handleStartBattle, map[string]any{"starter": "warrior", "difficulty": "easy"})
	require.False(t, isErr, text)
	started := decodeResponse(t, text)
	require.NotEmpty(t, started.BattleID)
	require.NotNil(t, started.State)
	assert.True(t, started.State.IsYourTurn)
	assert.Contains(t, started.Hint, "Your turn")

	// Play the first playable card, if any.
	for _, cv := range started.State.You.Hand {
		if !cv.Playable {
			continue
		}
		text, isErr = call(t, tools.handlePlayCard, map[string]any{"battle_id": started.BattleID, "hand_index": float64(cv.Index)})
		require.False(t, isErr, text)
		played := decodeResponse(t, text)
		assert.NotEmpty(t, played.Log)
		break
	}

	text, isErr = call(t, tools.handleEndTurn, map[string]any{"battle_id": started.BattleID})
	require.False(t, isErr, text)
	ended := decodeResponse(t, text)
	assert.NotEmpty(t, ended.Log)

	text, isErr = call(t, tools.handleGetBattleState, map[string]any{"battle_id": started.BattleID})
	require.False(t, isErr, text)
	state := decodeResponse(t, text)
	assert.Equal(t, ended.State.Round, state.State.Round)

	text, isErr = call(t, tools.handleListBattles, nil)
	require.False(t, isErr)
	var battles []session.Summary
	require.NoError(t, json.Unmarshal([]byte(text), &battles))
	require.Len(t, battles, 1)
	assert.Equal(t, started.BattleID, battles[0].ID)
}

func TestToolErrors(t *testing.T) {
	tools := newTestTools(t)

	tests := []struct {
		name     string
		handler  func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args     map[string]any
		contains string
	}{
		{"missing starter", tools.handleStartBattle, map[string]any{}, "starter is required"},
		{"unknown starter", tools.handleStartBattle, map[string]any{"starter": "bard"}, "list_starters"},
		{"bad difficulty", tools.handleStartBattle, map[string]any{"starter": "rogue", "difficulty": "insane"}, "unknown difficulty"},
		{"unknown battle", tools.handlePlayCard, map[string]any{"battle_id": "nope", "hand_index": float64(0)}, "battle not found"},
		{"negative index", tools.handlePlayCard, map[string]any{"battle_id": "nope", "hand_index": float64(-1)}, "non-negative"},
		{"end turn unknown battle", tools.handleEndTurn, map[string]any{"battle_id": "nope"}, "start_battle"},
		{"state unknown battle", tools.handleGetBattleState, map[string]any{"battle_id": "nope"}, "battle not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, tt.handler, tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.contains)
		})
	}
}

func TestNewToolResponseHighlightsLog(t *testing.T) {
	resp := newToolResponse(&session.Outcome{
		ID:    "b1",
		Log:   []string{"Hero deals 6 damage to Rat"},
		State: &session.StateView{Over: true, Winner: "Hero", Result: "Hero wins"},
	})
	assert.Equal(t, []string{"Hero deals 6 **damage** to Rat"}, resp.Log)
	assert.True(t, resp.GameOver)
	assert.Equal(t, "Hero", resp.Winner)
	assert.Contains(t, resp.Hint, "over")
}
