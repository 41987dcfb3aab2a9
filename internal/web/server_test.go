package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/deckclash/internal/content"
	bnet "github.com/peterkuimelis/deckclash/internal/net"
	"github.com/peterkuimelis/deckclash/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	mgr := session.NewManager(cat, session.Config{Seed: 3})
	ts := httptest.NewServer(NewServer(mgr, nil).Handler())
	t.Cleanup(ts.Close)
	return ts, mgr
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestIndex(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<title>deckclash</title>")

	missing, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPICardsAndOpponents(t *testing.T) {
	ts, mgr := newTestServer(t)

	var cards []session.CardView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/cards", &cards))
	assert.Len(t, cards, len(mgr.Catalog().Cards()))
	found := false
	for _, c := range cards {
		if c.ID == "strike" {
			found = true
			assert.Equal(t, 6, c.Attack)
			assert.Contains(t, c.Tags, "Attack")
		}
	}
	assert.True(t, found, "strike missing from /api/cards")

	var opps []OpponentInfo
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/opponents", &opps))
	assert.Len(t, opps, len(mgr.Catalog().Opponents()))
	for _, o := range opps {
		assert.NotEmpty(t, o.Difficulty)
		assert.Positive(t, o.MaxHealth)
	}
}

func TestAPIBattleNotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	var sv session.StateView
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/battles/missing", &sv))
}

func TestWebSocketBattle(t *testing.T) {
	ts, mgr := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var welcome bnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &welcome))
	assert.Equal(t, bnet.MsgWelcome, welcome.Type)
	assert.Len(t, welcome.Starters, 2)

	require.NoError(t, wsjson.Write(ctx, conn, bnet.ClientMessage{Type: bnet.MsgStart, Starter: "warrior", Difficulty: "Boss"}))
	var started bnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &started))
	require.Equal(t, bnet.MsgUpdate, started.Type, started.Error)
	assert.Equal(t, "Boss", started.State.Difficulty)

	var battles []session.Summary
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/battles", &battles))
	require.Len(t, battles, 1)
	assert.Equal(t, started.State.ID, battles[0].ID)

	var sv session.StateView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/battles/"+battles[0].ID, &sv))
	assert.Equal(t, "Warrior", sv.You.Name)

	require.NoError(t, wsjson.Write(ctx, conn, bnet.ClientMessage{Type: bnet.MsgPlay, Index: 42}))
	var bad bnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &bad))
	assert.Equal(t, bnet.MsgError, bad.Type)

	require.NoError(t, wsjson.Write(ctx, conn, bnet.ClientMessage{Type: bnet.MsgQuit}))
	assert.Eventually(t, func() bool { return len(mgr.List()) == 0 }, 5*time.Second, 10*time.Millisecond)
}
