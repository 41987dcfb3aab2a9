package session

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckclash/internal/content"
	"github.com/peterkuimelis/deckclash/internal/game"
	"github.com/peterkuimelis/deckclash/internal/log"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	return NewManager(cat, Config{Seed: 11, Logger: zap.NewNop()})
}

func firstPlayable(v *StateView) int {
	for _, c := range v.You.Hand {
		if c.Playable {
			return c.Index
		}
	}
	return -1
}

func TestStartBattle(t *testing.T) {
	m := newTestManager(t)
	out, err := m.Start("warrior", game.DifficultyEasy)
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.NotEmpty(t, out.Log)
	v := out.State
	assert.Equal(t, "Warrior", v.You.Name)
	assert.Equal(t, "Easy", v.Difficulty)
	assert.True(t, v.IsYourTurn, "an opponent that goes first has already acted")
	assert.Len(t, v.You.Hand, v.You.HandCount)
	assert.Empty(t, v.Opponent.Hand)

	sum, err := m.Get(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warrior", sum.Player)
}

func TestEventsWriteTranscript(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	var battleIDs []string
	m := NewManager(cat, Config{Seed: 11, Logger: zap.NewNop(), Events: func(id string) log.EventLogger {
		battleIDs = append(battleIDs, id)
		return log.NewTextLogger(&buf)
	}})

	out, err := m.Start("warrior", game.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, []string{out.ID}, battleIDs)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Battle begins: Warrior vs")
	assert.Contains(t, buf.String(), "R1 ")

	before := len(lines)
	_, err = m.EndTurn(out.ID)
	require.NoError(t, err)
	assert.Greater(t, strings.Count(buf.String(), "\n"), before)
}

func TestStartErrors(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Start("paladin", game.DifficultyEasy)
	assert.ErrorIs(t, err, ErrUnknownStarter)
}

func TestPlayAndEndTurn(t *testing.T) {
	m := newTestManager(t)
	out, err := m.Start("warrior", game.DifficultyNormal)
	require.NoError(t, err)

	idx := firstPlayable(out.State)
	require.GreaterOrEqual(t, idx, 0, "warrior opening hand always has a playable card")
	energy := out.State.You.Energy
	cost := out.State.You.Hand[idx].Cost

	played, err := m.Play(out.ID, idx)
	require.NoError(t, err)
	assert.NotEmpty(t, played.Log)
	assert.Equal(t, energy-cost, played.State.You.Energy)

	ended, err := m.EndTurn(out.ID)
	require.NoError(t, err)
	if !ended.State.Over {
		assert.True(t, ended.State.IsYourTurn)
		assert.Equal(t, 2, ended.State.Round)
	}
}

func TestPlayBadIndex(t *testing.T) {
	m := newTestManager(t)
	out, err := m.Start("rogue", game.DifficultyEasy)
	require.NoError(t, err)

	_, err = m.Play(out.ID, 42)
	assert.ErrorIs(t, err, ErrBadCardIndex)
	_, err = m.Play(out.ID, -1)
	assert.ErrorIs(t, err, ErrBadCardIndex)
}

func TestUnknownBattle(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Play("nope", 0)
	assert.ErrorIs(t, err, ErrBattleNotFound)
	_, err = m.EndTurn("nope")
	assert.ErrorIs(t, err, ErrBattleNotFound)
	_, err = m.Snapshot("nope")
	assert.ErrorIs(t, err, ErrBattleNotFound)
	assert.ErrorIs(t, m.Close("nope"), ErrBattleNotFound)
}

func TestBattleOverRejectsActions(t *testing.T) {
	m := newTestManager(t)
	out, err := m.Start("warrior", game.DifficultyEasy)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		v, err := m.Snapshot(out.ID)
		require.NoError(t, err)
		if v.Over {
			break
		}
		if idx := firstPlayable(v); idx >= 0 {
			_, err = m.Play(out.ID, idx)
		} else {
			_, err = m.EndTurn(out.ID)
		}
		require.NoError(t, err)
	}

	v, err := m.Snapshot(out.ID)
	require.NoError(t, err)
	require.True(t, v.Over)
	assert.NotEmpty(t, v.Winner)

	_, err = m.Play(out.ID, 0)
	assert.ErrorIs(t, err, ErrBattleOver)
	_, err = m.EndTurn(out.ID)
	assert.ErrorIs(t, err, ErrBattleOver)
}

func TestListAndClose(t *testing.T) {
	m := newTestManager(t)
	a, err := m.Start("warrior", game.DifficultyEasy)
	require.NoError(t, err)
	b, err := m.Start("rogue", game.DifficultyBoss)
	require.NoError(t, err)

	list := m.List()
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	require.NoError(t, m.Close(a.ID))
	_, err = m.Get(a.ID)
	assert.ErrorIs(t, err, ErrBattleNotFound)
	assert.Len(t, m.List(), 1)
}

func TestConcurrentSessions(t *testing.T) {
	m := newTestManager(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := m.Start("rogue", game.DifficultyNormal)
			if !assert.NoError(t, err) {
				return
			}
			for turn := 0; turn < 3; turn++ {
				if _, err := m.EndTurn(out.ID); err != nil {
					assert.ErrorIs(t, err, ErrBattleOver)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Len(t, m.List(), 8)
}
