package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemoryLoggerFilters(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, "Hero"))
	l.Log(NewDrawEvent(1, "Hero", "Strike"))
	l.Log(NewDrawEvent(1, "Hero", "Defend"))

	assert.Len(t, l.Events(), 3)
	draws := l.EventsOfType(EventDraw)
	assert.Len(t, draws, 2)
	assert.Equal(t, "Defend", l.LastEvent().Card)
}

func TestTextLoggerWritesFormattedLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewPlayEvent(2, "Hero", "Strike", 1))

	assert.Equal(t, "R2  Hero     | Hero plays Strike (cost 1)\n", buf.String())
	assert.Len(t, l.Events(), 1)
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "Goblin takes 6 **damage**", Highlight("Goblin takes 6 damage"))
	assert.Equal(t, "Hero gains **Bleeding** 2 (1 turns)", Highlight("Hero gains Bleeding 2 (1 turns)"))
	assert.Equal(t, "Hero plays Strike", Highlight("Hero plays Strike"))
}

func TestTail(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, []string{"b", "c"}, Tail(lines, 2))
	assert.Equal(t, lines, Tail(lines, 10))
	assert.Nil(t, Tail(lines, 0))
	assert.Nil(t, Tail(nil, 3))
}

func TestZapLoggerForwardsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLogger(zap.New(core))
	l.Log(NewPlayEvent(3, "Hero", "Bash", 2))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Hero plays Bash (cost 2)", entry.Message)
	assert.Equal(t, "Bash", entry.ContextMap()["card"])
	assert.Equal(t, int64(3), entry.ContextMap()["round"])
	assert.Len(t, l.Events(), 1)
}
