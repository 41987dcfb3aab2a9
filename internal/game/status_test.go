package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStackCaps(t *testing.T) {
	var l StatusList
	for i := 0; i < 10; i++ {
		l.Add(StatusBleeding, 2, 1)
		l.Add(StatusEvasive, 1, 1)
		assert.LessOrEqual(t, l.Stacks(StatusBleeding), 5)
		assert.LessOrEqual(t, l.Stacks(StatusEvasive), 3)
	}
	assert.Equal(t, 5, l.Stacks(StatusBleeding))
	assert.Equal(t, 3, l.Stacks(StatusEvasive))

	// a single oversized application is capped immediately
	var fresh StatusList
	fresh.Add(StatusBleeding, 9, 1)
	assert.Equal(t, 5, fresh.Stacks(StatusBleeding))
}

func TestStatusReplaceRefreshesDurationOnly(t *testing.T) {
	var l StatusList
	l.Add(StatusWeak, 1, 2)
	m := l.Add(StatusWeak, 4, 3)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Stacks)
	assert.Equal(t, 3, m.Duration)
	assert.Equal(t, 1, l.Len())
}

func TestStatusAdditiveRefreshesDuration(t *testing.T) {
	var l StatusList
	l.Add(StatusStrength, 1, 3)
	m := l.Add(StatusStrength, 2, 1)
	assert.Equal(t, 3, m.Stacks)
	assert.Equal(t, 1, m.Duration)
}

func TestStatusTick(t *testing.T) {
	var l StatusList
	l.Add(StatusBleeding, 3, 1)
	l.Add(StatusVulnerable, 1, 2)
	l.Add(StatusStrength, 1, 1)

	expired := l.Tick()
	assert.Equal(t, []StatusType{StatusStrength}, expired)
	assert.Equal(t, 3, l.Stacks(StatusBleeding))
	assert.Equal(t, 1, l.Get(StatusVulnerable).Duration)

	expired = l.Tick()
	assert.Equal(t, []StatusType{StatusVulnerable}, expired)

	// stack-capped types never expire by ticking
	for i := 0; i < 5; i++ {
		l.Tick()
	}
	assert.Equal(t, 3, l.Stacks(StatusBleeding))
	assert.Equal(t, 1, l.Len())
}

func TestStatusConsumeRemovesAtZero(t *testing.T) {
	var l StatusList
	l.Add(StatusEvasive, 2, 1)

	assert.True(t, l.Consume(StatusEvasive))
	assert.Equal(t, 1, l.Stacks(StatusEvasive))
	assert.True(t, l.Consume(StatusEvasive))
	assert.Nil(t, l.Get(StatusEvasive), "modifier should not linger at zero stacks")
	assert.False(t, l.Consume(StatusEvasive))
}

func TestStatusAddIgnoresNonPositiveAdditive(t *testing.T) {
	var l StatusList
	assert.Nil(t, l.Add(StatusBleeding, 0, 2))
	assert.Nil(t, l.Add(StatusNone, 1, 1))
	assert.Equal(t, 0, l.Len())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("vulnerable")
	require.NoError(t, err)
	assert.Equal(t, StatusVulnerable, s)

	_, err = ParseStatus("frozen")
	assert.Error(t, err)
}
