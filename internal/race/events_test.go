package race

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dinomarathon/internal/config"
)

const tick = 100 * time.Millisecond

// scriptedRoller returns rolls in order and repeats the last one.
type scriptedRoller struct {
	rolls []int
	calls int
}

func (r *scriptedRoller) Roll() int {
	i := min(r.calls, len(r.rolls)-1)
	r.calls++
	return r.rolls[i]
}

func TestEvents_StumbleSequence(t *testing.T) {
	roller := &scriptedRoller{rolls: []int{30}}
	e := NewEvents(config.DefaultRace(), roller)

	for i := 1; i < 20; i++ {
		require.Zero(t, e.Advance(tick, 30, 0), "tick %d", i)
		require.Equal(t, 1.0, e.Override())
	}

	// Roll equals fatigue: triggers.
	require.Equal(t, 1, e.Advance(tick, 30, 0))
	require.True(t, e.IsStumbling())
	assert.Equal(t, 1, roller.calls)

	var overrides []float64
	overrides = append(overrides, e.Override())
	for range 40 {
		require.Zero(t, e.Advance(tick, 30, 0))
		overrides = append(overrides, e.Override())
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, 0.0, overrides[i], "halt phase, sample %d", i)
	}
	for i := 10; i < 40; i++ {
		assert.Equal(t, 0.5, overrides[i], "slow phase, sample %d", i)
	}
	assert.Equal(t, 1.0, overrides[40], "restored after 4s")

	assert.False(t, e.IsStumbling())
	stumble, boost := e.Cooldowns()
	assert.Zero(t, stumble)
	assert.Zero(t, boost)
	assert.Equal(t, 1, roller.calls, "no rolls while the event runs")
}

func TestEvents_CooldownsFrozenDuringEvent(t *testing.T) {
	e := NewEvents(config.DefaultRace(), &scriptedRoller{rolls: []int{1}})

	for range 20 {
		e.Advance(tick, 100, 0)
	}
	require.True(t, e.IsStumbling())
	stumble, boost := e.Cooldowns()

	for range 15 {
		e.Advance(tick, 100, 0)
		s, b := e.Cooldowns()
		assert.Equal(t, stumble, s)
		assert.Equal(t, boost, b)
	}
}

func TestEvents_FailedRollResetsOnlyThatTimer(t *testing.T) {
	cfg := config.DefaultRace()
	roller := &scriptedRoller{rolls: []int{90}}
	e := NewEvents(cfg, roller)

	for range 20 {
		require.Zero(t, e.Advance(tick, 50, 0))
	}

	// Both timers reached 2s; both checks rolled and failed.
	assert.Equal(t, 2, roller.calls)
	stumble, boost := e.Cooldowns()
	assert.Zero(t, stumble)
	assert.Zero(t, boost)
	assert.Equal(t, 1.0, e.Override())
}

func TestEvents_BoostSequence(t *testing.T) {
	// Stumble check fails, boost check hits.
	roller := &scriptedRoller{rolls: []int{80, 50}}
	e := NewEvents(config.DefaultRace(), roller)

	for range 19 {
		e.Advance(tick, 10, 50)
	}
	require.Equal(t, 1, e.Advance(tick, 10, 50))
	require.True(t, e.IsBoosting())
	assert.False(t, e.IsStumbling())

	for i := range 30 {
		assert.Equal(t, 2.0, e.Override(), "boost sample %d", i)
		e.Advance(tick, 10, 50)
	}
	assert.Equal(t, 1.0, e.Override())
	assert.False(t, e.IsBoosting())

	stumble, boost := e.Cooldowns()
	assert.Zero(t, stumble)
	assert.Zero(t, boost)
}

func TestEvents_ZeroChanceNeverTriggers(t *testing.T) {
	e := NewEvents(config.DefaultRace(), NewRandRoller(7))

	for range 10_000 {
		require.Zero(t, e.Advance(tick, 0, 0))
	}
	assert.Equal(t, 1.0, e.Override())
}

func TestRandRoller_Range(t *testing.T) {
	r := NewRandRoller(42)
	seen := make(map[int]bool)
	for range 10_000 {
		v := r.Roll()
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 100)
		seen[v] = true
	}
	assert.Len(t, seen, 100)

	a, b := NewRandRoller(5), NewRandRoller(5)
	for range 100 {
		assert.Equal(t, a.Roll(), b.Roll())
	}
}
