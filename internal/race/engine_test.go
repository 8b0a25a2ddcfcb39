package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/effect"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	catalog, err := data.DefaultCatalog()
	require.NoError(t, err)
	return NewEngine(config.DefaultRace(), catalog, NewRandRoller(1))
}

func TestEngine_Lifecycle(t *testing.T) {
	e := newTestEngine(t)

	h, err := e.StartRace(Entry{Roster: []string{"Coin", "Ginger"}, MaxStamina: 100, DistanceMeters: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Active())

	var res TickResult
	for !res.Won && !res.Lost {
		res, err = e.Tick(h, tick)
		require.NoError(t, err)
	}
	assert.True(t, res.Won)

	summary, err := e.EndRace(h)
	require.NoError(t, err)
	assert.True(t, summary.Won)
	assert.Equal(t, 100.0, summary.DistanceCovered)
	assert.Greater(t, summary.StaminaRemainingFraction, 0.5)
	assert.Zero(t, e.Active())
}

func TestEngine_StaleHandle(t *testing.T) {
	e := newTestEngine(t)

	h, err := e.StartRace(Entry{MaxStamina: 100, DistanceMeters: 100})
	require.NoError(t, err)
	_, err = e.EndRace(h)
	require.NoError(t, err)

	_, err = e.Tick(h, tick)
	assert.ErrorIs(t, err, ErrUnknownRace)
	_, err = e.EndRace(h)
	assert.ErrorIs(t, err, ErrUnknownRace)
	assert.ErrorIs(t, e.NotifyConsumableEaten(h, "apple"), ErrUnknownRace)
	_, err = e.State(h)
	assert.ErrorIs(t, err, ErrUnknownRace)

	h2, err := e.StartRace(Entry{MaxStamina: 100, DistanceMeters: 100})
	require.NoError(t, err)
	assert.NotEqual(t, h, h2, "handles are never reused")
}

func TestEngine_AbortRace(t *testing.T) {
	e := newTestEngine(t)

	h, err := e.StartRace(Entry{MaxStamina: 100, DistanceMeters: 100})
	require.NoError(t, err)
	_, err = e.Tick(h, tick)
	require.NoError(t, err)

	e.AbortRace(h)
	e.AbortRace(h)
	assert.Zero(t, e.Active())

	_, err = e.Tick(h, tick)
	assert.ErrorIs(t, err, ErrUnknownRace)
}

func TestEngine_StartRaceUnknownItem(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.StartRace(Entry{Roster: []string{"Gold", "Goldd"}, MaxStamina: 100, DistanceMeters: 100})
	require.ErrorIs(t, err, effect.ErrUnknownItem)
	assert.Contains(t, err.Error(), `did you mean "Gold"`)
	assert.Zero(t, e.Active())
}

func TestEngine_NotifyConsumableEaten(t *testing.T) {
	e := newTestEngine(t)

	h, err := e.StartRace(Entry{Roster: []string{"Mushroom", "Mushroom"}, MaxStamina: 100, DistanceMeters: 500})
	require.NoError(t, err)
	for range 30 {
		_, err = e.Tick(h, tick)
		require.NoError(t, err)
	}

	require.NoError(t, e.NotifyConsumableEaten(h, "Orange"))
	require.Error(t, e.NotifyConsumableEaten(h, "Pasta"))

	st, err := e.State(h)
	require.NoError(t, err)
	assert.InDelta(t, 80, st.Stamina, 1e-9)
	assert.InDelta(t, 0.1, st.ConsumableBonus, 1e-12)
}

func TestEngine_Cooldowns(t *testing.T) {
	e := newTestEngine(t)

	h, err := e.StartRace(Entry{Roster: []string{"Coin", "Ginger", "Ruby_Amulet"}, MaxStamina: 100, DistanceMeters: 500})
	require.NoError(t, err)
	for range 10 {
		_, err = e.Tick(h, tick)
		require.NoError(t, err)
	}

	bars, err := e.Cooldowns(h)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "Coin", bars[0].Source)
	assert.InDelta(t, 1.0/3, bars[0].Fraction, 1e-12)
	assert.Equal(t, "Ruby_Amulet", bars[1].Source)
	assert.InDelta(t, 0.2, bars[1].Fraction, 1e-12)
}
