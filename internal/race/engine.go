package race

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/effect"
)

// Handle identifies a race started by an Engine.
// Handles are never reused, so a handle to an ended race stays invalid forever.
type Handle uint64

// Engine is the entry point used by the scene layer.
// It builds effect sets, owns running simulators and hands out handles.
//
// Not thread-safe: one Engine belongs to one game loop.
type Engine struct {
	cfg     config.Race
	catalog effect.Catalog
	roller  Roller

	races map[Handle]*Simulator
	next  Handle
}

// NewEngine creates an Engine.
func NewEngine(cfg config.Race, catalog effect.Catalog, roller Roller) *Engine {
	return &Engine{
		cfg:     cfg,
		catalog: catalog,
		roller:  roller,
		races:   make(map[Handle]*Simulator),
	}
}

// StartRace builds the effect set from the roster and places a runner at the starting line.
// Fails on unknown items or broken templates.
func (e *Engine) StartRace(entry Entry) (Handle, error) {
	effects, err := effect.NewSet(entry.Roster, e.catalog)
	if err != nil {
		return 0, fmt.Errorf("starting race: %w", err)
	}
	sim, err := NewSimulator(e.cfg, entry, effects, e.roller)
	if err != nil {
		return 0, fmt.Errorf("starting race: %w", err)
	}

	e.next++
	h := e.next
	e.races[h] = sim

	slog.Debug("race started",
		"handle", h,
		"distance", entry.DistanceMeters,
		"duration", sim.Duration(),
		"items", len(entry.Roster),
		"modifiers", effects.Len())
	return h, nil
}

// Tick advances the race by delta.
func (e *Engine) Tick(h Handle, delta time.Duration) (TickResult, error) {
	sim, err := e.race(h)
	if err != nil {
		return TickResult{}, err
	}
	return sim.Tick(delta)
}

// NotifyConsumableEaten applies consumableID to the race.
func (e *Engine) NotifyConsumableEaten(h Handle, consumableID string) error {
	sim, err := e.race(h)
	if err != nil {
		return err
	}
	c, err := data.GetConsumable(consumableID)
	if err != nil {
		return err
	}
	sim.EatConsumable(c)
	return nil
}

// State returns a snapshot of the race state.
func (e *Engine) State(h Handle) (State, error) {
	sim, err := e.race(h)
	if err != nil {
		return State{}, err
	}
	return sim.State(), nil
}

// Cooldowns returns cooldown bar positions of the equipped items.
func (e *Engine) Cooldowns(h Handle) ([]effect.CycleProgress, error) {
	sim, err := e.race(h)
	if err != nil {
		return nil, err
	}
	return sim.Effects().CycleProgress(), nil
}

// EndRace destroys the race and returns its summary.
// The handle is invalid afterwards.
func (e *Engine) EndRace(h Handle) (Summary, error) {
	sim, err := e.race(h)
	if err != nil {
		return Summary{}, err
	}
	delete(e.races, h)

	summary := sim.Summary()
	slog.Debug("race ended",
		"handle", h,
		"won", summary.Won,
		"lost", summary.Lost,
		"time", summary.CompletionTime,
		"stamina", summary.StaminaRemainingFraction)
	return summary, nil
}

// AbortRace drops a race without a summary, e.g. when the player quits.
// Aborting an unknown handle is a no-op.
func (e *Engine) AbortRace(h Handle) {
	if _, ok := e.races[h]; ok {
		delete(e.races, h)
		slog.Debug("race aborted", "handle", h)
	}
}

// Active returns the number of running races.
func (e *Engine) Active() int {
	return len(e.races)
}

func (e *Engine) race(h Handle) (*Simulator, error) {
	sim, ok := e.races[h]
	if !ok {
		return nil, fmt.Errorf("%w: handle %d", ErrUnknownRace, h)
	}
	return sim, nil
}
