package race

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/udisondev/dinomarathon/internal/config"
)

// Roller produces uniform integers in [1, 100].
type Roller interface {
	Roll() int
}

// RandRoller is a seeded Roller backed by math/rand/v2.
// Not thread-safe.
type RandRoller struct {
	rng *rand.Rand
}

// NewRandRoller creates a deterministic roller for seed.
func NewRandRoller(seed uint64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Roll returns a uniform integer in [1, 100].
func (r *RandRoller) Roll() int {
	return r.rng.IntN(100) + 1
}

// eventPhase is the state of the random event machine.
type eventPhase int8

const (
	phaseIdle eventPhase = iota
	phaseStumbleHalt
	phaseStumbleSlow
	phaseBoost
)

func (p eventPhase) String() string {
	switch p {
	case phaseStumbleHalt:
		return "stumble_halt"
	case phaseStumbleSlow:
		return "stumble_slow"
	case phaseBoost:
		return "boost"
	default:
		return "idle"
	}
}

// Events drives the stumble and boost random events.
//
// State machine: Idle → StumbleHalt → StumbleSlow → Idle, Idle → Boost → Idle.
// All time advancement happens in Advance, so a race replays identically
// for the same roll sequence.
type Events struct {
	cfg    config.Race
	roller Roller

	phase     eventPhase
	remaining time.Duration // time left in the current phase
	saved     float64       // override before the event started
	override  float64

	stumbleCooldown time.Duration
	boostCooldown   time.Duration
}

// NewEvents creates an idle event controller.
func NewEvents(cfg config.Race, roller Roller) *Events {
	return &Events{
		cfg:      cfg,
		roller:   roller,
		override: 1,
	}
}

// Override returns the speed factor imposed by the current event.
// 1 when idle, 0 while halted, a fraction while slowed, a multiple while boosting.
func (e *Events) Override() float64 { return e.override }

// IsStumbling reports whether a stumble sequence is running.
func (e *Events) IsStumbling() bool {
	return e.phase == phaseStumbleHalt || e.phase == phaseStumbleSlow
}

// IsBoosting reports whether a boost is running.
func (e *Events) IsBoosting() bool { return e.phase == phaseBoost }

// Cooldowns returns the stumble and boost check timers.
func (e *Events) Cooldowns() (stumble, boost time.Duration) {
	return e.stumbleCooldown, e.boostCooldown
}

// Advance moves the event machine forward by delta.
// fatigue and recovery are the stumble and boost chances in percent.
// Returns the number of events triggered during this call.
func (e *Events) Advance(delta time.Duration, fatigue, recovery float64) int {
	if e.phase != phaseIdle {
		e.advancePhase(delta)
		return 0
	}

	e.stumbleCooldown += delta
	e.boostCooldown += delta

	if e.stumbleCooldown >= e.cfg.EventCheckInterval {
		if roll := e.roller.Roll(); float64(roll) <= fatigue {
			e.startStumble(roll)
			return 1
		}
		e.stumbleCooldown = 0
	}

	if e.boostCooldown >= e.cfg.EventCheckInterval {
		if roll := e.roller.Roll(); float64(roll) <= recovery {
			e.startBoost(roll)
			return 1
		}
		e.boostCooldown = 0
	}

	return 0
}

func (e *Events) startStumble(roll int) {
	e.saved = e.override
	e.override = 0
	e.phase = phaseStumbleHalt
	e.remaining = e.cfg.StumbleHalt
	slog.Debug("stumble triggered", "roll", roll, "halt", e.cfg.StumbleHalt)
}

func (e *Events) startBoost(roll int) {
	e.saved = e.override
	e.override = e.saved * e.cfg.BoostFactor
	e.phase = phaseBoost
	e.remaining = e.cfg.BoostDuration
	slog.Debug("boost triggered", "roll", roll, "duration", e.cfg.BoostDuration)
}

// advancePhase consumes delta, carrying leftover time into the next phase.
func (e *Events) advancePhase(delta time.Duration) {
	e.remaining -= delta
	for e.phase != phaseIdle && e.remaining <= 0 {
		switch e.phase {
		case phaseStumbleHalt:
			e.phase = phaseStumbleSlow
			e.override = e.saved * e.cfg.StumbleSlowFactor
			e.remaining += e.cfg.StumbleSlow
		case phaseStumbleSlow, phaseBoost:
			e.finish()
		}
	}
}

// finish restores the pre-event override and resets both check timers.
func (e *Events) finish() {
	slog.Debug("random event finished", "phase", e.phase)
	e.phase = phaseIdle
	e.override = e.saved
	e.remaining = 0
	e.stumbleCooldown = 0
	e.boostCooldown = 0
}
