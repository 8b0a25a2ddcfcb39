package race

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/effect"
)

var (
	ErrUnknownRace     = errors.New("unknown or finished race")
	ErrInvalidDistance = errors.New("race distance must be positive")
	ErrInvalidStamina  = errors.New("max stamina must be positive")
)

// recoveryKinds share one cycle counter pass per tick.
// Drain modifiers are included so their cycles also feed the cooldown bonus.
var recoveryKinds = []effect.Kind{effect.StaminaRecovery, effect.StaminaDrainScale}

// Entry is everything a race needs from player progression at the starting line.
type Entry struct {
	Roster              []string
	MaxStamina          float64
	PermanentSpeedBonus float64 // m/s accumulated from previous wins
	DistanceMeters      int
	FatigueLevel        float64 // stumble chance, percent
	RecoveryLevel       float64 // boost chance, percent
}

// State is the mutable record of one race.
type State struct {
	Elapsed         time.Duration
	Progress        float64 // 0..1
	Stamina         float64 // 0..MaxStamina
	MaxStamina      float64
	SpeedMultiplier float64 // smoothed
	CooldownBonus   float64 // accumulated from completed cycles, never decreases
	ConsumableBonus float64 // accumulated from consumables eaten with a mushroom-class item
	FatigueLevel    float64
	RecoveryLevel   float64
	IsStumbling     bool
	IsBoosting      bool
	Won             bool
	Lost            bool
}

// TickResult is the per-tick telemetry read by the UI.
type TickResult struct {
	Progress        float64
	Stamina         float64
	SpeedMultiplier float64
	Won             bool
	Lost            bool
}

// Summary is copied out of a finished race into long-lived progression.
type Summary struct {
	CompletionTime           time.Duration
	StaminaRemainingFraction float64
	DistanceCovered          float64 // meters
	Won                      bool
	Lost                     bool

	// Per-win bonuses of the equipped roster, applied by progression on a win.
	MaxStaminaPerWin float64
	SpeedPerWin      float64
}

// Simulator runs one race.
// Owns its effect set and event machine; not thread-safe.
type Simulator struct {
	cfg      config.Race
	effects  *effect.Set
	events   *Events
	state    State
	distance int
	duration float64 // seconds to finish at multiplier 1
	speedAdd float64 // 1 + permanentSpeedBonus / baseSpeedReference
}

// NewSimulator creates a race at the starting line.
func NewSimulator(cfg config.Race, entry Entry, effects *effect.Set, roller Roller) (*Simulator, error) {
	if entry.DistanceMeters <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDistance, entry.DistanceMeters)
	}
	if entry.MaxStamina <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStamina, entry.MaxStamina)
	}

	return &Simulator{
		cfg:      cfg,
		effects:  effects,
		events:   NewEvents(cfg, roller),
		distance: entry.DistanceMeters,
		duration: float64(entry.DistanceMeters) / 100 * cfg.BaseTimePer100m,
		speedAdd: 1 + entry.PermanentSpeedBonus/cfg.BaseSpeedReference,
		state: State{
			Stamina:         entry.MaxStamina,
			MaxStamina:      entry.MaxStamina,
			SpeedMultiplier: cfg.StartSpeedMultiplier,
			FatigueLevel:    clampPercent(entry.FatigueLevel),
			RecoveryLevel:   clampPercent(entry.RecoveryLevel),
		},
	}, nil
}

// State returns a snapshot of the race state.
func (s *Simulator) State() State { return s.state }

// Duration returns the time needed to finish at multiplier 1.
func (s *Simulator) Duration() time.Duration {
	return time.Duration(s.duration * float64(time.Second))
}

// Effects exposes the live effect set for read-only telemetry.
func (s *Simulator) Effects() *effect.Set { return s.effects }

// Events exposes the random event machine for read-only telemetry.
func (s *Simulator) Events() *Events { return s.events }

// Finished reports whether the race reached a terminal state.
func (s *Simulator) Finished() bool { return s.state.Won || s.state.Lost }

// Tick advances the race by delta.
// A finished race is frozen: further ticks return the final result unchanged.
// Win is checked before loss, so crossing the line on the last drop of stamina wins.
func (s *Simulator) Tick(delta time.Duration) (TickResult, error) {
	if s.Finished() {
		return s.result(), nil
	}
	if err := s.effects.Advance(delta); err != nil {
		return s.result(), err
	}

	st := &s.state
	dt := delta.Seconds()
	st.Elapsed += delta

	drainScale := s.effects.MultiplicativeRate(effect.StaminaDrainScale)
	speedScale := s.effects.MultiplicativeRate(effect.SpeedScale)

	periodic := s.effects.PeriodicAddition(recoveryKinds, st.MaxStamina)
	st.Stamina = math.Min(st.Stamina+periodic.Added, st.MaxStamina)
	if periodic.Cycles > 0 {
		s.accrueCooldown(periodic.Cycles)
	}

	flatBonus := s.effects.FlatAdditiveBonus(effect.FlatSpeedBonus)
	target := speedScale *
		(1 + flatBonus + st.CooldownBonus + st.ConsumableBonus) *
		s.events.Override() *
		s.speedAdd
	st.SpeedMultiplier = lerp(st.SpeedMultiplier, target, math.Min(1, s.cfg.AccelerationFactor*dt))

	// Progress never regresses: a slowdown stalls the runner instead of pulling it back.
	progress := clamp(st.Elapsed.Seconds()*st.SpeedMultiplier/s.duration, 0, 1)
	st.Progress = math.Max(st.Progress, progress)

	drainRate := st.MaxStamina / s.cfg.BaseStaminaTime
	st.Stamina = clamp(st.Stamina-drainRate*drainScale*dt, 0, st.MaxStamina)

	if triggered := s.events.Advance(delta, st.FatigueLevel, st.RecoveryLevel); triggered > 0 {
		s.accrueCooldown(int64(triggered))
	}
	st.IsStumbling = s.events.IsStumbling()
	st.IsBoosting = s.events.IsBoosting()

	switch {
	case st.Progress >= 1:
		st.Won = true
		slog.Debug("race won", "elapsed", st.Elapsed, "stamina", st.Stamina)
	case st.Stamina <= 0:
		st.Lost = true
		slog.Debug("race lost", "elapsed", st.Elapsed, "progress", st.Progress)
	}

	return s.result(), nil
}

// accrueCooldown adds the cooldown speed bonus for cycles completed this tick.
func (s *Simulator) accrueCooldown(cycles int64) {
	bonus := s.effects.FlatAdditiveBonus(effect.CooldownSpeedBonus)
	if bonus == 0 {
		return
	}
	s.state.CooldownBonus += bonus * float64(cycles)
}

// EatConsumable applies a consumable to the running race.
// Refills stamina, raises fatigue, and grants the mushroom-class speed bonus if equipped.
func (s *Simulator) EatConsumable(c data.Consumable) {
	if s.Finished() {
		return
	}
	st := &s.state
	st.Stamina = math.Min(st.Stamina+st.MaxStamina*c.StaminaRefill, st.MaxStamina)
	st.FatigueLevel = clampPercent(st.FatigueLevel + c.IntoxDelta)
	if bonus := s.effects.FlatAdditiveBonus(effect.ConsumableSpeedBonus); bonus > 0 {
		st.ConsumableBonus += bonus
	}
	slog.Debug("consumable eaten", "consumable", c.ID, "stamina", st.Stamina, "consumableBonus", st.ConsumableBonus)
}

// Summary returns the race summary, including per-win bonuses of the roster.
func (s *Simulator) Summary() Summary {
	st := s.state
	return Summary{
		CompletionTime:           st.Elapsed,
		StaminaRemainingFraction: st.Stamina / st.MaxStamina,
		DistanceCovered:          st.Progress * float64(s.distance),
		Won:                      st.Won,
		Lost:                     st.Lost,
		MaxStaminaPerWin:         s.effects.FlatAdditiveBonus(effect.MaxStaminaPerWin),
		SpeedPerWin:              s.effects.FlatAdditiveBonus(effect.SpeedPerWin),
	}
}

func (s *Simulator) result() TickResult {
	return TickResult{
		Progress:        s.state.Progress,
		Stamina:         s.state.Stamina,
		SpeedMultiplier: s.state.SpeedMultiplier,
		Won:             s.state.Won,
		Lost:            s.state.Lost,
	}
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clampPercent(v float64) float64 {
	return clamp(v, 0, 100)
}
