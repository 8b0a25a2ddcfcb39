package effect

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrInvalidTemplate = errors.New("invalid modifier template")
	ErrNegativeDelta   = errors.New("negative tick delta")
)

// Template describes one modifier granted by an item.
// Templates are static data; Modifier instances are created from them per race.
//
// Zero CyclePeriod means the modifier is continuous.
// Zero TotalDuration means the modifier lasts for the whole race.
type Template struct {
	Kind          Kind
	Value         float64
	CyclePeriod   time.Duration
	ActiveWindow  time.Duration // leading part of each cycle where the modifier applies
	TotalDuration time.Duration
}

// Validate checks template consistency.
// A broken template is a data error and must never be silently defaulted.
func (t Template) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: kind %d", ErrInvalidTemplate, t.Kind)
	}
	if t.CyclePeriod < 0 {
		return fmt.Errorf("%w: negative cycle period %s", ErrInvalidTemplate, t.CyclePeriod)
	}
	if t.ActiveWindow < 0 {
		return fmt.Errorf("%w: negative active window %s", ErrInvalidTemplate, t.ActiveWindow)
	}
	if t.TotalDuration < 0 {
		return fmt.Errorf("%w: negative total duration %s", ErrInvalidTemplate, t.TotalDuration)
	}
	if t.ActiveWindow > 0 {
		if t.CyclePeriod == 0 {
			return fmt.Errorf("%w: %s has active window %s without cycle period",
				ErrInvalidTemplate, t.Kind, t.ActiveWindow)
		}
		if t.ActiveWindow > t.CyclePeriod {
			return fmt.Errorf("%w: %s active window %s exceeds cycle period %s",
				ErrInvalidTemplate, t.Kind, t.ActiveWindow, t.CyclePeriod)
		}
	}
	if t.Kind == StaminaRecovery && t.CyclePeriod == 0 {
		return fmt.Errorf("%w: stamina recovery requires a cycle period", ErrInvalidTemplate)
	}
	return nil
}

// Modifier is one applied effect instance inside a Set.
type Modifier struct {
	Source string // item id that granted the modifier
	Template

	Elapsed         time.Duration
	CompletedCycles int64
}

func newModifier(source string, t Template) *Modifier {
	return &Modifier{Source: source, Template: t}
}

// IsCyclic reports whether the modifier has a cycle period.
func (m *Modifier) IsCyclic() bool {
	return m.CyclePeriod > 0
}

// IsExpired reports whether the modifier outlived its total duration.
func (m *Modifier) IsExpired() bool {
	return m.TotalDuration > 0 && m.Elapsed >= m.TotalDuration
}

// Phase returns the position inside the current cycle.
func (m *Modifier) Phase() time.Duration {
	if !m.IsCyclic() {
		return 0
	}
	return m.Elapsed % m.CyclePeriod
}

// IsActive reports whether the modifier currently contributes its value.
// Windowed modifiers apply only while phase < ActiveWindow.
func (m *Modifier) IsActive() bool {
	if m.ActiveWindow == 0 {
		return true
	}
	return m.Phase() < m.ActiveWindow
}

// cyclesDue returns floor(Elapsed / CyclePeriod).
func (m *Modifier) cyclesDue() int64 {
	if !m.IsCyclic() {
		return 0
	}
	return int64(m.Elapsed / m.CyclePeriod)
}
