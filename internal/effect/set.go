package effect

import (
	"fmt"
	"log/slog"
	"time"
)

// Catalog resolves item ids into modifier templates.
// Implemented by data.ItemCatalog.
type Catalog interface {
	Templates(itemID string) ([]Template, error)
}

// Set holds the modifiers of one race.
// Order is the roster order and stays stable for the lifetime of the set.
//
// Not thread-safe: a Set is owned by a single race simulator.
type Set struct {
	modifiers []*Modifier
}

// NewSet builds a Set from the equipped roster.
// Every template is validated; an unknown item or a broken template fails the whole build.
func NewSet(roster []string, catalog Catalog) (*Set, error) {
	s := &Set{modifiers: make([]*Modifier, 0, len(roster))}

	for _, itemID := range roster {
		templates, err := catalog.Templates(itemID)
		if err != nil {
			return nil, fmt.Errorf("building effect set: %w", err)
		}
		for i, t := range templates {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("item %q template #%d: %w", itemID, i, err)
			}
			s.modifiers = append(s.modifiers, newModifier(itemID, t))
		}
	}

	slog.Debug("effect set built", "items", len(roster), "modifiers", len(s.modifiers))
	return s, nil
}

// Add validates t and appends a fresh modifier granted by source.
func (s *Set) Add(source string, t Template) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("adding modifier from %q: %w", source, err)
	}
	s.modifiers = append(s.modifiers, newModifier(source, t))
	return nil
}

// Len returns the number of live modifiers.
func (s *Set) Len() int {
	return len(s.modifiers)
}

// Modifiers returns a copy of the live modifiers.
func (s *Set) Modifiers() []Modifier {
	result := make([]Modifier, len(s.modifiers))
	for i, m := range s.modifiers {
		result[i] = *m
	}
	return result
}

// Advance moves every modifier forward by delta and drops expired ones.
// Must run once per tick, before any rate query.
func (s *Set) Advance(delta time.Duration) error {
	if delta < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeDelta, delta)
	}

	n := 0
	for _, m := range s.modifiers {
		m.Elapsed += delta
		if m.IsExpired() {
			slog.Debug("modifier expired", "source", m.Source, "kind", m.Kind, "elapsed", m.Elapsed)
			continue
		}
		s.modifiers[n] = m
		n++
	}
	clear(s.modifiers[n:])
	s.modifiers = s.modifiers[:n]
	return nil
}

// CycleProgress describes how far a cyclic modifier is into its current cycle.
type CycleProgress struct {
	Source   string
	Kind     Kind
	Fraction float64 // 0 right after a cycle completes, approaching 1 before the next
	Active   bool
}

// CycleProgress reports the cycle position of every cyclic modifier.
// Used by the UI to draw cooldown bars from the same data that drives the effects.
func (s *Set) CycleProgress() []CycleProgress {
	var result []CycleProgress
	for _, m := range s.modifiers {
		if !m.IsCyclic() {
			continue
		}
		result = append(result, CycleProgress{
			Source:   m.Source,
			Kind:     m.Kind,
			Fraction: float64(m.Phase()) / float64(m.CyclePeriod),
			Active:   m.IsActive(),
		})
	}
	return result
}
