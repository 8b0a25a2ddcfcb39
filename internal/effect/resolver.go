package effect

import "slices"

// MultiplicativeRate returns the product of values of all active modifiers of kind.
// Windowed modifiers outside their active phase contribute 1.
// Returns 1.0 if no modifiers of kind exist.
func (s *Set) MultiplicativeRate(kind Kind) float64 {
	rate := 1.0
	for _, m := range s.modifiers {
		if m.Kind != kind || !m.IsActive() {
			continue
		}
		rate *= m.Value
	}
	return rate
}

// FlatAdditiveBonus returns the sum of values of all modifiers of kind.
// No time dependency.
func (s *Set) FlatAdditiveBonus(kind Kind) float64 {
	sum := 0.0
	for _, m := range s.modifiers {
		if m.Kind == kind {
			sum += m.Value
		}
	}
	return sum
}

// PeriodicResult is the outcome of one PeriodicAddition call.
type PeriodicResult struct {
	Added  float64 // amount to add, already scaled by scaleBase
	Cycles int64   // newly completed cycles across all qualifying modifiers
}

// PeriodicAddition collects cycles completed since the previous call.
//
// Every cyclic modifier whose kind is in kinds advances its cycle counter;
// only StaminaRecovery modifiers contribute to Added (value × scaleBase per cycle).
// Other kinds in the set share the counter bookkeeping and count towards Cycles.
//
// Mutates cycle counters: call at most once per tick for a given kind set.
// A second call without an Advance in between returns a zero result.
func (s *Set) PeriodicAddition(kinds []Kind, scaleBase float64) PeriodicResult {
	var res PeriodicResult
	for _, m := range s.modifiers {
		if !m.IsCyclic() || !slices.Contains(kinds, m.Kind) {
			continue
		}
		due := m.cyclesDue()
		fresh := due - m.CompletedCycles
		if fresh <= 0 {
			continue
		}
		m.CompletedCycles = due
		res.Cycles += fresh
		if m.Kind == StaminaRecovery {
			res.Added += float64(fresh) * m.Value * scaleBase
		}
	}
	return res
}
