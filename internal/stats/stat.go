package stats

import (
	"strings"
)

// Stat is a numeric attribute with a base value and a set of modifiers.
//
// The final value is recomputed on every read: base, then every additive
// modifier, then every multiplicative modifier, each group in attachment
// order. Reads never reorder the stored modifiers.
//
// A Stat is not safe for concurrent use; confine it to one goroutine or
// guard it with a lock per stat. The zero value is a stat with base 0.
type Stat struct {
	baseValue float64
	modifiers []*AppliedModifier
}

// NewStat creates a stat with the given base value and starting modifiers
func NewStat(baseValue float64, starting ...*AppliedModifier) *Stat {
	s := &Stat{baseValue: baseValue}
	s.AddModifiers(starting...)
	return s
}

func (s *Stat) BaseValue() float64 {
	return s.baseValue
}

func (s *Stat) SetBaseValue(v float64) {
	s.baseValue = v
}

// Modifiers returns a copy of the modifiers in attachment order
func (s *Stat) Modifiers() []*AppliedModifier {
	out := make([]*AppliedModifier, len(s.modifiers))
	copy(out, s.modifiers)
	return out
}

// Len returns the number of attached modifiers
func (s *Stat) Len() int {
	return len(s.modifiers)
}

// FinalValue is the base value with all current modifiers folded in
func (s *Stat) FinalValue() float64 {
	value := s.baseValue
	for _, m := range s.ordered() {
		value = m.descriptor.apply(value)
	}
	return value
}

// AddModifier attaches m. Nil modifiers are ignored.
func (s *Stat) AddModifier(m *AppliedModifier) {
	if m == nil {
		return
	}
	s.modifiers = append(s.modifiers, m)
}

// AddModifiers attaches each modifier in order
func (s *Stat) AddModifiers(modifiers ...*AppliedModifier) {
	for _, m := range modifiers {
		s.AddModifier(m)
	}
}

// RemoveModifier detaches the first entry that is m (pointer identity).
// Returns false when m is not attached.
func (s *Stat) RemoveModifier(m *AppliedModifier) bool {
	if m == nil {
		return false
	}
	for i, existing := range s.modifiers {
		if existing != m {
			continue
		}
		copy(s.modifiers[i:], s.modifiers[i+1:])
		s.modifiers[len(s.modifiers)-1] = nil
		s.modifiers = s.modifiers[:len(s.modifiers)-1]
		return true
	}
	return false
}

// RemoveModifiersFromSource detaches every modifier attributed to source and
// returns how many were removed. A nil source removes nothing, so
// unattributed modifiers can't be swept by accident.
func (s *Stat) RemoveModifiersFromSource(source Source) int {
	if source == nil {
		return 0
	}

	kept := s.modifiers[:0]
	for _, m := range s.modifiers {
		if !m.From(source) {
			kept = append(kept, m)
		}
	}
	removed := len(s.modifiers) - len(kept)
	for i := len(kept); i < len(s.modifiers); i++ {
		s.modifiers[i] = nil
	}
	s.modifiers = kept
	return removed
}

// CommitAndClear folds the final value into the base value and drops every
// modifier. Used for permanent upgrades; it cannot be undone.
func (s *Stat) CommitAndClear() {
	s.baseValue = s.FinalValue()
	s.modifiers = nil
}

// String renders the base value, each modifier in compute order and the final value
func (s *Stat) String() string {
	var sb strings.Builder
	sb.WriteString("Base Value: ")
	sb.WriteString(formatValue(s.baseValue))
	for _, m := range s.ordered() {
		sb.WriteString("\n")
		sb.WriteString(m.String())
	}
	sb.WriteString("\nFinal Value: ")
	sb.WriteString(formatValue(s.FinalValue()))
	return sb.String()
}

// ordered is a stable partition of the modifiers: additive first, then multiplicative
func (s *Stat) ordered() []*AppliedModifier {
	out := make([]*AppliedModifier, 0, len(s.modifiers))
	for _, m := range s.modifiers {
		if m.descriptor.operation != OperationMultiplicative {
			out = append(out, m)
		}
	}
	for _, m := range s.modifiers {
		if m.descriptor.operation == OperationMultiplicative {
			out = append(out, m)
		}
	}
	return out
}
