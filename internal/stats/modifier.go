package stats

import (
	"strconv"
)

// AppliedModifier is a Descriptor attached to a stat, optionally attributed to a Source.
// It is never mutated; replace it instead.
type AppliedModifier struct {
	descriptor Descriptor
	source     Source
}

// NewAppliedModifier wraps d. source may be nil for an unattributed modifier.
func NewAppliedModifier(d Descriptor, source Source) *AppliedModifier {
	return &AppliedModifier{
		descriptor: d,
		source:     source,
	}
}

// Apply wraps every descriptor with the same source, keeping order
func Apply(source Source, descriptors ...Descriptor) []*AppliedModifier {
	applied := make([]*AppliedModifier, 0, len(descriptors))
	for _, d := range descriptors {
		applied = append(applied, NewAppliedModifier(d, source))
	}
	return applied
}

func (m *AppliedModifier) Descriptor() Descriptor {
	return m.descriptor
}

func (m *AppliedModifier) Source() Source {
	return m.source
}

func (m *AppliedModifier) HasSource() bool {
	return m.source != nil
}

// From reports whether the modifier is attributed to source
func (m *AppliedModifier) From(source Source) bool {
	return sameSource(m.source, source)
}

// String renders e.g. "+15 from Helmet" or "x1.5"
func (m *AppliedModifier) String() string {
	if m.source == nil {
		return m.descriptor.String()
	}
	return m.descriptor.String() + " from " + m.source.SourceName()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
