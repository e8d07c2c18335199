package effects

import (
	"github.com/KirkDiggler/stat-engine/internal/stats"
)

// Kind describes what sort of thing a contributor is
type Kind string

const (
	KindItem      Kind = "item"
	KindSpell     Kind = "spell"
	KindAbility   Kind = "ability"
	KindCondition Kind = "condition"
	KindFeature   Kind = "feature"
	KindAura      Kind = "aura"
	KindOther     Kind = "other"
)

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	switch k {
	case KindItem, KindSpell, KindAbility, KindCondition, KindFeature, KindAura, KindOther:
		return true
	}
	return false
}

// DurationType represents different duration types
type DurationType string

const (
	DurationPermanent     DurationType = "permanent"
	DurationRounds        DurationType = "rounds"
	DurationWhileEquipped DurationType = "while_equipped"
)

// StackingRule defines what happens when a contributor with the same name and
// kind is already active
type StackingRule string

const (
	StackingReplace      StackingRule = "replace"       // New contributor retracts the old one
	StackingStack        StackingRule = "stack"         // Both stay active
	StackingKeepExisting StackingRule = "keep_existing" // New contributor is rejected
)

// Duration represents how long a contributor stays active
type Duration struct {
	Type   DurationType
	Rounds int // For round-based durations
}

// Binding is the ordered list of descriptors a contributor pushes onto one stat
type Binding struct {
	Stat      *stats.Stat
	Modifiers []stats.Descriptor
}
