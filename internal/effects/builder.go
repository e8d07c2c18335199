package effects

import (
	"fmt"

	"github.com/KirkDiggler/stat-engine/internal/errors"
	"github.com/KirkDiggler/stat-engine/internal/stats"
)

// Builder helps create contributors
type Builder struct {
	contributor *Contributor
	err         error
}

// NewBuilder creates a new contributor builder
func NewBuilder(name string) *Builder {
	return &Builder{
		contributor: &Contributor{
			Name:         name,
			Kind:         KindOther,
			Duration:     Duration{Type: DurationPermanent},
			StackingRule: StackingReplace,
		},
	}
}

// WithID pins the contributor ID; otherwise the manager assigns one
func (b *Builder) WithID(id string) *Builder {
	b.contributor.ID = id
	return b
}

// WithKind sets what sort of contributor this is
func (b *Builder) WithKind(kind Kind) *Builder {
	b.contributor.Kind = kind
	return b
}

// WithRounds makes the contributor expire after the given number of rounds
func (b *Builder) WithRounds(rounds int) *Builder {
	b.contributor.Duration = Duration{
		Type:   DurationRounds,
		Rounds: rounds,
	}
	return b
}

// WhileEquipped marks the contributor as lasting until it is unequipped
func (b *Builder) WhileEquipped() *Builder {
	b.contributor.Duration = Duration{Type: DurationWhileEquipped}
	return b
}

// WithStackingRule sets how this contributor stacks
func (b *Builder) WithStackingRule(rule StackingRule) *Builder {
	b.contributor.StackingRule = rule
	return b
}

// Modify queues descriptors for stat. Repeated calls for the same stat
// append to its list so the attach order is kept.
func (b *Builder) Modify(stat *stats.Stat, descriptors ...stats.Descriptor) *Builder {
	if stat == nil {
		if b.err == nil {
			b.err = errors.Validationf("contributor %s: binding %d has no stat", b.contributor.Name, len(b.contributor.Bindings))
		}
		return b
	}

	for i := range b.contributor.Bindings {
		if b.contributor.Bindings[i].Stat == stat {
			b.contributor.Bindings[i].Modifiers = append(b.contributor.Bindings[i].Modifiers, descriptors...)
			return b
		}
	}

	b.contributor.Bindings = append(b.contributor.Bindings, Binding{
		Stat:      stat,
		Modifiers: append([]stats.Descriptor(nil), descriptors...),
	})
	return b
}

// Build validates and returns the contributor
func (b *Builder) Build() (*Contributor, error) {
	if b.err != nil {
		return nil, b.err
	}

	c := b.contributor
	if c.Name == "" {
		return nil, errors.Validation("contributor name is required")
	}
	if !c.Kind.IsValid() {
		return nil, errors.Validationf("contributor %s: unknown kind %q", c.Name, c.Kind)
	}
	if len(c.Bindings) == 0 {
		return nil, errors.Validationf("contributor %s modifies no stats", c.Name)
	}
	if c.Duration.Type == DurationRounds && c.Duration.Rounds <= 0 {
		return nil, errors.Validationf("contributor %s: rounds must be positive, got %d", c.Name, c.Duration.Rounds)
	}
	switch c.StackingRule {
	case StackingReplace, StackingStack, StackingKeepExisting:
	default:
		return nil, errors.Validationf("contributor %s: unknown stacking rule %q", c.Name, c.StackingRule)
	}

	return c, nil
}

// Common contributors

// BuildShieldSpell is a +5 armor class bonus until the start of the next turn
func BuildShieldSpell(armorClass *stats.Stat) (*Contributor, error) {
	return NewBuilder("Shield").
		WithKind(KindSpell).
		WithRounds(1).
		Modify(armorClass, stats.Add(5)).
		Build()
}

// BuildHaste doubles speed and adds 2 armor class for ten rounds
func BuildHaste(speed, armorClass *stats.Stat) (*Contributor, error) {
	return NewBuilder("Haste").
		WithKind(KindSpell).
		WithRounds(10).
		Modify(speed, stats.Mul(2)).
		Modify(armorClass, stats.Add(2)).
		Build()
}

// BuildMagicItem creates a "+X" item that adds bonus to every given stat while equipped
func BuildMagicItem(itemName string, bonus float64, targets ...*stats.Stat) (*Contributor, error) {
	b := NewBuilder(fmt.Sprintf("%s +%g", itemName, bonus)).
		WithKind(KindItem).
		WhileEquipped().
		WithStackingRule(StackingStack)
	for _, target := range targets {
		b.Modify(target, stats.Add(bonus))
	}
	return b.Build()
}

// BuildExhaustion halves the given stats until removed
func BuildExhaustion(targets ...*stats.Stat) (*Contributor, error) {
	b := NewBuilder("Exhaustion").
		WithKind(KindCondition).
		WithStackingRule(StackingKeepExisting)
	for _, target := range targets {
		b.Modify(target, stats.Mul(0.5))
	}
	return b.Build()
}
