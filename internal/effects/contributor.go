package effects

import (
	"github.com/KirkDiggler/stat-engine/internal/errors"
	"github.com/KirkDiggler/stat-engine/internal/stats"
)

// Contributor is anything that modifies stats while it is active: equipment,
// buffs, auras. It is the stats.Source of every modifier it attaches, so
// deactivation only needs to ask each touched stat to drop its modifiers.
type Contributor struct {
	ID           string
	Name         string
	Kind         Kind
	Duration     Duration
	StackingRule StackingRule
	Bindings     []Binding

	active     bool
	roundsLeft int
}

var _ stats.Source = (*Contributor)(nil)

// SourceName is the name shown next to each modifier when a stat is rendered
func (c *Contributor) SourceName() string {
	return c.Name
}

func (c *Contributor) IsActive() bool {
	return c.active
}

// RoundsLeft is only meaningful for round-based durations
func (c *Contributor) RoundsLeft() int {
	return c.roundsLeft
}

// Stats returns each distinct stat the contributor binds to, in binding order
func (c *Contributor) Stats() []*stats.Stat {
	seen := make(map[*stats.Stat]bool, len(c.Bindings))
	out := make([]*stats.Stat, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		if b.Stat == nil || seen[b.Stat] {
			continue
		}
		seen[b.Stat] = true
		out = append(out, b.Stat)
	}
	return out
}

// Activate attaches one modifier per descriptor, attributed to c
func (c *Contributor) Activate() error {
	if c.active {
		return errors.AlreadyExistsf("contributor %s is already active", c.Name).
			WithMeta("contributor_id", c.ID)
	}

	for _, b := range c.Bindings {
		if b.Stat == nil {
			continue
		}
		b.Stat.AddModifiers(stats.Apply(c, b.Modifiers...)...)
	}

	c.active = true
	if c.Duration.Type == DurationRounds {
		c.roundsLeft = c.Duration.Rounds
	}
	return nil
}

// Deactivate retracts every modifier c attached and returns how many were
// removed. Deactivating an inactive contributor is a no-op.
func (c *Contributor) Deactivate() int {
	if !c.active {
		return 0
	}

	removed := 0
	for _, stat := range c.Stats() {
		removed += stat.RemoveModifiersFromSource(c)
	}
	c.active = false
	c.roundsLeft = 0
	return removed
}

// tick counts down one round and reports whether the contributor has expired
func (c *Contributor) tick() bool {
	if !c.active || c.Duration.Type != DurationRounds {
		return false
	}
	c.roundsLeft--
	return c.roundsLeft <= 0
}
