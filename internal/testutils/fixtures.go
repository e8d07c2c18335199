package testutils

import (
	"github.com/KirkDiggler/stat-engine/internal/effects"
	"github.com/KirkDiggler/stat-engine/internal/stats"
)

// TestCharacter is the stat block used by the equipment fixtures
type TestCharacter struct {
	MaxHealth *stats.Stat
	Shield    *stats.Stat
}

// CreateTestCharacter creates a character with max health 50 and shield 30
func CreateTestCharacter() *TestCharacter {
	return &TestCharacter{
		MaxHealth: stats.NewStat(50),
		Shield:    stats.NewStat(30),
	}
}

// CreateTestBoots creates boots adding 5 max health
func CreateTestBoots(c *TestCharacter) *effects.Contributor {
	return mustBuild(effects.NewBuilder("Boots").
		WithKind(effects.KindItem).
		WhileEquipped().
		Modify(c.MaxHealth, stats.Add(5)))
}

// CreateTestHelmet creates a helmet doubling max health after +5, and taking 4 shield
func CreateTestHelmet(c *TestCharacter) *effects.Contributor {
	return mustBuild(effects.NewBuilder("Helmet").
		WithKind(effects.KindItem).
		WhileEquipped().
		Modify(c.MaxHealth, stats.Mul(2), stats.Add(5)).
		Modify(c.Shield, stats.Add(-4)))
}

func mustBuild(b *effects.Builder) *effects.Contributor {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
