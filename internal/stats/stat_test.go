package stats_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/stat-engine/internal/stats"
	mockstats "github.com/KirkDiggler/stat-engine/internal/stats/mock"
)

type StatSuite struct {
	suite.Suite

	boots  *namedSource
	helmet *namedSource
}

func TestStatSuite(t *testing.T) {
	suite.Run(t, new(StatSuite))
}

func (s *StatSuite) SetupTest() {
	s.boots = &namedSource{name: "Boots"}
	s.helmet = &namedSource{name: "Helmet"}
}

func (s *StatSuite) TestZeroValue() {
	var stat stats.Stat

	s.Equal(0.0, stat.BaseValue())
	s.Equal(0.0, stat.FinalValue())
	s.Equal(0, stat.Len())
	s.Equal("Base Value: 0\nFinal Value: 0", stat.String())
}

func (s *StatSuite) TestNewStatWithStartingModifiers() {
	stat := stats.NewStat(10, stats.NewAppliedModifier(stats.Mul(3), nil), stats.NewAppliedModifier(stats.Add(2), nil))

	s.Equal(10.0, stat.BaseValue())
	s.Equal(2, stat.Len())
	s.Equal(36.0, stat.FinalValue())
}

func (s *StatSuite) TestReferenceScenario() {
	maxHealth := stats.NewStat(50)
	shield := stats.NewStat(30)

	s.Equal(50.0, maxHealth.FinalValue())
	s.Equal(30.0, shield.FinalValue())

	maxHealth.AddModifiers(stats.Apply(s.boots, stats.Add(5))...)
	s.Equal(55.0, maxHealth.FinalValue())
	s.Equal(30.0, shield.FinalValue())

	maxHealth.AddModifiers(stats.Apply(s.helmet, stats.Mul(2), stats.Add(5))...)
	shield.AddModifiers(stats.Apply(s.helmet, stats.Add(-4))...)
	s.Equal(120.0, maxHealth.FinalValue())
	s.Equal(26.0, shield.FinalValue())

	s.Equal(1, maxHealth.RemoveModifiersFromSource(s.boots))
	s.Equal(0, shield.RemoveModifiersFromSource(s.boots))
	s.Equal(110.0, maxHealth.FinalValue())
	s.Equal(26.0, shield.FinalValue())
}

func (s *StatSuite) TestAdditiveBeforeMultiplicative() {
	mulFirst := stats.NewStat(10)
	mulFirst.AddModifier(stats.NewAppliedModifier(stats.Mul(2), nil))
	mulFirst.AddModifier(stats.NewAppliedModifier(stats.Add(5), nil))

	addFirst := stats.NewStat(10)
	addFirst.AddModifier(stats.NewAppliedModifier(stats.Add(5), nil))
	addFirst.AddModifier(stats.NewAppliedModifier(stats.Mul(2), nil))

	s.Equal(30.0, mulFirst.FinalValue())
	s.Equal(mulFirst.FinalValue(), addFirst.FinalValue())
}

func (s *StatSuite) TestSameKindOrderIndependence() {
	descriptors := []stats.Descriptor{
		stats.Add(3), stats.Mul(2), stats.Add(-7), stats.Mul(0.5), stats.Add(12), stats.Mul(4),
	}
	want := ((100.0 + 3 - 7 + 12) * 2 * 0.5 * 4)

	permutations := [][]int{
		{0, 1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1, 0},
		{1, 3, 5, 0, 2, 4},
		{2, 0, 4, 5, 1, 3},
		{3, 2, 1, 4, 5, 0},
	}

	for _, order := range permutations {
		stat := stats.NewStat(100)
		for _, i := range order {
			stat.AddModifier(stats.NewAppliedModifier(descriptors[i], nil))
		}
		s.InDelta(want, stat.FinalValue(), 1e-9, "order %v", order)
	}
}

func (s *StatSuite) TestNoOpModifiersAreKept() {
	stat := stats.NewStat(7)
	stat.AddModifiers(stats.Apply(s.boots, stats.Add(0), stats.Mul(1))...)

	s.Equal(2, stat.Len())
	s.Equal(7.0, stat.FinalValue())
}

func (s *StatSuite) TestFinalValueIsIdempotentRead() {
	stat := stats.NewStat(20)
	stat.AddModifiers(stats.Apply(s.helmet, stats.Mul(3), stats.Add(1))...)
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(2), s.boots))

	before := stat.Modifiers()
	first := stat.FinalValue()
	_ = stat.String()
	second := stat.FinalValue()

	s.Equal(first, second)
	s.Equal(69.0, first)
	s.Equal(20.0, stat.BaseValue())
	s.Equal(before, stat.Modifiers(), "reads must not reorder storage")
	s.Equal(stats.Mul(3), stat.Modifiers()[0].Descriptor())
}

func (s *StatSuite) TestModifiersReturnsCopy() {
	stat := stats.NewStat(1)
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(1), nil))

	mods := stat.Modifiers()
	mods[0] = nil

	s.NotNil(stat.Modifiers()[0])
	s.Equal(2.0, stat.FinalValue())
}

func (s *StatSuite) TestAddModifierIgnoresNil() {
	stat := stats.NewStat(1)
	stat.AddModifier(nil)
	stat.AddModifiers(nil, stats.NewAppliedModifier(stats.Add(1), nil), nil)

	s.Equal(1, stat.Len())
}

func (s *StatSuite) TestRemoveModifier() {
	stat := stats.NewStat(10)
	first := stats.NewAppliedModifier(stats.Add(5), s.boots)
	twin := stats.NewAppliedModifier(stats.Add(5), s.boots)
	stat.AddModifiers(first, twin)

	s.True(stat.RemoveModifier(first))
	s.Equal(1, stat.Len())
	s.Same(twin, stat.Modifiers()[0], "only the identical entry is removed")

	s.False(stat.RemoveModifier(first), "second removal is a no-op")
	s.False(stat.RemoveModifier(nil))
	s.Equal(15.0, stat.FinalValue())
}

func (s *StatSuite) TestRemoveModifierRemovesFirstOccurrenceOnly() {
	stat := stats.NewStat(0)
	m := stats.NewAppliedModifier(stats.Add(1), nil)
	stat.AddModifiers(m, m)

	s.True(stat.RemoveModifier(m))
	s.Equal(1, stat.Len())
	s.Equal(1.0, stat.FinalValue())
}

func (s *StatSuite) TestRemoveModifiersFromSource() {
	stat := stats.NewStat(10)
	unattributed := stats.NewAppliedModifier(stats.Add(1), nil)

	stat.AddModifier(stats.NewAppliedModifier(stats.Add(5), s.boots))
	stat.AddModifier(unattributed)
	stat.AddModifiers(stats.Apply(s.helmet, stats.Mul(2))...)
	stat.AddModifier(stats.NewAppliedModifier(stats.Mul(3), s.boots))

	s.Equal(2, stat.RemoveModifiersFromSource(s.boots))

	remaining := stat.Modifiers()
	s.Require().Len(remaining, 2)
	s.Same(unattributed, remaining[0])
	s.True(remaining[1].From(s.helmet))
	for _, m := range remaining {
		s.False(m.From(s.boots))
	}
	s.Equal(22.0, stat.FinalValue())

	s.Equal(0, stat.RemoveModifiersFromSource(s.boots), "source with nothing attached")
}

func (s *StatSuite) TestRemoveModifiersFromNilSourceIsNoOp() {
	stat := stats.NewStat(10)
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(1), nil))
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(2), nil))

	s.Equal(0, stat.RemoveModifiersFromSource(nil))
	s.Equal(2, stat.Len())
	s.Equal(13.0, stat.FinalValue())
}

func (s *StatSuite) TestRemoveModifiersFromSourceInterleaved() {
	stat := stats.NewStat(0)
	ring := &namedSource{name: "Ring"}

	stat.AddModifier(stats.NewAppliedModifier(stats.Add(1), s.boots))
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(10), ring))
	stat.RemoveModifiersFromSource(s.boots)
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(100), s.boots))
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(1000), s.helmet))
	stat.RemoveModifiersFromSource(ring)

	s.Equal(1100.0, stat.FinalValue())
	stat.RemoveModifiersFromSource(s.boots)
	s.Equal(1000.0, stat.FinalValue())
}

func (s *StatSuite) TestRemoveDoesNotReadSourceName() {
	ctrl := gomock.NewController(s.T())
	// no expectations: any SourceName call fails the test
	source := mockstats.NewMockSource(ctrl)

	stat := stats.NewStat(4)
	stat.AddModifiers(stats.Apply(source, stats.Add(1), stats.Mul(2))...)

	s.Equal(10.0, stat.FinalValue())
	s.Equal(2, stat.RemoveModifiersFromSource(source))
	s.Equal(4.0, stat.FinalValue())
}

func (s *StatSuite) TestCommitAndClear() {
	stat := stats.NewStat(50)
	stat.AddModifiers(stats.Apply(s.helmet, stats.Mul(2), stats.Add(5))...)
	want := stat.FinalValue()

	stat.CommitAndClear()

	s.Equal(want, stat.BaseValue())
	s.Equal(0, stat.Len())
	s.Equal(want, stat.FinalValue())
	s.Equal(0, stat.RemoveModifiersFromSource(s.helmet), "committed modifiers are gone")
	s.Equal(110.0, stat.FinalValue())
}

func (s *StatSuite) TestSetBaseValue() {
	stat := stats.NewStat(1)
	stat.AddModifier(stats.NewAppliedModifier(stats.Mul(2), nil))

	stat.SetBaseValue(21)

	s.Equal(42.0, stat.FinalValue())
}

func (s *StatSuite) TestString() {
	stat := stats.NewStat(5)
	stat.AddModifier(stats.NewAppliedModifier(stats.Mul(1.5), s.boots))
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(15), s.helmet))
	stat.AddModifier(stats.NewAppliedModifier(stats.Add(-4), nil))

	want := "Base Value: 5\n" +
		"+15 from Helmet\n" +
		"-4\n" +
		"x1.5 from Boots\n" +
		"Final Value: 24"
	s.Equal(want, stat.String())
}
