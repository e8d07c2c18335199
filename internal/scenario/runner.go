package scenario

import (
	"context"
	"fmt"
	"math"

	"github.com/KirkDiggler/stat-engine/internal/effects"
	"github.com/KirkDiggler/stat-engine/internal/errors"
	"github.com/KirkDiggler/stat-engine/internal/events"
	"github.com/KirkDiggler/stat-engine/internal/stats"
	"github.com/KirkDiggler/stat-engine/internal/uuid"
)

const expectTolerance = 1e-9

// RunOptions configures a scenario run. Every field is optional.
type RunOptions struct {
	Bus           *events.Bus
	UUIDGenerator uuid.Generator
	Verbose       bool
}

// Report is the rendered state of one stat at a report step
type Report struct {
	Step int
	Stat string
	Text string
}

// Result is the outcome of a scenario run
type Result struct {
	Name     string
	Reports  []Report
	Failures []string
	Final    map[string]float64
}

// Passed reports whether every expectation held
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run plays the scenario's steps against fresh stats. The stats and the
// manager live only for this call, so concurrent runs share nothing.
func Run(ctx context.Context, s *Scenario, opts *RunOptions) (*Result, error) {
	if s == nil {
		return nil, errors.InvalidArgument("scenario is required")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &RunOptions{}
	}

	statsByName := make(map[string]*stats.Stat, len(s.Stats))
	for _, def := range s.Stats {
		statsByName[def.Name] = stats.NewStat(def.Base)
	}

	contributors := make(map[string]*effects.Contributor, len(s.Contributors))
	for _, def := range s.Contributors {
		c, err := def.build(statsByName)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %s", s.Name)
		}
		contributors[def.Name] = c
	}

	manager := effects.NewManager(&effects.ManagerConfig{
		UUIDGenerator: opts.UUIDGenerator,
		Bus:           opts.Bus,
		Verbose:       opts.Verbose,
	})

	result := &Result{Name: s.Name}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "scenario %s stopped at step %d", s.Name, i)
		}

		switch step.Action {
		case ActionEquip:
			if err := manager.Apply(contributors[step.Target]); err != nil {
				return nil, errors.Wrapf(err, "scenario %s step %d", s.Name, i)
			}
		case ActionUnequip:
			c := contributors[step.Target]
			if !c.IsActive() {
				return nil, errors.NotFoundf("scenario %s step %d: %s is not equipped", s.Name, i, step.Target)
			}
			if err := manager.Remove(c.ID); err != nil {
				return nil, errors.Wrapf(err, "scenario %s step %d", s.Name, i)
			}
		case ActionRoundEnd:
			manager.ProcessRoundEnd()
		case ActionCommit:
			manager.Commit(statsByName[step.Target])
		case ActionSetBase:
			stat := statsByName[step.Target]
			manager.Do(func() {
				stat.SetBaseValue(*step.Value)
			})
		case ActionReport:
			manager.Do(func() {
				result.Reports = append(result.Reports, report(i, s, statsByName, step.Target)...)
			})
		case ActionExpect:
			var got float64
			manager.Do(func() {
				got = statsByName[step.Target].FinalValue()
			})
			if math.Abs(got-*step.Value) > expectTolerance {
				result.Failures = append(result.Failures,
					fmt.Sprintf("step %d: %s = %v, expected %v", i, step.Target, got, *step.Value))
			}
		}
	}

	result.Final = make(map[string]float64, len(statsByName))
	manager.Do(func() {
		for name, stat := range statsByName {
			result.Final[name] = stat.FinalValue()
		}
	})

	return result, nil
}

func report(step int, s *Scenario, statsByName map[string]*stats.Stat, target string) []Report {
	if target != "" {
		return []Report{{Step: step, Stat: target, Text: statsByName[target].String()}}
	}

	reports := make([]Report, 0, len(s.Stats))
	for _, def := range s.Stats {
		reports = append(reports, Report{Step: step, Stat: def.Name, Text: statsByName[def.Name].String()})
	}
	return reports
}
