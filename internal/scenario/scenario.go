// Package scenario drives stats and contributors from YAML files, for
// trying out equipment and buff setups without writing code.
package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/stat-engine/internal/effects"
	"github.com/KirkDiggler/stat-engine/internal/errors"
	"github.com/KirkDiggler/stat-engine/internal/stats"
)

//go:embed reference.yaml
var referenceScenario []byte

// Action is one scenario step
type Action string

const (
	ActionEquip    Action = "equip"
	ActionUnequip  Action = "unequip"
	ActionRoundEnd Action = "round_end"
	ActionCommit   Action = "commit"
	ActionSetBase  Action = "set_base"
	ActionReport   Action = "report"
	ActionExpect   Action = "expect"
)

// Scenario is a set of stats, the contributors that may modify them and the
// steps to play
type Scenario struct {
	Name         string           `yaml:"name"`
	Stats        []StatDef        `yaml:"stats"`
	Contributors []ContributorDef `yaml:"contributors"`
	Steps        []Step           `yaml:"steps"`
}

// StatDef declares a stat and its base value
type StatDef struct {
	Name string  `yaml:"name"`
	Base float64 `yaml:"base"`
}

// ContributorDef maps stats to the ordered modifiers a contributor pushes onto them
type ContributorDef struct {
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	Rounds    int           `yaml:"rounds"`
	Stacking  string        `yaml:"stacking"`
	Modifiers []ModifierDef `yaml:"modifiers"`
}

// ModifierDef is one descriptor for one stat
type ModifierDef struct {
	Stat  string  `yaml:"stat"`
	Op    string  `yaml:"op"`
	Value float64 `yaml:"value"`
}

// Step is one action against the scenario state
type Step struct {
	Action Action   `yaml:"action"`
	Target string   `yaml:"target"`
	Value  *float64 `yaml:"value"`
}

// Reference returns the built-in boots and helmet scenario
func Reference() (*Scenario, error) {
	return Parse(referenceScenario)
}

// Load reads a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.CodeNotFound, fmt.Sprintf("scenario %s", path))
		}
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse decodes and validates a scenario
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeValidation, "parsing scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every reference in the scenario resolves
func (s *Scenario) Validate() error {
	statNames := make(map[string]bool, len(s.Stats))
	for i, def := range s.Stats {
		if def.Name == "" {
			return errors.Validationf("stat %d has no name", i)
		}
		if statNames[def.Name] {
			return errors.Validationf("stat %s declared twice", def.Name)
		}
		statNames[def.Name] = true
	}

	contributorNames := make(map[string]bool, len(s.Contributors))
	for i, def := range s.Contributors {
		if def.Name == "" {
			return errors.Validationf("contributor %d has no name", i)
		}
		if contributorNames[def.Name] {
			return errors.Validationf("contributor %s declared twice", def.Name)
		}
		contributorNames[def.Name] = true
		if len(def.Modifiers) == 0 {
			return errors.Validationf("contributor %s has no modifiers", def.Name)
		}
		if def.Rounds < 0 {
			return errors.Validationf("contributor %s: rounds must not be negative, got %d", def.Name, def.Rounds)
		}

		for j, mod := range def.Modifiers {
			if !statNames[mod.Stat] {
				return errors.NotFoundf("contributor %s modifier %d: unknown stat %q", def.Name, j, mod.Stat)
			}
			if _, err := stats.ParseOperation(mod.Op); err != nil {
				return errors.Wrapf(err, "contributor %s modifier %d", def.Name, j)
			}
		}
	}

	for i, step := range s.Steps {
		switch step.Action {
		case ActionEquip, ActionUnequip:
			if !contributorNames[step.Target] {
				return errors.NotFoundf("step %d: unknown contributor %q", i, step.Target)
			}
		case ActionCommit:
			if !statNames[step.Target] {
				return errors.NotFoundf("step %d: unknown stat %q", i, step.Target)
			}
		case ActionSetBase, ActionExpect:
			if !statNames[step.Target] {
				return errors.NotFoundf("step %d: unknown stat %q", i, step.Target)
			}
			if step.Value == nil {
				return errors.Validationf("step %d: %s needs a value", i, step.Action)
			}
		case ActionReport:
			if step.Target != "" && !statNames[step.Target] {
				return errors.NotFoundf("step %d: unknown stat %q", i, step.Target)
			}
		case ActionRoundEnd:
		default:
			return errors.InvalidArgumentf("step %d: unknown action %q", i, step.Action)
		}
	}

	return nil
}

// build turns a contributor definition into an inactive contributor
func (def ContributorDef) build(statsByName map[string]*stats.Stat) (*effects.Contributor, error) {
	b := effects.NewBuilder(def.Name)
	if def.Kind != "" {
		b.WithKind(effects.Kind(def.Kind))
	}
	if def.Rounds > 0 {
		b.WithRounds(def.Rounds)
	}
	if def.Stacking != "" {
		b.WithStackingRule(effects.StackingRule(def.Stacking))
	}

	for _, mod := range def.Modifiers {
		op, err := stats.ParseOperation(mod.Op)
		if err != nil {
			return nil, err
		}
		d, err := stats.NewDescriptor(op, mod.Value)
		if err != nil {
			return nil, err
		}
		b.Modify(statsByName[mod.Stat], d)
	}

	return b.Build()
}
