package config

import (
	"math/rand"
	"strings"

	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/scenario"
)

// ScenarioAll sweeps every selection in one run instead of picking one.
const ScenarioAll = "all"

// ScenarioRandom draws the selection once at the top of the run.
const ScenarioRandom = "random"

// ResolveScenario turns a configured scenario name into a fixed selection.
// "random" draws once, seeded for reproducibility when seed is non-zero;
// the draw happens here so the engine itself only ever sees a fixed
// selection.
func ResolveScenario(name string, seed int64) (scenario.Selection, error) {
	if strings.EqualFold(strings.TrimSpace(name), ScenarioRandom) {
		var source *rand.Rand
		if seed != 0 {
			source = rand.New(rand.NewSource(seed))
		}
		return scenario.Draw(source), nil
	}
	return scenario.ParseSelection(name)
}

// EngineInputs expands the configuration into the evaluation inputs for one
// run: one input per selection under "all", otherwise a single input with
// the configured or randomly drawn selection. The scenario override, when
// non-empty, takes the place of the configured scenario.
func (conf *Configuration) EngineInputs(scenarioOverride string) ([]engine.Input, error) {
	mode, err := engine.ParseMode(conf.ComparisonMode)
	if err != nil {
		return nil, err
	}

	base := engine.Input{
		Property: conf.Property,
		Rent:     conf.Rent,
		Fees:     conf.Fees,
		Market:   conf.Market,
		Mode:     mode,
	}

	name := conf.Scenario
	if strings.TrimSpace(scenarioOverride) != "" {
		name = scenarioOverride
	}

	if strings.EqualFold(strings.TrimSpace(name), ScenarioAll) {
		selections := scenario.Selections()
		inputs := make([]engine.Input, 0, len(selections))
		for _, selection := range selections {
			input := base
			input.Scenario = selection
			inputs = append(inputs, input)
		}
		return inputs, nil
	}

	selection, err := ResolveScenario(name, conf.RandomSeed)
	if err != nil {
		return nil, err
	}
	base.Scenario = selection
	return []engine.Input{base}, nil
}
