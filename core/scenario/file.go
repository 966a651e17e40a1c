package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/flexicity/core/model"
)

type scenarioDef struct {
	Name       string             `yaml:"name"`
	BaseLoad   []float64          `yaml:"base_load"`
	CO2PerHour []float64          `yaml:"co2_per_hour"`
	Scaling    map[string]float64 `yaml:"scaling,omitempty"`
}

type tableDef struct {
	Prices    []float64     `yaml:"prices,omitempty"`
	Scenarios []scenarioDef `yaml:"scenarios"`
}

// LoadFile reads a scenario table from a YAML file. When the file has no
// prices the default price curve is used.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML scenario table.
func Parse(data []byte) (*Table, error) {
	var def tableDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}
	prices := model.DefaultPrices
	if len(def.Prices) > 0 {
		c, err := model.CurveFrom(def.Prices)
		if err != nil {
			return nil, fmt.Errorf("prices: %w", err)
		}
		prices = c
	}
	scenarios := make([]model.Scenario, 0, len(def.Scenarios))
	for _, sd := range def.Scenarios {
		base, err := model.CurveFrom(sd.BaseLoad)
		if err != nil {
			return nil, fmt.Errorf("scenario %q base_load: %w", sd.Name, err)
		}
		co2, err := model.CurveFrom(sd.CO2PerHour)
		if err != nil {
			return nil, fmt.Errorf("scenario %q co2_per_hour: %w", sd.Name, err)
		}
		scaling := make(map[model.Category]float64, len(sd.Scaling))
		for k, v := range sd.Scaling {
			cat := model.Category(k)
			if !cat.IsKnown() {
				return nil, fmt.Errorf("scenario %q: %w", sd.Name, &model.ValidationError{
					Field:  "scaling",
					Reason: fmt.Sprintf("unknown category %q (want EV, HVAC, Battery or Sauna)", k),
				})
			}
			scaling[cat] = v
		}
		scenarios = append(scenarios, model.NewScenario(sd.Name, base, co2, scaling))
	}
	return NewTable(prices, scenarios...)
}
