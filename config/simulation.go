package config

import (
	"fmt"
	"runtime"

	"github.com/kilianp07/flexicity/core/optimizer"
	"github.com/kilianp07/flexicity/core/scenario"
)

// SimulationConfig selects the starting scenario, parameters and the files
// the catalog and scenario table are read from.
type SimulationConfig struct {
	Scenario string  `json:"scenario" koanf:"scenario"`
	FlexPct  float64 `json:"flex_pct" koanf:"flex_pct"`
	PricePct float64 `json:"price_pct" koanf:"price_pct"`
	// CatalogPath points to a YAML asset list. Empty uses the seeded portfolio.
	CatalogPath string `json:"catalog_path" koanf:"catalog_path"`
	// ScenariosPath points to a YAML scenario table. Empty uses the built-ins.
	ScenariosPath string `json:"scenarios_path" koanf:"scenarios_path"`
}

// defaultSimulation holds the numeric defaults. They are set before decoding
// so an explicit zero in a file survives.
func defaultSimulation() SimulationConfig {
	return SimulationConfig{FlexPct: 100, PricePct: 50}
}

func (c *SimulationConfig) SetDefaults() {
	if c.Scenario == "" {
		c.Scenario = scenario.Baseline
	}
}

func (c SimulationConfig) Validate() error {
	if c.FlexPct < 0 || c.FlexPct > 100 {
		return fmt.Errorf("flex_pct %v out of range [0,100]", c.FlexPct)
	}
	if c.PricePct < 0 || c.PricePct > 100 {
		return fmt.Errorf("price_pct %v out of range [0,100]", c.PricePct)
	}
	return nil
}

// OptimizerConfig tunes the parameter search.
type OptimizerConfig struct {
	// Workers bounds parallel grid evaluations. Zero means GOMAXPROCS.
	Workers int    `json:"workers" koanf:"workers"`
	Policy  string `json:"policy" koanf:"policy"`
}

func (c *OptimizerConfig) SetDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Policy == "" {
		c.Policy = string(optimizer.IdealBalance)
	}
}

func (c OptimizerConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	_, err := optimizer.ParsePolicy(c.Policy)
	return err
}
