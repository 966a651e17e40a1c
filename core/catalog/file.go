package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/flexicity/core/model"
)

// assetDef mirrors model.AssetSpec with optional flags; variable and
// enabled default to true when omitted.
type assetDef struct {
	Owner     string  `yaml:"owner"`
	Appliance string  `yaml:"appliance"`
	PowerKW   float64 `yaml:"power_kw"`
	DurationH int     `yaml:"duration_h"`
	StartHour int     `yaml:"start_hour"`
	EndHour   int     `yaml:"end_hour"`
	Variable  *bool   `yaml:"variable,omitempty"`
	Enabled   *bool   `yaml:"enabled,omitempty"`
}

type catalogDef struct {
	Assets []assetDef `yaml:"assets"`
}

// LoadFile reads asset specs from a YAML catalog file.
func LoadFile(path string) ([]model.AssetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Specs are returned unvalidated.
func Parse(data []byte) ([]model.AssetSpec, error) {
	var def catalogDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	specs := make([]model.AssetSpec, len(def.Assets))
	for i, d := range def.Assets {
		s := model.NewAssetSpec(d.Owner, d.Appliance, d.PowerKW, d.DurationH, d.StartHour, d.EndHour)
		if d.Variable != nil {
			s.Variable = *d.Variable
		}
		if d.Enabled != nil {
			s.Enabled = *d.Enabled
		}
		specs[i] = s
	}
	return specs, nil
}
