package model

// Scenario is an environment preset. It is immutable once built with
// NewScenario.
type Scenario struct {
	Name         string
	BaseLoad     Curve // ambient demand independent of flexible assets
	CO2Intensity Curve // tCO2/MWh per hour
	scaling      map[Category]float64
}

// NewScenario copies the scaling map so later changes by the caller do not
// leak into the scenario.
func NewScenario(name string, baseLoad, co2 Curve, scaling map[Category]float64) Scenario {
	cp := make(map[Category]float64, len(scaling))
	for k, v := range scaling {
		cp[k] = v
	}
	return Scenario{Name: name, BaseLoad: baseLoad, CO2Intensity: co2, scaling: cp}
}

// ScalingFactor returns the factor for a category, 1 when absent.
func (s Scenario) ScalingFactor(c Category) float64 {
	if f, ok := s.scaling[c]; ok {
		return f
	}
	return 1.0
}

// Scaling returns a copy of the category factors.
func (s Scenario) Scaling() map[Category]float64 {
	cp := make(map[Category]float64, len(s.scaling))
	for k, v := range s.scaling {
		cp[k] = v
	}
	return cp
}

// PowerFactor returns the multiplier applied to an asset's base power. The
// factors of every matched category are multiplied together.
func (s Scenario) PowerFactor(appliance string) float64 {
	factor := 1.0
	for _, c := range Categories(appliance) {
		factor *= s.ScalingFactor(c)
	}
	return factor
}
