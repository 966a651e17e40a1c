package scenario

import "github.com/kilianp07/flexicity/core/model"

// Built-in scenario names.
const (
	Baseline      = "Baseline"
	WinterWeekday = "Winter weekday"
	Future2030    = "2030 future"
)

// BaselineCO2 is the hourly CO2 intensity in tCO2/MWh.
var BaselineCO2 = model.Curve{
	0.045, 0.042, 0.040, 0.038, 0.035, 0.032,
	0.030, 0.035, 0.050, 0.065, 0.070, 0.075,
	0.080, 0.085, 0.090, 0.095, 0.100, 0.110,
	0.105, 0.095, 0.085, 0.075, 0.060, 0.050,
}

// Default returns the Baseline, Winter weekday and 2030 future presets with
// the default price curve.
func Default() *Table {
	t, err := NewTable(model.DefaultPrices, defaultScenarios()...)
	if err != nil {
		panic(err)
	}
	return t
}

func defaultScenarios() []model.Scenario {
	return []model.Scenario{
		model.NewScenario(Baseline, baselineLoad(), BaselineCO2, nil),
		model.NewScenario(WinterWeekday, winterLoad(), winterCO2(), map[model.Category]float64{
			model.CategoryEV:    1.4,
			model.CategoryHVAC:  1.8,
			model.CategorySauna: 1.6,
		}),
		model.NewScenario(Future2030, futureLoad(), futureCO2(), map[model.Category]float64{
			model.CategoryEV:      2.2,
			model.CategoryHVAC:    1.9,
			model.CategoryBattery: 1.9,
		}),
	}
}

// baselineLoad has a morning bump at 7-9 and an evening bump at 17-21.
func baselineLoad() model.Curve {
	var c model.Curve
	for h := range c {
		v := 40.0
		if h >= 7 && h <= 9 {
			v += 25
		}
		if h >= 17 && h <= 21 {
			v += 35
		}
		c[h] = v
	}
	return c
}

func winterLoad() model.Curve {
	var c model.Curve
	for h := range c {
		v := 55.0
		if h >= 5 && h <= 9 {
			v += 70
		}
		if h >= 16 && h <= 22 {
			v += 90
		}
		c[h] = v
	}
	return c
}

func futureLoad() model.Curve {
	base := baselineLoad()
	var c model.Curve
	for h := range c {
		v := base[h] * 1.9
		if h >= 10 && h <= 15 {
			v += 35
		}
		if h >= 16 && h <= 21 {
			v += 70
		}
		c[h] = v
	}
	return c
}

// winterCO2 is 25% dirtier than baseline, 45% at the evening peak.
func winterCO2() model.Curve {
	var c model.Curve
	for h, v := range BaselineCO2 {
		f := 1.25
		if h >= 17 && h <= 21 {
			f = 1.45
		}
		c[h] = v * f
	}
	return c
}

// futureCO2 is 35% cleaner than baseline, 55% around the solar peak.
func futureCO2() model.Curve {
	var c model.Curve
	for h, v := range BaselineCO2 {
		f := 0.65
		if h >= 10 && h <= 16 {
			f = 0.45
		}
		c[h] = v * f
	}
	return c
}
