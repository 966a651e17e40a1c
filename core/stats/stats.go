// Package stats derives peak, cost and CO2 indicators from a pair of load
// curves.
package stats

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/flexicity/core/model"
)

// DaysPerYear extrapolates a daily CO2 saving.
const DaysPerYear = 365

// Input gathers everything Compute needs. Costs are in cents.
type Input struct {
	Before          model.Curve
	After           model.Curve
	CO2             model.Curve
	CostBeforeCents float64
	CostAfterCents  float64
}

// Stats summarises a schedule. Peaks are in kW, costs in EUR and CO2 in
// kg-equivalent units of load times intensity.
type Stats struct {
	PeakBefore       float64 `json:"peak_before"`
	PeakAfter        float64 `json:"peak_after"`
	PeakReduction    float64 `json:"peak_reduction"`
	PeakReductionPct float64 `json:"peak_reduction_pct"`

	CostBefore    float64 `json:"cost_before"`
	CostAfter     float64 `json:"cost_after"`
	CostSaving    float64 `json:"cost_saving"`
	CostSavingPct float64 `json:"cost_saving_pct"`

	CO2Before     float64 `json:"co2_before"`
	CO2After      float64 `json:"co2_after"`
	CO2SavingDay  float64 `json:"co2_saving_day"`
	CO2SavingPct  float64 `json:"co2_saving_pct"`
	CO2SavingYear float64 `json:"co2_saving_year"`
}

// Compute is a pure function of its input.
func Compute(in Input) Stats {
	var s Stats
	s.PeakBefore = in.Before.Peak()
	s.PeakAfter = in.After.Peak()
	s.PeakReduction = s.PeakBefore - s.PeakAfter
	s.PeakReductionPct = Percent(s.PeakReduction, s.PeakBefore)

	s.CostBefore = in.CostBeforeCents / 100
	s.CostAfter = in.CostAfterCents / 100
	s.CostSaving = s.CostBefore - s.CostAfter
	s.CostSavingPct = Percent(s.CostSaving, s.CostBefore)

	s.CO2Before = floats.Dot(in.Before.Slice(), in.CO2.Slice())
	s.CO2After = floats.Dot(in.After.Slice(), in.CO2.Slice())
	s.CO2SavingDay = s.CO2Before - s.CO2After
	s.CO2SavingPct = Percent(s.CO2SavingDay, s.CO2Before)
	s.CO2SavingYear = s.CO2SavingDay * DaysPerYear
	return s
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
