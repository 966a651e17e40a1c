package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/flexicity/core/model"
)

func flat(v float64) model.Curve {
	var c model.Curve
	for i := range c {
		c[i] = v
	}
	return c
}

func TestCompute(t *testing.T) {
	before := flat(10)
	before[18] = 50
	after := flat(10)
	after[18] = 40
	after[3] = 20

	s := Compute(Input{
		Before:          before,
		After:           after,
		CO2:             flat(0.1),
		CostBeforeCents: 2000,
		CostAfterCents:  1500,
	})

	assert.Equal(t, 50.0, s.PeakBefore)
	assert.Equal(t, 40.0, s.PeakAfter)
	assert.InDelta(t, 10, s.PeakReduction, 1e-9)
	assert.InDelta(t, 20, s.PeakReductionPct, 1e-9)

	assert.InDelta(t, 20, s.CostBefore, 1e-9)
	assert.InDelta(t, 15, s.CostAfter, 1e-9)
	assert.InDelta(t, 5, s.CostSaving, 1e-9)
	assert.InDelta(t, 25, s.CostSavingPct, 1e-9)

	assert.InDelta(t, 28.0, s.CO2Before, 1e-9)
	assert.InDelta(t, 28.0, s.CO2After, 1e-9)
	assert.InDelta(t, 0, s.CO2SavingDay, 1e-9)
	assert.InDelta(t, 0, s.CO2SavingYear, 1e-9)
}

func TestComputeZeroDenominators(t *testing.T) {
	s := Compute(Input{})
	assert.Zero(t, s.PeakReductionPct)
	assert.Zero(t, s.CostSavingPct)
	assert.Zero(t, s.CO2SavingPct)
}

func TestCO2SavingYear(t *testing.T) {
	co2 := flat(0)
	co2[0] = 1
	before := flat(0)
	before[0] = 2
	s := Compute(Input{Before: before, After: flat(0), CO2: co2})
	assert.InDelta(t, 2, s.CO2SavingDay, 1e-9)
	assert.InDelta(t, 730, s.CO2SavingYear, 1e-9)
	assert.InDelta(t, 100, s.CO2SavingPct, 1e-9)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole, want float64
	}{
		{5, 10, 50},
		{5, 0, 0},
		{5, -1, 0},
		{-2, 8, -25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percent(tt.part, tt.whole), 1e-9)
	}
}
