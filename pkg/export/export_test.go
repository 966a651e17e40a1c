package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flexicity/core/model"
)

func sampleAssets() []model.Asset {
	return []model.Asset{{
		ID: "a1", Owner: "Bus depot #1", Appliance: "Bus chargers (EV)",
		PowerKW: 42, BasePowerKW: 30, DurationH: 2, StartHour: 22, EndHour: 6,
		Variable: true, Enabled: true,
		BeforeHours: []int{22, 23}, AfterHours: []int{2, 4},
	}}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	r := Report{Scenario: "Baseline", FlexPct: 100, PricePct: 50, Assets: sampleAssets()}
	r.After[5] = 3.5
	require.NoError(t, WriteJSON(&buf, r))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Baseline", got.Scenario)
	assert.Equal(t, 3.5, got.After[5])
	assert.Equal(t, []int{2, 4}, got.Assets[0].AfterHours)
}

func TestWriteScheduleCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScheduleCSV(&buf, sampleAssets()))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "before_hours", rows[0][10])
	assert.Equal(t, "22;23", rows[1][10])
	assert.Equal(t, "2;4", rows[1][11])
	assert.Equal(t, "42", rows[1][3])
}

func TestWriteCurvesCSV(t *testing.T) {
	var before, after model.Curve
	before[18], after[18] = 10.5, 7
	var buf bytes.Buffer
	require.NoError(t, WriteCurvesCSV(&buf, before, after, model.DefaultPrices))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 25)
	assert.Equal(t, []string{"18", "10.5", "7", "22.68"}, rows[19])
}

func TestWriteChart(t *testing.T) {
	var buf bytes.Buffer
	var before model.Curve
	before[0] = 1
	require.NoError(t, WriteChart(&buf, "Baseline", before, before, model.DefaultPrices))
	html := buf.String()
	assert.True(t, strings.Contains(html, "echarts"))
	assert.Contains(t, html, "Baseline")
	assert.Contains(t, html, "Price (cents/kWh)")
}
