// Package export writes simulation results as JSON reports, CSV tables and
// HTML charts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/flexicity/core/model"
	"github.com/kilianp07/flexicity/core/stats"
)

// Report is the full outcome of one simulation run.
type Report struct {
	Scenario string        `json:"scenario"`
	FlexPct  float64       `json:"flex_pct"`
	PricePct float64       `json:"price_pct"`
	Stats    stats.Stats   `json:"stats"`
	Before   model.Curve   `json:"before_kw"`
	After    model.Curve   `json:"after_kw"`
	Prices   model.Curve   `json:"prices_cents_kwh"`
	Assets   []model.Asset `json:"assets"`
	Time     time.Time     `json:"time"`
}

// WriteJSON writes the report to w as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteScheduleCSV writes one row per asset with its before and after hours
// joined by semicolons.
func WriteScheduleCSV(w io.Writer, assets []model.Asset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "owner", "appliance", "power_kw", "base_power_kw", "duration_h",
		"start_hour", "end_hour", "variable", "enabled", "before_hours", "after_hours",
	}); err != nil {
		return err
	}
	for _, a := range assets {
		rec := []string{
			string(a.ID),
			a.Owner,
			a.Appliance,
			formatFloat(a.PowerKW),
			formatFloat(a.BasePowerKW),
			strconv.Itoa(a.DurationH),
			strconv.Itoa(a.StartHour),
			strconv.Itoa(a.EndHour),
			strconv.FormatBool(a.Variable),
			strconv.FormatBool(a.Enabled),
			joinHours(a.BeforeHours),
			joinHours(a.AfterHours),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCurvesCSV writes the hourly before, after and price values.
func WriteCurvesCSV(w io.Writer, before, after, prices model.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hour", "before_kw", "after_kw", "price_cents_kwh"}); err != nil {
		return err
	}
	for h := 0; h < model.NumHours; h++ {
		rec := []string{strconv.Itoa(h), formatFloat(before[h]), formatFloat(after[h]), formatFloat(prices[h])}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ";")
}
