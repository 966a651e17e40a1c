package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/flexicity/core/model"
)

// WriteChart renders an HTML line chart of the before and after load curves
// with the price curve on a secondary axis.
func WriteChart(w io.Writer, title string, before, after, prices model.Curve) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Load before and after flexibility"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Load (kW)"}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Price (cents/kWh)"})

	hours := make([]string, model.NumHours)
	for h := range hours {
		hours[h] = fmt.Sprintf("%02d:00", h)
	}
	line.SetXAxis(hours).
		AddSeries("Before", lineData(before)).
		AddSeries("After", lineData(after)).
		AddSeries("Price", lineData(prices), charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func lineData(c model.Curve) []opts.LineData {
	out := make([]opts.LineData, len(c))
	for i, v := range c {
		out[i] = opts.LineData{Value: v}
	}
	return out
}
