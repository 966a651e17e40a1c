package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kilianp07/flexicity/core/model"
	"github.com/kilianp07/flexicity/pkg/export"
)

func printSummary(w io.Writer, r export.Report) {
	s := r.Stats
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Scenario:\t%s\n", r.Scenario)
	fmt.Fprintf(tw, "Flexible users:\t%.0f%%\n", r.FlexPct)
	fmt.Fprintf(tw, "Grid / Price:\tGrid %.0f%% / Price %.0f%%\n", 100-r.PricePct, r.PricePct)
	fmt.Fprintf(tw, "Peak:\t%.1f -> %.1f units\t(-%.1f%%)\n", s.PeakBefore, s.PeakAfter, s.PeakReductionPct)
	fmt.Fprintf(tw, "Cost:\t%.2f -> %.2f EUR / day\t(-%.1f%%)\n", s.CostBefore, s.CostAfter, s.CostSavingPct)
	fmt.Fprintf(tw, "Emissions:\t%.2f -> %.2f tCO2 / day\t(-%.1f%%)\n", s.CO2Before, s.CO2After, s.CO2SavingPct)
	fmt.Fprintf(tw, "CO2 saving:\t%.2f tCO2 / year\t\n", s.CO2SavingYear)
	_ = tw.Flush()
}

func printAssets(w io.Writer, assets []model.Asset) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OWNER\tAPPLIANCE\tKW\tWINDOW\tHOURS\tMODE\tON\tBEFORE\tAFTER")
	for _, a := range assets {
		mode := "fixed"
		if a.Variable {
			mode = "variable"
		}
		on := "no"
		if a.Enabled {
			on = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%02d-%02d\t%d\t%s\t%s\t%s\t%s\n",
			a.Owner, a.Appliance, a.PowerKW, a.StartHour, a.EndHour, a.DurationH,
			mode, on, hours(a.BeforeHours), hours(a.AfterHours))
	}
	_ = tw.Flush()
}

func hours(hs []int) string {
	if len(hs) == 0 {
		return "-"
	}
	parts := make([]string, len(hs))
	for i, h := range hs {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ",")
}
