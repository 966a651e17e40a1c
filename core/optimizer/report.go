package optimizer

import (
	"fmt"
	"strings"
)

var policyTitles = map[Policy]string{
	MinPeak:              "Optimal settings (min peak)",
	MinCO2:               "Best CO2 saving (min emissions)",
	IdealBalance:         "Ideal balanced settings (peak + cost + CO2 + flex + price/grid)",
	IdealPeakConstrained: "Ideal peak settings (max peak reduction with EUR & CO2 savings)",
}

// Report renders the result as a short human-readable summary.
func (r Result) Report() string {
	var b strings.Builder
	if r.Infeasible {
		b.WriteString("No combination found that both saves money and CO2.\n")
		b.WriteString("Try relaxing the constraints or adjusting loads.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s:\n", policyTitles[r.Policy])
	writeEvaluation(&b, r.Best)
	if r.Balanced != nil {
		b.WriteString("\nBest balance (peak + CO2 together):\n")
		writeEvaluation(&b, *r.Balanced)
	}
	return b.String()
}

func writeEvaluation(b *strings.Builder, e Evaluation) {
	s := e.Stats
	fmt.Fprintf(b, "  Flexible users: %d%%\n", e.FlexPct)
	fmt.Fprintf(b, "  Grid / Price: Grid %d%% / Price %d%%\n", e.GridPct(), e.PricePct)
	fmt.Fprintf(b, "  Peak AFTER: %.1f units\n", s.PeakAfter)
	fmt.Fprintf(b, "  Peak reduction vs baseline: %.1f units (%.1f%%)\n", s.PeakReduction, s.PeakReductionPct)
	fmt.Fprintf(b, "  Cost AFTER (flex loads): %.2f EUR / day\n", s.CostAfter)
	fmt.Fprintf(b, "  Cost saving vs baseline: %.2f EUR / day\n", s.CostSaving)
	fmt.Fprintf(b, "  Emissions AFTER: %.2f tCO2 / day\n", s.CO2After)
	fmt.Fprintf(b, "  CO2 saving vs baseline: %.2f tCO2 / day (%.1f%%)\n", s.CO2SavingDay, s.CO2SavingPct)
}
