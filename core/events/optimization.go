package events

import (
	"time"

	"github.com/kilianp07/flexicity/core/stats"
)

// OptimizationEvent is published when a parameter search completes. Stats
// belong to the applied point and are zero when Infeasible is set.
type OptimizationEvent struct {
	Policy      string
	Scenario    string
	FlexPct     int
	PricePct    int
	Infeasible  bool
	Evaluations int
	Duration    time.Duration
	Stats       stats.Stats
}
