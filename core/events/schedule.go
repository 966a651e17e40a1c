package events

import (
	"time"

	"github.com/kilianp07/flexicity/core/model"
	"github.com/kilianp07/flexicity/core/stats"
)

// ScheduleEvent is published after every recompute of a live engine.
// FlexParticipation and PriceWeight are fractions in [0,1].
type ScheduleEvent struct {
	Scenario          string
	FlexParticipation float64
	PriceWeight       float64
	Before            model.Curve
	After             model.Curve
	Stats             stats.Stats
	Time              time.Time
}
