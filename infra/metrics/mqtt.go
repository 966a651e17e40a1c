package metrics

import (
	"encoding/json"
	"time"

	"github.com/kilianp07/flexicity/core/events"
	coremetrics "github.com/kilianp07/flexicity/core/metrics"
	"github.com/kilianp07/flexicity/core/model"
	"github.com/kilianp07/flexicity/core/stats"
	"github.com/kilianp07/flexicity/infra/mqtt"
)

// Sub-topics used by MQTTSink below the publisher prefix.
const (
	TopicSchedule     = "schedule"
	TopicOptimization = "optimization"
)

// MQTTSink publishes JSON reports of every recompute and search.
type MQTTSink struct {
	pub mqtt.Publisher
}

// NewMQTTSink wraps a connected publisher.
func NewMQTTSink(pub mqtt.Publisher) *MQTTSink { return &MQTTSink{pub: pub} }

type scheduleReport struct {
	Scenario          string      `json:"scenario"`
	FlexParticipation float64     `json:"flex_participation"`
	PriceWeight       float64     `json:"price_weight"`
	Before            model.Curve `json:"before_kw"`
	After             model.Curve `json:"after_kw"`
	Stats             stats.Stats `json:"stats"`
	Time              time.Time   `json:"time"`
}

type optimizationReport struct {
	Policy      string      `json:"policy"`
	Scenario    string      `json:"scenario"`
	FlexPct     int         `json:"flex_pct"`
	GridPct     int         `json:"grid_pct"`
	PricePct    int         `json:"price_pct"`
	Infeasible  bool        `json:"infeasible"`
	Evaluations int         `json:"evaluations"`
	DurationMS  float64     `json:"duration_ms"`
	Stats       stats.Stats `json:"stats"`
}

// RecordSchedule publishes the curves and stats of a recompute.
func (s *MQTTSink) RecordSchedule(ev events.ScheduleEvent) error {
	payload, err := json.Marshal(scheduleReport{
		Scenario:          ev.Scenario,
		FlexParticipation: ev.FlexParticipation,
		PriceWeight:       ev.PriceWeight,
		Before:            ev.Before,
		After:             ev.After,
		Stats:             ev.Stats,
		Time:              ev.Time,
	})
	if err != nil {
		return err
	}
	return s.pub.Publish(TopicSchedule, payload)
}

// RecordOptimization publishes the outcome of a search.
func (s *MQTTSink) RecordOptimization(ev events.OptimizationEvent) error {
	payload, err := json.Marshal(optimizationReport{
		Policy:      ev.Policy,
		Scenario:    ev.Scenario,
		FlexPct:     ev.FlexPct,
		GridPct:     100 - ev.PricePct,
		PricePct:    ev.PricePct,
		Infeasible:  ev.Infeasible,
		Evaluations: ev.Evaluations,
		DurationMS:  round3(ev.Duration.Seconds() * 1000),
		Stats:       ev.Stats,
	})
	if err != nil {
		return err
	}
	return s.pub.Publish(TopicOptimization, payload)
}

// Close disconnects the publisher.
func (s *MQTTSink) Close() error { return s.pub.Close() }

var _ coremetrics.OptimizationRecorder = (*MQTTSink)(nil)
