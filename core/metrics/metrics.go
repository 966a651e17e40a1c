package metrics

import "github.com/kilianp07/flexicity/core/events"

// MetricsSink records the outcome of engine recomputes.
type MetricsSink interface {
	RecordSchedule(ev events.ScheduleEvent) error
}

// OptimizationRecorder is implemented by sinks able to record parameter
// searches.
type OptimizationRecorder interface {
	RecordOptimization(ev events.OptimizationEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSchedule(events.ScheduleEvent) error         { return nil }
func (NopSink) RecordOptimization(events.OptimizationEvent) error { return nil }
