package metrics

import (
	"errors"
	"io"

	"github.com/kilianp07/flexicity/core/events"
)

// MultiSink fans out records to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSchedule forwards the event to every sink. All sinks are tried and
// their errors joined.
func (m *MultiSink) RecordSchedule(ev events.ScheduleEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordSchedule(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordOptimization forwards the event to sinks that support it.
func (m *MultiSink) RecordOptimization(ev events.OptimizationEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(OptimizationRecorder); ok {
			if err := rec.RecordOptimization(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink implementing io.Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
