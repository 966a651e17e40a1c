package metrics

import (
	"errors"
	"testing"

	"github.com/kilianp07/flexicity/core/events"
	"github.com/kilianp07/flexicity/core/factory"
)

type recordSink struct {
	schedules     int
	optimizations int
	closed        bool
	err           error
}

func (r *recordSink) RecordSchedule(events.ScheduleEvent) error {
	r.schedules++
	return r.err
}

func (r *recordSink) RecordOptimization(events.OptimizationEvent) error {
	r.optimizations++
	return r.err
}

func (r *recordSink) Close() error {
	r.closed = true
	return nil
}

type scheduleOnly struct{ n int }

func (s *scheduleOnly) RecordSchedule(events.ScheduleEvent) error { s.n++; return nil }

// TestMultiSink ensures events are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &scheduleOnly{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordSchedule(events.ScheduleEvent{}); err != nil {
		t.Fatalf("record schedule: %v", err)
	}
	if err := m.RecordOptimization(events.OptimizationEvent{}); err != nil {
		t.Fatalf("record optimization: %v", err)
	}
	if s1.schedules != 1 || s1.optimizations != 1 || s2.n != 1 {
		t.Fatalf("events not forwarded: %+v %+v", s1, s2)
	}
	if err := m.Close(); err != nil || !s1.closed {
		t.Fatalf("close not forwarded: %v", err)
	}
}

// A failing sink does not stop the others.
func TestMultiSinkJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	bad := &recordSink{err: boom}
	good := &recordSink{}
	m := NewMultiSink(bad, good)
	err := m.RecordSchedule(events.ScheduleEvent{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if good.schedules != 1 {
		t.Fatalf("second sink skipped")
	}
}

func TestConfigValidate(t *testing.T) {
	var c Config
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("empty config: %v", err)
	}
	c.Sinks = []factory.ModuleConfig{{Type: "nop"}, {}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected missing type error")
	}
}
