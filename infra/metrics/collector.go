package metrics

import (
	"context"
	"sync"

	"github.com/kilianp07/flexicity/core/events"
	"github.com/kilianp07/flexicity/core/logger"
	coremetrics "github.com/kilianp07/flexicity/core/metrics"
	"github.com/kilianp07/flexicity/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records events on the
// sink. It stops when the context is canceled or the bus is closed; the
// returned WaitGroup is done once the goroutine has exited. Sink errors are
// logged and never stop the collector.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink, log logger.Logger) *sync.WaitGroup {
	var wg sync.WaitGroup
	if bus == nil || sink == nil {
		return &wg
	}
	log = logger.OrNop(log)
	sub := bus.Subscribe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				record(ev, sink, log)
			}
		}
	}()
	return &wg
}

func record(ev eventbus.Event, sink coremetrics.MetricsSink, log logger.Logger) {
	switch e := ev.(type) {
	case events.ScheduleEvent:
		if err := sink.RecordSchedule(e); err != nil {
			log.Errorf("record schedule: %v", err)
		}
	case events.OptimizationEvent:
		if r, ok := sink.(coremetrics.OptimizationRecorder); ok {
			if err := r.RecordOptimization(e); err != nil {
				log.Errorf("record optimization: %v", err)
			}
		}
	}
}
